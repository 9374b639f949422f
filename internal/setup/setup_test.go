package setup

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboards/boards/internal/config"
	"github.com/taskboards/boards/internal/domain"
	"github.com/taskboards/boards/internal/storage"
	"github.com/taskboards/boards/internal/storage/memory"
	"github.com/taskboards/boards/internal/storage/redis"
)

func configWithDriver(driver string) *config.Config {
	return &config.Config{Public: config.Public{Storage: config.Storage{Driver: driver}}}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, err := OpenStore(ctx, configWithDriver(config.DriverMemory))
		require.NoError(t, err)
		assert.IsType(t, &memory.Storage{}, store)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := configWithDriver(config.DriverRedis)
		cfg.Public.Storage.Redis = config.Redis{Addr: mr.Addr(), Prefix: "boards"}

		store, err := OpenStore(ctx, cfg)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &redis.Storage{}, store)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := OpenStore(ctx, configWithDriver("sqlite"))
		assert.Error(t, err)
	})
}

func TestSetupDependencies(t *testing.T) {
	ctx := context.Background()
	deps, err := SetupDependencies(ctx, configWithDriver(config.DriverMemory), prometheus.NewRegistry())
	require.NoError(t, err)
	defer deps.Cleanup()

	assert.IsType(t, &storage.Instrumented{}, deps.Store)
	assert.NotNil(t, deps.Handler)
	assert.NotNil(t, deps.Frontend)
	assert.NotNil(t, deps.Metrics)

	saved, err := deps.Store.Save(ctx, domain.NewBoard("First board", ""))
	require.NoError(t, err)
	assert.True(t, saved.Persisted())
}
