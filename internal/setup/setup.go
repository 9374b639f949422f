package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/taskboards/boards/internal/config"
	"github.com/taskboards/boards/internal/frontend"
	"github.com/taskboards/boards/internal/handler"
	"github.com/taskboards/boards/internal/logger"
	"github.com/taskboards/boards/internal/markdown"
	"github.com/taskboards/boards/internal/middleware/metrics"
	"github.com/taskboards/boards/internal/middleware/ratelimiter"
	"github.com/taskboards/boards/internal/service"
	"github.com/taskboards/boards/internal/storage"
	"github.com/taskboards/boards/internal/storage/memory"
	"github.com/taskboards/boards/internal/storage/pg"
	"github.com/taskboards/boards/internal/storage/redis"
	"github.com/taskboards/boards/internal/ui"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config       *config.Config
	Store        storage.BoardStore
	Handler      *handler.Handler
	Frontend     *frontend.Handler
	Metrics      *metrics.Metrics
	Registry     *prometheus.Registry
	WriteLimiter *ratelimiter.ClientRateLimiter // nil when rate limiting is disabled
}

// SetupDependencies opens the configured store and builds everything on top of it.
func SetupDependencies(ctx context.Context, cfg *config.Config, reg *prometheus.Registry) (*Dependencies, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	instrumented := storage.NewInstrumented(store, cfg.Public.Storage.Driver, reg)

	board := service.NewBoard(instrumented, &service.BoardNameValidator{})
	h := handler.New(board, instrumented, cfg)

	sessions := ui.NewSessions(instrumented, cfg.Public.UI.SessionTTL, cfg.Public.UI.MaxSessions)
	fe := frontend.New(sessions, markdown.New(), cfg.Public)

	var limiter *ratelimiter.ClientRateLimiter
	if rl := cfg.Public.RateLimit; rl.WritesPerSecond > 0 {
		limiter = ratelimiter.New(rl.WritesPerSecond, rl.Burst, time.Hour)
	}

	return &Dependencies{
		Config:       cfg,
		Store:        instrumented,
		Handler:      h,
		Frontend:     fe,
		Metrics:      metrics.New(reg),
		Registry:     reg,
		WriteLimiter: limiter,
	}, nil
}

// OpenStore returns the single backing store selected by storage.driver.
func OpenStore(ctx context.Context, cfg *config.Config) (storage.BoardStore, error) {
	driver := cfg.Public.Storage.Driver
	logger.Log.Info("opening board store", "driver", driver)

	switch driver {
	case config.DriverPostgres:
		s, err := pg.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverRedis:
		s, err := redis.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

func (d *Dependencies) Cleanup() {
	if err := d.Store.Close(); err != nil {
		logger.Log.Error("closing board store", "error", err)
	}
}
