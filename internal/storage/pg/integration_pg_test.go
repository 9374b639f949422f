package pg

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taskboards/boards/internal/config"
	"github.com/taskboards/boards/internal/domain"
	"github.com/taskboards/boards/internal/storage"
	"github.com/taskboards/boards/internal/storage/storagetest"
)

var testStorage *Storage

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		log.Print("skipping postgres integration tests in short mode")
		os.Exit(0)
	}

	ctx := context.Background()
	var container *postgres.PostgresContainer
	testStorage, container = mustSetup(ctx)

	exitCode := m.Run()
	teardown(ctx, testStorage, container)
	os.Exit(exitCode)
}

func mustSetup(ctx context.Context) (*Storage, *postgres.PostgresContainer) {
	dbName := "boards"
	dbUser := "user"
	dbPassword := "password"
	container, err := postgres.Run(ctx,
		"postgres:15.3-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			// First, we wait for the container to log readiness twice.
			// This is because it will restart itself after the first startup.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}
	containerPort, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Fatalf("failed to obtain container port: %s", err)
	}
	port, err := strconv.Atoi(containerPort.Port())
	if err != nil {
		log.Fatalf("failed to obtain int container port: %s", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("failed to obtain container host: %s", err)
	}

	cfg := &config.Config{
		Public: config.Public{Storage: config.Storage{
			Driver: config.DriverPostgres,
			Pg:     config.Pg{Host: host, Port: port, User: dbUser, Dbname: dbName, SSLMode: "disable"},
		}},
		Private: config.Private{PgPassword: dbPassword},
	}
	s, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres container: %s", err)
	}
	return s, container
}

func teardown(ctx context.Context, s *Storage, container *postgres.PostgresContainer) {
	if err := s.Close(); err != nil {
		log.Printf("failed to close storage connection: %s", err)
	}
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

func cleanStorage(t *testing.T) storage.BoardStore {
	t.Helper()
	require.NoError(t, testStorage.DeleteAll(context.Background()))
	return testStorage
}

func TestBoardStorage(t *testing.T) {
	storagetest.Run(t, cleanStorage)
}

func TestSaveWithExplicitIdAdvancesSequence(t *testing.T) {
	ctx := context.Background()
	s := cleanStorage(t)

	_, err := s.Save(ctx, domain.Board{Id: 42, Name: "Imported", Description: ""})
	require.NoError(t, err)

	next, err := s.Save(ctx, domain.NewBoard("Fresh", ""))
	require.NoError(t, err)
	assert.Greater(t, next.Id, domain.BoardId(42))
}

func TestMigrateIsIdempotent(t *testing.T) {
	assert.NoError(t, testStorage.migrate(context.Background()))
}

func TestBlankNameRejectedBySchema(t *testing.T) {
	_, err := cleanStorage(t).Save(context.Background(), domain.NewBoard("   ", ""))
	assert.Error(t, err)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\tmp`, escapeLike(`c:\tmp`))
	assert.Equal(t, "team", escapeLike("team"))
}
