// Package integration runs KitaBayar against a real PostgreSQL started with
// testcontainers. Tests are skipped with -short.
package integration

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kitabayar/backend/internal/infrastructure/config"
	"github.com/kitabayar/backend/internal/infrastructure/migration"
	"github.com/kitabayar/backend/internal/infrastructure/persistence"
)

var (
	// one container per package run; tests truncate between runs
	sharedContainer   *tcpostgres.PostgresContainer
	sharedContainerMu sync.Mutex
	sharedConfig      config.DatabaseConfig
	migrated          bool
)

// TestDB is a migrated database with empty tables
type TestDB struct {
	*persistence.Database
	t *testing.T
}

// NewTestDB returns a connection to the shared container with every table
// truncated. The schema is applied once from the embedded migrations.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	ctx := context.Background()
	if sharedContainer == nil {
		container, err := tcpostgres.Run(ctx,
			"postgres:16-alpine",
			tcpostgres.WithDatabase("kitabayar_test"),
			tcpostgres.WithUsername("postgres"),
			tcpostgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		require.NoError(t, err, "Failed to start PostgreSQL container")

		host, err := container.Host(ctx)
		require.NoError(t, err)
		port, err := container.MappedPort(ctx, "5432/tcp")
		require.NoError(t, err)

		sharedContainer = container
		sharedConfig = config.DatabaseConfig{
			Host:            host,
			Port:            port.Int(),
			User:            "postgres",
			Password:        "postgres",
			DBName:          "kitabayar_test",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5,
			ConnMaxIdleTime: 1,
		}
	}

	var gormLog gormlogger.Interface = gormlogger.Discard
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormLog = gormlogger.Default.LogMode(gormlogger.Info)
	}
	db, err := persistence.NewDatabase(&sharedConfig, gormLog)
	require.NoError(t, err, "Failed to connect to database")

	if !migrated {
		sqlDB, err := db.DB.DB()
		require.NoError(t, err)
		m, err := migration.New(sqlDB, "", zap.NewNop())
		require.NoError(t, err)
		require.NoError(t, m.Up(), "Failed to run migrations")
		migrated = true
	}

	tdb := &TestDB{Database: db, t: t}
	tdb.CleanTables()
	t.Cleanup(func() { _ = db.Close() })
	return tdb
}

// CleanTables truncates every application table
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	var tables []string
	err := tdb.DB.Raw(`
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public'
		AND tablename != 'schema_migrations'
	`).Scan(&tables).Error
	require.NoError(tdb.t, err, "Failed to get table names")
	if len(tables) == 0 {
		return
	}
	err = tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(tables, ", "))).Error
	require.NoError(tdb.t, err, "Failed to truncate tables")
}

// CleanupSharedContainer terminates the shared container
func CleanupSharedContainer() {
	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = sharedContainer.Terminate(ctx)
		sharedContainer = nil
		migrated = false
	}
}
