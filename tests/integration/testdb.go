// Package integration runs the API and repositories against a real PostgreSQL
// started with testcontainers. The tests are skipped with -short.
package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/erp/accounting/internal/infrastructure/config"
	"github.com/erp/accounting/internal/infrastructure/migration"
	"github.com/erp/accounting/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

const (
	testDBName     = "accounting_test"
	testDBUser     = "postgres"
	testDBPassword = "postgres"
)

var (
	// one container per package run, migrated once
	sharedMu     sync.Mutex
	sharedConfig *config.DatabaseConfig
)

// NewTestDB connects to the shared migrated database and empties every table except the
// seeded chart of accounts. Tests using it must not run in parallel.
func NewTestDB(t *testing.T) *persistence.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}

	cfg := sharedDatabase(t)
	db, err := persistence.NewDatabase(cfg)
	require.NoError(t, err, "Failed to connect to PostgreSQL")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.DB.Exec(`TRUNCATE credit_note_lines, credit_notes, invoice_lines, invoices,
		discount_norms, price_lists, products, customers, users RESTART IDENTITY CASCADE`).Error)
	return db
}

func sharedDatabase(t *testing.T) *config.DatabaseConfig {
	t.Helper()

	sharedMu.Lock()
	defer sharedMu.Unlock()
	if sharedConfig != nil {
		return sharedConfig
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase(testDBName),
		tcpostgres.WithUsername(testDBUser),
		tcpostgres.WithPassword(testDBPassword),
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

	cfg := &config.DatabaseConfig{
		Driver:          persistence.DriverPostgres,
		Host:            host,
		Port:            port.Int(),
		User:            testDBUser,
		Password:        testDBPassword,
		DBName:          testDBName,
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5,
		ConnMaxIdleTime: 1,
	}
	migrate(t, cfg)

	sharedConfig = cfg
	return cfg
}

func migrate(t *testing.T, cfg *config.DatabaseConfig) {
	t.Helper()

	db, err := persistence.NewDatabase(cfg)
	require.NoError(t, err)
	defer db.Close()

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	m, err := migration.New(sqlDB, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up(), "Failed to apply migrations")
}
