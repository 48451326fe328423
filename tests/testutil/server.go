package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/erp/accounting/internal/bootstrap"
	"github.com/erp/accounting/internal/infrastructure/auth"
	"github.com/erp/accounting/internal/infrastructure/cache"
	"github.com/erp/accounting/internal/infrastructure/config"
	"github.com/erp/accounting/internal/infrastructure/persistence"
	"github.com/erp/accounting/internal/infrastructure/storage"
	"github.com/erp/accounting/internal/interfaces/http/middleware"
	"github.com/erp/accounting/internal/interfaces/http/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// APIPrefix is the path of the API group
const APIPrefix = "/api/v1"

// TestJWTSecret signs every token issued by a TestServer
const TestJWTSecret = "test-secret-key-with-32-characters!"

var validatorOnce sync.Once

// TestConfig returns a configuration for an in-memory server.
func TestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "accounting-test", Env: "test", Port: "0"},
		Database: config.DatabaseConfig{
			Driver:     persistence.DriverSQLite,
			SQLitePath: ":memory:",
		},
		JWT: config.JWTConfig{
			Secret:                TestJWTSecret,
			Issuer:                "accounting-test",
			AccessTokenExpiration: time.Hour,
		},
		HTTP: config.HTTPConfig{
			MaxBodySize:      1 << 20,
			CORSAllowOrigins: []string{"http://localhost:3000"},
			IdempotencyTTL:   time.Minute,
		},
		Billing: config.BillingConfig{
			CompanyName:    "Test Trading Co",
			CompanyAddress: "1 Test Street",
			CompanyTaxID:   "0101234567",
			NumberRetries:  3,
			Timezone:       "UTC",
		},
	}
}

// TestServer is the whole API wired over an in-memory database.
type TestServer struct {
	Engine    *router.Engine
	DB        *persistence.Database
	Config    *config.Config
	Tokens    *auth.JWTService
	Blacklist *auth.InMemoryTokenBlacklist
	Registry  *prometheus.Registry
	Documents *storage.MemoryDocumentStore
}

// NewTestServer builds a TestServer over a private in-memory database.
// mutate, when given, adjusts the config first.
func NewTestServer(t *testing.T, mutate ...func(*config.Config)) *TestServer {
	t.Helper()
	return NewTestServerWithDB(t, NewSQLiteDB(t), mutate...)
}

// NewTestServerWithDB builds a TestServer over db, which must already hold the schema.
func NewTestServerWithDB(t *testing.T, db *persistence.Database, mutate ...func(*config.Config)) *TestServer {
	t.Helper()

	validatorOnce.Do(func() {
		require.NoError(t, middleware.SetupValidator(), "Failed to register validations")
	})

	cfg := TestConfig()
	for _, m := range mutate {
		m(cfg)
	}

	tokens := auth.NewJWTService(cfg.JWT)
	blacklist := auth.NewInMemoryTokenBlacklist()
	idempotency := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = idempotency.Close() })
	registry := prometheus.NewRegistry()
	documents := storage.NewMemoryDocumentStore(cfg.Storage.PresignExpiration)

	handlers := bootstrap.NewHandlers(bootstrap.Deps{
		DB:        db.DB,
		Pinger:    db,
		Config:    cfg,
		Tokens:    tokens,
		Blacklist: blacklist,
		Documents: documents,
		Gatherer:  registry,
	})

	engine, err := router.New(router.Options{
		ServiceName: cfg.App.Name,
		HTTP:        cfg.HTTP,
		Tokens:      tokens,
		Blacklist:   blacklist,
		Idempotency: idempotency,
		Registerer:  registry,
	}, handlers)
	require.NoError(t, err, "Failed to build engine")
	t.Cleanup(engine.Close)

	return &TestServer{
		Engine:    engine,
		DB:        db,
		Config:    cfg,
		Tokens:    tokens,
		Blacklist: blacklist,
		Registry:  registry,
		Documents: documents,
	}
}

// Token issues an access token for a user that need not exist.
func (s *TestServer) Token(t *testing.T, role string) string {
	t.Helper()
	token, err := s.Tokens.Issue(auth.Subject{UserID: TestUserID(), Username: "tester", Role: role})
	require.NoError(t, err)
	return token.Token
}

// Serve runs req through the engine.
func (s *TestServer) Serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, req)
	return w
}

// Do sends a JSON request to an API path. token may be empty.
func (s *TestServer) Do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	req := NewJSONRequest(t, method, APIPrefix+path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.Serve(req)
}
