//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/damda-platform/damda-admin/internal/audit"
	"github.com/damda-platform/damda-admin/internal/auth"
	"github.com/damda-platform/damda-admin/internal/cache"
	"github.com/damda-platform/damda-admin/internal/config"
	"github.com/damda-platform/damda-admin/internal/content"
	"github.com/damda-platform/damda-admin/internal/daycares"
	"github.com/damda-platform/damda-admin/internal/mutation"
	"github.com/damda-platform/damda-admin/internal/payments"
	"github.com/damda-platform/damda-admin/internal/products"
	"github.com/damda-platform/damda-admin/internal/reservations"
	"github.com/damda-platform/damda-admin/internal/reviews"
	"github.com/damda-platform/damda-admin/internal/server"
	"github.com/damda-platform/damda-admin/internal/store"
	"github.com/damda-platform/damda-admin/internal/vendors"
)

type TestEnv struct {
	Pool        *pgxpool.Pool
	RedisClient *redis.Client
	Server      *httptest.Server
	AdminID     uuid.UUID
}

var testEnv *TestEnv

const (
	testAdminEmail    = "admin@damda.test"
	testAdminPassword = "password123"
)

func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	if testEnv != nil {
		return testEnv
	}

	ctx := context.Background()

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_DB":       "damda_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("starting postgres container: %v", err)
	}
	t.Cleanup(func() { pgContainer.Terminate(ctx) })

	pgHost, _ := pgContainer.Host(ctx)
	pgPort, _ := pgContainer.MappedPort(ctx, "5432")

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("starting redis container: %v", err)
	}
	t.Cleanup(func() { redisContainer.Terminate(ctx) })

	redisHost, _ := redisContainer.Host(ctx)
	redisPort, _ := redisContainer.MappedPort(ctx, "6379")

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/damda_test?sslmode=disable", pgHost, pgPort.Port())
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connecting to postgres: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	m, err := migrate.New(fmt.Sprintf("file://%s", getMigrationsPath()), dsn)
	if err != nil {
		t.Fatalf("creating migrator: %v", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		t.Fatalf("running migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", redisHost, redisPort.Port()),
	})
	t.Cleanup(func() { redisClient.Close() })

	adminID := seedAdmin(t, ctx, pool)

	auditRepo := audit.NewRepository(pool)
	sink := audit.NewRepositorySink(auditRepo)

	lists := cache.NewLists(redisClient, time.Minute)
	st := store.NewPostgres(pool)
	mut := mutation.New(st, sink, lists)

	jwtMgr := auth.NewJWTManager("test-access-secret-32-chars-long!!", "test-refresh-secret-32-chars-long!", 15*time.Minute, 7*24*time.Hour)
	authSvc := auth.NewService(jwtMgr, redisClient)
	authRepo := auth.NewRepository(pool)

	cfg := &config.Config{
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	handlers := server.Handlers{
		Auth:         auth.NewHandler(authSvc, authRepo, sink),
		AuthService:  authSvc,
		Audit:        audit.NewHandler(auditRepo),
		Vendors:      vendors.NewHandler(vendors.NewService(mut, st), lists),
		Daycares:     daycares.NewHandler(daycares.NewService(mut, st), lists),
		Products:     products.NewHandler(products.NewService(mut, st), lists),
		Reservations: reservations.NewHandler(reservations.NewService(mut, st), lists),
		Payments:     payments.NewHandler(payments.NewService(mut, st, noopGateway{}), lists),
		Reviews:      reviews.NewHandler(reviews.NewService(mut, st, noopObjects{}), lists),
		Content:      content.NewHandler(content.NewService(mut, st), lists),
		Health:       func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) },
		Ready:        func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) },
	}

	ts := httptest.NewServer(server.NewRouter(cfg, handlers))
	t.Cleanup(func() { ts.Close() })

	testEnv = &TestEnv{
		Pool:        pool,
		RedisClient: redisClient,
		Server:      ts,
		AdminID:     adminID,
	}
	return testEnv
}

type noopGateway struct{}

func (noopGateway) Refund(ctx context.Context, paymentKey string, amount int64, reason string) (*payments.RefundResult, error) {
	return &payments.RefundResult{
		TransactionKey: "test-txn",
		RefundedAmount: amount,
		RefundedAt:     time.Now(),
	}, nil
}

type noopObjects struct{}

func (noopObjects) Upload(ctx context.Context, path string, blob []byte, contentType string) (string, error) {
	return "https://cdn.test/" + path, nil
}

func (noopObjects) Delete(ctx context.Context, path string) error { return nil }

func seedAdmin(t *testing.T, ctx context.Context, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	hash, err := auth.HashPassword(testAdminPassword)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	id := uuid.New()
	_, err = pool.Exec(ctx,
		`INSERT INTO admins (id, email, name, password_hash, role) VALUES ($1, $2, $3, $4, $5)`,
		id, testAdminEmail, "Test Admin", hash, "admin")
	if err != nil {
		t.Fatalf("seeding admin: %v", err)
	}
	return id
}

func getMigrationsPath() string {
	paths := []string{
		"../../migrations",
		"../../../migrations",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	log.Fatal("migrations directory not found")
	return ""
}

func LoginAdmin(t *testing.T, env *TestEnv) string {
	t.Helper()
	body := map[string]string{"email": testAdminEmail, "password": testAdminPassword}
	resp := DoRequest(t, env, "POST", "/api/v1/auth/login", body, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: status %d", resp.StatusCode)
	}
	result := ParseResponse(t, resp)
	data := result["data"].(map[string]any)
	tokens := data["tokens"].(map[string]any)
	return tokens["access_token"].(string)
}

func DoRequest(t *testing.T, env *TestEnv, method, path string, body any, token string) *http.Response {
	t.Helper()
	var bodyReader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, env.Server.URL+path, bodyReader)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("doing request: %v", err)
	}
	return resp
}

func ParseResponse(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("parsing response: %v", err)
	}
	return result
}
