package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/damda-platform/damda-admin/internal/api"
	"github.com/damda-platform/damda-admin/internal/audit"
	"github.com/damda-platform/damda-admin/internal/auth"
	"github.com/damda-platform/damda-admin/internal/cache"
	"github.com/damda-platform/damda-admin/internal/config"
	"github.com/damda-platform/damda-admin/internal/content"
	"github.com/damda-platform/damda-admin/internal/database"
	"github.com/damda-platform/damda-admin/internal/daycares"
	"github.com/damda-platform/damda-admin/internal/middleware"
	"github.com/damda-platform/damda-admin/internal/mutation"
	inats "github.com/damda-platform/damda-admin/internal/nats"
	"github.com/damda-platform/damda-admin/internal/payments"
	"github.com/damda-platform/damda-admin/internal/products"
	iredis "github.com/damda-platform/damda-admin/internal/redis"
	"github.com/damda-platform/damda-admin/internal/reservations"
	"github.com/damda-platform/damda-admin/internal/reviews"
	"github.com/damda-platform/damda-admin/internal/server"
	"github.com/damda-platform/damda-admin/internal/storage"
	"github.com/damda-platform/damda-admin/internal/store"
	"github.com/damda-platform/damda-admin/internal/vendors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if err := database.RunMigrations(cfg.DB.DSN(), "migrations"); err != nil {
		slog.Error("running migrations", "error", err)
		os.Exit(1)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.DB)
	if err != nil {
		slog.Error("connecting to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := iredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		slog.Error("connecting to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	auditRepo := audit.NewRepository(pool)

	// The NATS sink is preferred; without a broker the audit trail degrades
	// to direct inserts rather than going dark.
	var sink audit.Sink
	natsClient, err := inats.NewClient(ctx, cfg.NATS)
	if err != nil {
		slog.Warn("nats unavailable, audit records will be written directly", "error", err)
		sink = audit.NewRepositorySink(auditRepo)
	} else {
		defer natsClient.Close()
		sink = audit.NewNATSSink(inats.NewPublisher(natsClient.JetStream()))

		consumer := audit.NewConsumer(auditRepo, inats.NewConsumerManager(natsClient.JetStream()))
		go func() {
			if err := consumer.Start(ctx); err != nil {
				slog.Error("audit consumer stopped", "error", err)
			}
		}()
	}

	lists := cache.NewLists(redisClient, cfg.Cache.ListTTL)
	st := store.NewPostgres(pool)
	mut := mutation.New(st, sink, lists)

	jwtMgr := auth.NewJWTManager(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	authSvc := auth.NewService(jwtMgr, redisClient)
	authRepo := auth.NewRepository(pool)

	gateway := payments.NewHTTPGateway(cfg.Refund.Endpoint, cfg.Refund.APIKey, cfg.Refund.Timeout)
	objects := storage.NewHTTPClient(cfg.Storage)

	handlers := server.Handlers{
		Auth:         auth.NewHandler(authSvc, authRepo, sink),
		AuthService:  authSvc,
		Audit:        audit.NewHandler(auditRepo),
		Vendors:      vendors.NewHandler(vendors.NewService(mut, st), lists),
		Daycares:     daycares.NewHandler(daycares.NewService(mut, st), lists),
		Products:     products.NewHandler(products.NewService(mut, st), lists),
		Reservations: reservations.NewHandler(reservations.NewService(mut, st), lists),
		Payments:     payments.NewHandler(payments.NewService(mut, st, gateway), lists),
		Reviews:      reviews.NewHandler(reviews.NewService(mut, st, objects), lists),
		Content:      content.NewHandler(content.NewService(mut, st), lists),
		LoginLimiter: middleware.NewRateLimiter(redisClient, 10, 60),
		Health:       healthHandler(),
		Ready:        readyHandler(pool),
	}

	router := server.NewRouter(cfg, handlers)
	srv := server.New(cfg.Server, router)

	if err := srv.Start(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		api.JSONMessage(w, http.StatusOK, "ok")
	}
}

func readyHandler(pool interface {
	Ping(ctx context.Context) error
}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			api.JSONErrorMessage(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		api.JSONMessage(w, http.StatusOK, "ready")
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}
