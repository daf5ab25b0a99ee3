package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/SscSPs/budget_ledger/cmd/docs"
	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/budget_ledger/internal/core/services"
	"github.com/SscSPs/budget_ledger/internal/events"
	"github.com/SscSPs/budget_ledger/internal/handlers"
	"github.com/SscSPs/budget_ledger/internal/jobs/inmemory"
	"github.com/SscSPs/budget_ledger/internal/middleware"
	"github.com/SscSPs/budget_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/budget_ledger/internal/repositories/memory"
	"github.com/SscSPs/budget_ledger/pkg/config"
	"github.com/SscSPs/budget_ledger/pkg/database"
)

const (
	refreshRetryBackoff = 2 * time.Second
	shutdownTimeout     = 15 * time.Second
)

// @title Budget Ledger API
// @version 1.0
// @description Multi-currency double-entry ledger for budgeting.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey UserID
// @in header
// @name X-User-ID
// @description Acting user, set by the upstream gateway after authentication.

// @security UserID
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	// Aggregate refresh pipeline: events -> listener -> queue -> worker pool
	bus := events.NewBus()
	queue := inmemory.NewQueue(cfg.AggregateQueueSize, inmemory.NewStore(),
		inmemory.WithWorkers(cfg.AggregateWorkers),
		inmemory.WithRetryBackoff(refreshRetryBackoff))

	container := services.NewServiceContainer(repos, cfg.DefaultCurrency, services.WithEventDispatcher(bus))
	services.NewAggregateRefreshListener(queue).Register(bus)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if err := queue.Start(workerCtx, services.NewRefreshBudgetPeriodJobHandler(repos.BudgetRepo, container.Aggregates)); err != nil {
		logger.Error("Failed to start refresh workers", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	limiterInstance, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to configure rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID", middleware.UserIDHeader},
			ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, container, middleware.RateLimit(limiterInstance))
	setupSwaggerRoutes(r, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
	}
	if err := queue.Stop(shutdownCtx); err != nil {
		logger.Error("Refresh workers did not drain", slog.String("error", err.Error()))
	}
}

func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// buildRepositories selects the storage driver. The returned cleanup releases pools.
func buildRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		return memory.NewRepositoryProvider(memory.NewStore()), func() {}, nil
	}

	if cfg.RunMigrations {
		if err := runMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
	}

	primary, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}

	var replica *pgxpool.Pool
	if cfg.ReplicaDatabaseURL != "" {
		replica, err = database.NewPgxPool(ctx, cfg.ReplicaDatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			database.ClosePgxPool(primary)
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Reporting reads use the replica pool")
	}

	cleanup := func() {
		database.ClosePgxPool(replica)
		database.ClosePgxPool(primary)
	}
	return pgsql.NewRepositoryProvider(primary, replica), cleanup, nil
}

// runMigrations applies every pending "up" migration through a short-lived database/sql handle.
func runMigrations(databaseURL, migrationsPath string, logger *slog.Logger) error {
	logger.Info("Running database migrations...", slog.String("path", migrationsPath))

	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
