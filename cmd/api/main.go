package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Phaneesh28/project-backend/internal/http/handlers"
	httpmw "github.com/Phaneesh28/project-backend/internal/http/middleware"
	"github.com/Phaneesh28/project-backend/internal/repository"
	"github.com/Phaneesh28/project-backend/internal/service"
	"github.com/Phaneesh28/project-backend/pkg/auth"
	"github.com/Phaneesh28/project-backend/pkg/config"
	"github.com/Phaneesh28/project-backend/pkg/database"
	"github.com/Phaneesh28/project-backend/pkg/events"
	"github.com/Phaneesh28/project-backend/pkg/logger"
)

type stores struct {
	accounts repository.AccountRepository
	products repository.ProductRepository
	close    func()
}

func main() {
	cfg := config.Load()
	logger.SetDefault(logger.New(os.Stdout, os.Getenv("LOG_LEVEL")))

	if err := run(cfg); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

// run owns every resource it opens so deferred cleanup happens on both
// startup failures and shutdown.
func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := context.Background()

	// Connect to database
	st, err := openStores(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect %s: %w", cfg.Database.Driver, err)
	}
	defer st.close()
	logger.Info("Database connected", "driver", cfg.Database.Driver)

	// Event bus is optional
	var eventBus events.Publisher = events.NoopPublisher{}
	if cfg.NATS.URL != "" {
		bus, err := events.NewNATSEventBus(cfg.NATS.URL)
		if err != nil {
			return fmt.Errorf("connect nats: %w", err)
		}
		eventBus = bus
	}
	defer eventBus.Close()

	// Rate limiting is optional
	var limiter *httpmw.RateLimiter
	if cfg.Redis.URL != "" {
		rdb, err := database.ConnectRedis(ctx, cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()
		limiter = httpmw.NewRateLimiter(repository.NewRedisRateLimitRepository(rdb), cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	hasher, err := auth.NewPasswordHasher(cfg.Auth.PasswordHasher, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	authService := service.NewAuthService(st.accounts, hasher, tokens, eventBus)
	catalogService := service.NewCatalogService(st.products)

	h := handlers.New(authService, catalogService, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handlers.NewRouter(h, tokens, limiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting server", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-shutdownDone
	return nil
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := repository.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &stores{
			accounts: repository.NewPostgresAccountRepository(pool),
			products: repository.NewPostgresProductRepository(pool),
			close:    pool.Close,
		}, nil

	default:
		db, err := database.ConnectMongo(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		disconnect := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = db.Client().Disconnect(ctx)
		}
		accounts, err := repository.NewMongoAccountRepository(ctx, db)
		if err != nil {
			disconnect()
			return nil, err
		}
		return &stores{
			accounts: accounts,
			products: repository.NewMongoProductRepository(db),
			close:    disconnect,
		}, nil
	}
}
