package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	trmcontext "github.com/avito-tech/go-transaction-manager/trm/v2/context"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/stayhub/wallet-service/internal/application/interfaces"
	"github.com/stayhub/wallet-service/internal/application/services"
	"github.com/stayhub/wallet-service/internal/config"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
	"github.com/stayhub/wallet-service/internal/infrastructure/db/postgres"
	"github.com/stayhub/wallet-service/internal/infrastructure/notification"
	"github.com/stayhub/wallet-service/internal/infrastructure/storage"
	rest "github.com/stayhub/wallet-service/internal/interface/api/rest/chi"
	"github.com/stayhub/wallet-service/internal/interface/api/rest/middleware"
	"github.com/stayhub/wallet-service/pkg/logger"
)

// Version indicates the current version of the application.
var Version = "1.0.0"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Server run context.
	serverCtx, serverStopCtx := context.WithCancel(context.Background())
	defer serverStopCtx()

	// Load application configurations.
	cfg := config.MustLoad()

	// Create root logger tagged with server version.
	logger := logger.New(cfg).With(serverCtx, "version", Version)

	db, err := postgres.Connect(cfg, logger)
	if err != nil {
		return err
	}

	// Close connection.
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error(err)
		}
		_ = logger.Sync()
	}()

	if err = postgres.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate the database: %w", err)
	}

	// Transaction manager shared by every repository.
	trManager := manager.Must(
		trmsql.NewDefaultFactory(db),
		manager.WithCtxManager(trmcontext.DefaultManager),
	)

	accountRepo, err := postgres.NewAccountRepository(db, trmsql.DefaultCtxGetter, logger)
	if err != nil {
		return fmt.Errorf("failed to create account repository: %w", err)
	}

	withdrawalRepo, err := postgres.NewWithdrawalRepository(db, trmsql.DefaultCtxGetter, logger)
	if err != nil {
		return fmt.Errorf("failed to create withdrawal repository: %w", err)
	}

	kycRepo, err := postgres.NewKYCRepository(db, trmsql.DefaultCtxGetter, logger)
	if err != nil {
		return fmt.Errorf("failed to create kyc repository: %w", err)
	}

	// Without a bot token notifications go to the log only.
	var notifier interfaces.Notifier
	if cfg.Telegram.Token != "" {
		notifier, err = notification.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.OpsChatID, logger)
		if err != nil {
			return fmt.Errorf("failed to init telegram notifier: %w", err)
		}
	} else {
		notifier = notification.NewLogNotifier(logger)
	}

	documents, err := storage.NewFileStore(cfg.Documents.Root, cfg.Documents.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to init document store: %w", err)
	}

	accountService, err := services.NewAccountService(accountRepo, logger)
	if err != nil {
		return fmt.Errorf("failed to init account service: %w", err)
	}

	withdrawalService, err := services.NewWithdrawalService(
		accountService,
		withdrawalRepo,
		trManager,
		notifier,
		cfg.Withdrawal.MinAmount,
		cfg.Withdrawal.Currency,
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to init withdrawal service: %w", err)
	}

	kycService, err := services.NewKYCService(kycRepo, withdrawalService, notifier, logger)
	if err != nil {
		return fmt.Errorf("failed to init kyc service: %w", err)
	}

	router := rest.InitChi(logger)

	userMiddlewares := []func(http.Handler) http.Handler{
		middleware.Auth(cfg.JWT.SigningKey, logger),
	}
	adminMiddlewares := []func(http.Handler) http.Handler{
		middleware.Auth(cfg.JWT.SigningKey, logger),
		middleware.RequireRole(user.RoleAdmin),
	}

	// Retried admin resolutions replay their first response.
	if cfg.Redis.Addr != "" {
		cache := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err = cache.Ping(serverCtx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		idempotency := middleware.NewIdempotency(cache, cfg.Redis.IdempotencyTTL, logger)
		adminMiddlewares = append(adminMiddlewares, idempotency.Handler)
	}

	rest.NewWalletController(accountService, withdrawalService, rest.ChiServerOptions{
		BaseURL:     "/api/user",
		BaseRouter:  router,
		Middlewares: userMiddlewares,
	})
	rest.NewKYCController(kycService, documents, rest.ChiServerOptions{
		BaseURL:     "/api/user",
		BaseRouter:  router,
		Middlewares: userMiddlewares,
	})
	rest.NewAdminController(withdrawalService, kycService, rest.ChiServerOptions{
		BaseURL:     "/api/admin",
		BaseRouter:  router,
		Middlewares: adminMiddlewares,
	})

	// Build HTTP server.
	hs := &http.Server{
		Addr:              cfg.HTTPServer.Address,
		ReadHeaderTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:       cfg.HTTPServer.IdleTimeout,
		Handler:           router,
	}

	// Graceful shutdown.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT,
			syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)

		<-sig

		logger.Infof("Shutting down server with %s timeout",
			cfg.HTTPServer.ShutdownTimeout)

		if err = hs.Shutdown(serverCtx); err != nil {
			logger.Errorf("graceful shutdown failed: %v", err)
		}
		serverStopCtx()
	}()

	// Start the HTTP server with graceful shutdown.
	logger.Infof("server %v is running at %v", Version, cfg.HTTPServer.Address)
	if err = hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("run server failed: %w", err)
	}

	// Wait for server context to be stopped.
	select {
	case <-serverCtx.Done():
	case <-time.After(cfg.HTTPServer.ShutdownTimeout):
		return errors.New("graceful shutdown timed out.. forcing exit")
	}

	return nil
}
