// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/unclebandit/customer-service/internal/config"
	"github.com/unclebandit/customer-service/internal/controller"
	"github.com/unclebandit/customer-service/internal/db"
	"github.com/unclebandit/customer-service/internal/handler"
	"github.com/unclebandit/customer-service/internal/logger"
	"github.com/unclebandit/customer-service/internal/metrics"
	"github.com/unclebandit/customer-service/internal/repository"
	"github.com/unclebandit/customer-service/internal/server"
	"github.com/unclebandit/customer-service/internal/service"
)

func main() {
	// Load .env and environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init DB
	gormDB, sqlDB, err := db.Open(ctx, cfg.Database, zl)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	customerRepo := repository.NewCustomerRepository(gormDB)
	customerService := service.NewCustomerService(customerRepo)
	customerController := controller.NewCustomerController(customerService, zl)
	healthHandler := handler.NewHealthHandler(sqlDB, zl)

	router := server.NewRouter(server.Deps{
		CustomerController: customerController,
		HealthHandler:      healthHandler,
		Metrics:            metrics.New(),
		Logger:             zl,
		AllowedOrigin:      cfg.CORS.AllowedOrigin,
		RequestTimeout:     cfg.HTTP.RequestTimeout,
	})
	httpServer := server.NewHTTPServer(cfg.HTTP.Port, router, cfg.HTTP.RequestTimeout)

	errC := make(chan error, 1)
	go func() {
		zl.Info("server running", zap.String("addr", httpServer.Addr), zap.String("allowed_origin", cfg.CORS.AllowedOrigin))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
		close(errC)
	}()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errC
}
