package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"stylora-be/internal/auth"
	"stylora-be/internal/cart"
	"stylora-be/internal/config"
	"stylora-be/internal/logger"
	"stylora-be/internal/order"
	"stylora-be/internal/pricing"
	"stylora-be/internal/server"
	"stylora-be/internal/storage"
	"stylora-be/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatal("failed to load config", zap.Error(err))
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	ctx := context.Background()

	gw, cleanup, err := openGateway(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open storage gateway", zap.Error(err))
	}
	defer cleanup()

	store, err := storage.Open(ctx, gw, cfg.PersistTimeout)
	if err != nil {
		log.Fatal("failed to load storage snapshot", zap.Error(err))
	}

	calc, err := pricing.FromStrings(cfg.ShippingFee, cfg.TaxRate)
	if err != nil {
		log.Fatal("invalid pricing configuration", zap.Error(err))
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	srv := server.NewServer(
		user.NewService(store, tokens),
		cart.NewService(store),
		order.NewService(store, calc),
		tokens,
	)

	go func() {
		log.Info("server starting",
			zap.String("port", cfg.AppPort),
			zap.String("storage_driver", cfg.StorageDriver),
		)
		if err := srv.Start(":" + cfg.AppPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}

// openGateway builds the persistence gateway the config selects. The
// postgres driver also runs the schema migration on startup.
func openGateway(ctx context.Context, cfg *config.Config) (storage.Gateway, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := storage.OpenPostgres(cfg.DSN())
		if err != nil {
			return nil, nil, err
		}
		gw := storage.NewPostgresGateway(db)
		if err := gw.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return gw, func() { db.Close() }, nil
	default:
		return storage.NewFileGateway(cfg.StorageFile), func() {}, nil
	}
}
