package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sukarame/si-karame/backend/internal/app"
	"github.com/sukarame/si-karame/backend/internal/config"
	"github.com/sukarame/si-karame/backend/internal/handler"
	"github.com/sukarame/si-karame/backend/pkg/logger"
	"github.com/sukarame/si-karame/backend/pkg/markup"
)

const sweepInterval = time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootstrapFatal("failed to load configuration", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		bootstrapFatal("failed to build logger", err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if envErr != nil {
		log.Debug("no .env file loaded, using process environment only", zap.Error(envErr))
	}

	assistant, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize assistant", zap.Error(err))
	}

	registry := assistant.NewRegistry()
	go registry.Run(ctx, sweepInterval)

	router := handler.NewRouter(assistant.Village, registry, markup.NewRenderer(), log)

	startServer(ctx, cfg.Server, router, log)
}

// bootstrapFatal reports errors that happen before the configured logger
// exists.
func bootstrapFatal(msg string, err error) {
	zap.Must(zap.NewProduction()).Fatal(msg, zap.Error(err))
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, log *zap.Logger) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info("Si Karame backend listening", zap.String("addr", addr))
	if err := runServer(ctx, srv); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
	log.Info("server stopped")
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
