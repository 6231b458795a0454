package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/fx"

	"github.com/anonto42/skillshare/backend/internal/app"
	"github.com/anonto42/skillshare/backend/pkg/config"
	"github.com/anonto42/skillshare/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(logger.Opts{
		Env:       cfg.Env,
		Level:     cfg.LogLevel,
		SentryDSN: cfg.SentryDSN,
	})

	application := fx.New(
		fx.Logger(appLog),
		fx.Supply(cfg),
		fx.Provide(func() logger.Logger { return appLog }),
		app.Module,
	)

	startCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := application.Start(startCtx); err != nil {
		appLog.Error("Failed to start application", "error", err)
		os.Exit(1)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer stopCancel()
	if err := application.Stop(stopCtx); err != nil {
		appLog.Error("Failed to stop application", "error", err)
		os.Exit(1)
	}
}
