package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/store"
	"github.com/existflow/taskdeck/server"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	cfg := logger.DefaultConfig()
	cfg.FilePath = os.Getenv("TASKDECK_LOG_FILE")
	cfg.Console = true
	if lvl := os.Getenv("TASKDECK_LOG_LEVEL"); lvl != "" {
		cfg.Level = logger.ParseLevel(lvl)
	}
	if err := logger.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	tasks := store.New()
	if os.Getenv("TASKDECK_SEED") != "false" {
		tasks.Seed()
	}

	srv := server.New(tasks)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(":" + port)
	}()

	logger.Info("TaskDeck server starting", logger.F("port", port), logger.F("tasks", tasks.Len()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed", logger.F("error", err))
			logger.Close()
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error closing server", logger.F("error", err))
		}
		logger.Info("TaskDeck server stopped")
	}
}
