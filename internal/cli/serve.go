package cli

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
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API without the TUI",
	Long: `Serve the task API on an in-memory task list until interrupted.

Examples:
  taskdeck serve
  taskdeck serve --addr :9000 --no-seed`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr   string
	serveNoSeed bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveNoSeed, "no-seed", false, "Start with an empty task list")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Listen
	if serveAddr != "" {
		addr = serveAddr
	}

	tasks := store.New()
	if cfg.Seed && !serveNoSeed {
		tasks.Seed()
	}
	srv := server.New(tasks)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(addr)
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "TaskDeck API listening on %s (%d tasks)\n", addr, tasks.Len())

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
