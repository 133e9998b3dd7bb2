package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/taskdeck/internal/config"
	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/model"
	"github.com/existflow/taskdeck/internal/store"
	"github.com/existflow/taskdeck/internal/tui"
	"github.com/existflow/taskdeck/server"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
	serverURL  string

	rootListen string
	rootGroup  string
	rootNoSeed bool

	// cfg is loaded before every command runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "TaskDeck - in-memory task tracker",
	Long: `TaskDeck is a terminal task tracker. Tasks have a title, description,
tags, priority and an optional due date, and can be starred, searched
and grouped by tag, priority or favorites.

Tasks live only in memory. Run 'taskdeck' without arguments to launch the
interactive TUI, optionally serving the HTTP API on the same tasks with
--listen. The other commands talk to a running API server.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runRoot,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("TaskDeck exiting", logger.F("command", cmd.Name()))
	},
}

// closeLogger runs after every command, including failed ones
var closeLogger = logger.Close

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("Command failed", logger.F("error", err))
	}
	if cerr := closeLogger(); cerr != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Warning: failed to close log file: %v\n", cerr)
	}
	return err
}

func init() {
	// Add logging flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "API server URL (default from config)")

	rootCmd.Flags().StringVar(&rootListen, "listen", "", "Also serve the HTTP API on this address (e.g. :8080)")
	rootCmd.Flags().StringVarP(&rootGroup, "group", "g", "", "Initial grouping (None, Tags, Priority, Favorites)")
	rootCmd.Flags().BoolVar(&rootNoSeed, "no-seed", false, "Start with an empty task list")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(starCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(searchCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	// Load config from file (or defaults if not exists)
	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v, using defaults\n", err)
		loaded = config.DefaultConfig()
	}

	// Override with CLI flags if provided
	var changes []func(*config.Config)
	if cmd.Flags().Changed("log-level") {
		if !logger.ValidLevel(logLevel) {
			return fmt.Errorf("unknown log level %q", logLevel)
		}
		changes = append(changes, func(c *config.Config) { c.LogLevel = logLevel })
	}
	if cmd.Flags().Changed("log-file") {
		changes = append(changes, func(c *config.Config) { c.LogFile = logFile })
	}
	if cmd.Flags().Changed("log-console") {
		changes = append(changes, func(c *config.Config) { c.LogConsole = logConsole })
	}

	// Save config if changed via CLI flags
	if len(changes) > 0 {
		apply := func(c *config.Config) {
			for _, change := range changes {
				change(c)
			}
		}
		apply(loaded)
		if err := config.Update(apply); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to save config: %v\n", err)
		}
	}

	if cmd.Flags().Changed("server") {
		loaded.ServerURL = serverURL
	}
	cfg = loaded

	logConfig := logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		FilePath:   cfg.LogFile,
		MaxSize:    10 * 1024 * 1024, // 10MB
		MaxAge:     7,
		MaxBackups: 5,
		Console:    cfg.LogConsole,
	}

	if err := logger.Init(logConfig); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("TaskDeck started", logger.F("command", cmd.Name()))
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	groupBy := cfg.GroupByValue()
	if cmd.Flags().Changed("group") {
		g, ok := model.ParseGroupBy(rootGroup)
		if !ok {
			return fmt.Errorf("unknown grouping %q (want None, Tags, Priority or Favorites)", rootGroup)
		}
		groupBy = g
	}

	tasks := store.New()
	if cfg.Seed && !rootNoSeed {
		tasks.Seed()
	}

	if rootListen != "" {
		srv := server.New(tasks)
		go func() {
			if err := srv.Start(rootListen); err != nil {
				logger.Error("API server stopped", logger.F("error", err))
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("API server shutdown", logger.F("error", err))
			}
		}()
	}

	logger.Info("Launching TUI", logger.F("group_by", string(groupBy)), logger.F("tasks", tasks.Len()))
	m := tui.NewModel(tasks, tui.Options{
		GroupBy:       groupBy,
		ConfirmDelete: cfg.ConfirmDelete,
		ListenAddr:    rootListen,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", logger.F("error", err))
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	logger.Info("TUI exited normally")
	return nil
}
