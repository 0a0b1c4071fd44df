package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nile-cgpa/terminal/internal/app"
	"github.com/nile-cgpa/terminal/internal/config"
	"github.com/nile-cgpa/terminal/internal/logging"
)

var (
	// Global flags
	serverURL string
	logFile   string
	verbose   bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "nile-cgpa",
	Short: "NILE CGPA terminal",
	Long: `nile-cgpa is a small terminal for checking your CGPA.

Run without arguments to start the interactive terminal, then type 'cgpa'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		path := cfg.GetLogFile()
		if logFile != "" {
			path = logFile
		}
		logger, err = logging.New(path, cfg.GetLogLevel(), verbose)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the terminal
		return runTerminal()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFetchFailed) {
			log.Printf("Command execution error: %v", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server-url", "", "CGPA backend base URL (overrides the active profile)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(profileCmd)
}

// resolveServerURL applies the --server-url flag over the config.
func resolveServerURL() string {
	if serverURL != "" {
		return serverURL
	}
	return cfg.GetServerURL()
}

func runTerminal() error {
	application, err := app.NewApplication(cfg, resolveServerURL(), logger)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		return fmt.Errorf("application error: %w", err)
	}
	return nil
}
