// Package main provides the question-splitter CLI entrypoint.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/spherical/question-splitter/internal/config"
	"github.com/spherical/question-splitter/internal/observability"
	"github.com/spherical/question-splitter/internal/ui"
)

const version = "1.0.0"

var (
	// Global flags
	cfgFile string
	verbose bool
	noColor bool

	cfg    *config.Config
	logger *observability.Logger
)

// rootCmd runs the split with no arguments.
var rootCmd = &cobra.Command{
	Use:   "question-splitter",
	Short: "Split an exam dump into MCQ, yes/no and image-based question sets",
	Long: `question-splitter reads an exam question dump (PDF or extracted text),
splits it on "Question #<n>" delimiters, strips extraction noise and writes
each question to the file and database destinations for its category.

Paths, database and cache settings come from question-splitter.yaml,
a .env file, or environment variables (SOURCE_PATH, DATABASE_URL, ...).`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		level := cfg.Observability.LogLevel
		if verbose {
			level = "debug"
		}
		logger = observability.NewLogger(observability.LogConfig{
			Level:       level,
			Format:      cfg.Observability.LogFormat,
			ServiceName: "question-splitter",
		})
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ui.New(isatty.IsTerminal(os.Stderr.Fd()), noColor)
		return run(cmd.Context(), cfg, logger, out)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: question-splitter.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		ui.New(false, noColor).Error("%v", err)
		os.Exit(1)
	}
}

// newVersionCmd creates the version subcommand.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "question-splitter version %s\n", version)
		},
	}
}
