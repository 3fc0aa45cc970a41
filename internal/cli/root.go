// Package cli provides the command-line interface for headr.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/headr/internal/cli/config"
	"github.com/leapstack-labs/headr/internal/head"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "headr [flags] [FILE]...",
		Short: "Output the first part of files",
		Long: `Print the first 10 lines of each FILE to standard output.
With more than one FILE, precede each with a header giving the file name.

With no FILE, or when FILE is -, read standard input.

NUM may have a leading '-' to print all but the last NUM lines or bytes, and
may carry a size suffix: 1K = 1000, 1KiB = 1024, 1MB, 1MiB, and so on.`,
		Example: `  headr -n 5 notes.txt
  headr -n -2 notes.txt         # all but the last two lines
  headr -c 1KiB a.bin b.bin
  cat log.txt | headr -c -6`,
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			lvl, err := cfg.Level()
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))
			if cfg.ConfigFile != "" {
				logger.Debug("using config file", "path", cfg.ConfigFile)
			}

			ctx := config.WithLogger(cmd.Context(), logger)
			ctx = context.WithValue(ctx, configKey{}, cfg)
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd)
			opts, err := cfg.Options()
			if err != nil {
				return err
			}
			opts.Sources = args
			opts.Logger = config.GetLogger(cmd.Context())

			return head.Run(opts, cmd.OutOrStdout(), cmd.InOrStdin())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	flags := rootCmd.Flags()
	flags.SortFlags = false
	flags.StringP("lines", "n", config.DefaultLines, "print the first NUM lines; with a leading '-', all but the last NUM lines")
	flags.StringP("bytes", "c", "", "print the first NUM bytes; with a leading '-', all but the last NUM bytes (overrides --lines)")
	flags.BoolP("quiet", "q", false, "never print headers giving file names")
	flags.BoolP("verbose", "v", false, "always print headers giving file names")
	flags.BoolP("zero-terminated", "z", false, "line delimiter is NUL, not newline")
	flags.String("invalid-lines", config.DefaultInvalidLines, "lines that are not valid UTF-8: skip|replace")
	flags.String("log-level", config.DefaultLogLevel, "diagnostic log level on stderr (debug|info|warn|error)")
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./.headr.yaml, then $XDG_CONFIG_HOME/headr/headr.yaml)")
	rootCmd.MarkFlagsMutuallyExclusive("quiet", "verbose")

	_ = rootCmd.RegisterFlagCompletionFunc("invalid-lines", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"skip", "replace"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "headr: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(cmd *cobra.Command) *config.Config {
	if c, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return c
	}
	// Return default config if none in context
	return &config.Config{
		Lines:        config.DefaultLines,
		Headers:      config.DefaultHeaders,
		InvalidLines: config.DefaultInvalidLines,
		LogLevel:     config.DefaultLogLevel,
	}
}
