// Package cli provides the command-line interface for the patseek engine.
//
// The command tree built on Cobra:
//   - index: build the three index artifacts from a corpus directory
//   - search: run a single query against a built index
//   - serve: expose the search API over HTTP
//   - shell: interactive index/search session (also the default action)
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/patseek/patseek/internal/config"
	"github.com/patseek/patseek/internal/index"
	"github.com/patseek/patseek/internal/logger"
	"github.com/patseek/patseek/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "patseek",
	Short:   "Field-weighted BM25F search over patent JSON documents",
	Version: version.Version,
	Long: `patseek builds an on-disk inverted index over patent-like JSON documents
(title / abstract / claims) and answers ranked keyword queries with Boolean,
exact-phrase, field-restriction and verbose snippet modifiers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// No subcommand: enter the interactive shell.
		return shellCmd.RunE(cmd, args)
	},
}

// Execute runs the root command and handles all CLI interactions.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(shellCmd)

	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringP("index-dir", "i", "", "Directory holding the index artifacts")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this rotating file as well")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// loadConfig resolves configuration from the config file and flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	if dir, _ := cmd.Flags().GetString("index-dir"); dir != "" {
		cfg.IndexDir = dir
	}
	if file, _ := cmd.Flags().GetString("log-file"); file != "" {
		cfg.LogFile = file
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from flags and config.
func newLogger(cmd *cobra.Command, cfg *config.Config) *zap.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return logger.New(logger.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Verbose: verbose,
	})
}

// openIndex opens the three artifacts, resolving the index directory with
// fallbacks.
func openIndex(cfg *config.Config) (*index.Index, error) {
	cfg.IndexDir = cfg.ResolveIndexDir()
	return index.Open(cfg.DocTablePath(), cfg.TermDictPath(), cfg.PostingsPath())
}
