// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the get-papers CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/get-papers/internal/classify"
	"github.com/pdiddy/get-papers/internal/entrez"
	"github.com/pdiddy/get-papers/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds settings loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// logger is replaced in PersistentPreRunE once --debug is known.
var logger = zap.NewNop()

// configFileUsed and configErr record the outcome of initConfig, which
// runs before the logger exists.
var (
	configFileUsed string
	configErr      error
)

// rootCmd searches PubMed and reports papers with industry-affiliated authors.
var rootCmd = &cobra.Command{
	Use:   "get-papers",
	Short: "Find PubMed papers with at least one non-academic author",
	Long: `get-papers searches PubMed for a query, fetches the matching records, and
keeps the papers where at least one author affiliation does not look
academic (no "university", "institute", "college", "school", "hospital",
"department", or "centre").

Results print to the console, or with --file are written as delimited rows
with a fixed header.`,
	Example: `  get-papers --query "cancer immunotherapy"
  get-papers -q "CRISPR delivery" --file results.csv --debug
  get-papers -q "mRNA vaccine" --format table --max-results 50`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return configErr
		}

		debug, _ := cmd.Flags().GetBool("debug")
		l, err := newLogger(debug)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logger = l.With(zap.String("run_id", uuid.NewString()))

		if configFileUsed != "" {
			logger.Debug("using config file", zap.String("path", configFileUsed))
		}

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Debug("loaded secrets", zap.Strings("keys", s.Names()))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runPapers,
}

// flagKeys maps root flags to the configuration keys they override.
var flagKeys = map[string]string{
	"max-results": "entrez.max_results",
	"email":       "entrez.email",
	"timeout":     "http.timeout",
	"format":      "report.format",
	"delimiter":   "report.delimiter",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./get-papers.yaml or ~/.config/get-papers/get-papers.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "print progress and diagnostic messages")

	rootCmd.Flags().StringP("query", "q", "", "PubMed search query (required)")
	rootCmd.Flags().StringP("file", "f", "", "write results as delimited rows to this file instead of the console")
	rootCmd.Flags().Int("max-results", entrez.DefaultMaxResults, "maximum number of PubMed identifiers to fetch")
	rootCmd.Flags().String("format", "text", "console format: text, table, json, or yaml")
	rootCmd.Flags().String("delimiter", "", `field delimiter for --file (default "," or tab for .tsv)`)
	rootCmd.Flags().String("email", "", "contact email sent to NCBI (default from config or .secrets/entrez-email)")
	rootCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default none)")
	rootCmd.Flags().String("records", "", "read records from a YAML or JSON file instead of PubMed")
	_ = rootCmd.MarkFlagRequired("query")
}

func initConfig() {
	configFileUsed, configErr = "", nil

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("get-papers")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "get-papers"))
		}
	}

	viper.SetEnvPrefix("GET_PAPERS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("entrez.tool", entrez.DefaultTool)
	viper.SetDefault("entrez.max_results", entrez.DefaultMaxResults)
	viper.SetDefault("entrez.base_url", "")
	viper.SetDefault("entrez.email", "")
	viper.SetDefault("http.user_agent", "get-papers/"+version)
	viper.SetDefault("classify.keywords", classify.Keywords)
	viper.SetDefault("report.format", "text")

	for name, key := range flagKeys {
		_ = viper.BindPFlag(key, rootCmd.Flags().Lookup(name))
	}

	if err := viper.ReadInConfig(); err == nil {
		configFileUsed = viper.ConfigFileUsed()
	} else if cfgFile != "" {
		configErr = fmt.Errorf("reading config file %s: %w", cfgFile, err)
	}
}

// newLogger builds the process logger. Debug mode writes human-readable
// debug output to stderr; otherwise only warnings and errors are logged.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
