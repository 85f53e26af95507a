// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/get-papers/internal/classify"
	"github.com/pdiddy/get-papers/internal/entrez"
	"github.com/pdiddy/get-papers/internal/pipeline"
	"github.com/pdiddy/get-papers/internal/recordfile"
	"github.com/pdiddy/get-papers/internal/report"
	"github.com/pdiddy/get-papers/internal/secrets"
	"github.com/pdiddy/get-papers/pkg/types"
)

// source searches and fetches records: the live PubMed client or a
// record file.
type source interface {
	pipeline.Searcher
	pipeline.Fetcher
}

func runPapers(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("--query: %w", types.ErrEmptyQuery)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Entrez.MaxResults <= 0 {
		return fmt.Errorf("--max-results: %w: got %d", types.ErrInvalidMaxResults, cfg.Entrez.MaxResults)
	}
	format, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}
	delimiter, err := report.ParseDelimiter(cfg.Report.Delimiter)
	if err != nil {
		return err
	}

	recordsPath, _ := cmd.Flags().GetString("records")
	src, err := newSource(recordsPath, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outPath, _ := cmd.Flags().GetString("file")
	sink, err := openSink(cmd.OutOrStdout(), outPath, format, delimiter)
	if err != nil {
		return err
	}
	// Abort after a successful Close is a no-op; on failure it releases the
	// file and drops buffered console output.
	defer report.Abort(sink)

	opts := pipeline.Options{Query: query, MaxResults: cfg.Entrez.MaxResults}
	classifier := classify.NewKeywordClassifier(cfg.Classify.Keywords)
	summary, err := pipeline.Run(ctx, opts, src, src, classifier, sink, logger)
	if err != nil {
		return err
	}

	if err := sink.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	logger.Debug("summary",
		zap.Int("searched", summary.Searched),
		zap.Int("fetched", summary.Fetched),
		zap.Int("accepted", summary.Accepted))

	if outPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Results saved to %s (%d papers)\n", outPath, summary.Accepted)
	}
	return nil
}

// loadConfig decodes viper settings and fills the contact email from
// .secrets/ when neither a flag nor the config sets it.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	cfg.Entrez.Email = loadedSecrets.Or(secrets.EntrezEmail, cfg.Entrez.Email)
	return cfg, nil
}

func newSource(recordsPath string, cfg types.Config) (source, error) {
	if recordsPath != "" {
		rs, err := recordfile.Open(recordsPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("replaying records", zap.String("path", recordsPath), zap.Int("records", rs.Len()))
		return rs, nil
	}

	if cfg.Entrez.Email == "" {
		logger.Warn("no contact email configured; NCBI asks clients to identify themselves (set --email or entrez.email)")
	}
	client := &http.Client{Timeout: cfg.HTTP.Timeout}
	return entrez.NewClient(client, cfg.Entrez, cfg.HTTP, logger), nil
}

// openSink acquires the output destination for the run.
func openSink(stdout io.Writer, path string, format report.Format, delimiter rune) (report.Sink, error) {
	if path == "" {
		return report.NewConsole(stdout, format), nil
	}
	f, err := report.CreateFile(path, delimiter)
	if err != nil {
		return nil, err
	}
	logger.Debug("writing results", zap.String("path", path))
	return f, nil
}
