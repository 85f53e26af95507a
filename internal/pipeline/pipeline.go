// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one get-papers pass: search PubMed, fetch the
// matching records, keep those with a non-academic affiliation, and hand
// each kept record to a report sink. Every step runs once, in order, on
// the calling goroutine.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/get-papers/internal/classify"
	"github.com/pdiddy/get-papers/internal/report"
	"github.com/pdiddy/get-papers/pkg/types"
)

// Searcher turns a query into record identifiers.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]string, error)
}

// Fetcher resolves identifiers into records.
type Fetcher interface {
	Fetch(ctx context.Context, ids []string) ([]types.Record, error)
}

// Options holds the per-run parameters.
type Options struct {
	Query      string
	MaxResults int
}

// Summary counts what a run did.
type Summary struct {
	Searched int // identifiers returned by the search
	Fetched  int // records returned by the fetch
	Accepted int // records written to the sink
	Rejected int // records the classifier turned down
}

// Run executes the pipeline and writes accepted records to sink in fetch
// order. It does not close sink; the caller owns it and closes it on every
// path. Search and fetch errors end the run immediately.
func Run(ctx context.Context, opts Options, searcher Searcher, fetcher Fetcher, classifier classify.Classifier, sink report.Sink, logger *zap.Logger) (Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(opts.Query) == "" {
		return Summary{}, types.ErrEmptyQuery
	}
	if opts.MaxResults <= 0 {
		return Summary{}, fmt.Errorf("%w: got %d", types.ErrInvalidMaxResults, opts.MaxResults)
	}

	var summary Summary

	logger.Debug("searching PubMed", zap.String("query", opts.Query), zap.Int("max_results", opts.MaxResults))
	ids, err := searcher.Search(ctx, opts.Query, opts.MaxResults)
	if err != nil {
		return summary, fmt.Errorf("searching: %w", err)
	}
	summary.Searched = len(ids)
	logger.Debug("found identifiers", zap.Int("count", len(ids)), zap.Strings("ids", ids))

	if len(ids) == 0 {
		return summary, nil
	}

	records, err := fetcher.Fetch(ctx, ids)
	if err != nil {
		return summary, fmt.Errorf("fetching metadata: %w", err)
	}
	summary.Fetched = len(records)
	logger.Debug("fetched records", zap.Int("count", len(records)))

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if !classifier.Classify(rec.Affiliations) {
			summary.Rejected++
			logger.Debug("skipped academic-only paper", zap.String("pmid", rec.PMID))
			continue
		}

		if err := sink.Write(report.BuildRow(rec)); err != nil {
			return summary, fmt.Errorf("writing paper %s: %w", rec.PMID, err)
		}
		summary.Accepted++
		logger.Debug("processed paper", zap.String("pmid", rec.PMID))
	}

	logger.Debug("run complete",
		zap.Int("searched", summary.Searched),
		zap.Int("fetched", summary.Fetched),
		zap.Int("accepted", summary.Accepted),
		zap.Int("rejected", summary.Rejected))
	return summary, nil
}
