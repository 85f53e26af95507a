// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/get-papers/internal/classify"
	"github.com/pdiddy/get-papers/internal/report"
	"github.com/pdiddy/get-papers/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// --- fakes ---

type fakeSource struct {
	ids         []string
	records     []types.Record
	searchErr   error
	fetchErr    error
	searchCalls int
	fetchCalls  int
	gotMax      int
	gotIDs      []string
}

func (f *fakeSource) Search(_ context.Context, _ string, maxResults int) ([]string, error) {
	f.searchCalls++
	f.gotMax = maxResults
	return f.ids, f.searchErr
}

func (f *fakeSource) Fetch(_ context.Context, ids []string) ([]types.Record, error) {
	f.fetchCalls++
	f.gotIDs = ids
	return f.records, f.fetchErr
}

type memorySink struct {
	rows     []types.ReportRow
	writeErr error
}

func (s *memorySink) Write(row types.ReportRow) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.rows = append(s.rows, row)
	return nil
}

func (s *memorySink) Close() error { return nil }

func academic(pmid string) types.Record {
	return types.Record{PMID: pmid, Affiliations: types.Affiliations{"Department of Biology, State University"}}
}

func industry(pmid string) types.Record {
	return types.Record{PMID: pmid, Affiliations: types.Affiliations{"Acme Biotech Inc."}}
}

func opts() Options { return Options{Query: "cancer immunotherapy", MaxResults: 5} }

// --- Run ---

func TestRunKeepsNonAcademicInOrder(t *testing.T) {
	src := &fakeSource{
		ids:     []string{"1", "2", "3", "4"},
		records: []types.Record{industry("1"), academic("2"), {PMID: "3"}, industry("4")},
	}
	sink := &memorySink{}

	summary, err := Run(context.Background(), opts(), src, src, classify.Default, sink, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, Summary{Searched: 4, Fetched: 4, Accepted: 2, Rejected: 2}, summary)
	require.Len(t, sink.rows, 2)
	assert.Equal(t, "1", sink.rows[0].PMID)
	assert.Equal(t, "4", sink.rows[1].PMID)
	assert.Equal(t, 5, src.gotMax)
	assert.Equal(t, []string{"1", "2", "3", "4"}, src.gotIDs)
}

func TestRunNoSearchResultsSkipsFetch(t *testing.T) {
	src := &fakeSource{}
	sink := &memorySink{}

	summary, err := Run(context.Background(), opts(), src, src, classify.Default, sink, nil)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
	assert.Equal(t, 1, src.searchCalls)
	assert.Zero(t, src.fetchCalls)
	assert.Empty(t, sink.rows)
}

func TestRunAllAcademicProducesNoRows(t *testing.T) {
	src := &fakeSource{
		ids:     []string{"1", "2", "3", "4", "5"},
		records: []types.Record{academic("1"), academic("2"), academic("3"), academic("4"), academic("5")},
	}
	sink := &memorySink{}

	summary, err := Run(context.Background(), opts(), src, src, classify.Default, sink, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Rejected)
	assert.Empty(t, sink.rows)
}

func TestRunValidation(t *testing.T) {
	src := &fakeSource{}
	_, err := Run(context.Background(), Options{Query: "  ", MaxResults: 5}, src, src, classify.Default, &memorySink{}, nil)
	assert.ErrorIs(t, err, types.ErrEmptyQuery)

	_, err = Run(context.Background(), Options{Query: "q"}, src, src, classify.Default, &memorySink{}, nil)
	assert.ErrorIs(t, err, types.ErrInvalidMaxResults)

	assert.Zero(t, src.searchCalls, "validation must happen before searching")
}

func TestRunPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	t.Run("search", func(t *testing.T) {
		src := &fakeSource{searchErr: boom}
		_, err := Run(context.Background(), opts(), src, src, classify.Default, &memorySink{}, nil)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "searching")
		assert.Zero(t, src.fetchCalls)
	})

	t.Run("fetch", func(t *testing.T) {
		src := &fakeSource{ids: []string{"1"}, fetchErr: boom}
		summary, err := Run(context.Background(), opts(), src, src, classify.Default, &memorySink{}, nil)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "fetching metadata")
		assert.Equal(t, 1, summary.Searched)
	})

	t.Run("sink", func(t *testing.T) {
		src := &fakeSource{ids: []string{"1"}, records: []types.Record{industry("1")}}
		_, err := Run(context.Background(), opts(), src, src, classify.Default, &memorySink{writeErr: boom}, nil)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "writing paper 1")
	})
}

func TestRunCancelledBetweenRecords(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &fakeSource{ids: []string{"1"}, records: []types.Record{industry("1")}}
	cancel()

	_, err := Run(ctx, opts(), src, src, classify.Default, &memorySink{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunDebugLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	src := &fakeSource{ids: []string{"7"}, records: []types.Record{industry("7")}}

	_, err := Run(context.Background(), opts(), src, src, classify.Default, &memorySink{}, zap.New(core))
	require.NoError(t, err)

	searching := logs.FilterMessage("searching PubMed").All()
	require.Len(t, searching, 1)
	assert.Equal(t, "cancer immunotherapy", searching[0].ContextMap()["query"])

	found := logs.FilterMessage("found identifiers").All()
	require.Len(t, found, 1)
	assert.EqualValues(t, 1, found[0].ContextMap()["count"])

	assert.Equal(t, 1, logs.FilterMessage("processed paper").FilterField(zap.String("pmid", "7")).Len())
}

func TestRunFileSinkClosedAfterFetchFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	src := &fakeSource{ids: []string{"1"}, fetchErr: errors.New("connection reset")}

	run := func() (err error) {
		sink, err := report.CreateFile(path, 0)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := sink.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		_, err = Run(context.Background(), opts(), src, src, classify.Default, sink, nil)
		return err
	}

	require.Error(t, run())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "PubmedID,Title,Publication Date,Non-academic Author(s),Company Affiliation(s),Corresponding Author Email\n", string(data))
}

func TestRunNoSearchResultsWritesHeaderOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	src := &fakeSource{}

	sink, err := report.CreateFile(path, 0)
	require.NoError(t, err)
	summary, err := Run(context.Background(), opts(), src, src, classify.Default, sink, nil)
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	assert.Equal(t, Summary{}, summary)
	assert.Zero(t, src.fetchCalls)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "PubmedID,Title,Publication Date,Non-academic Author(s),Company Affiliation(s),Corresponding Author Email\n", string(data))
}

func TestRunEmailColumn(t *testing.T) {
	rec := industry("9")
	rec.ArticleIDs = []string{"10.1000/xyz", "jdoe@acme.com"}
	src := &fakeSource{ids: []string{"9"}, records: []types.Record{rec}}
	sink := &memorySink{}

	_, err := Run(context.Background(), opts(), src, src, classify.Default, sink, nil)
	require.NoError(t, err)
	require.Len(t, sink.rows, 1)
	assert.Equal(t, "jdoe@acme.com", sink.rows[0].Emails)
}
