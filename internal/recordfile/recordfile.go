// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recordfile reads PubMed records from a YAML or JSON file and
// serves them through the same search and fetch calls as the live client,
// so a run can be replayed without network access.
package recordfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/get-papers/pkg/types"
)

// File is the on-disk layout. Affiliations may be written as a single
// string or as a list.
type File struct {
	Query   string         `json:"query,omitempty" yaml:"query,omitempty"`
	Records []types.Record `json:"records" yaml:"records"`
}

// Read loads a record file. Paths ending in .json are decoded as JSON,
// everything else as YAML.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record file: %w", err)
	}

	var rf File
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &rf)
	} else {
		err = yaml.Unmarshal(data, &rf)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing record file %s: %w", path, err)
	}
	return &rf, nil
}

// Source serves the records of a File. Search ignores the query text and
// returns the file's identifiers; Fetch returns the requested records in
// request order and skips identifiers the file does not hold, as PubMed
// does for unknown ones.
type Source struct {
	records []types.Record
	byPMID  map[string]int
}

// NewSource builds a Source from rf. Records without a PMID are dropped;
// a repeated PMID keeps its first record.
func NewSource(rf *File) *Source {
	s := &Source{byPMID: make(map[string]int)}
	for _, r := range rf.Records {
		if r.PMID == "" {
			continue
		}
		if _, dup := s.byPMID[r.PMID]; dup {
			continue
		}
		s.byPMID[r.PMID] = len(s.records)
		s.records = append(s.records, r)
	}
	return s
}

// Open reads path and returns a Source over it.
func Open(path string) (*Source, error) {
	rf, err := Read(path)
	if err != nil {
		return nil, err
	}
	return NewSource(rf), nil
}

// Len returns the number of records served.
func (s *Source) Len() int { return len(s.records) }

// Search returns up to maxResults identifiers in file order.
func (s *Source) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, types.ErrEmptyQuery
	}
	if maxResults <= 0 {
		return nil, fmt.Errorf("%w: got %d", types.ErrInvalidMaxResults, maxResults)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := min(maxResults, len(s.records))
	ids := make([]string, n)
	for i := range n {
		ids[i] = s.records[i].PMID
	}
	return ids, nil
}

// Fetch returns the records for ids.
func (s *Source) Fetch(ctx context.Context, ids []string) ([]types.Record, error) {
	if len(ids) == 0 {
		return nil, types.ErrNoIdentifiers
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []types.Record
	for _, id := range ids {
		if i, ok := s.byPMID[id]; ok {
			out = append(out, s.records[i])
		}
	}
	return out, nil
}
