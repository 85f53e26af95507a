// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for get-papers: the fetched
// PubMed Record, its flattened ReportRow, and the run configuration.
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"go.yaml.in/yaml/v3"
)

// Validation errors shared by every search and fetch source.
var (
	ErrEmptyQuery        = errors.New("query is empty")
	ErrInvalidMaxResults = errors.New("max results must be a positive integer")
	ErrNoIdentifiers     = errors.New("no identifiers to fetch")
)

// Record is one fetched PubMed entry.
type Record struct {
	// PMID is the PubMed identifier the record was fetched under.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title. Empty when the entry has none.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// PublicationDate is the free-form publication date (e.g. "2023 Jan 5").
	PublicationDate string `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`

	// Authors lists full author names in source order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Affiliations lists author affiliation strings in source order.
	Affiliations Affiliations `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`

	// ArticleIDs holds the article identifier field (DOI, PII, ...).
	// Entries containing "@" are reported as contact emails.
	ArticleIDs []string `json:"article_ids,omitempty" yaml:"article_ids,omitempty"`
}

// Affiliations is the canonical form of a record's affiliation field.
// Sources that carry either a single string or a list of strings decode
// into it, so nothing downstream has to branch on the shape.
type Affiliations []string

// NormalizeAffiliations converts an untyped affiliation value into
// Affiliations. A string becomes a one-element list; string slices are
// copied; non-string elements of a []any are skipped. Any other value,
// including nil, yields nil.
func NormalizeAffiliations(v any) Affiliations {
	switch t := v.(type) {
	case string:
		return Affiliations{t}
	case Affiliations:
		return slices.Clone(t)
	case []string:
		return Affiliations(slices.Clone(t))
	case []any:
		out := make(Affiliations, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// UnmarshalJSON accepts a string, a list of strings, or null.
func (a *Affiliations) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = NormalizeAffiliations(raw)
	return nil
}

// UnmarshalYAML accepts a scalar, a sequence of scalars, or null.
func (a *Affiliations) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			*a = nil
			return nil
		}
		*a = Affiliations{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("decoding affiliations: %w", err)
		}
		*a = list
		return nil
	default:
		return fmt.Errorf("line %d: affiliations must be a string or a list of strings", node.Line)
	}
}

// ReportRow is the flattened view of a Record that passed classification.
type ReportRow struct {
	PMID         string `json:"pmid" yaml:"pmid"`
	Title        string `json:"title" yaml:"title"`
	Date         string `json:"publication_date" yaml:"publication_date"`
	Authors      string `json:"authors" yaml:"authors"`
	Affiliations string `json:"affiliations" yaml:"affiliations"`
	Emails       string `json:"emails" yaml:"emails"`
}

// Fields returns the row's values in output column order.
func (r ReportRow) Fields() []string {
	return []string{r.PMID, r.Title, r.Date, r.Authors, r.Affiliations, r.Emails}
}
