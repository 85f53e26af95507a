// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides whether a record has a non-academic author.
//
// The only implementation is a keyword heuristic: an affiliation counts as
// academic when it mentions one of a few institutional words. It misreads
// companies such as "Centre for X Biotech" and academic sites without those
// words, so callers depend on the Classifier interface rather than on it.
package classify

import (
	"slices"
	"strings"

	"github.com/pdiddy/get-papers/pkg/types"
)

// Classifier reports whether a record's affiliations include at least one
// non-academic organization.
type Classifier interface {
	Classify(affiliations []string) bool
}

// Keywords is the default set of academic markers.
var Keywords = []string{"university", "institute", "college", "school", "hospital", "department", "centre"}

// KeywordClassifier treats an affiliation as academic when it contains any
// keyword as a case-insensitive substring.
type KeywordClassifier struct {
	keywords []string
}

// NewKeywordClassifier returns a classifier for keywords. Blank entries are
// dropped; an empty list selects Keywords.
func NewKeywordClassifier(keywords []string) *KeywordClassifier {
	var kw []string
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			kw = append(kw, k)
		}
	}
	if len(kw) == 0 {
		kw = slices.Clone(Keywords)
	}
	return &KeywordClassifier{keywords: kw}
}

// Default is the classifier over Keywords.
var Default = NewKeywordClassifier(nil)

// Classify returns true if at least one affiliation contains none of the
// keywords. An empty list is never non-academic.
func (c *KeywordClassifier) Classify(affiliations []string) bool {
	for _, a := range affiliations {
		if !c.isAcademic(a) {
			return true
		}
	}
	return false
}

func (c *KeywordClassifier) isAcademic(affiliation string) bool {
	lower := strings.ToLower(affiliation)
	for _, k := range c.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// IsNonAcademic classifies an untyped affiliation value with Default.
// A string is treated as a one-element list; nil and values that are
// neither strings nor lists of strings are never non-academic.
func IsNonAcademic(v any) bool {
	return Default.Classify(types.NormalizeAffiliations(v))
}
