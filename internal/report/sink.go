// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import "github.com/pdiddy/get-papers/pkg/types"

// Header names the output columns, in the order of ReportRow.Fields.
var Header = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// Sink receives report rows in order. Close releases the destination and
// must be called exactly once per sink; implementations tolerate repeats.
type Sink interface {
	Write(row types.ReportRow) error
	Close() error
}

// aborter is implemented by sinks that can release their destination
// without finishing the output.
type aborter interface {
	Abort() error
}

// Abort releases s after a failed run. Sinks that buffer output drop it
// instead of rendering a partial result; other sinks are closed. Abort
// after Close does nothing.
func Abort(s Sink) error {
	if a, ok := s.(aborter); ok {
		return a.Abort()
	}
	return s.Close()
}
