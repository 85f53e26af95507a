// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/get-papers/pkg/types"
)

// File writes rows as delimited text. The header is written when the file
// is created, so a run with no accepted records leaves a header-only file.
type File struct {
	path   string
	f      *os.File
	w      *csv.Writer
	closed bool
}

// CreateFile creates or truncates path and writes the header row. A zero
// delimiter selects DelimiterFor(path).
func CreateFile(path string, delimiter rune) (*File, error) {
	if delimiter == 0 {
		delimiter = DelimiterFor(path)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}

	w := csv.NewWriter(f)
	w.Comma = delimiter
	if err := w.Write(Header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header to %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header to %s: %w", path, err)
	}

	return &File{path: path, f: f, w: w}, nil
}

// Path returns the file's location.
func (s *File) Path() string { return s.path }

// Write appends row.
func (s *File) Write(row types.ReportRow) error {
	if s.closed {
		return fmt.Errorf("write to closed file %s", s.path)
	}
	if err := s.w.Write(row.Fields()); err != nil {
		return fmt.Errorf("writing row to %s: %w", s.path, err)
	}
	return nil
}

// Close flushes buffered rows and closes the file. Calls after the first
// return nil.
func (s *File) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	s.w.Flush()
	return errors.Join(s.w.Error(), s.f.Close())
}

// DelimiterFor returns tab for .tsv paths and comma otherwise.
func DelimiterFor(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

// ParseDelimiter converts a flag value into a delimiter rune. Empty returns
// 0; "tab" and `\t` name the tab character.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	if r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("delimiter %q is not allowed", s)
	}
	return r, nil
}
