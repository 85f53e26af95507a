// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/get-papers/pkg/types"
)

// Format selects how the console sink renders rows.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat maps a format name to a Format. Empty selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (want text, table, json, or yaml)", ErrUnknownFormat, s)
	}
}

// Console writes rows to w. Text rows are written as they arrive; the
// other formats need every row and are rendered by Close.
type Console struct {
	w      io.Writer
	format Format
	rows   []types.ReportRow
	closed bool
}

// NewConsole returns a console sink for format.
func NewConsole(w io.Writer, format Format) *Console {
	if format == "" {
		format = FormatText
	}
	return &Console{w: w, format: format, rows: []types.ReportRow{}}
}

// Write emits or buffers row.
func (c *Console) Write(row types.ReportRow) error {
	if c.closed {
		return errors.New("write to closed console sink")
	}
	if c.format != FormatText {
		c.rows = append(c.rows, row)
		return nil
	}
	_, err := fmt.Fprintf(c.w, "\n--- Paper ---\nPMID: %s\nTitle: %s\nDate: %s\nAuthors: %s\nAffiliations: %s\nEmails: %s\n",
		row.PMID, row.Title, row.Date, row.Authors, row.Affiliations, row.Emails)
	return err
}

// Close renders buffered rows. Calls after the first return nil.
func (c *Console) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	switch c.format {
	case FormatTable:
		return formatTable(c.rows, c.w)
	case FormatJSON:
		enc := json.NewEncoder(c.w)
		enc.SetIndent("", "  ")
		return enc.Encode(c.rows)
	case FormatYAML:
		enc := yaml.NewEncoder(c.w)
		enc.SetIndent(2)
		if err := enc.Encode(c.rows); err != nil {
			return err
		}
		return enc.Close()
	default:
		return nil
	}
}

// Abort drops buffered rows and marks the sink closed without rendering.
// Text rows already written stay on the writer.
func (c *Console) Abort() error {
	c.closed = true
	c.rows = nil
	return nil
}

// Table column widths, in terminal cells.
const (
	pmidWidth    = 10
	titleWidth   = 50
	dateWidth    = 12
	authorsWidth = 24
)

// formatTable writes rows as an aligned table. Widths are measured in
// terminal cells so titles with wide characters stay aligned.
func formatTable(rows []types.ReportRow, w io.Writer) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No matching papers found.")
		return err
	}

	fmt.Fprintf(w, "%s  %s  %s  %s  %s\n",
		cell("PMID", pmidWidth), cell("Title", titleWidth), cell("Date", dateWidth),
		cell("Authors", authorsWidth), "Emails")
	fmt.Fprintln(w, strings.Repeat("-", pmidWidth+titleWidth+dateWidth+authorsWidth+8+20))

	for _, r := range rows {
		fmt.Fprintf(w, "%s  %s  %s  %s  %s\n",
			cell(r.PMID, pmidWidth), cell(r.Title, titleWidth), cell(r.Date, dateWidth),
			cell(r.Authors, authorsWidth), r.Emails)
	}

	_, err := fmt.Fprintf(w, "\n%d papers\n", len(rows))
	return err
}

func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "..."), width)
}
