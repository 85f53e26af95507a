// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/get-papers/pkg/types"
)

// maxMedlineLine bounds a single MEDLINE line. NCBI wraps lines near 88
// columns, so this only guards against a corrupt stream.
const maxMedlineLine = 1 << 20

// MEDLINE tags read into a Record.
const (
	tagPMID        = "PMID"
	tagTitle       = "TI"
	tagDate        = "DP"
	tagFullAuthor  = "FAU"
	tagAuthor      = "AU"
	tagAffiliation = "AD"
	tagArticleID   = "AID"
)

type medlineField struct {
	tag   string
	value string
}

// ParseMedline reads a MEDLINE text stream and returns its records in
// stream order. Records are separated by blank lines. A field line is a
// tag padded to four columns, a dash, and the value; lines that start
// with six spaces continue the previous field. Unknown tags are ignored.
// A record without a PMID is kept with an empty PMID.
func ParseMedline(r io.Reader) ([]types.Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxMedlineLine)

	var (
		records []types.Record
		fields  []medlineField
	)
	flush := func() {
		if len(fields) == 0 {
			return
		}
		records = append(records, buildRecord(fields))
		fields = fields[:0]
	}

	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		switch {
		case strings.TrimSpace(line) == "":
			flush()
		case strings.HasPrefix(line, "      "):
			if n := len(fields); n > 0 {
				fields[n-1].value += " " + strings.TrimSpace(line)
			}
		case len(line) >= 5 && line[4] == '-' && line[0] != ' ':
			fields = append(fields, medlineField{
				tag:   strings.TrimSpace(line[:4]),
				value: strings.TrimSpace(line[5:]),
			})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading MEDLINE: %w", err)
	}
	flush()

	return records, nil
}

// buildRecord maps one record's fields onto a Record. Full author names
// are preferred; the short AU form is used only when FAU is absent.
func buildRecord(fields []medlineField) types.Record {
	var (
		rec   types.Record
		short []string
	)
	for _, f := range fields {
		switch f.tag {
		case tagPMID:
			rec.PMID = f.value
		case tagTitle:
			rec.Title = f.value
		case tagDate:
			rec.PublicationDate = f.value
		case tagFullAuthor:
			rec.Authors = append(rec.Authors, f.value)
		case tagAuthor:
			short = append(short, f.value)
		case tagAffiliation:
			rec.Affiliations = append(rec.Affiliations, f.value)
		case tagArticleID:
			rec.ArticleIDs = append(rec.ArticleIDs, f.value)
		}
	}
	if len(rec.Authors) == 0 {
		rec.Authors = short
	}
	return rec
}
