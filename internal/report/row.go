// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report turns accepted records into report rows and writes them
// to the console or to a delimited file.
package report

import (
	"regexp"
	"strings"

	"github.com/pdiddy/get-papers/pkg/types"
)

// NotAvailable fills report fields that have no value.
const NotAvailable = "N/A"

const listSep = ", "

// emailPattern finds addresses embedded in affiliation text, where PubMed
// records them as "Electronic address: name@host".
var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}`)

// BuildRow flattens rec into a ReportRow.
func BuildRow(rec types.Record) types.ReportRow {
	return types.ReportRow{
		PMID:         orNA(rec.PMID),
		Title:        orNA(rec.Title),
		Date:         orNA(rec.PublicationDate),
		Authors:      strings.Join(rec.Authors, listSep),
		Affiliations: strings.Join(rec.Affiliations, listSep),
		Emails:       orNA(strings.Join(Emails(rec), listSep)),
	}
}

// Emails returns the candidate contact addresses for rec: article
// identifiers containing "@", then addresses found in affiliation text.
// Duplicates are removed, keeping first-seen order.
func Emails(rec types.Record) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, s)
	}

	for _, id := range rec.ArticleIDs {
		if strings.Contains(id, "@") {
			add(strings.TrimSpace(id))
		}
	}
	for _, a := range rec.Affiliations {
		for _, m := range emailPattern.FindAllString(a, -1) {
			add(m)
		}
	}
	return out
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}
