package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Papers builds the CLI and runs a PubMed search for query, printing the
// matching papers. Set GET_PAPERS_ENTREZ_EMAIL to identify yourself to NCBI.
func Papers(query string) error {
	mg.Deps(Build)
	fmt.Printf("[papers] Searching PubMed for %q\n", query)
	return sh.RunV(binPath, "--query", query, "--debug")
}

// PapersCSV builds the CLI and writes the results for query to out.
func PapersCSV(query, out string) error {
	mg.Deps(Build)
	if err := sh.RunV(binPath, "--query", query, "--file", out); err != nil {
		return fmt.Errorf("[papers] %w", err)
	}
	return nil
}
