package types

import "time"

// HTTPConfig holds shared HTTP settings for requests to the E-utilities.
type HTTPConfig struct {
	// Timeout is the HTTP client timeout. Zero means no timeout; the run
	// then waits on the remote service until it answers or the process
	// is interrupted.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with every request
	// (e.g. "get-papers/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// EntrezConfig holds settings for the PubMed search and fetch calls.
type EntrezConfig struct {
	// BaseURL is the E-utilities root, without a trailing slash.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Email is the contact address NCBI asks every client to send.
	Email string `json:"email" yaml:"email" mapstructure:"email"`

	// Tool names this program to NCBI.
	Tool string `json:"tool" yaml:"tool" mapstructure:"tool"`

	// MaxResults caps the number of identifiers a search returns (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// ClassifyConfig holds settings for the affiliation classifier.
type ClassifyConfig struct {
	// Keywords marks an affiliation as academic when any of them occurs
	// in it. Empty selects the built-in set.
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`
}

// ReportConfig holds settings for the reporter.
type ReportConfig struct {
	// Format selects the console format: text, table, json, or yaml.
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// Delimiter is the field separator for file output. Empty selects
	// a comma, or a tab for .tsv paths.
	Delimiter string `json:"delimiter" yaml:"delimiter" mapstructure:"delimiter"`
}

// Config groups all settings for a run.
type Config struct {
	HTTP     HTTPConfig     `json:"http" yaml:"http" mapstructure:"http"`
	Entrez   EntrezConfig   `json:"entrez" yaml:"entrez" mapstructure:"entrez"`
	Classify ClassifyConfig `json:"classify" yaml:"classify" mapstructure:"classify"`
	Report   ReportConfig   `json:"report" yaml:"report" mapstructure:"report"`
}
