// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package entrez queries PubMed through the NCBI E-utilities: ESearch
// turns a query into PubMed identifiers and EFetch returns MEDLINE
// records for them. Each call is a single request with no retries.
package entrez

import (
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/get-papers/pkg/types"
)

// eutilsBase is the E-utilities root. Declared as a var so tests can
// substitute an httptest server.
var eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const (
	// DefaultTool is the tool name sent to NCBI when none is configured.
	DefaultTool = "get-papers"

	// DefaultMaxResults caps a search when no limit is configured.
	DefaultMaxResults = 20

	database = "pubmed"
)

// Client talks to the E-utilities. The zero value is usable; it sends
// requests through http.DefaultClient to the public NCBI endpoint.
type Client struct {
	HTTP *http.Client

	// BaseURL overrides the E-utilities root.
	BaseURL string

	// Tool and Email identify the caller to NCBI, as its usage policy requires.
	Tool  string
	Email string

	UserAgent string
	Logger    *zap.Logger
}

// NewClient builds a Client from configuration.
func NewClient(httpClient *http.Client, cfg types.EntrezConfig, httpCfg types.HTTPConfig, logger *zap.Logger) *Client {
	return &Client{
		HTTP:      httpClient,
		BaseURL:   cfg.BaseURL,
		Tool:      cfg.Tool,
		Email:     cfg.Email,
		UserAgent: httpCfg.UserAgent,
		Logger:    logger,
	}
}

func (c *Client) endpoint(name string) string {
	base := c.BaseURL
	if base == "" {
		base = eutilsBase
	}
	return strings.TrimRight(base, "/") + "/" + name
}

// params returns the parameters every E-utilities call carries.
func (c *Client) params() url.Values {
	tool := c.Tool
	if tool == "" {
		tool = DefaultTool
	}
	v := url.Values{
		"db":   {database},
		"tool": {tool},
	}
	if c.Email != "" {
		v.Set("email", c.Email)
	}
	return v
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
