// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/get-papers/internal/httputil"
	"github.com/pdiddy/get-papers/pkg/types"
)

// Fetch retrieves the MEDLINE record for each identifier in one EFetch
// call. PubMed silently drops identifiers it cannot resolve, so the
// result may be shorter than ids.
func (c *Client) Fetch(ctx context.Context, ids []string) ([]types.Record, error) {
	if len(ids) == 0 {
		return nil, types.ErrNoIdentifiers
	}

	params := c.params()
	params.Set("id", strings.Join(ids, ","))
	params.Set("rettype", "medline")
	params.Set("retmode", "text")

	// POST keeps long identifier lists out of the URL.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("efetch.fcgi"), strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger().Debug("efetch request", zap.Int("ids", len(ids)))

	resp, err := httputil.Do(c.HTTP, req, c.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("EFetch request: %w", err)
	}
	defer resp.Body.Close()

	records, err := ParseMedline(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing EFetch response: %w", err)
	}
	c.logger().Debug("efetch response", zap.Int("records", len(records)))
	return records, nil
}
