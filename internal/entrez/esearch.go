// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/get-papers/internal/httputil"
	"github.com/pdiddy/get-papers/pkg/types"
)

// Search runs query against PubMed and returns up to maxResults PubMed
// identifiers in the order ESearch ranks them. An empty list means no
// article matched.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, types.ErrEmptyQuery
	}
	if maxResults <= 0 {
		return nil, fmt.Errorf("%w: got %d", types.ErrInvalidMaxResults, maxResults)
	}

	params := c.params()
	params.Set("term", query)
	params.Set("retmax", strconv.Itoa(maxResults))
	params.Set("retmode", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("esearch.fcgi")+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.logger().Debug("esearch request", zap.String("term", query), zap.Int("retmax", maxResults))

	resp, err := httputil.Do(c.HTTP, req, c.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("ESearch request: %w", err)
	}
	defer resp.Body.Close()

	var sr esearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing ESearch response: %w", err)
	}
	if sr.Result == nil {
		return nil, errors.New("parsing ESearch response: missing esearchresult")
	}
	if sr.Result.Error != "" {
		return nil, fmt.Errorf("ESearch: %s", sr.Result.Error)
	}

	ids := sr.Result.IDList
	if len(ids) > maxResults {
		ids = ids[:maxResults]
	}
	c.logger().Debug("esearch response", zap.String("count", sr.Result.Count), zap.Int("returned", len(ids)))
	return ids, nil
}

// ESearch JSON structures. Counts arrive as strings.
type esearchResponse struct {
	Result *esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count            string   `json:"count"`
	RetMax           string   `json:"retmax"`
	IDList           []string `json:"idlist"`
	QueryTranslation string   `json:"querytranslation"`
	Error            string   `json:"ERROR"`
}
