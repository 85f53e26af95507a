// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the E-utilities calls.
package httputil

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of a failed response body is kept for
// the error message.
const maxErrorBody = 512

// StatusError reports a response whose status was not 200 OK.
type StatusError struct {
	StatusCode int
	// Body holds the start of the response body, trimmed.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Do sends req with the given User-Agent and returns the response when
// the status is 200 OK. The caller closes the body. Any other status is
// returned as a *StatusError after the body has been drained and closed.
// Do never retries.
func Do(client *http.Client, req *http.Request, userAgent string) (*http.Response, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusOK {
		return resp, nil
	}

	defer resp.Body.Close()
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	io.Copy(io.Discard, resp.Body)
	return nil, &StatusError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(snippet)),
	}
}
