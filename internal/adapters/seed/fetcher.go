// Package seed loads the read-only seed document holding the baseline
// events, categories and users.
//
// The source is either an HTTP(S) URL fetched once per session (plus
// explicit refreshes) or a local file path, which keeps development
// runs self-contained.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// Default fetch configuration constants.
const (
	defaultTimeout = 15 * time.Second
)

// Fetcher retrieves and decodes the seed document.
type Fetcher struct {
	source  string
	client  *http.Client
	timeout time.Duration
}

// NewFetcher creates a Fetcher for the given source with configuration options.
func NewFetcher(source string, opts ...Option) *Fetcher {
	f := &Fetcher{
		source:  source,
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{Timeout: f.timeout}
	}
	return f
}

// Source returns the configured seed location.
func (f *Fetcher) Source() string {
	return f.source
}

// Fetch retrieves the seed document. Transport failures, non-2xx
// responses and undecodable payloads all wrap ErrFetchFailure so the
// caller can treat them as one retryable condition.
func (f *Fetcher) Fetch(ctx context.Context) (Document, error) {
	if strings.HasPrefix(f.source, "http://") || strings.HasPrefix(f.source, "https://") {
		return f.fetchHTTP(ctx)
	}
	return f.fetchFile()
}

func (f *Fetcher) fetchHTTP(ctx context.Context) (Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.source, nil)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Document{}, fmt.Errorf("%w: unexpected status %d from %s", ErrFetchFailure, resp.StatusCode, f.source)
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: decode: %v", ErrFetchFailure, err)
	}
	return doc, nil
}

func (f *Fetcher) fetchFile() (Document, error) {
	data, err := os.ReadFile(f.source)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: decode: %v", ErrFetchFailure, err)
	}
	return doc, nil
}
