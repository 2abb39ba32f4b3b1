// Package seed loads the read-only seed document holding the baseline
// events, categories and users.
package seed

import (
	"net/http"
	"time"

	"github.com/ehsandc/Event-App-on-render/internal/domain/model"
)

// Document is the decoded seed payload.
type Document = model.SeedData

// Option applies a configuration option to the Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithTimeout sets the request timeout used when no client is supplied.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}
