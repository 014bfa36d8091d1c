package xweb

import "time"

// ClientConfig holds all configuration for the API client.
type ClientConfig struct {
	// AuthToken is the session cookie value for authenticated requests.
	// When empty the client operates in anonymous guest-token mode.
	AuthToken string

	// Proxy is an optional HTTP/HTTPS proxy URL applied to every
	// outbound call.
	Proxy string

	// BaseURL is the GraphQL API base. Overridable for tests.
	BaseURL string

	// APIBase is the REST API base used for guest token activation.
	APIBase string

	// WebBase is the web front-end base used for csrf token derivation.
	WebBase string

	// RateLimitWait is how long to wait before retrying a 429 response.
	RateLimitWait time.Duration

	// MaxRateLimitRetries caps 429 retries per request. Once exhausted
	// the request fails with ErrRateLimited.
	MaxRateLimitRetries int

	// RequestsPerSecond throttles outbound calls client-side when > 0.
	RequestsPerSecond float64

	// Burst is the throttle burst size. Defaults to 1 when throttling
	// is enabled.
	Burst int

	// UserAgent overrides the default browser User-Agent.
	UserAgent string
}

// defaults fills in zero-value config fields with sensible defaults.
func (cfg *ClientConfig) defaults() {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://x.com/i/api"
	}
	if cfg.APIBase == "" {
		cfg.APIBase = "https://api.twitter.com"
	}
	if cfg.WebBase == "" {
		cfg.WebBase = "https://x.com"
	}
	if cfg.RateLimitWait == 0 {
		cfg.RateLimitWait = 60 * time.Second
	}
	if cfg.MaxRateLimitRetries == 0 {
		cfg.MaxRateLimitRetries = 3
	}
	if cfg.RequestsPerSecond > 0 && cfg.Burst == 0 {
		cfg.Burst = 1
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
}
