package xweb

import (
	"fmt"
	"io"
	"sync"

	stealth "github.com/anatolykoptev/go-stealth"
	"golang.org/x/time/rate"
)

// Client is the top-level API client. It owns one request identity: either
// a session token with a derived csrf cookie, or an anonymous guest token.
// All credential state is guarded by mu so a single instance can be shared
// across goroutines.
type Client struct {
	client  *stealth.BrowserClient
	cfg     ClientConfig
	limiter *rate.Limiter

	mu         sync.Mutex
	guestToken string
	csrfToken  string
	derived    bool
}

// NewClient creates a fully-wired client.
func NewClient(cfg ClientConfig) (*Client, error) {
	cfg.defaults()

	opts := []stealth.ClientOption{
		stealth.WithHeaderOrder(apiHeaderOrder),
	}
	if cfg.Proxy != "" {
		opts = append(opts, stealth.WithProxy(cfg.Proxy))
	}
	bc, err := stealth.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("stealth client: %w", err)
	}

	c := &Client{
		client: bc,
		cfg:    cfg,
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	}
	return c, nil
}

// do executes a bare HTTP request through the stealth transport.
func (c *Client) do(method, url string, headers map[string]string, body io.Reader) ([]byte, map[string]string, int, error) {
	return c.client.DoWithHeaderOrder(method, url, headers, body, apiHeaderOrder)
}
