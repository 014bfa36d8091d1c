package xweb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newTestClient wires a client against a stub server, shortening the 429
// wait so retry tests run fast.
func newTestClient(t *testing.T, handler http.Handler, cfg ClientConfig) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg.BaseURL = srv.URL
	cfg.APIBase = srv.URL
	cfg.WebBase = srv.URL
	if cfg.RateLimitWait == 0 {
		cfg.RateLimitWait = 10 * time.Millisecond
	}

	c, err := NewClient(cfg)
	require.NoError(t, err)
	return c, srv
}

// stubHandler routes guest activation and the landing page, delegating
// GraphQL calls to the test case.
func stubHandler(graphql http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/1.1/guest/activate.json":
			fmt.Fprint(w, `{"guest_token":"gt-123"}`)
		case strings.HasPrefix(r.URL.Path, "/graphql/"):
			graphql(w, r)
		default:
			fmt.Fprint(w, "<html></html>")
		}
	}
}

func TestExecuteGuestMode(t *testing.T) {
	var guestHeader atomic.Value
	c, _ := newTestClient(t, stubHandler(func(w http.ResponseWriter, r *http.Request) {
		guestHeader.Store(r.Header.Get("x-guest-token"))
		fmt.Fprint(w, `{"data":{}}`)
	}), ClientConfig{})

	url := Endpoints["UserTweets"].URL(c.cfg.BaseURL)
	res, err := c.execute(context.Background(), "UserTweets", url, true)
	require.NoError(t, err)
	require.True(t, res.Exists())
	require.Equal(t, "gt-123", guestHeader.Load())
}

func TestExecuteAuthRequired(t *testing.T) {
	c, _ := newTestClient(t, stubHandler(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}), ClientConfig{})

	_, err := c.execute(context.Background(), "HomeTimeline", c.cfg.BaseURL+"/graphql/x/HomeTimeline", false)
	require.ErrorIs(t, err, ErrAuthRequired)
}

func TestExecuteRateLimitBounded(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, stubHandler(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}), ClientConfig{MaxRateLimitRetries: 2})

	url := Endpoints["UserTweets"].URL(c.cfg.BaseURL)
	_, err := c.execute(context.Background(), "UserTweets", url, true)
	require.ErrorIs(t, err, ErrRateLimited)
	require.Equal(t, int32(3), hits.Load(), "initial attempt plus two retries")
}

func TestExecuteRateLimitRecovers(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, stubHandler(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"data":{}}`)
	}), ClientConfig{})

	url := Endpoints["UserTweets"].URL(c.cfg.BaseURL)
	res, err := c.execute(context.Background(), "UserTweets", url, true)
	require.NoError(t, err)
	require.True(t, res.Exists())
	require.Equal(t, int32(2), hits.Load())
}

func TestExecuteParseError(t *testing.T) {
	c, _ := newTestClient(t, stubHandler(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>definitely not json</html>")
	}), ClientConfig{})

	url := Endpoints["UserTweets"].URL(c.cfg.BaseURL)
	_, err := c.execute(context.Background(), "UserTweets", url, true)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "UserTweets", pe.Operation)
}

func TestExecuteSoftFailureOnOtherStatus(t *testing.T) {
	c, _ := newTestClient(t, stubHandler(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), ClientConfig{})

	url := Endpoints["UserTweets"].URL(c.cfg.BaseURL)
	res, err := c.execute(context.Background(), "UserTweets", url, true)
	require.NoError(t, err)
	require.False(t, res.Exists())
}

func TestExecuteReauthRetriesOnce(t *testing.T) {
	var graphqlHits, landingHits atomic.Int32
	handler := func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/graphql/"):
			if graphqlHits.Add(1) == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			fmt.Fprint(w, `{"data":{}}`)
		default:
			landingHits.Add(1)
			w.Header().Set("Set-Cookie", "ct0=fresh-token; Path=/")
			fmt.Fprint(w, "<html></html>")
		}
	}
	c, _ := newTestClient(t, http.HandlerFunc(handler), ClientConfig{AuthToken: "session-abc"})

	url := Endpoints["UserTweets"].URL(c.cfg.BaseURL)
	res, err := c.execute(context.Background(), "UserTweets", url, true)
	require.NoError(t, err)
	require.True(t, res.Exists())
	require.Equal(t, int32(2), graphqlHits.Load())
	require.Equal(t, int32(2), landingHits.Load(), "one derivation before, one after invalidation")
}

func TestExecuteAuthRejectedAfterRetry(t *testing.T) {
	c, _ := newTestClient(t, stubHandler(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}), ClientConfig{AuthToken: "session-abc"})

	url := Endpoints["UserTweets"].URL(c.cfg.BaseURL)
	_, err := c.execute(context.Background(), "UserTweets", url, true)
	require.ErrorIs(t, err, ErrAuthRejected)
}

func TestAddGraphQLParams(t *testing.T) {
	url := addGraphQLParams("https://example.com/graphql/abc/Op",
		map[string]any{"screen_name": "mika"},
		map[string]any{"flag": true},
		map[string]any{"withAuxiliaryUserLabels": false})

	require.True(t, strings.HasPrefix(url, "https://example.com/graphql/abc/Op?variables="))
	require.Contains(t, url, "%22screen_name%22%3A%22mika%22")
	require.Contains(t, url, "&features=")
	require.Contains(t, url, "&fieldToggles=")
	require.NotContains(t, url, `"`, "quotes must be percent-encoded")
	require.NotContains(t, url, "{")
}
