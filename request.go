package xweb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/tidwall/gjson"
)

// execute performs one authenticated GraphQL call and classifies the
// response. 429 responses are retried after a fixed wait, bounded by
// MaxRateLimitRetries. A 401/403 invalidates the cached identity,
// re-derives it, and retries exactly once. Any other non-200 status is a
// soft failure: logged and returned as an empty result with nil error.
func (c *Client) execute(ctx context.Context, operation, url string, allowAnonymous bool) (gjson.Result, error) {
	if c.cfg.AuthToken == "" && !allowAnonymous {
		return gjson.Result{}, fmt.Errorf("%s: %w", operation, ErrAuthRequired)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return gjson.Result{}, err
		}
	}
	// Anti-fingerprint jitter
	if err := stealth.DefaultJitter.Sleep(ctx); err != nil {
		return gjson.Result{}, err
	}

	cred, err := c.credentials()
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s: %w", operation, err)
	}

	rateRetries := 0
	reauthed := false
	for {
		var headers map[string]string
		if cred.session() {
			headers = sessionHeaders(cred.authToken, cred.csrfToken, c.cfg.UserAgent)
		} else {
			headers = guestHeaders(cred.guestToken, c.cfg.UserAgent)
		}

		body, _, status, err := c.do("GET", url, headers, nil)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("%s: %w", operation, err)
		}

		switch {
		case status == 200:
			if !gjson.ValidBytes(body) {
				return gjson.Result{}, &ParseError{Operation: operation, Snippet: truncateBytes(body, 200)}
			}
			return gjson.ParseBytes(body), nil

		case status == 429:
			if rateRetries >= c.cfg.MaxRateLimitRetries {
				return gjson.Result{}, fmt.Errorf("%s: %w", operation, ErrRateLimited)
			}
			rateRetries++
			slog.Warn("rate limited, backing off",
				slog.String("operation", operation),
				slog.Int("attempt", rateRetries),
				slog.Duration("wait", c.cfg.RateLimitWait))
			select {
			case <-time.After(c.cfg.RateLimitWait):
			case <-ctx.Done():
				return gjson.Result{}, ctx.Err()
			}

		case status == 401 || status == 403:
			if reauthed {
				return gjson.Result{}, fmt.Errorf("%s: HTTP %d: %w", operation, status, ErrAuthRejected)
			}
			reauthed = true
			slog.Warn("identity rejected, re-deriving credentials",
				slog.String("operation", operation),
				slog.Int("status", status))
			c.invalidate()
			cred, err = c.credentials()
			if err != nil {
				return gjson.Result{}, fmt.Errorf("%s: %w", operation, ErrAuthRejected)
			}

		default:
			slog.Warn("unexpected response status",
				slog.String("operation", operation),
				slog.Int("status", status),
				slog.String("body", truncateBytes(body, 200)))
			return gjson.Result{}, nil
		}
	}
}

// addGraphQLParams builds the full URL with variables, features, and
// optional fieldToggles serialized as JSON-encoded query parameters.
func addGraphQLParams(url string, variables, features map[string]any, fieldToggles ...map[string]any) string {
	v, _ := json.Marshal(variables)
	f, _ := json.Marshal(features)
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	result := url + sep + "variables=" + jsonEscape(v) + "&features=" + jsonEscape(f)
	if len(fieldToggles) > 0 && fieldToggles[0] != nil {
		ft, _ := json.Marshal(fieldToggles[0])
		result += "&fieldToggles=" + jsonEscape(ft)
	}
	return result
}

// jsonEscape percent-encodes the characters JSON payloads put in query
// strings. Narrower than url.QueryEscape on purpose: the server is picky
// about which characters arrive encoded.
func jsonEscape(b []byte) string {
	var result strings.Builder
	for _, ch := range string(b) {
		switch ch {
		case ' ':
			result.WriteString("%20")
		case '"':
			result.WriteString("%22")
		case '{':
			result.WriteString("%7B")
		case '}':
			result.WriteString("%7D")
		case '[':
			result.WriteString("%5B")
		case ']':
			result.WriteString("%5D")
		case ':':
			result.WriteString("%3A")
		case ',':
			result.WriteString("%2C")
		case '\'':
			result.WriteString("%27")
		case '|':
			result.WriteString("%7C")
		default:
			result.WriteRune(ch)
		}
	}
	return result.String()
}
