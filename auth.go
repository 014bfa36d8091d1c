package xweb

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// credential is a resolved request identity: a session cookie set or an
// anonymous guest token. The zero value carries no identity.
type credential struct {
	authToken  string
	csrfToken  string
	guestToken string
}

// session reports whether this credential carries a session cookie.
func (cr credential) session() bool { return cr.authToken != "" }

// credentials resolves the request identity lazily, caching it for the life
// of the client. With no session token configured it activates a guest
// token. With a session token it derives the csrf cookie once; if
// derivation fails the identity degrades to the bare auth cookie rather
// than failing the request.
func (c *Client) credentials() (credential, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfg.AuthToken == "" {
		if c.guestToken == "" {
			tok, err := c.fetchGuestToken()
			if err != nil {
				return credential{}, fmt.Errorf("guest token: %w", err)
			}
			c.guestToken = tok
			slog.Info("guest token acquired")
		}
		return credential{guestToken: c.guestToken}, nil
	}

	if !c.derived {
		ct0, err := c.deriveCSRF()
		switch {
		case err != nil:
			slog.Warn("csrf derivation failed, using bare auth token", slog.Any("error", err))
		case ct0 == "":
			slog.Warn("csrf token not present in landing page, using bare auth token")
		default:
			c.csrfToken = ct0
		}
		c.derived = true
	}
	return credential{authToken: c.cfg.AuthToken, csrfToken: c.csrfToken}, nil
}

// invalidate drops all cached identity state so the next request
// re-derives it.
func (c *Client) invalidate() {
	c.mu.Lock()
	c.guestToken = ""
	c.csrfToken = ""
	c.derived = false
	c.mu.Unlock()
}

// fetchGuestToken activates an anonymous guest token. Caller holds c.mu.
func (c *Client) fetchGuestToken() (string, error) {
	headers := map[string]string{
		"authorization": "Bearer " + bearerToken,
		"content-type":  "application/json",
		"user-agent":    c.cfg.UserAgent,
	}
	body, _, status, err := c.do("POST", c.cfg.APIBase+"/1.1/guest/activate.json", headers, nil)
	if err != nil {
		return "", err
	}
	if status != 200 {
		return "", fmt.Errorf("guest activation HTTP %d", status)
	}
	var resp struct {
		GuestToken string `json:"guest_token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse guest activation: %w", err)
	}
	if resp.GuestToken == "" {
		return "", fmt.Errorf("empty guest token in response")
	}
	return resp.GuestToken, nil
}

// deriveCSRF fetches the web landing page with the session cookie attached
// and extracts the ct0 anti-forgery token, from set-cookie first and the
// page body as a fallback. Caller holds c.mu.
func (c *Client) deriveCSRF() (string, error) {
	headers := derivationHeaders(c.cfg.AuthToken, c.cfg.UserAgent)
	body, respHdrs, status, err := c.do("GET", c.cfg.WebBase, headers, nil)
	if err != nil {
		return "", err
	}
	if status != 200 {
		return "", fmt.Errorf("landing page HTTP %d", status)
	}
	if ct0 := ct0FromHeaders(respHdrs); ct0 != "" {
		return ct0, nil
	}
	return ct0FromBody(body), nil
}
