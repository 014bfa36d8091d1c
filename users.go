package xweb

import (
	"context"
	"fmt"
	"strings"
)

// User is a normalized profile record.
type User struct {
	ID            string
	ScreenName    string
	FollowerCount int
	Legacy        map[string]any
}

// GetUser resolves a screen name, or a "+"-prefixed numeric id, to a
// profile record. A structural miss (unknown name, reshaped response)
// returns (nil, nil): absence of a user is a normal outcome, not an error.
func (c *Client) GetUser(ctx context.Context, identifier string) (*User, error) {
	operation := "UserByScreenName"
	variables := map[string]any{
		"screen_name":              identifier,
		"withSafetyModeUserFields": true,
	}
	if rest, ok := strings.CutPrefix(identifier, "+"); ok {
		operation = "UserByRestId"
		variables = map[string]any{
			"userId":                   rest,
			"withSafetyModeUserFields": true,
		}
	}

	ep := Endpoints[operation]
	url := addGraphQLParams(ep.URL(c.cfg.BaseURL), variables, ep.Features,
		map[string]any{"withAuxiliaryUserLabels": false})

	data, err := c.execute(ctx, operation, url, true)
	if err != nil {
		return nil, err
	}

	userNode := data.Get("data.user")
	if !userNode.Exists() {
		userNode = data.Get("data.user_result")
	}
	result := userNode.Get("result")
	legacy := asMap(result.Get("legacy").Value())
	if legacy == nil {
		return nil, nil
	}

	u := userFromLegacy(legacy)
	if restID := result.Get("rest_id").String(); restID != "" {
		u.ID = restID
	}
	return u, nil
}

// FollowerCount returns the follower metric for a named account, the one
// number consumed by the surrounding system. An unresolvable account is
// ErrNotFound.
func (c *Client) FollowerCount(ctx context.Context, identifier string) (int, error) {
	u, err := c.GetUser(ctx, identifier)
	if err != nil {
		return 0, err
	}
	if u == nil {
		return 0, fmt.Errorf("%s: %w", identifier, ErrNotFound)
	}
	return u.FollowerCount, nil
}

func userFromLegacy(m map[string]any) *User {
	u := &User{
		ID:         str(m, "id_str"),
		ScreenName: str(m, "screen_name"),
		Legacy:     m,
	}
	// Profile payloads use followers_count; some embedded shapes ship the
	// singular key instead.
	if v, ok := m["followers_count"]; ok {
		u.FollowerCount = intFrom(v)
	} else {
		u.FollowerCount = intFrom(m["follower_count"])
	}
	return u
}
