package xweb

import (
	"context"
	"fmt"
)

// resolveUserID maps an identifier to the numeric rest id that pagination
// operations are keyed by. Numeric identifiers pass through untouched;
// anything else costs one profile lookup.
func (c *Client) resolveUserID(ctx context.Context, identifier string) (string, error) {
	if isDigits(identifier) {
		return identifier, nil
	}
	u, err := c.GetUser(ctx, identifier)
	if err != nil {
		return "", err
	}
	if u == nil || u.ID == "" {
		return "", fmt.Errorf("%s: %w", identifier, ErrNotFound)
	}
	return u.ID, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// GetUserTweets fetches one page of a user's tweets. extra may carry a
// cursor variable for subsequent pages.
func (c *Client) GetUserTweets(ctx context.Context, identifier string, extra map[string]any) ([]*Post, error) {
	id, err := c.resolveUserID(ctx, identifier)
	if err != nil {
		return nil, err
	}
	vars := mergeVars(extra, map[string]any{
		"count":                                  20,
		"includePromotedContent":                 true,
		"withQuickPromoteEligibilityTweetFields": true,
		"withVoice":                              true,
		"withV2Timeline":                         true,
	})
	entries := c.timelineEntries(ctx, "UserTweets", id, vars, nil)
	return normalizePosts(entries, nil, ""), nil
}

// GetUserTweetsAndReplies fetches one page of a user's tweets and replies.
// Conversation modules are un-nested one level and other participants are
// filtered out by author id.
func (c *Client) GetUserTweetsAndReplies(ctx context.Context, identifier string, extra map[string]any) ([]*Post, error) {
	id, err := c.resolveUserID(ctx, identifier)
	if err != nil {
		return nil, err
	}
	vars := mergeVars(extra, map[string]any{
		"count":                  20,
		"includePromotedContent": true,
		"withCommunity":          true,
		"withVoice":              true,
		"withV2Timeline":         true,
	})
	entries := c.timelineEntries(ctx, "UserTweetsAndReplies", id, vars, nil)
	return normalizePosts(entries, []string{"profile-conversation-"}, id), nil
}

// GetUserMedia fetches a user's media posts. The media timeline only
// yields items behind its "Top" cursor, so this performs one extra
// cursor-fetch round-trip internally.
func (c *Client) GetUserMedia(ctx context.Context, identifier string, extra map[string]any) ([]*Post, error) {
	id, err := c.resolveUserID(ctx, identifier)
	if err != nil {
		return nil, err
	}
	vars := mergeVars(extra, map[string]any{
		"count":                  20,
		"includePromotedContent": false,
		"withClientEventToken":   false,
		"withBirdwatchNotes":     false,
		"withVoice":              true,
		"withV2Timeline":         true,
	})

	var cursor string
	for _, e := range c.timelineEntries(ctx, "UserMedia", id, vars, nil) {
		if e.Get("content.cursorType").String() == "Top" {
			cursor = e.Get("content.value").String()
			break
		}
	}
	if cursor == "" {
		return nil, nil
	}

	vars["cursor"] = cursor
	entries := c.timelineEntries(ctx, "UserMedia", id, vars, nil)
	return normalizePosts(entries, nil, ""), nil
}

// GetUserLikes fetches one page of posts a user liked.
func (c *Client) GetUserLikes(ctx context.Context, identifier string, extra map[string]any) ([]*Post, error) {
	id, err := c.resolveUserID(ctx, identifier)
	if err != nil {
		return nil, err
	}
	vars := mergeVars(extra, map[string]any{
		"includeHasBirdwatchNotes": false,
		"includePromotedContent":   false,
		"withBirdwatchNotes":       false,
		"withVoice":                false,
		"withV2Timeline":           true,
	})
	entries := c.timelineEntries(ctx, "Likes", id, vars, nil)
	return normalizePosts(entries, nil, ""), nil
}

// GetTweetDetail fetches a conversation view for a single post.
func (c *Client) GetTweetDetail(ctx context.Context, tweetID string, extra map[string]any) ([]*Post, error) {
	vars := mergeVars(extra, map[string]any{
		"includeHasBirdwatchNotes": false,
		"includePromotedContent":   false,
		"withBirdwatchNotes":       false,
		"withVoice":                false,
		"withV2Timeline":           true,
	})
	entries := c.timelineEntries(ctx, "TweetDetail", tweetID, vars,
		[]string{"threaded_conversation_with_injections_v2"})
	return normalizePosts(entries, []string{"homeConversation-", "conversationthread-"}, ""), nil
}

// Search fetches one page of latest posts matching a raw query.
func (c *Client) Search(ctx context.Context, query string, extra map[string]any) ([]*Post, error) {
	vars := mergeVars(extra, map[string]any{
		"rawQuery":    query,
		"count":       20,
		"querySource": "typed_query",
		"product":     "Latest",
	})
	entries := c.timelineEntries(ctx, "SearchTimeline", "", vars,
		[]string{"search_by_raw_query", "search_timeline", "timeline"})
	return normalizePosts(entries, nil, ""), nil
}

// GetListTweets fetches one page of a list timeline.
func (c *Client) GetListTweets(ctx context.Context, listID string, extra map[string]any) ([]*Post, error) {
	vars := mergeVars(extra, map[string]any{
		"listId": listID,
		"count":  20,
	})
	entries := c.timelineEntries(ctx, "ListLatestTweetsTimeline", "", vars,
		[]string{"list", "tweets_timeline", "timeline"})
	return normalizePosts(entries, nil, ""), nil
}

// GetHomeTimeline fetches one page of the algorithmic home timeline.
// Requires a session token.
func (c *Client) GetHomeTimeline(ctx context.Context, extra map[string]any) ([]*Post, error) {
	return c.homeTimeline(ctx, "HomeTimeline", extra)
}

// GetHomeLatestTimeline fetches one page of the chronological home
// timeline. Requires a session token.
func (c *Client) GetHomeLatestTimeline(ctx context.Context, extra map[string]any) ([]*Post, error) {
	return c.homeTimeline(ctx, "HomeLatestTimeline", extra)
}

func (c *Client) homeTimeline(ctx context.Context, operation string, extra map[string]any) ([]*Post, error) {
	if c.cfg.AuthToken == "" {
		return nil, fmt.Errorf("%s: %w", operation, ErrAuthRequired)
	}
	vars := mergeVars(extra, map[string]any{
		"count":                  20,
		"includePromotedContent": true,
		"latestControlAvailable": true,
		"requestContext":         "launch",
		"withCommunity":          true,
	})
	entries := c.timelineEntries(ctx, operation, "", vars,
		[]string{"home", "home_timeline_urt"})
	return normalizePosts(entries, nil, ""), nil
}

// mergeVars overlays base onto extra, base winning on conflicts.
func mergeVars(extra, base map[string]any) map[string]any {
	vars := make(map[string]any, len(extra)+len(base))
	for k, v := range extra {
		vars[k] = v
	}
	for k, v := range base {
		vars[k] = v
	}
	return vars
}
