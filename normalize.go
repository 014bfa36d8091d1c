package xweb

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Post is a canonical flattened post record. Legacy always carries the
// merged legacy payload: a post whose payload is missing is dropped during
// normalization, never emitted partially populated.
type Post struct {
	ID        string
	Text      string
	Author    *User
	Retweeted *Post
	Quoted    *Post
	Entities  Entities
	Legacy    map[string]any
}

// Entities groups the entity lists of a post.
type Entities struct {
	Hashtags []any
	URLs     []any
	Mentions []any
	Symbols  []any
}

// normalizePosts walks raw timeline entries and flattens them into
// canonical post records. Entries are kept when their id starts with
// "tweet-" or "profile-grid-0-tweet-"; entries matching one of
// nestedPrefixes additionally contribute their content.items children
// (one level of un-nesting, not recursive). When filterAuthorID is set,
// only posts authored by that user id are returned.
func normalizePosts(entries []Entry, nestedPrefixes []string, filterAuthorID string) []*Post {
	var candidates []gjson.Result
	for _, e := range entries {
		id := e.ID()
		if id == "" {
			continue
		}
		if strings.HasPrefix(id, "tweet-") || strings.HasPrefix(id, "profile-grid-0-tweet-") {
			candidates = append(candidates, e.raw)
		}
		for _, prefix := range nestedPrefixes {
			if strings.HasPrefix(id, prefix) {
				candidates = append(candidates, e.raw.Get("content.items").Array()...)
				break
			}
		}
	}

	var posts []*Post
	for _, cand := range candidates {
		if cand.Get("entryId").String() == "" {
			continue
		}
		content := cand.Get("content")
		if !content.Exists() {
			content = cand.Get("item")
		}
		// module vs stream shapes
		result := content.Get("content.tweetResult.result")
		if !result.Exists() {
			result = content.Get("itemContent.tweet_results.result")
		}
		if inner := result.Get("tweet"); inner.Exists() {
			result = inner
		}
		tweet := asMap(result.Value())
		if tweet == nil {
			continue
		}
		legacy := asMap(tweet["legacy"])
		if legacy == nil {
			continue
		}

		retweet := dig(legacy, "retweeted_status_result", "result")

		resolveTweet(tweet)
		if retweet != nil && resolveTweet(retweet) {
			legacy["retweeted_status"] = asMap(retweet["legacy"])
		}

		if filterAuthorID != "" && str(legacy, "user_id_str") != filterAuthorID {
			continue
		}
		posts = append(posts, postFromLegacy(legacy))
	}
	return posts
}

// resolveTweet merges author, id, quote, and long-form fields into the
// tweet's legacy payload in place. Returns false when the tweet has no
// legacy payload at all.
func resolveTweet(t map[string]any) bool {
	legacy := asMap(t["legacy"])
	if legacy == nil {
		return false
	}

	core := asMap(t["core"])
	user := dig(core, "user_result", "result")
	if user == nil {
		user = dig(core, "user_results", "result")
	}
	if user != nil {
		if ul := asMap(user["legacy"]); ul != nil {
			legacy["user"] = ul
		}
	}

	// conversation_id_str fallbacks elsewhere in the tree can be stale;
	// the top-level rest_id is authoritative
	if restID, ok := t["rest_id"].(string); ok && restID != "" {
		legacy["id_str"] = restID
	}

	quote := dig(t, "quoted_status_result", "result", "tweet")
	if quote == nil {
		quote = dig(t, "quoted_status_result", "result")
	}
	if quote != nil {
		if ql := asMap(quote["legacy"]); ql != nil {
			legacy["quoted_status"] = ql
			qcore := asMap(quote["core"])
			quoteUser := dig(qcore, "user_result", "result")
			if quoteUser == nil {
				quoteUser = dig(qcore, "user_results", "result")
			}
			if quoteUser != nil {
				if qul := asMap(quoteUser["legacy"]); qul != nil {
					ql["user"] = qul
				}
			}
		}
	}

	// Long-form posts keep a stale 280-char rendition in legacy; the
	// note payload fully overrides text and entities.
	if note := dig(t, "note_tweet", "note_tweet_results", "result"); note != nil {
		ents := asMap(legacy["entities"])
		if ents == nil {
			ents = map[string]any{}
			legacy["entities"] = ents
		}
		if es := asMap(note["entity_set"]); es != nil {
			ents["hashtags"] = es["hashtags"]
			ents["symbols"] = es["symbols"]
			ents["urls"] = es["urls"]
			ents["user_mentions"] = es["user_mentions"]
		}
		if text, ok := note["text"].(string); ok {
			legacy["full_text"] = text
		}
	}
	return true
}

func postFromLegacy(legacy map[string]any) *Post {
	p := &Post{
		ID:       str(legacy, "id_str"),
		Text:     str(legacy, "full_text"),
		Entities: entitiesFrom(asMap(legacy["entities"])),
		Legacy:   legacy,
	}
	if u := asMap(legacy["user"]); u != nil {
		p.Author = userFromLegacy(u)
	}
	if rt := asMap(legacy["retweeted_status"]); rt != nil {
		p.Retweeted = postFromLegacy(rt)
	}
	if q := asMap(legacy["quoted_status"]); q != nil {
		p.Quoted = postFromLegacy(q)
	}
	return p
}

func entitiesFrom(m map[string]any) Entities {
	if m == nil {
		return Entities{}
	}
	return Entities{
		Hashtags: asSlice(m["hashtags"]),
		URLs:     asSlice(m["urls"]),
		Mentions: asSlice(m["user_mentions"]),
		Symbols:  asSlice(m["symbols"]),
	}
}

// --- permissive accessors over decoded JSON ---

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// dig walks nested maps by key, returning nil on any miss.
func dig(m map[string]any, keys ...string) map[string]any {
	cur := m
	for _, k := range keys {
		if cur == nil {
			return nil
		}
		cur = asMap(cur[k])
	}
	return cur
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func intFrom(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		i, _ := strconv.Atoi(n)
		return i
	}
	return 0
}
