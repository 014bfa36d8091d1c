package xweb

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"
)

// Entry is one raw timeline entry node. Entries are opaque server-defined
// trees; callers classify them by entry ID prefix.
type Entry struct {
	raw gjson.Result
}

// ID returns the server-assigned entryId, empty if missing.
func (e Entry) ID() string { return e.raw.Get("entryId").String() }

// Get resolves a dotted key path inside the entry tree.
func (e Entry) Get(path string) gjson.Result { return e.raw.Get(path) }

// timelineEntries fetches exactly one page of a list-producing operation
// and returns its raw entries. Absence of data is not an error: failed
// requests, unknown response shapes, and empty instruction streams all
// yield an empty slice. Callers wanting further pages re-invoke with a
// cursor variable.
func (c *Client) timelineEntries(ctx context.Context, operation, subjectID string, variables map[string]any, instructionPath []string) []Entry {
	ep, ok := Endpoints[operation]
	if !ok {
		slog.Warn("unknown operation", slog.String("operation", operation))
		return nil
	}

	vars := make(map[string]any, len(variables)+1)
	for k, v := range variables {
		vars[k] = v
	}
	if subjectID != "" {
		vars["userId"] = subjectID
	}

	url := addGraphQLParams(ep.URL(c.cfg.BaseURL), vars, ep.Features)
	data, err := c.execute(ctx, operation, url, true)
	if err != nil {
		slog.Warn("page fetch failed", slog.String("operation", operation), slog.Any("error", err))
		return nil
	}
	if !data.Exists() {
		return nil
	}

	instructions := findInstructions(data, instructionPath)
	if !instructions.Exists() {
		slog.Debug("no instructions in response", slog.String("operation", operation))
		return nil
	}

	// The last module instruction wins, and its items take precedence over
	// plain entries when both are present in the same page.
	var moduleItems, entries []gjson.Result
	instructions.ForEach(func(_, ins gjson.Result) bool {
		switch ins.Get("type").String() {
		case "TimelineAddToModule":
			moduleItems = ins.Get("moduleItems").Array()
		case "TimelineAddEntries":
			entries = ins.Get("entries").Array()
		}
		return true
	})

	picked := moduleItems
	if len(picked) == 0 {
		picked = entries
	}
	out := make([]Entry, 0, len(picked))
	for _, r := range picked {
		out = append(out, Entry{raw: r})
	}
	return out
}

// findInstructions locates the instruction list in a page response.
// Endpoint families wrap the timeline differently: an explicit path is
// tried both from the root and under the top-level "data" key, and the
// default user-timeline path has the same two variants. Any future third
// shape resolves to a non-existent result, never a panic.
func findInstructions(data gjson.Result, path []string) gjson.Result {
	if len(path) > 0 {
		joined := strings.Join(path, ".") + ".instructions"
		if ins := data.Get(joined); ins.Exists() {
			return ins
		}
		return data.Get("data." + joined)
	}
	if ins := data.Get("user.result.timeline_v2.timeline.instructions"); ins.Exists() {
		return ins
	}
	return data.Get("data.user.result.timeline_v2.timeline.instructions")
}
