package xweb

import (
	"regexp"
	"strings"
)

// ct0BodyRe matches the csrf token embedded in the landing-page markup.
// Used when the server does not replay the cookie in set-cookie.
var ct0BodyRe = regexp.MustCompile(`"ct0":"([^"]+)"`)

// ct0FromHeaders parses the ct0 value from a set-cookie response header.
func ct0FromHeaders(headers map[string]string) string {
	cookie := headers["set-cookie"]
	if cookie == "" {
		return ""
	}
	for _, part := range strings.Split(cookie, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "ct0=") {
			if val := strings.TrimPrefix(part, "ct0="); val != "" {
				return val
			}
		}
	}
	return ""
}

// ct0FromBody searches the response body for an inline ct0 value.
func ct0FromBody(body []byte) string {
	m := ct0BodyRe.FindSubmatch(body)
	if len(m) < 2 {
		return ""
	}
	return string(m[1])
}
