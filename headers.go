package xweb

import stealth "github.com/anatolykoptev/go-stealth"

// defaultUserAgent is the fallback User-Agent when none is configured.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// baseHeaders returns the fixed header set shared by every GraphQL call.
func baseHeaders(userAgent string) map[string]string {
	return map[string]string{
		"authorization":             "Bearer " + bearerToken,
		"x-twitter-active-user":     "yes",
		"x-twitter-client-language": "en",
		"content-type":              "application/json",
		"user-agent":                userAgent,
		"accept":                    "*/*",
		"accept-language":           "en-US,en;q=0.9",
		"accept-encoding":           "gzip, deflate, br",
		"referer":                   "https://x.com/",
		"origin":                    "https://x.com",
	}
}

// sessionHeaders returns headers for session-token requests. The csrf token
// header is attached only when derivation succeeded; the degraded identity
// sends the bare auth cookie.
func sessionHeaders(authToken, csrf, userAgent string) map[string]string {
	h := baseHeaders(userAgent)
	h["x-twitter-auth-type"] = "OAuth2Session"
	cookie := "auth_token=" + authToken
	if csrf != "" {
		h["x-csrf-token"] = csrf
		cookie += "; ct0=" + csrf
	}
	h["cookie"] = cookie
	if ch := stealth.ClientHintsHeaders(userAgent); ch != nil {
		for k, v := range ch {
			h[k] = v
		}
	}
	return h
}

// guestHeaders returns headers for anonymous guest-token requests.
func guestHeaders(guestToken, userAgent string) map[string]string {
	h := baseHeaders(userAgent)
	h["x-guest-token"] = guestToken
	return h
}

// derivationHeaders returns browser-like headers for the landing-page fetch
// that derives the csrf token.
func derivationHeaders(authToken, userAgent string) map[string]string {
	return map[string]string{
		"user-agent":      userAgent,
		"accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"accept-language": "en-US,en;q=0.5",
		"cookie":          "auth_token=" + authToken,
	}
}

// apiHeaderOrder keeps header ordering consistent with the web client's
// TLS fingerprint.
var apiHeaderOrder = []string{
	"authorization",
	"content-type",
	"x-csrf-token",
	"x-guest-token",
	"x-twitter-active-user",
	"x-twitter-auth-type",
	"x-twitter-client-language",
	"sec-ch-ua",
	"sec-ch-ua-mobile",
	"sec-ch-ua-platform",
	"cookie",
	"user-agent",
	"accept",
	"accept-language",
	"accept-encoding",
}
