package urlnorm

import (
	"net/url"
	"strings"
)

// Normalize turns user-entered website input into an absolute http(s) URL.
// It never fails; unparseable input is returned with a lower-case http(s)://
// prefix.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	withScheme := "https://" + trimmed
	if scheme, ok := schemeOf(trimmed); ok {
		withScheme = scheme + "://" + trimmed[len(scheme)+len("://"):]
	}

	u, err := url.Parse(withScheme)
	if err != nil || u.Host == "" {
		return withScheme
	}
	if u.Path == "/" {
		u.Path = ""
		u.RawPath = ""
	}
	return u.String()
}

// schemeOf reports the lower-cased http(s) scheme s starts with, if any.
func schemeOf(s string) (string, bool) {
	lower := strings.ToLower(s)
	for _, scheme := range []string{"http", "https"} {
		if strings.HasPrefix(lower, scheme+"://") {
			return scheme, true
		}
	}
	return "", false
}
