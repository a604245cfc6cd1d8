package videoid

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

const (
	StageWatch     = "watch"
	StageShorts    = "shorts"
	StageQuery     = "query"
	StageShortHost = "short-host"
)

var (
	errEmptyCandidate = errors.New("empty candidate")
	errNoPatternMatch = errors.New("pattern did not match")
	errNotAbsoluteURL = errors.New("not an absolute URL")
	errNoQueryParam   = errors.New("no v query parameter")
	errNotShortHost   = errors.New("host is not youtu.be")
)

var (
	// Matches anywhere in the input. The capture stops at whitespace or '&', but may still contain e.g. "?t=10".
	// RE2's \s is ASCII only, so \v, the Unicode space separators and U+FEFF are excluded explicitly.
	watchPattern = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:youtube\.com/(?:watch\?v=|embed/)|youtu\.be/)([^\s\v\p{Z}\x{FEFF}&]+)`)
	// Shorts IDs shorter than 5 characters are rejected here, unlike the other forms.
	shortsPattern = regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/shorts/([a-zA-Z0-9_-]{5,})`)
)

func matchPattern(re *regexp.Regexp, s string) (string, error) {
	if m := re.FindStringSubmatch(s); len(m) > 1 && m[1] != "" {
		return m[1], nil
	}
	return "", errNoPatternMatch
}

// MatchWatch captures the ID from youtube.com/watch?v=ID, youtube.com/embed/ID and youtu.be/ID forms.
func MatchWatch(s string) (string, error) {
	return matchPattern(watchPattern, s)
}

// MatchShorts captures the ID from youtube.com/shorts/ID.
func MatchShorts(s string) (string, error) {
	return matchPattern(shortsPattern, s)
}

// MatchQuery captures the first "v" query parameter of any absolute URL, whatever its host.
func MatchQuery(s string) (string, error) {
	u, err := parseAbsolute(s)
	if err != nil {
		return "", err
	}
	if v := queryValue(u.RawQuery, "v"); v != "" {
		return v, nil
	}
	return "", errNoQueryParam
}

// queryValue returns the first value of key in rawQuery. Unlike url.ParseQuery, a pair with a malformed escape is
// kept, undecoded, rather than dropped.
func queryValue(rawQuery string, key string) string {
	for _, pair := range strings.Split(rawQuery, "&") {
		k, v, _ := strings.Cut(pair, "=")
		if unescapeQuery(k) == key {
			return unescapeQuery(v)
		}
	}
	return ""
}

func unescapeQuery(s string) string {
	if unescaped, err := url.QueryUnescape(s); err == nil {
		return unescaped
	}
	return strings.ReplaceAll(s, "+", " ")
}

// MatchShortHost captures the path of an absolute youtu.be (or www.youtu.be) URL.
func MatchShortHost(s string) (string, error) {
	u, err := parseAbsolute(s)
	if err != nil {
		return "", err
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host != "youtu.be" {
		return "", errNotShortHost
	}
	return strings.TrimPrefix(u.EscapedPath(), "/"), nil
}

func parseAbsolute(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		return nil, errNotAbsoluteURL
	}
	return u, nil
}

func init() {
	DefaultChain.MustCreatePriority(StageWatch, MatchWatch, 10)
	DefaultChain.MustCreatePriority(StageShorts, MatchShorts, 20)
	DefaultChain.MustCreatePriority(StageQuery, MatchQuery, 30)
	DefaultChain.MustCreatePriority(StageShortHost, MatchShortHost, 40)
}
