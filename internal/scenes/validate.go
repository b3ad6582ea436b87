package scenes

import "strings"

// ValidProjectName requires at least 3 characters after trimming.
func ValidProjectName(name string) bool {
	return len([]rune(strings.TrimSpace(name))) >= 3
}

// ParseInstagramURL validates a competitor profile link and derives the
// username: the path segment after the last "/", with any query string and
// trailing slash stripped.
func ParseInstagramURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "instagram.com/") {
		return "", false
	}

	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.TrimRight(raw, "/")

	idx := strings.LastIndexByte(raw, '/')
	if idx < 0 {
		// Nothing after the host, e.g. "instagram.com/".
		return "", false
	}
	username := raw[idx+1:]
	if username == "" || strings.Contains(username, " ") || strings.Contains(username, "instagram.com") {
		return "", false
	}
	return username, true
}

// NormalizeHashtag strips a leading "#" and rejects tokens that are empty,
// contain whitespace, or are shorter than 2 characters.
func NormalizeHashtag(raw string) (string, bool) {
	tag := strings.TrimSpace(raw)
	tag = strings.TrimPrefix(tag, "#")
	if len([]rune(tag)) < 2 {
		return "", false
	}
	if strings.ContainsAny(tag, " \t\n") {
		return "", false
	}
	return tag, true
}
