// Package normalize turns free-text item labels into stable comparison keys.
package normalize

import (
	"regexp"
	"strings"
)

// Trailing version tokens such as "_v1.0.3", " V2" or " ver 1.2". A leading
// separator is required so names like "Arcv2" keep their tail. Number groups
// may be separated by dots or spaces, so the token is still recognized after
// punctuation cleanup has turned "v1.0.3" into "v1 0 3".
var reVersionSuffix = regexp.MustCompile(`(?i)[\s_.-]+v(?:er(?:sion)?)?[\s_.]*\d+(?:[\s_.]+\d+)*\s*$`)

// StripVersion removes trailing version annotations from a raw label so
// "IKELOS_SMG_v1.0.3" and "IKELOS_SMG_v1.0.2" compare equal.
func StripVersion(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.Index(strings.ToLower(s), "brave version"); i >= 0 {
		s = s[:i]
	}
	s = reVersionSuffix.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Key canonicalizes a raw label into a lookup key: version suffixes dropped,
// lowercased, separators unified to spaces, other punctuation removed and
// whitespace collapsed. Key is idempotent; an empty or whitespace-only input
// yields an empty key, which never matches any catalog candidate.
func Key(raw string) string {
	// Dropping punctuation can expose a version suffix the first strip could
	// not see ("Gun (v2)" cleans to "gun v2"), so iterate until stable. Each
	// round strictly shortens the string, so this terminates.
	s := clean(StripVersion(raw))
	for {
		next := clean(StripVersion(s))
		if next == s {
			return s
		}
		s = next
	}
}

// clean lowercases, unifies separators to spaces, drops remaining punctuation
// and collapses whitespace.
func clean(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_' || r == '-' || r == '.' || r == ' ' || r == '\t' || r == '\n':
			b.WriteByte(' ')
		default:
			// Drop remaining punctuation ("The Mountaintop!" == "The Mountaintop").
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
