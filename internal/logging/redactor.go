package logging

import (
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

var keySegments = regexp.MustCompile(`[^a-z0-9]+`)

// redactor masks values whose key names a credential, e.g. "token",
// "auth_header" or "jwtSecret".
type redactor struct {
	sensitive map[string]bool
}

func newRedactor() *redactor {
	words := []string{"secret", "password", "token", "key", "auth", "authorization", "credential", "bearer"}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return &redactor{sensitive: m}
}

// redact returns a copy of the flattened key-value pairs with sensitive
// values replaced.
func (r *redactor) redact(pairs []any) []any {
	out := make([]any, len(pairs))
	copy(out, pairs)
	for i := 0; i+1 < len(out); i += 2 {
		if key, ok := out[i].(string); ok && r.isSensitive(key) {
			out[i+1] = redacted
		}
	}
	return out
}

// isSensitive splits key on non-alphanumerics and camelCase boundaries and
// checks each segment.
func (r *redactor) isSensitive(key string) bool {
	for _, part := range keySegments.Split(strings.ToLower(splitCamel(key)), -1) {
		if r.sensitive[part] {
			return true
		}
	}
	return false
}

func splitCamel(s string) string {
	var b strings.Builder
	for i, c := range s {
		if i > 0 && c >= 'A' && c <= 'Z' {
			prev := s[i-1]
			if prev >= 'a' && prev <= 'z' {
				b.WriteByte('_')
			}
		}
		b.WriteRune(c)
	}
	return b.String()
}
