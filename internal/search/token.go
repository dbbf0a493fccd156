package search

import (
	"strings"

	"github.com/cristianoliveira/portal-notify/internal/domain"
)

// TokenProvider splits the query on whitespace; every token must match some
// field. The special tokens "read" and "unread" filter on read state.
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a new token search provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{opts: applyOptions(opts)}
}

// Match returns true if the notification satisfies every token.
func (p *TokenProvider) Match(n domain.Notification, query string) bool {
	var (
		textTokens   []string
		readFilter   bool
		unreadFilter bool
	)
	for _, token := range strings.Fields(query) {
		switch strings.ToLower(token) {
		case "read":
			readFilter = true
		case "unread":
			unreadFilter = true
		default:
			if p.opts.CaseInsensitive {
				token = strings.ToLower(token)
			}
			textTokens = append(textTokens, token)
		}
	}

	// both together cancel out
	if readFilter && unreadFilter {
		readFilter, unreadFilter = false, false
	}
	if readFilter && !n.Read {
		return false
	}
	if unreadFilter && n.Read {
		return false
	}

	for _, token := range textTokens {
		if !p.matchToken(n, token) {
			return false
		}
	}
	return true
}

func (p *TokenProvider) matchToken(n domain.Notification, token string) bool {
	for _, field := range p.opts.Fields {
		value := fieldValue(n, field)
		if value == "" {
			continue
		}
		if p.opts.CaseInsensitive {
			value = strings.ToLower(value)
		}
		if strings.Contains(value, token) {
			return true
		}
	}
	return false
}

// Name returns the provider name.
func (p *TokenProvider) Name() string {
	return ModeToken
}
