package search

import (
	"regexp"
	"sync"

	"github.com/cristianoliveira/portal-notify/internal/domain"
)

// RegexProvider matches if any configured field matches the pattern.
type RegexProvider struct {
	opts    Options
	cache   map[string]*regexp.Regexp
	cacheMu sync.RWMutex
}

// NewRegexProvider creates a new regex search provider.
func NewRegexProvider(opts ...Option) Provider {
	return &RegexProvider{
		opts:  applyOptions(opts),
		cache: make(map[string]*regexp.Regexp),
	}
}

// Match returns true if any configured field matches the regex pattern.
// An invalid pattern matches nothing.
func (p *RegexProvider) Match(n domain.Notification, query string) bool {
	if query == "" {
		return true
	}
	re, err := p.Compile(query)
	if err != nil {
		return false
	}
	for _, field := range p.opts.Fields {
		if value := fieldValue(n, field); value != "" && re.MatchString(value) {
			return true
		}
	}
	return false
}

// Compile returns the cached regexp for pattern.
func (p *RegexProvider) Compile(pattern string) (*regexp.Regexp, error) {
	p.cacheMu.RLock()
	re, ok := p.cache[pattern]
	p.cacheMu.RUnlock()
	if ok {
		return re, nil
	}

	expr := pattern
	if p.opts.CaseInsensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	p.cacheMu.Lock()
	p.cache[pattern] = re
	p.cacheMu.Unlock()
	return re, nil
}

// Name returns the provider name.
func (p *RegexProvider) Name() string {
	return ModeRegex
}
