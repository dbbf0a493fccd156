// Package search provides a unified search abstraction for filtering notifications.
// It supports multiple search strategies (substring, regex, token-based) through
// a common Provider interface shared by the CLI and TUI.
package search

import (
	"fmt"

	"github.com/cristianoliveira/portal-notify/internal/domain"
)

// Provider defines the interface for search providers.
type Provider interface {
	// Match returns true if the notification matches the search query.
	Match(n domain.Notification, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Searchable fields.
const (
	FieldTitle      = "title"
	FieldMessage    = "message"
	FieldType       = "type"
	FieldDepartment = "department"
	FieldPriority   = "priority"
)

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool
	Fields          []string
}

// DefaultOptions searches title and message ignoring case.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: true,
		Fields:          []string{FieldTitle, FieldMessage},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in.
func WithFields(fields ...string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fieldValue returns the text of a named field, or "" for unknown names.
func fieldValue(n domain.Notification, field string) string {
	switch field {
	case FieldTitle:
		return n.Title
	case FieldMessage:
		return n.Message
	case FieldType:
		return n.Type.String()
	case FieldDepartment:
		return n.Department.String()
	case FieldPriority:
		return n.Priority.String()
	default:
		return ""
	}
}

// Modes accepted by New.
const (
	ModeSubstring = "substring"
	ModeRegex     = "regex"
	ModeToken     = "token"
)

// New returns the provider for mode. An empty mode means substring.
func New(mode string, opts ...Option) (Provider, error) {
	switch mode {
	case "", ModeSubstring:
		return NewSubstringProvider(opts...), nil
	case ModeRegex:
		return NewRegexProvider(opts...), nil
	case ModeToken:
		return NewTokenProvider(opts...), nil
	default:
		return nil, fmt.Errorf("invalid search mode: %s (must be substring, regex, token)", mode)
	}
}

// Filter returns the notifications p matches for query, in input order.
func Filter(notifs []domain.Notification, p Provider, query string) []domain.Notification {
	result := make([]domain.Notification, 0, len(notifs))
	for _, n := range notifs {
		if p.Match(n, query) {
			result = append(result, n)
		}
	}
	return result
}
