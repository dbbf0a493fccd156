// Package mockgen produces placeholder notifications for when the portal
// backend cannot be reached.
package mockgen

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/cristianoliveira/portal-notify/internal/domain"
	"github.com/cristianoliveira/portal-notify/internal/ports"
)

// MaxAge bounds how far back generated createdAt values reach.
const MaxAge = 7 * 24 * time.Hour

// readRatio is the share of generated entries that start out read.
const readRatio = 0.4

var catalog = []struct {
	typ    domain.Type
	titles []string
}{
	{domain.TypeHR, []string{
		"Leave request approved by Manager",
		"New onboarding form submitted",
		"Employee evaluation due in 3 days",
		"Training session scheduled for next week",
		"Performance review completed",
	}},
	{domain.TypeFinance, []string{
		"Expense report requires approval",
		"Budget update for Q1 2026",
		"Invoice #1234 has been processed",
		"Purchase order pending review",
		"Monthly financial report available",
	}},
	{domain.TypeForms, []string{
		"New form submission: Travel Request",
		"Form #567 needs your review",
		"Equipment request approved",
		"Access request pending approval",
		"Support ticket escalated",
	}},
	{domain.TypeApproval, []string{
		"Pending approval: Leave Request from John",
		"Action required: Expense report #890",
		"Review needed: New hire onboarding",
		"Approval deadline approaching: PO #456",
	}},
	{domain.TypeSystem, []string{
		"System maintenance scheduled for Sunday",
		"New features available in the portal",
		"Password expires in 7 days",
		"Profile update reminder",
	}},
}

// Generator builds a fresh randomized list on every call. It is safe for
// concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

var _ ports.FallbackGenerator = (*Generator)(nil)

// Option customizes a Generator.
type Option func(*Generator)

// WithRand fixes the random source, making output reproducible.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rnd = r }
}

// WithClock sets the reference time createdAt offsets are taken from.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New returns a Generator seeded from the runtime's random source.
func New(opts ...Option) *Generator {
	g := &Generator{
		rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns one entry per catalog title, covering every known type,
// sorted by createdAt descending. IDs are notif-1..notif-N in catalog order.
func (g *Generator) Generate() []domain.Notification {
	g.mu.Lock()
	defer g.mu.Unlock()

	departments := domain.KnownDepartments()
	priorities := domain.KnownPriorities()
	now := g.now()

	var out []domain.Notification
	id := 1
	for _, entry := range catalog {
		for _, title := range entry.titles {
			age := time.Duration(g.rnd.Int64N(int64(MaxAge)))
			out = append(out, domain.Notification{
				ID:         fmt.Sprintf("notif-%d", id),
				Type:       entry.typ,
				Department: departments[g.rnd.IntN(len(departments))],
				Title:      title,
				Message:    "This is a detailed description for: " + title,
				Read:       g.rnd.Float64() < readRatio,
				CreatedAt:  now.Add(-age),
				Priority:   priorities[g.rnd.IntN(len(priorities))],
			})
			id++
		}
	}
	return domain.SortByCreatedAt(out, domain.SortOrderDesc)
}

// Noop generates nothing. Wiring it in place of Generator disables the
// offline placeholder data.
type Noop struct{}

var _ ports.FallbackGenerator = Noop{}

// Generate returns an empty, non-nil list.
func (Noop) Generate() []domain.Notification {
	return []domain.Notification{}
}
