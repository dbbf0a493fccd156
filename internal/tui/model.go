// Package tui is the interactive notification center.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/portal-notify/internal/domain"
	"github.com/cristianoliveira/portal-notify/internal/errors"
	"github.com/cristianoliveira/portal-notify/internal/format"
	"github.com/cristianoliveira/portal-notify/internal/store"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	chromeLines   = 6
	statusTTL     = 5 * time.Second
)

// Store is the part of *store.Store the TUI drives.
type Store interface {
	Snapshot() store.Snapshot
	Subscribe(buffer int) (<-chan store.Update, func())
	Refresh(ctx context.Context) store.Snapshot
	MarkAsRead(ctx context.Context, id string) store.MutationResult
	MarkAllAsRead(ctx context.Context) store.MutationResult
	Delete(ctx context.Context, id string) error
}

// Tab is one category filter of the list.
type Tab struct {
	Title string
	// Type is empty for the unfiltered tab.
	Type domain.Type
}

// DefaultTabs mirrors the bell dropdown: everything, then HR, Finance and
// Forms.
func DefaultTabs() []Tab {
	return []Tab{
		{Title: "All"},
		{Title: "HR", Type: domain.TypeHR},
		{Title: "Finance", Type: domain.TypeFinance},
		{Title: "Forms", Type: domain.TypeForms},
	}
}

// Options configures a Model.
type Options struct {
	Tabs          []Tab
	BadgeOverflow int
	Now           func() time.Time
}

// Model is the bubbletea model.
type Model struct {
	ctx         context.Context
	store       Store
	updates     <-chan store.Update
	unsubscribe func()

	snap     store.Snapshot
	tabs     []Tab
	tab      int
	cursor   int
	offset   int
	query    string
	search   textinput.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
	status   *errors.TUIHandler
	overflow int
	now      func() time.Time
	width    int
	height   int
}

// NewModel subscribes to s. Call Close when the program exits.
func NewModel(ctx context.Context, s Store, opts Options) *Model {
	if len(opts.Tabs) == 0 {
		opts.Tabs = DefaultTabs()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	search := textinput.New()
	search.Placeholder = "search title or message"
	search.Prompt = "/ "

	updates, unsubscribe := s.Subscribe(16)
	return &Model{
		ctx:         ctx,
		store:       s,
		updates:     updates,
		unsubscribe: unsubscribe,
		snap:        s.Snapshot(),
		tabs:        opts.Tabs,
		search:      search,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:        help.New(),
		keys:        defaultKeyMap(),
		status:      errors.NewTUIHandler(statusTTL),
		overflow:    opts.BadgeOverflow,
		now:         opts.Now,
		width:       defaultWidth,
		height:      defaultHeight,
	}
}

// Close releases the store subscription.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), m.spinner.Tick)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.applyUpdate(store.Update(msg))
		return m, waitForUpdate(m.updates)
	case updatesClosedMsg:
		return m, nil
	case mutationMsg:
		errors.ReportLocalMutation(m.status, msg.success, msg.result.RemoteErr)
		return m, nil
	case deleteMsg:
		if msg.err != nil {
			m.status.Error("delete failed: " + errors.Describe(msg.err))
		} else {
			m.status.Success("Deleted " + msg.id)
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.clampCursor()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if m.search.Focused() {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) applyUpdate(u store.Update) {
	wasFallback := m.snap.Source == store.SourceFallback
	m.snap = u.Snapshot
	if u.Event == store.EventFetched {
		switch {
		case m.snap.Source == store.SourceFallback && !wasFallback:
			m.status.Warning("backend unreachable; showing offline data")
		case m.snap.Source == store.SourceBackend && wasFallback:
			m.status.Info("backend reachable again")
		}
	}
	m.clampCursor()
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.Blur()
		m.search.SetValue("")
		m.query = ""
		m.clampCursor()
		return m, nil
	case tea.KeyEnter:
		m.search.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.query = m.search.Value()
	m.cursor, m.offset = 0, 0
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampCursor()
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()
	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % len(m.tabs)
		m.cursor, m.offset = 0, 0
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + len(m.tabs) - 1) % len(m.tabs)
		m.cursor, m.offset = 0, 0
	case key.Matches(msg, m.keys.MarkRead):
		if n, ok := m.Selected(); ok {
			return m, markReadCmd(m.ctx, m.store, n.ID)
		}
	case key.Matches(msg, m.keys.MarkAll):
		return m, markAllCmd(m.ctx, m.store)
	case key.Matches(msg, m.keys.Delete):
		if n, ok := m.Selected(); ok {
			return m, deleteCmd(m.ctx, m.store, n.ID)
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, refreshCmd(m.ctx, m.store)
	case key.Matches(msg, m.keys.Search):
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Clear):
		m.search.SetValue("")
		m.query = ""
		m.clampCursor()
	}
	return m, nil
}

// Visible returns the entries shown for the current tab and search query.
func (m *Model) Visible() []domain.Notification {
	return domain.FilterNotifications(m.snap.Notifications, domain.Filter{
		Type:  m.tabs[m.tab].Type,
		Query: m.query,
	})
}

// Selected returns the entry under the cursor.
func (m *Model) Selected() (domain.Notification, bool) {
	visible := m.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return domain.Notification{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) listHeight() int {
	h := m.height - chromeLines
	if h < 1 {
		return 1
	}
	return h
}

func (m *Model) clampCursor() {
	n := len(m.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

// badge renders the header bell.
func (m *Model) badge() string {
	return format.Bell(m.snap.UnreadCount, m.overflow)
}
