package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/portal-notify/internal/domain"
	"github.com/cristianoliveira/portal-notify/internal/errors"
	"github.com/cristianoliveira/portal-notify/internal/format"
	"github.com/cristianoliveira/portal-notify/internal/store"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("12"))
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	selectedStyle  = lipgloss.NewStyle().Reverse(true)
	unreadStyle    = lipgloss.NewStyle().Bold(true)
	readStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dimStyle       = lipgloss.NewStyle().Faint(true)
	priorityStyles = map[domain.Priority]lipgloss.Style{
		domain.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		domain.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		domain.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
	statusStyles = map[errors.MessageType]lipgloss.Style{
		errors.MessageTypeError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		errors.MessageTypeWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		errors.MessageTypeInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		errors.MessageTypeSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

const (
	ageWidth      = 4
	typeWidth     = 8
	priorityWidth = 6
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderHeader() string {
	left := titleStyle.Render("Notifications") + "  " + m.badge()
	var right string
	switch {
	case m.snap.IsLoading:
		right = m.spinner.View() + " loading"
	case m.snap.Source == store.SourceFallback:
		right = dimStyle.Render("offline data")
	case !m.snap.LastFetch.IsZero():
		age := format.Age(m.now(), m.snap.LastFetch)
		if age == "now" {
			right = dimStyle.Render("updated just now")
		} else {
			right = dimStyle.Render("updated " + age + " ago")
		}
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) renderTabs() string {
	parts := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		list := m.snap.Notifications
		if tab.Type != "" {
			list = domain.FilterByType(list, tab.Type)
		}
		label := tab.Title
		if unread := domain.CountUnread(list); unread > 0 {
			label = fmt.Sprintf("%s (%s)", tab.Title, format.BadgeText(unread, m.overflow))
		}
		if i == m.tab {
			parts[i] = activeTabStyle.Render(label)
		} else {
			parts[i] = tabStyle.Render(label)
		}
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderList() string {
	visible := m.Visible()
	if len(visible) == 0 {
		if m.query != "" {
			return dimStyle.Render("No notifications match your search.")
		}
		return dimStyle.Render("No notifications")
	}

	h := m.listHeight()
	end := m.offset + h
	if end > len(visible) {
		end = len(visible)
	}
	now := m.now()
	titleWidth := m.width - ageWidth - typeWidth - priorityWidth - 10
	if titleWidth < 10 {
		titleWidth = 10
	}

	rows := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		n := visible[i]
		title := format.Truncate(n.Title, titleWidth)
		title += strings.Repeat(" ", max(0, titleWidth-lipgloss.Width(title)))
		style := readStyle
		if !n.Read {
			style = unreadStyle
		}
		prio := priorityStyles[n.Priority].Render(fmt.Sprintf("%-*s", priorityWidth, n.Priority))
		row := fmt.Sprintf("%s %s  %*s  %-*s  %s",
			format.ReadMarker(n.Read),
			style.Render(title),
			ageWidth, format.Age(now, n.CreatedAt),
			typeWidth, format.Truncate(n.Type.String(), typeWidth),
			prio)
		if i == m.cursor {
			row = selectedStyle.Render(row)
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderFooter() string {
	if m.search.Focused() {
		return m.search.View()
	}
	if msg, ok := m.status.Latest(); ok {
		return statusStyles[msg.Type].Render(msg.Text)
	}
	if m.query != "" {
		return dimStyle.Render(fmt.Sprintf("filter: %q (esc to clear)", m.query))
	}
	return m.help.View(m.keys)
}
