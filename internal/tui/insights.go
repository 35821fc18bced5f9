package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"emovoice/internal/api"
	"emovoice/internal/store"
)

// insightsModel lists personalized insights fetched from the remote
// service for the configured user and default time range.
type insightsModel struct {
	st     *store.Store
	client *api.Client
	userID string

	insights []api.Insight
	offline  bool
	loading  bool
	cursor   int

	width  int
	height int
}

func newInsightsModel(st *store.Store, client *api.Client, userID string) insightsModel {
	return insightsModel{st: st, client: client, userID: userID}
}

func (m insightsModel) refresh() tea.Cmd {
	st, client, userID := m.st, m.client, m.userID
	return func() tea.Msg {
		timeRange, err := st.GetSetting("default_time_range")
		if err != nil || timeRange == "" {
			timeRange = string(store.RangeWeek)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		ins, ierr := client.Insights(ctx, userID, store.TimeRange(timeRange))
		return insightsMsg{insights: ins, offline: ierr != nil}
	}
}

func (m insightsModel) update(msg tea.Msg) (insightsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case insightsMsg:
		m.insights = msg.insights
		m.offline = msg.offline
		m.loading = false
		m.cursor = 0
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.refresh()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.insights)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m *insightsModel) setSize(width, height int) {
	m.width = width
	m.height = height
}

func (m insightsModel) view() string {
	var b strings.Builder

	b.WriteString(sectionTitleStyle.Render("Insights"))
	b.WriteString("\n")
	if m.offline {
		b.WriteString(warnStyle.Render("insight service unreachable, showing placeholder"))
		b.WriteString("\n")
	}
	if m.loading {
		b.WriteString(mutedStyle.Render("loading…"))
		return b.String()
	}
	if len(m.insights) == 0 {
		b.WriteString(mutedStyle.Render("no insights yet, press r to fetch"))
		return b.String()
	}

	for i, in := range m.insights {
		cursor := "  "
		title := in.Title
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
			title = selectedStyle.Render(title)
		}
		b.WriteString(cursor + title)
		if in.Category != "" {
			b.WriteString(mutedStyle.Render("  [" + in.Category + "]"))
		}
		b.WriteString("\n")
		if i == m.cursor {
			width := max(m.width-6, 20)
			b.WriteString("    " + truncate(in.Description, width) + "\n")
			if in.ActionText != "" {
				b.WriteString("    " + mutedStyle.Render(in.ActionText) + "\n")
			}
		}
	}
	return b.String()
}
