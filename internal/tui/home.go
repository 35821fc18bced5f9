package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"emovoice/internal/store"
)

// homeModel shows a snapshot of recent activity: today's captures, the
// latest recordings and the tail of the mood log.
type homeModel struct {
	st *store.Store

	recordings []store.Recording
	moods      []store.Mood

	width  int
	height int
}

func newHomeModel(st *store.Store) homeModel {
	return homeModel{st: st}
}

func (m homeModel) refresh() tea.Cmd {
	st := m.st
	return func() tea.Msg {
		return homeDataMsg{
			recordings: st.ListRecordings(),
			moods:      st.ListMoods(5),
		}
	}
}

func (m homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case homeDataMsg:
		m.recordings = msg.recordings
		m.moods = msg.moods
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *homeModel) setSize(width, height int) {
	m.width = width
	m.height = height
}

func (m homeModel) todayCount() int {
	now := time.Now()
	n := 0
	for _, r := range m.recordings {
		d := r.Date.Local()
		if d.Year() == now.Year() && d.YearDay() == now.YearDay() {
			n++
		}
	}
	return n
}

func (m homeModel) view() string {
	var b strings.Builder

	b.WriteString(sectionTitleStyle.Render("Today"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d capture(s) today, %d total\n", m.todayCount(), len(m.recordings)))

	b.WriteString(sectionTitleStyle.Render("Recent Recordings"))
	b.WriteString("\n")
	if len(m.recordings) == 0 {
		b.WriteString(mutedStyle.Render("no recordings yet, press 2 to capture one"))
		b.WriteString("\n")
	}
	for i := 0; i < min(len(m.recordings), 5); i++ {
		r := m.recordings[i]
		b.WriteString(fmt.Sprintf("%s %-9s %5s  %3.0f%%  %s\n",
			emotionDot(r.Emotion),
			string(r.Emotion),
			r.Duration,
			r.Intensity*100,
			mutedStyle.Render(formatDay(r.Date))))
	}

	b.WriteString(sectionTitleStyle.Render("Mood Log"))
	b.WriteString("\n")
	if len(m.moods) == 0 {
		b.WriteString(mutedStyle.Render("empty"))
		b.WriteString("\n")
	}
	for _, mo := range m.moods {
		line := fmt.Sprintf("%s %-9s", emotionDot(mo.Primary), string(mo.Primary))
		if mo.Secondary != "" {
			line += mutedStyle.Render(" / " + string(mo.Secondary))
		}
		line += fmt.Sprintf("  %3.0f%%  %s", mo.Intensity*100, mutedStyle.Render(formatDay(mo.Timestamp)))
		b.WriteString(line + "\n")
	}

	return b.String()
}
