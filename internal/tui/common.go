package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"emovoice/internal/api"
	"emovoice/internal/store"
)

type viewState int

const (
	viewHome viewState = iota
	viewRecord
	viewInsights
	viewReports
	viewSettings
)

// tickMsg drives the capture clock once per second.
type tickMsg time.Time

// homeDataMsg carries a refreshed snapshot for the home screen.
type homeDataMsg struct {
	recordings []store.Recording
	moods      []store.Mood
}

// moodAnalyzedMsg is delivered when a stopped capture finishes analysis.
type moodAnalyzedMsg struct {
	recording store.Recording
	mood      store.Mood
	offline   bool
	err       error
}

type insightsMsg struct {
	insights []api.Insight
	offline  bool
}

type reportsMsg struct {
	reports []store.Report
}

type reportGeneratedMsg struct {
	report store.Report
	err    error
}

type reportSharedMsg struct {
	id        string
	recipient string
	delivered bool
	err       error
}

type syncDoneMsg struct {
	ok  bool
	err error
}

type exportDoneMsg struct {
	path string
	err  error
}

type dataClearedMsg struct {
	err error
}

type statusMsg struct {
	text  string
	isErr bool
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// formatClock renders an elapsed capture as M:SS.
func formatClock(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func formatDay(t time.Time) string {
	return t.Local().Format("Jan 2 15:04")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
