package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"emovoice/internal/api"
	"emovoice/internal/export"
	"emovoice/internal/report"
	"emovoice/internal/store"
)

var viewNames = []string{"Home", "Record", "Insights", "Reports", "Settings"}

// exportMoodLimit bounds how much of the mood log export and sync read.
const exportMoodLimit = 10000

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	client *api.Client
	log    *zap.SugaredLogger
	userID string

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	home     homeModel
	record   recordModel
	insights insightsModel
	reports  reportsModel
	settings settingsModel

	help   help.Model
	status string
	isErr  bool
}

func NewApp(s *store.Store, client *api.Client, gen *report.Generator, userID, capturesDir string, log *zap.SugaredLogger) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		client:     client,
		log:        log,
		userID:     userID,
		activeView: viewHome,
		home:       newHomeModel(s),
		record:     newRecordModel(s, client, capturesDir),
		insights:   newInsightsModel(s, client, userID),
		reports:    newReportsModel(s, gen),
		settings:   newSettingsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return a.home.refresh()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.home.setSize(a.width, contentHeight)
		a.record.setSize(a.width, contentHeight)
		a.insights.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Sync):
			a.setStatus("Syncing…", false)
			return a, a.doSync()
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Home):
			a.activeView = viewHome
			return a, a.home.refresh()
		case key.Matches(msg, keys.Record):
			a.activeView = viewRecord
			return a, nil
		case key.Matches(msg, keys.Insights):
			a.activeView = viewInsights
			return a, a.insights.refresh()
		case key.Matches(msg, keys.Reports):
			a.activeView = viewReports
			return a, a.reports.refresh()
		case key.Matches(msg, keys.Settings):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 5
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		var cmd tea.Cmd
		a.record, cmd = a.record.update(msg)
		return a, cmd

	case moodAnalyzedMsg:
		switch {
		case msg.err != nil:
			a.setStatus(fmt.Sprintf("Capture failed: %v", msg.err), true)
		case msg.offline:
			a.setStatus("Saved with local estimate (service unreachable)", false)
		default:
			a.setStatus("Capture saved: "+string(msg.mood.Primary), false)
		}
		var cmd tea.Cmd
		a.record, cmd = a.record.update(msg)
		return a, tea.Batch(cmd, a.home.refresh())

	case reportGeneratedMsg:
		if msg.err != nil {
			a.setStatus(fmt.Sprintf("Report failed: %v", msg.err), true)
		} else {
			a.setStatus("Report generated", false)
		}
		var cmd tea.Cmd
		a.reports, cmd = a.reports.update(msg)
		return a, cmd

	case reportSharedMsg:
		switch {
		case msg.err != nil:
			a.setStatus(fmt.Sprintf("Share pending delivery: %v", msg.err), true)
		case msg.delivered:
			a.setStatus("Report shared with "+msg.recipient, false)
		default:
			a.setStatus("Report not found", true)
		}
		var cmd tea.Cmd
		a.reports, cmd = a.reports.update(msg)
		return a, cmd

	case syncDoneMsg:
		if msg.err != nil {
			a.setStatus(fmt.Sprintf("Sync failed: %v", msg.err), true)
		} else {
			a.setStatus("Sync complete", false)
		}
		return a, nil

	case dataClearedMsg:
		if msg.err != nil {
			a.setStatus(fmt.Sprintf("Clear failed: %v", msg.err), true)
		} else {
			a.setStatus("All data cleared", false)
		}
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, tea.Batch(cmd, a.home.refresh())

	case exportDoneMsg:
		if msg.err != nil {
			a.setStatus(fmt.Sprintf("Export error: %v", msg.err), true)
		} else {
			a.setStatus("Exported to "+msg.path, false)
		}
		a.exportPicking = false
		return a, nil

	case statusMsg:
		a.setStatus(msg.text, msg.isErr)
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.isErr = isErr
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewHome:
		a.home, cmd = a.home.update(msg)
	case viewRecord:
		a.record, cmd = a.record.update(msg)
	case viewInsights:
		a.insights, cmd = a.insights.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewReports:
		return a.reports.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewHome:
		return a.home.refresh()
	case viewInsights:
		return a.insights.refresh()
	case viewReports:
		return a.reports.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewHome:
		content = a.home.view()
	case viewRecord:
		content = a.record.view()
	case viewInsights:
		content = a.insights.view()
	case viewReports:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("emovoice")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.isErr {
			status = dangerStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Capture indicator in footer
	captureInfo := ""
	if a.record.recording {
		captureInfo = dangerStyle.Render(" ● " + formatClock(a.record.currentElapsed()))
	}

	left := helpStyle.Render(helpView)
	right := captureInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := mutedStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	st := a.store
	return func() tea.Msg {
		recordings := st.ListRecordings()
		moods := st.ListMoods(exportMoodLimit)

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("emovoice-export-%s.csv", dateStr))
			if err := export.ToCSV(recordings, moods, path); err != nil {
				return exportDoneMsg{err: err}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("emovoice-export-%s.json", dateStr))
			if err := export.ToJSON(recordings, moods, path); err != nil {
				return exportDoneMsg{err: err}
			}
		}

		return exportDoneMsg{path: path}
	}
}

// doSync pushes local counts to the remote service. Best effort, a failure
// only surfaces in the status line.
func (a App) doSync() tea.Cmd {
	st, client, userID := a.store, a.client, a.userID
	return func() tea.Msg {
		data := map[string]any{
			"recordings": len(st.ListRecordings()),
			"moods":      len(st.ListMoods(exportMoodLimit)),
			"reports":    len(st.ListReports()),
			"syncedAt":   time.Now().UTC().Format(time.RFC3339),
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		ok, err := client.SyncData(ctx, userID, data)
		return syncDoneMsg{ok: ok, err: err}
	}
}
