package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"emovoice/internal/emotion"
	"emovoice/internal/report"
	"emovoice/internal/store"
)

const dateLayout = "2006-01-02"

// reportsModel lists generated reports, charts the selected one and hosts
// the generate and share forms.
type reportsModel struct {
	st  *store.Store
	gen *report.Generator

	reports []store.Report
	cursor  int

	chart barchart.Model

	formActive bool
	form       *huh.Form
	formType   string // "generate", "share"

	// Form field pointers (survive value copies)
	formRange     *string
	formStart     *string
	formEnd       *string
	formRecipient *string

	width  int
	height int
}

func newReportsModel(st *store.Store, gen *report.Generator) reportsModel {
	return reportsModel{
		st:            st,
		gen:           gen,
		chart:         barchart.New(60, 12),
		formRange:     new(string),
		formStart:     new(string),
		formEnd:       new(string),
		formRecipient: new(string),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r reportsModel) refresh() tea.Cmd {
	st := r.st
	return func() tea.Msg {
		return reportsMsg{reports: st.ListReports()}
	}
}

func (r reportsModel) selected() *store.Report {
	if r.cursor < 0 || r.cursor >= len(r.reports) {
		return nil
	}
	return &r.reports[r.cursor]
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	if r.formActive {
		return r.updateForm(msg)
	}

	switch msg := msg.(type) {
	case reportsMsg:
		r.reports = msg.reports
		if r.cursor >= len(r.reports) {
			r.cursor = max(len(r.reports)-1, 0)
		}
		r.buildChart()
	case reportGeneratedMsg:
		if msg.err == nil {
			r.cursor = 0
		}
		return r, r.refresh()
	case reportSharedMsg:
		return r, r.refresh()
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if r.cursor > 0 {
				r.cursor--
				r.buildChart()
			}
		case "down", "j":
			if r.cursor < len(r.reports)-1 {
				r.cursor++
				r.buildChart()
			}
		case "g":
			return r.showGenerateForm()
		case "h":
			if r.selected() != nil {
				return r.showShareForm()
			}
		case "r":
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r reportsModel) showGenerateForm() (reportsModel, tea.Cmd) {
	*r.formRange = string(store.RangeWeek)
	*r.formStart = ""
	*r.formEnd = ""
	r.formType = "generate"

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Time Range").
				Options(
					huh.NewOption("Last 7 days", string(store.RangeWeek)),
					huh.NewOption("Last 30 days", string(store.RangeMonth)),
					huh.NewOption("Custom", string(store.RangeCustom)),
				).
				Value(r.formRange),
			huh.NewInput().Title("Start (YYYY-MM-DD, custom only)").Value(r.formStart),
			huh.NewInput().Title("End (YYYY-MM-DD, custom only)").Value(r.formEnd),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func (r reportsModel) showShareForm() (reportsModel, tea.Cmd) {
	*r.formRecipient = ""
	r.formType = "share"

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Recipient").Value(r.formRecipient),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func (r reportsModel) updateForm(msg tea.Msg) (reportsModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			r.formActive = false
			return r, nil
		}
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}

	if r.form.State == huh.StateCompleted {
		r.formActive = false
		switch r.formType {
		case "generate":
			return r, generateCmd(r.gen, store.TimeRange(*r.formRange), *r.formStart, *r.formEnd)
		case "share":
			if sel := r.selected(); sel != nil && *r.formRecipient != "" {
				return r, shareCmd(r.gen, sel.ID, *r.formRecipient)
			}
		}
		return r, nil
	}

	return r, cmd
}

func generateCmd(gen *report.Generator, timeRange store.TimeRange, start, end string) tea.Cmd {
	return func() tea.Msg {
		var startAt, endAt *time.Time
		if timeRange == store.RangeCustom {
			if t, err := time.Parse(dateLayout, start); err == nil {
				startAt = &t
			}
			if t, err := time.Parse(dateLayout, end); err == nil {
				endAt = &t
			}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		rep, err := gen.Generate(ctx, timeRange, startAt, endAt)
		return reportGeneratedMsg{report: rep, err: err}
	}
}

func shareCmd(gen *report.Generator, id, recipient string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		delivered, err := gen.Share(ctx, id, recipient)
		return reportSharedMsg{id: id, recipient: recipient, delivered: delivered, err: err}
	}
}

func (r *reportsModel) buildChart() {
	chartWidth := max(r.width-8, 40)
	chartHeight := 10
	if r.height > 30 {
		chartHeight = 14
	}
	r.chart = barchart.New(chartWidth, chartHeight)

	sel := r.selected()
	if sel == nil {
		return
	}
	avgs := report.Averages(*sel)

	var bars []barchart.BarData
	for _, e := range emotion.All() {
		style := lipgloss.NewStyle().Foreground(emotionColor(e))
		bars = append(bars, barchart.BarData{
			Label: string(e)[:3],
			Values: []barchart.BarValue{{
				Name:  string(e),
				Value: avgs[string(e)] * 100,
				Style: style,
			}},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func statusStyle(s store.ReportStatus) lipgloss.Style {
	switch s {
	case store.StatusShared:
		return okStyle
	case store.StatusDownloaded:
		return warnStyle
	default:
		return mutedStyle
	}
}

func (r reportsModel) view() string {
	if r.formActive && r.form != nil {
		title := titleStyle.Render("Generate Report")
		if r.formType == "share" {
			title = titleStyle.Render("Share Report")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", r.form.View())
		return panelStyle.Width(r.width - 4).Render(content)
	}

	var b strings.Builder

	b.WriteString(sectionTitleStyle.Render("Reports"))
	b.WriteString("\n")
	if len(r.reports) == 0 {
		b.WriteString(mutedStyle.Render("no reports yet, press g to generate one"))
		b.WriteString("\n")
		return b.String()
	}

	for i := 0; i < min(len(r.reports), 8); i++ {
		rep := r.reports[i]
		cursor := "  "
		if i == r.cursor {
			cursor = selectedStyle.Render("> ")
		}
		line := fmt.Sprintf("%s%-7s %s", cursor, rep.TimeRange, mutedStyle.Render(formatDay(rep.Date)))
		line += "  " + statusStyle(rep.Status).Render(string(rep.Status))
		if rep.Recipient != "" {
			line += mutedStyle.Render(" → " + truncate(rep.Recipient, 20))
		}
		b.WriteString(line + "\n")
	}

	if sel := r.selected(); sel != nil {
		b.WriteString(sectionTitleStyle.Render("Average Intensity (%)"))
		b.WriteString("\n")
		b.WriteString(r.chart.View())
		b.WriteString("\n")
		b.WriteString(r.renderLegend(*sel))
	}

	return b.String()
}

func (r reportsModel) renderLegend(rep store.Report) string {
	avgs := report.Averages(rep)
	var parts []string
	for _, e := range emotion.All() {
		parts = append(parts, fmt.Sprintf("%s %s %.0f%%", emotionDot(e), string(e), avgs[string(e)]*100))
	}
	return mutedStyle.Render(strings.Join(parts, "  "))
}
