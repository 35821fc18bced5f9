package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"emovoice/internal/store"
)

// settingsModel shows stored preferences, edits them through a form and
// hosts the clear-all-data confirmation.
type settingsModel struct {
	st *store.Store

	settings []store.Setting

	formActive bool
	form       *huh.Form
	formType   string // "edit", "clear"

	formTheme   *string
	formUserID  *string
	formRange   *string
	formSync    *string
	formConfirm *bool

	width  int
	height int
}

func newSettingsModel(st *store.Store) settingsModel {
	return settingsModel{
		st:          st,
		formTheme:   new(string),
		formUserID:  new(string),
		formRange:   new(string),
		formSync:    new(string),
		formConfirm: new(bool),
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	st := s.st
	return func() tea.Msg {
		settings, _ := st.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) getVal(key, fallback string) string {
	for _, set := range s.settings {
		if set.Key == key {
			return set.Value
		}
	}
	return fallback
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
	case dataClearedMsg:
		return s, s.refresh()
	case tea.KeyMsg:
		switch msg.String() {
		case "e", "enter":
			return s.showEditForm()
		case "d":
			return s.showClearForm()
		case "r":
			return s, s.refresh()
		}
	}
	return s, nil
}

func (s settingsModel) showEditForm() (settingsModel, tea.Cmd) {
	*s.formTheme = s.getVal("theme", "dark")
	*s.formUserID = s.getVal("user_id", "local")
	*s.formRange = s.getVal("default_time_range", string(store.RangeWeek))
	*s.formSync = s.getVal("sync_enabled", "false")
	s.formType = "edit"

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
				).
				Value(s.formTheme),
			huh.NewInput().Title("User ID").Value(s.formUserID),
			huh.NewSelect[string]().
				Title("Default Report Range").
				Options(
					huh.NewOption("Week", string(store.RangeWeek)),
					huh.NewOption("Month", string(store.RangeMonth)),
				).
				Value(s.formRange),
			huh.NewSelect[string]().
				Title("Background Sync").
				Options(
					huh.NewOption("Enabled", "true"),
					huh.NewOption("Disabled", "false"),
				).
				Value(s.formSync),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) showClearForm() (settingsModel, tea.Cmd) {
	*s.formConfirm = false
	s.formType = "clear"

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete all recordings, moods and reports?").
				Description("Preferences are kept. This cannot be undone.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(s.formConfirm),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		switch s.formType {
		case "edit":
			st := s.st
			theme, userID, rng, sync := *s.formTheme, *s.formUserID, *s.formRange, *s.formSync
			return s, func() tea.Msg {
				st.SetSetting("theme", theme)
				st.SetSetting("user_id", userID)
				st.SetSetting("default_time_range", rng)
				st.SetSetting("sync_enabled", sync)
				settings, _ := st.GetAllSettings()
				return settingsDataMsg{settings: settings}
			}
		case "clear":
			if *s.formConfirm {
				st := s.st
				return s, func() tea.Msg {
					return dataClearedMsg{err: st.ClearAllData()}
				}
			}
		}
		return s, nil
	}

	return s, cmd
}

func (s settingsModel) view() string {
	if s.formActive && s.form != nil {
		title := titleStyle.Render("Edit Settings")
		if s.formType == "clear" {
			title = titleStyle.Render("Clear All Data")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View())
		return panelStyle.Width(s.width - 4).Render(content)
	}

	var b strings.Builder
	b.WriteString(sectionTitleStyle.Render("Settings"))
	b.WriteString("\n")
	if len(s.settings) == 0 {
		b.WriteString(mutedStyle.Render("loading…"))
		b.WriteString("\n")
	}
	for _, set := range s.settings {
		b.WriteString("  " + set.Key + ": " + selectedStyle.Render(set.Value) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("e edit  d clear all data"))
	b.WriteString("\n")
	return b.String()
}
