package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"emovoice/internal/api"
	"emovoice/internal/store"
)

// recordModel is the voice capture screen. It runs a single capture at a
// time; stopping the clock hands the capture to the analysis client and
// persists both the recording and its mood entry.
type recordModel struct {
	st          *store.Store
	client      *api.Client
	capturesDir string

	recording bool
	startedAt time.Time
	elapsed   time.Duration
	analyzing bool
	last      *moodAnalyzedMsg

	width  int
	height int
}

func newRecordModel(st *store.Store, client *api.Client, capturesDir string) recordModel {
	return recordModel{st: st, client: client, capturesDir: capturesDir}
}

func (m *recordModel) start() {
	m.recording = true
	m.startedAt = time.Now()
	m.elapsed = 0
	m.last = nil
}

// stop freezes the clock and returns the capture duration.
func (m *recordModel) stop() time.Duration {
	if m.recording {
		m.elapsed = time.Since(m.startedAt)
	}
	m.recording = false
	return m.elapsed
}

func (m *recordModel) currentElapsed() time.Duration {
	if m.recording {
		return time.Since(m.startedAt)
	}
	return m.elapsed
}

func (m recordModel) update(msg tea.Msg) (recordModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case " ", "s":
			if m.analyzing {
				return m, nil
			}
			if m.recording {
				d := m.stop()
				m.analyzing = true
				return m, analyzeCmd(m.st, m.client, m.capturesDir, d)
			}
			m.start()
			return m, tickCmd()
		}
	case tickMsg:
		if m.recording {
			return m, tickCmd()
		}
	case moodAnalyzedMsg:
		m.analyzing = false
		m.last = &msg
	}
	return m, nil
}

// analyzeCmd writes the capture file, sends it for analysis and saves the
// recording together with a mood entry. Analysis falling back to local data
// is reported but never blocks the save.
func analyzeCmd(st *store.Store, client *api.Client, dir string, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		path, err := writeCapture(dir)
		if err != nil {
			return moodAnalyzedMsg{err: fmt.Errorf("write capture: %w", err)}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		mood, aerr := client.AnalyzeAudio(ctx, path)
		rec := store.Recording{
			ID:        uuid.New().String(),
			Date:      time.Now(),
			Duration:  formatClock(d),
			Emotion:   mood.Primary,
			Intensity: mood.Intensity,
			AudioURI:  path,
		}
		if err := st.SaveRecording(rec); err != nil {
			return moodAnalyzedMsg{err: err}
		}
		if err := st.SaveMood(mood); err != nil {
			return moodAnalyzedMsg{recording: rec, mood: mood, err: err}
		}
		return moodAnalyzedMsg{recording: rec, mood: mood, offline: aerr != nil}
	}
}

func writeCapture(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, uuid.New().String()+".m4a")
	if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (m *recordModel) setSize(width, height int) {
	m.width = width
	m.height = height
}

func (m recordModel) view() string {
	var b strings.Builder

	b.WriteString(sectionTitleStyle.Render("Voice Capture"))
	b.WriteString("\n\n")
	b.WriteString(clockStyle.Render(formatClock(m.currentElapsed())))
	b.WriteString("\n\n")

	switch {
	case m.recording:
		b.WriteString(dangerStyle.Render("● recording"))
		b.WriteString(mutedStyle.Render("  press space to stop"))
	case m.analyzing:
		b.WriteString(warnStyle.Render("analyzing capture…"))
	default:
		b.WriteString(mutedStyle.Render("press space to start a capture"))
	}
	b.WriteString("\n")

	if m.last != nil {
		b.WriteString("\n")
		switch {
		case m.last.err != nil:
			b.WriteString(dangerStyle.Render("save failed: " + m.last.err.Error()))
		default:
			b.WriteString(fmt.Sprintf("%s %s  intensity %.0f%%  (%s)",
				emotionDot(m.last.mood.Primary),
				string(m.last.mood.Primary),
				m.last.mood.Intensity*100,
				m.last.recording.Duration))
			if m.last.mood.Secondary != "" {
				b.WriteString(mutedStyle.Render("  secondary: " + string(m.last.mood.Secondary)))
			}
			if m.last.offline {
				b.WriteString("\n" + warnStyle.Render("analysis service unreachable, local estimate used"))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
