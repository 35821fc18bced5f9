package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"emovoice/internal/store"
)

type jsonExport struct {
	ExportedAt string          `json:"exported_at"`
	Recordings []jsonRecording `json:"recordings"`
	Moods      []jsonMood      `json:"moods"`
}

type jsonRecording struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	Duration  string  `json:"duration"`
	Emotion   string  `json:"emotion"`
	Intensity float64 `json:"intensity"`
	AudioURI  string  `json:"audio_uri,omitempty"`
}

type jsonMood struct {
	ID        string  `json:"id"`
	Primary   string  `json:"primary"`
	Secondary string  `json:"secondary,omitempty"`
	Intensity float64 `json:"intensity"`
	Timestamp string  `json:"timestamp"`
}

func ToJSON(recordings []store.Recording, moods []store.Mood, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for _, r := range recordings {
		export.Recordings = append(export.Recordings, jsonRecording{
			ID:        r.ID,
			Date:      r.Date.Local().Format(time.RFC3339),
			Duration:  r.Duration,
			Emotion:   string(r.Emotion),
			Intensity: r.Intensity,
			AudioURI:  r.AudioURI,
		})
	}

	for _, m := range moods {
		export.Moods = append(export.Moods, jsonMood{
			ID:        m.ID,
			Primary:   string(m.Primary),
			Secondary: string(m.Secondary),
			Intensity: m.Intensity,
			Timestamp: m.Timestamp.Local().Format(time.RFC3339),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
