package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"emovoice/internal/store"
)

func ToCSV(recordings []store.Recording, moods []store.Mood, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Kind", "ID", "Date", "Duration", "Emotion", "Secondary", "Intensity", "Audio"}); err != nil {
		return err
	}

	for _, r := range recordings {
		row := []string{
			"recording",
			r.ID,
			r.Date.Local().Format(time.RFC3339),
			r.Duration,
			string(r.Emotion),
			"",
			fmt.Sprintf("%.2f", r.Intensity),
			r.AudioURI,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	for _, m := range moods {
		row := []string{
			"mood",
			m.ID,
			m.Timestamp.Local().Format(time.RFC3339),
			"",
			string(m.Primary),
			string(m.Secondary),
			fmt.Sprintf("%.2f", m.Intensity),
			"",
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
