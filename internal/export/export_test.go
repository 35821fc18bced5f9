package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"emovoice/internal/emotion"
	"emovoice/internal/store"
)

func sampleData() ([]store.Recording, []store.Mood) {
	now := time.Now().UTC()

	recordings := []store.Recording{
		{
			ID:        "r1",
			Date:      now.Add(-1 * time.Hour),
			Duration:  "1:30",
			Emotion:   emotion.Joy,
			Intensity: 0.8,
			AudioURI:  "file:///tmp/r1.m4a",
		},
		{
			ID:        "r2",
			Date:      now.Add(-30 * time.Minute),
			Duration:  "0:45",
			Emotion:   emotion.Sadness,
			Intensity: 0.6,
		},
	}

	moods := []store.Mood{
		{ID: "m1", Primary: emotion.Joy, Secondary: emotion.Calm, Intensity: 0.7, Timestamp: now},
	}

	return recordings, moods
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	recordings, moods := sampleData()
	path := filepath.Join(t.TempDir(), "test.csv")

	err := ToCSV(recordings, moods, path)
	if err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 2 recordings + 1 mood
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	header := records[0]
	expectedHeader := []string{"Kind", "ID", "Date", "Duration", "Emotion", "Secondary", "Intensity", "Audio"}
	for i, h := range expectedHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	row := records[1]
	if row[0] != "recording" || row[1] != "r1" {
		t.Fatalf("unexpected first row: %v", row)
	}
	if row[4] != "Joy" || row[6] != "0.80" {
		t.Fatalf("emotion/intensity mangled: %v", row)
	}

	moodRow := records[3]
	if moodRow[0] != "mood" || moodRow[4] != "Joy" || moodRow[5] != "Calm" {
		t.Fatalf("unexpected mood row: %v", moodRow)
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	err := ToCSV(nil, nil, path)
	if err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	r := csv.NewReader(f)
	records, _ := r.ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(nil, nil, "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	recordings := []store.Recording{
		{
			ID:       `id with "quotes"`,
			Date:     time.Now(),
			Duration: "0:10",
			Emotion:  emotion.Calm,
			AudioURI: `path with, comma`,
		},
	}
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := ToCSV(recordings, nil, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("CSV should be valid even with special chars: %v", err)
	}
	if records[1][1] != `id with "quotes"` {
		t.Fatalf("id mangled: %q", records[1][1])
	}
	if records[1][7] != `path with, comma` {
		t.Fatalf("audio uri mangled: %q", records[1][7])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	recordings, moods := sampleData()
	path := filepath.Join(t.TempDir(), "test.json")

	err := ToJSON(recordings, moods, path)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(result.Recordings) != 2 {
		t.Fatalf("recordings = %d, want 2", len(result.Recordings))
	}
	if len(result.Moods) != 1 {
		t.Fatalf("moods = %d, want 1", len(result.Moods))
	}
	if result.ExportedAt == "" {
		t.Fatal("exported_at should not be empty")
	}

	r := result.Recordings[0]
	if r.ID != "r1" || r.Emotion != "Joy" || r.Intensity != 0.8 {
		t.Fatalf("unexpected recording: %+v", r)
	}
	if r.Duration != "1:30" {
		t.Fatalf("Duration = %q, want 1:30", r.Duration)
	}

	m := result.Moods[0]
	if m.Primary != "Joy" || m.Secondary != "Calm" {
		t.Fatalf("unexpected mood: %+v", m)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	err := ToJSON(nil, nil, path)
	if err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if result.Recordings != nil || result.Moods != nil {
		t.Fatal("empty export should have null collections")
	}
}

func TestToJSONBadPath(t *testing.T) {
	err := ToJSON(nil, nil, "/nonexistent/dir/file.json")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(nil, nil, path)

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n") {
		t.Fatal("JSON should be pretty-printed with newlines")
	}
	if !strings.Contains(string(data), "  ") {
		t.Fatal("JSON should be indented with spaces")
	}
}

func TestToJSONValidTimestamps(t *testing.T) {
	recordings, moods := sampleData()
	path := filepath.Join(t.TempDir(), "ts.json")
	ToJSON(recordings, moods, path)

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}
	for _, r := range result.Recordings {
		if _, err := time.Parse(time.RFC3339, r.Date); err != nil {
			t.Fatalf("date is not valid RFC3339: %q", r.Date)
		}
	}
	for _, m := range result.Moods {
		if _, err := time.Parse(time.RFC3339, m.Timestamp); err != nil {
			t.Fatalf("timestamp is not valid RFC3339: %q", m.Timestamp)
		}
	}
}
