package store

import (
	"time"

	"emovoice/internal/emotion"
)

// Recording is a completed voice capture with its analyzed emotion.
// Immutable once saved; removed only by ClearAllData.
type Recording struct {
	ID        string
	Date      time.Time
	Duration  string // "M:SS"
	Emotion   emotion.Emotion
	Intensity float64 // [0,1]
	AudioURI  string  // optional
}

// Mood is one entry of the append-only mood log, written after each analysis.
type Mood struct {
	ID        string
	Primary   emotion.Emotion
	Secondary emotion.Emotion // optional, may be empty
	Intensity float64
	Timestamp time.Time
}

// ReportStatus tracks the sharing lifecycle of a report.
type ReportStatus string

const (
	StatusPending    ReportStatus = "Pending"
	StatusShared     ReportStatus = "Shared"
	StatusDownloaded ReportStatus = "Downloaded"
)

// TimeRange selects the window a report covers.
type TimeRange string

const (
	RangeWeek   TimeRange = "week"
	RangeMonth  TimeRange = "month"
	RangeCustom TimeRange = "custom"
)

// Report is an aggregated emotion summary over a time window. Emotions holds
// an intensity series for every emotion, empty when nothing matched.
// Recipient and Status are the only fields mutated after creation.
type Report struct {
	ID        string
	Date      time.Time
	Recipient string
	Status    ReportStatus
	TimeRange TimeRange
	Emotions  map[emotion.Emotion][]float64
}

// EmptyEmotions returns a map with an empty series for each of the seven
// emotions, the invariant shape of Report.Emotions.
func EmptyEmotions() map[emotion.Emotion][]float64 {
	m := make(map[emotion.Emotion][]float64, 7)
	for _, e := range emotion.All() {
		m[e] = []float64{}
	}
	return m
}

// Setting is one key-value preference row.
type Setting struct {
	Key   string
	Value string
}
