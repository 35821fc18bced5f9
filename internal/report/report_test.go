package report

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"emovoice/internal/api"
	"emovoice/internal/emotion"
	"emovoice/internal/logging"
	"emovoice/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory(logging.Nop())
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func saveRecording(t *testing.T, s *store.Store, id string, emo emotion.Emotion, intensity float64, age time.Duration) {
	t.Helper()
	err := s.SaveRecording(store.Recording{
		ID:        id,
		Date:      time.Now().Add(-age),
		Duration:  "0:42",
		Emotion:   emo,
		Intensity: intensity,
	})
	if err != nil {
		t.Fatal(err)
	}
}

// ============================================================
// Generate
// ============================================================

func TestGenerateWeek(t *testing.T) {
	s := newTestStore(t)
	g := NewGenerator(s, api.NewClient("", logging.Nop()))

	saveRecording(t, s, "today", emotion.Joy, 0.8, 0)
	saveRecording(t, s, "old", emotion.Sadness, 0.6, 10*24*time.Hour)

	r, err := g.Generate(context.Background(), store.RangeWeek, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.ID == "" {
		t.Fatal("report id should be generated")
	}
	if r.Status != store.StatusPending || r.Recipient != "" || r.TimeRange != store.RangeWeek {
		t.Fatalf("unexpected report: %+v", r)
	}
	if len(r.Emotions) != 7 {
		t.Fatalf("expected all 7 emotion keys, got %d", len(r.Emotions))
	}

	joy := r.Emotions[emotion.Joy]
	if len(joy) != 1 || joy[0] != 0.8 {
		t.Fatalf("expected Joy=[0.8], got %v", joy)
	}
	if len(r.Emotions[emotion.Sadness]) != 0 {
		t.Fatalf("10-day-old sadness should be outside the week window: %v", r.Emotions[emotion.Sadness])
	}
	for _, e := range []emotion.Emotion{emotion.Anger, emotion.Fear, emotion.Surprise, emotion.Disgust, emotion.Calm} {
		if len(r.Emotions[e]) != 0 {
			t.Fatalf("expected empty series for %s", e)
		}
	}

	// The report was persisted.
	stored := s.ListReports()
	if len(stored) != 1 || stored[0].ID != r.ID {
		t.Fatalf("report not persisted: %+v", stored)
	}
}

func TestGenerateMonth(t *testing.T) {
	s := newTestStore(t)
	g := NewGenerator(s, api.NewClient("", logging.Nop()))

	saveRecording(t, s, "recent", emotion.Joy, 0.8, 0)
	saveRecording(t, s, "tenDays", emotion.Sadness, 0.6, 10*24*time.Hour)
	saveRecording(t, s, "tooOld", emotion.Anger, 0.9, 40*24*time.Hour)

	r, err := g.Generate(context.Background(), store.RangeMonth, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Emotions[emotion.Sadness]) != 1 {
		t.Fatal("10-day-old recording should be inside the month window")
	}
	if len(r.Emotions[emotion.Anger]) != 0 {
		t.Fatal("40-day-old recording should be outside the month window")
	}
}

func TestGenerateSeriesOrder(t *testing.T) {
	s := newTestStore(t)
	g := NewGenerator(s, api.NewClient("", logging.Nop()))

	saveRecording(t, s, "older", emotion.Joy, 0.3, 48*time.Hour)
	saveRecording(t, s, "newer", emotion.Joy, 0.9, time.Hour)

	r, err := g.Generate(context.Background(), store.RangeWeek, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	joy := r.Emotions[emotion.Joy]
	if len(joy) != 2 || joy[0] != 0.9 || joy[1] != 0.3 {
		t.Fatalf("series should preserve date-DESC order, got %v", joy)
	}
}

func TestGenerateCustom(t *testing.T) {
	s := newTestStore(t)
	g := NewGenerator(s, api.NewClient("", logging.Nop()))

	saveRecording(t, s, "in", emotion.Calm, 0.5, 5*24*time.Hour)
	saveRecording(t, s, "out", emotion.Calm, 0.7, 20*24*time.Hour)

	start := time.Now().Add(-10 * 24 * time.Hour)
	end := time.Now()
	r, err := g.Generate(context.Background(), store.RangeCustom, &start, &end)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Emotions[emotion.Calm]; len(got) != 1 || got[0] != 0.5 {
		t.Fatalf("custom window filter wrong: %v", got)
	}
}

func TestGenerateCustomMissingBound(t *testing.T) {
	s := newTestStore(t)
	g := NewGenerator(s, api.NewClient("", logging.Nop()))

	start := time.Now().Add(-24 * time.Hour)
	_, err := g.Generate(context.Background(), store.RangeCustom, &start, nil)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	_, err = g.Generate(context.Background(), store.RangeCustom, nil, nil)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if got := s.ListReports(); len(got) != 0 {
		t.Fatal("invalid range should not persist a report")
	}
}

func TestGenerateCustomStartAfterEnd(t *testing.T) {
	s := newTestStore(t)
	g := NewGenerator(s, api.NewClient("", logging.Nop()))

	start := time.Now()
	end := start.Add(-48 * time.Hour)
	_, err := g.Generate(context.Background(), store.RangeCustom, &start, &end)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for start>end, got %v", err)
	}
}

func TestGenerateUnknownRange(t *testing.T) {
	s := newTestStore(t)
	g := NewGenerator(s, api.NewClient("", logging.Nop()))

	_, err := g.Generate(context.Background(), store.TimeRange("year"), nil, nil)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for unknown range, got %v", err)
	}
}

func TestGenerateEmptyStore(t *testing.T) {
	s := newTestStore(t)
	g := NewGenerator(s, api.NewClient("", logging.Nop()))

	r, err := g.Generate(context.Background(), store.RangeWeek, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Emotions) != 7 {
		t.Fatalf("expected 7 keys even with no data, got %d", len(r.Emotions))
	}
	for e, series := range r.Emotions {
		if len(series) != 0 {
			t.Fatalf("expected empty series for %s", e)
		}
	}
}

// ============================================================
// Share
// ============================================================

func TestShareUnknownID(t *testing.T) {
	s := newTestStore(t)
	g := NewGenerator(s, api.NewClient("", logging.Nop()))

	ok, err := g.Share(context.Background(), "missing", "dr.kim@example.com")
	if err != nil {
		t.Fatalf("unknown id should not be an error: %v", err)
	}
	if ok {
		t.Fatal("unknown id should report false")
	}
	if got := s.ListReports(); len(got) != 0 {
		t.Fatal("share of unknown id must not create a row")
	}
}

func TestShareSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := newTestStore(t)
	g := NewGenerator(s, api.NewClient(srv.URL, logging.Nop()))

	r, err := g.Generate(context.Background(), store.RangeWeek, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	ok, err := g.Share(context.Background(), r.ID, "dr.kim@example.com")
	if err != nil || !ok {
		t.Fatalf("expected successful share, got ok=%v err=%v", ok, err)
	}

	updated := s.GetReport(r.ID)
	if updated == nil || updated.Status != store.StatusShared || updated.Recipient != "dr.kim@example.com" {
		t.Fatalf("local report not updated: %+v", updated)
	}
	if got := s.ListReports(); len(got) != 1 {
		t.Fatal("share must not duplicate the report row")
	}
}

func TestShareRemoteFailureKeepsLocalState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := newTestStore(t)
	g := NewGenerator(s, api.NewClient(srv.URL, logging.Nop()))

	r, _ := g.Generate(context.Background(), store.RangeWeek, nil, nil)

	ok, err := g.Share(context.Background(), r.ID, "dr.kim@example.com")
	if ok {
		t.Fatal("remote failure should report false")
	}
	if !errors.Is(err, api.ErrRemoteUnavailable) {
		t.Fatalf("expected ErrRemoteUnavailable, got %v", err)
	}

	// Optimistic local update survives the failed push.
	updated := s.GetReport(r.ID)
	if updated.Status != store.StatusShared || updated.Recipient != "dr.kim@example.com" {
		t.Fatalf("local state should be kept: %+v", updated)
	}
}

// ============================================================
// Averages
// ============================================================

func TestAverages(t *testing.T) {
	emotions := store.EmptyEmotions()
	emotions[emotion.Joy] = []float64{0.5, 0.7}
	emotions[emotion.Fear] = []float64{1.0}

	avg := Averages(store.Report{Emotions: emotions})
	if avg["Joy"] != 0.6 {
		t.Fatalf("expected Joy avg 0.6, got %v", avg["Joy"])
	}
	if avg["Fear"] != 1.0 {
		t.Fatalf("expected Fear avg 1.0, got %v", avg["Fear"])
	}
	if avg["Calm"] != 0 {
		t.Fatalf("empty series should average to 0, got %v", avg["Calm"])
	}
	if len(avg) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(avg))
	}
}
