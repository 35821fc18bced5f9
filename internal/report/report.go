// Package report turns recording history into shareable emotion reports.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"emovoice/internal/api"
	"emovoice/internal/store"
)

// ErrInvalidRange is returned for a custom range with a missing bound or with
// start after end. Invalid input is surfaced instead of silently widening the
// window.
var ErrInvalidRange = errors.New("invalid report range")

// Generator aggregates recordings into reports and handles sharing.
type Generator struct {
	store  *store.Store
	client *api.Client
}

func NewGenerator(s *store.Store, c *api.Client) *Generator {
	return &Generator{store: s, client: c}
}

// Generate builds a report over the requested window, persists it and
// returns it. week covers the last 7 days, month the last 30; custom needs
// both bounds, inclusive.
func (g *Generator) Generate(ctx context.Context, timeRange store.TimeRange, start, end *time.Time) (store.Report, error) {
	from, to, err := resolveWindow(timeRange, start, end)
	if err != nil {
		return store.Report{}, err
	}

	recordings := g.store.ListRecordings()
	emotions := store.EmptyEmotions()
	for _, r := range recordings {
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		// ListRecordings is date DESC; the series inherit that order.
		emotions[r.Emotion] = append(emotions[r.Emotion], r.Intensity)
	}

	report := store.Report{
		ID:        uuid.New().String(),
		Date:      time.Now(),
		Recipient: "",
		Status:    store.StatusPending,
		TimeRange: timeRange,
		Emotions:  emotions,
	}
	if err := g.store.SaveReport(report); err != nil {
		return store.Report{}, err
	}
	return report, nil
}

// Share marks a report as shared with recipient and pushes it to the remote
// service. A missing report id yields (false, nil) and writes nothing. The
// local status change is kept even when the remote push fails; the returned
// bool is the remote result.
func (g *Generator) Share(ctx context.Context, reportID, recipient string) (bool, error) {
	r := g.store.GetReport(reportID)
	if r == nil {
		return false, nil
	}

	r.Recipient = recipient
	r.Status = store.StatusShared
	if err := g.store.SaveReport(*r); err != nil {
		return false, err
	}

	ok, err := g.client.ShareReport(ctx, *r)
	if err != nil {
		// Local state stays authoritative; report the remote failure.
		return ok, err
	}
	return ok, nil
}

func resolveWindow(timeRange store.TimeRange, start, end *time.Time) (time.Time, time.Time, error) {
	now := time.Now()
	switch timeRange {
	case store.RangeWeek:
		return now.AddDate(0, 0, -7), now, nil
	case store.RangeMonth:
		return now.AddDate(0, 0, -30), now, nil
	case store.RangeCustom:
		if start == nil || end == nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: custom range needs both bounds", ErrInvalidRange)
		}
		if start.After(*end) {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: start after end", ErrInvalidRange)
		}
		return *start, *end, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown range %q", ErrInvalidRange, timeRange)
	}
}

// Averages reduces a report's intensity series to one mean value per emotion,
// zero when the series is empty. Used by chart rendering.
func Averages(r store.Report) map[string]float64 {
	out := make(map[string]float64, len(r.Emotions))
	for e, series := range r.Emotions {
		if len(series) == 0 {
			out[string(e)] = 0
			continue
		}
		var sum float64
		for _, v := range series {
			sum += v
		}
		out[string(e)] = sum / float64(len(series))
	}
	return out
}
