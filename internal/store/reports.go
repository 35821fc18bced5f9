package store

import (
	"encoding/json"
	"fmt"
	"time"

	"emovoice/internal/emotion"
)

// SaveReport upserts a report by id inside a transaction. The emotions map is
// serialized to a JSON text column, so saving the same id twice replaces the
// row rather than duplicating it.
func (s *Store) SaveReport(r Report) error {
	if r.ID == "" {
		return fmt.Errorf("%w: report id is empty", ErrWriteFailed)
	}
	if r.Emotions == nil {
		r.Emotions = EmptyEmotions()
	}
	data, err := json.Marshal(r.Emotions)
	if err != nil {
		return fmt.Errorf("%w: encode report data: %v", ErrWriteFailed, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin save report: %v", ErrWriteFailed, err)
	}
	_, err = tx.Exec(
		`INSERT INTO reports (id, date, recipient, status, time_range, data)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   date = excluded.date, recipient = excluded.recipient,
		   status = excluded.status, time_range = excluded.time_range,
		   data = excluded.data`,
		r.ID, r.Date.UTC().Format(time.RFC3339), r.Recipient,
		string(r.Status), string(r.TimeRange), string(data),
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: insert report: %v", ErrWriteFailed, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit report: %v", ErrWriteFailed, err)
	}
	return nil
}

// ListReports returns all reports ordered by date descending. A row whose
// data column fails to decode keeps its place with an empty emotions map;
// one bad blob never drops the rest of the read.
func (s *Store) ListReports() []Report {
	rows, err := s.db.Query(
		`SELECT id, date, recipient, status, time_range, data
		 FROM reports ORDER BY date DESC`,
	)
	if err != nil {
		s.log.Errorw("list reports", "err", err)
		return nil
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		var r Report
		var date, status, timeRange, data string
		if err := rows.Scan(&r.ID, &date, &r.Recipient, &status, &timeRange, &data); err != nil {
			s.log.Errorw("scan report", "err", err)
			return nil
		}
		r.Date, _ = time.Parse(time.RFC3339, date)
		r.Status = ReportStatus(status)
		r.TimeRange = TimeRange(timeRange)

		var emotions map[emotion.Emotion][]float64
		if err := json.Unmarshal([]byte(data), &emotions); err != nil {
			s.log.Warnw("bad report data, substituting empty", "report", r.ID, "err", err)
			emotions = EmptyEmotions()
		}
		if emotions == nil {
			emotions = EmptyEmotions()
		}
		r.Emotions = emotions
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		s.log.Errorw("iterate reports", "err", err)
		return nil
	}
	return reports
}

// GetReport returns the report with the given id, or nil when absent.
func (s *Store) GetReport(id string) *Report {
	for _, r := range s.ListReports() {
		if r.ID == id {
			report := r
			return &report
		}
	}
	return nil
}
