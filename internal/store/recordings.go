package store

import (
	"fmt"
	"time"

	"emovoice/internal/emotion"
)

// SaveRecording upserts a recording by id inside a transaction.
func (s *Store) SaveRecording(r Recording) error {
	if r.ID == "" {
		return fmt.Errorf("%w: recording id is empty", ErrWriteFailed)
	}
	if !r.Emotion.Valid() {
		return fmt.Errorf("%w: invalid emotion %q", ErrWriteFailed, r.Emotion)
	}
	intensity := emotion.ClampIntensity(r.Intensity)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin save recording: %v", ErrWriteFailed, err)
	}
	_, err = tx.Exec(
		`INSERT INTO recordings (id, date, duration, emotion, intensity, audio_uri)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   date = excluded.date, duration = excluded.duration,
		   emotion = excluded.emotion, intensity = excluded.intensity,
		   audio_uri = excluded.audio_uri`,
		r.ID, r.Date.UTC().Format(time.RFC3339), r.Duration, string(r.Emotion), intensity, r.AudioURI,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: insert recording: %v", ErrWriteFailed, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit recording: %v", ErrWriteFailed, err)
	}
	return nil
}

// ListRecordings returns all recordings ordered by date descending.
// Read failures are logged and degrade to an empty result.
func (s *Store) ListRecordings() []Recording {
	rows, err := s.db.Query(
		`SELECT id, date, duration, emotion, intensity, audio_uri
		 FROM recordings ORDER BY date DESC`,
	)
	if err != nil {
		s.log.Errorw("list recordings", "err", err)
		return nil
	}
	defer rows.Close()

	var recordings []Recording
	for rows.Next() {
		var r Recording
		var date, emo string
		if err := rows.Scan(&r.ID, &date, &r.Duration, &emo, &r.Intensity, &r.AudioURI); err != nil {
			s.log.Errorw("scan recording", "err", err)
			return nil
		}
		r.Date, _ = time.Parse(time.RFC3339, date)
		r.Emotion = emotion.Emotion(emo)
		recordings = append(recordings, r)
	}
	if err := rows.Err(); err != nil {
		s.log.Errorw("iterate recordings", "err", err)
		return nil
	}
	return recordings
}
