package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"emovoice/internal/emotion"
)

// SaveMood appends a mood to the log with a freshly generated id. Moods are
// never updated, so this is always an insert.
func (s *Store) SaveMood(m Mood) error {
	if !m.Primary.Valid() {
		return fmt.Errorf("%w: invalid primary emotion %q", ErrWriteFailed, m.Primary)
	}
	if m.Secondary != "" && !m.Secondary.Valid() {
		return fmt.Errorf("%w: invalid secondary emotion %q", ErrWriteFailed, m.Secondary)
	}
	id := m.ID
	if id == "" {
		id = uuid.New().String()
	}
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin save mood: %v", ErrWriteFailed, err)
	}
	_, err = tx.Exec(
		`INSERT INTO moods (id, primary_emotion, secondary_emotion, intensity, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		id, string(m.Primary), string(m.Secondary),
		emotion.ClampIntensity(m.Intensity), ts.UTC().Format(time.RFC3339),
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: insert mood: %v", ErrWriteFailed, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit mood: %v", ErrWriteFailed, err)
	}
	return nil
}

// ListMoods returns up to limit moods, most recent first. limit <= 0 means
// the default of 10. Read failures degrade to an empty result.
func (s *Store) ListMoods(limit int) []Mood {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, primary_emotion, secondary_emotion, intensity, timestamp
		 FROM moods ORDER BY timestamp DESC LIMIT ?`, limit,
	)
	if err != nil {
		s.log.Errorw("list moods", "err", err)
		return nil
	}
	defer rows.Close()

	var moods []Mood
	for rows.Next() {
		var m Mood
		var primary, secondary, ts string
		if err := rows.Scan(&m.ID, &primary, &secondary, &m.Intensity, &ts); err != nil {
			s.log.Errorw("scan mood", "err", err)
			return nil
		}
		m.Primary = emotion.Emotion(primary)
		m.Secondary = emotion.Emotion(secondary)
		m.Timestamp, _ = time.Parse(time.RFC3339, ts)
		moods = append(moods, m)
	}
	if err := rows.Err(); err != nil {
		s.log.Errorw("iterate moods", "err", err)
		return nil
	}
	return moods
}
