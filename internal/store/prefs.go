package store

import (
	"database/sql"
	"fmt"

	"github.com/avmoreira/despensa-web/internal/model"
)

// PrefsStore persists per-user UI preferences, currently just the selected
// statistics window.
type PrefsStore struct {
	db *sql.DB
}

func NewPrefsStore(db *sql.DB) *PrefsStore {
	return &PrefsStore{db: db}
}

const defaultStatsDays = 30

// StatsDays returns the user's selected trailing window in days, defaulting
// to 30 when nothing has been saved.
func (s *PrefsStore) StatsDays(userID int64) (int, error) {
	var days int
	err := s.db.QueryRow(`SELECT stats_days FROM preferences WHERE user_id = ?`, userID).Scan(&days)
	if err == sql.ErrNoRows {
		return defaultStatsDays, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get stats days: %w", err)
	}
	if !model.ValidStatsWindow(days) {
		return defaultStatsDays, nil
	}
	return days, nil
}

// SetStatsDays saves the user's trailing window. Invalid windows are
// rejected.
func (s *PrefsStore) SetStatsDays(userID int64, days int) error {
	if !model.ValidStatsWindow(days) {
		return fmt.Errorf("invalid stats window: %d", days)
	}
	_, err := s.db.Exec(
		`INSERT INTO preferences (user_id, stats_days, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(user_id) DO UPDATE SET stats_days = excluded.stats_days, updated_at = CURRENT_TIMESTAMP`,
		userID, days,
	)
	if err != nil {
		return fmt.Errorf("set stats days: %w", err)
	}
	return nil
}
