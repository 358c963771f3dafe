package repos

import (
	"fmt"

	"gorm.io/gorm"
)

type RunRepo struct {
	db *gorm.DB
}

func NewRunRepo(db *gorm.DB) *RunRepo {
	return &RunRepo{
		db: db,
	}
}

// Next increments and returns the run number of the session. The first run is 1.
func (r *RunRepo) Next(session string) (uint, error) {
	err := r.db.
		Exec("INSERT INTO run_counters (session, last_run) VALUES (?, 0) ON CONFLICT DO NOTHING", session).
		Error
	if err != nil {
		return 0, fmt.Errorf("create run counter: %w", err)
	}

	var val uint
	err = r.db.
		Raw("UPDATE run_counters SET last_run = last_run + 1 WHERE session = ? RETURNING last_run", session).
		Scan(&val).
		Error
	if err != nil {
		return 0, fmt.Errorf("update run counter: %w", err)
	}
	return val, nil
}
