package models

import "time"

// Draw is a journal entry for a question shown during a session.
type Draw struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	// Session is the configured name of the machine or user running the game.
	Session string `gorm:"index"`

	// Run is the number of the process invocation within the session.
	Run uint

	// Seq is the number of the draw within the run, starting from 1.
	Seq uint

	Question string
	Answer   string
	Weight   float64

	// Active is the number of items left eligible after the draw.
	Active int

	// Reset is true if the draw exhausted the pool and refilled it.
	Reset bool
}
