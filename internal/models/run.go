package models

// RunCounter numbers process invocations per session.
type RunCounter struct {
	Session string `gorm:"primarykey"`
	LastRun uint
}
