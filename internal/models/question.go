package models

// Question is a single flash card loaded from a question file.
type Question struct {
	Question string
	Answer   string
}
