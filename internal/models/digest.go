package models

import "time"

// Digest is the outcome of one run: the articles in feed order, one analysis
// per article at the same index, and the consolidated summary.
type Digest struct {
	Date     time.Time `json:"date"`
	Articles []Article `json:"articles"`
	Analyses []string  `json:"analyses"`
	Summary  string    `json:"summary"`
}
