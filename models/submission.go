package models

import "time"

// Submission is a raw meditation form intake row. The dedup identity is
// (Name, Timestamp): a later-seen submission with the same pair replaces the
// earlier one during merge.
type Submission struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Date         string    `json:"date"`
	Minutes      float64   `json:"minutes"`
	TimeOfDay    string    `json:"timeOfDay,omitempty"`
	Thoughts     string    `json:"thoughts,omitempty"`
	ShareConsent bool      `json:"shareConsent"`
	Timestamp    string    `json:"timestamp"`
	SubmittedAt  time.Time `json:"submittedAt"`
	Source       string    `json:"source"`
}

// DedupKey returns the merge identity of the submission.
func (s Submission) DedupKey() string {
	return s.Name + "\x00" + s.Timestamp
}
