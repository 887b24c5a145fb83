package models

import "time"

// ActivityType enumerates the contest activity kinds.
type ActivityType string

const (
	ActivityMeditation ActivityType = "meditation"
	ActivityPractice   ActivityType = "practice"
	ActivityClass      ActivityType = "class"
)

// Valid reports whether t is one of the known activity types.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityMeditation, ActivityPractice, ActivityClass:
		return true
	}
	return false
}

// Activity sources.
const (
	SourceAdmin  = "admin"
	SourceSheets = "sheets"
	SourceForm   = "form"
)

// Activity is one entry of the unified activity log. Entries are immutable
// once created except for deletion by id; two entries for the same
// member/date/type are allowed (multiple sessions per day accumulate).
type Activity struct {
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	Team      string       `json:"team"`
	Member    string       `json:"member"`
	Date      string       `json:"date"`
	Value     float64      `json:"value"`
	Notes     string       `json:"notes,omitempty"`
	Thoughts  string       `json:"thoughts,omitempty"`
	TimeOfDay string       `json:"timeOfDay,omitempty"`
	Source    string       `json:"source"`
	CreatedAt time.Time    `json:"createdAt"`
}
