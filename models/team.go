package models

// Team groups members on the leaderboard. ID is the identity key; Name and
// ShortName are additionally unique. A team cannot be deleted while any
// member record references its Name.
type Team struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Color     string `json:"color"`
}

// UnknownTeam is the sentinel team assigned to activity entries whose team
// cannot be resolved. A later entry carrying a real team upgrades the bucket.
const UnknownTeam = "unknown"

// DefaultTeams seeds the team list on first read when no admin has created
// teams yet.
func DefaultTeams() []Team {
	return []Team{
		{ID: "a", Name: "Team A", ShortName: "A", Color: "#3b82f6"},
		{ID: "b", Name: "Team B", ShortName: "B", Color: "#ef4444"},
	}
}
