package engine

import (
	"github.com/mYstoRi/medcontest/models"
)

// Totals accumulates one member's points per activity type.
type Totals struct {
	Team       string  `json:"team"`
	Name       string  `json:"name"`
	Meditation float64 `json:"meditationPoints"`
	Practice   float64 `json:"practicePoints"`
	Class      float64 `json:"classPoints"`
}

// Total is the display score: the sum of the three per-type totals.
func (t Totals) Total() float64 {
	return t.Meditation + t.Practice + t.Class
}

// Aggregate derives per-member totals from the unified activity log in a
// single pass. Events with an empty member name are skipped. An event without
// a team lands in the sentinel "unknown" team; a later event carrying a real
// team for the same name upgrades the bucket in place, since names are the
// stronger identity key. Consequence of name-keyed buckets: two distinct
// members sharing a name on different teams collapse into one bucket.
func Aggregate(log []models.Activity) map[string]*Totals {
	buckets := map[string]*Totals{}
	for _, ev := range log {
		if ev.Member == "" {
			continue
		}
		team := ev.Team
		if team == "" {
			team = models.UnknownTeam
		}
		b, ok := buckets[ev.Member]
		if !ok {
			b = &Totals{Team: team, Name: ev.Member}
			buckets[ev.Member] = b
		} else if b.Team == models.UnknownTeam && team != models.UnknownTeam {
			b.Team = team
		}

		pts := Score(ev.Type, ev.Value)
		if pts < 0 {
			pts = 0
		}
		switch ev.Type {
		case models.ActivityMeditation:
			b.Meditation += pts
		case models.ActivityPractice:
			b.Practice += pts
		case models.ActivityClass:
			b.Class += pts
		}
	}
	return buckets
}

// TeamTotals rolls member totals up per team.
type TeamTotals struct {
	Team       string  `json:"team"`
	Members    int     `json:"members"`
	Meditation float64 `json:"meditationPoints"`
	Practice   float64 `json:"practicePoints"`
	Class      float64 `json:"classPoints"`
	Total      float64 `json:"totalPoints"`
}

// RollupTeams sums member totals into per-team buckets.
func RollupTeams(totals map[string]*Totals) map[string]*TeamTotals {
	teams := map[string]*TeamTotals{}
	for _, t := range totals {
		tt, ok := teams[t.Team]
		if !ok {
			tt = &TeamTotals{Team: t.Team}
			teams[t.Team] = tt
		}
		tt.Members++
		tt.Meditation += t.Meditation
		tt.Practice += t.Practice
		tt.Class += t.Class
		tt.Total += t.Total()
	}
	return teams
}
