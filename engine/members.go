package engine

import (
	"sort"

	"github.com/mYstoRi/medcontest/models"
)

// MemberEntry is one row of the composed member listing.
type MemberEntry struct {
	Team       string  `json:"team"`
	Name       string  `json:"name"`
	Meditation float64 `json:"meditationPoints"`
	Practice   float64 `json:"practicePoints"`
	Class      float64 `json:"classPoints"`
	Total      float64 `json:"totalPoints"`
}

// The member listing is a three-stage fold with fixed precedence:
// synced baseline -> computed totals -> manual overrides. Each stage is a
// pure function from (previous map, new records) to a new map so the
// precedence rule stays testable in isolation.

// applyBaseline seeds the map with the identity scaffold from the last sync.
// Baseline entries carry no scores.
func applyBaseline(prev map[string]MemberEntry, baseline []models.SyncedMember) map[string]MemberEntry {
	next := cloneEntries(prev)
	for _, m := range baseline {
		if m.Name == "" {
			continue
		}
		if _, ok := next[m.Name]; !ok {
			next[m.Name] = MemberEntry{Team: m.Team, Name: m.Name}
		}
	}
	return next
}

// applyComputed overlays the aggregator's live totals. Computed entries may
// introduce members absent from the baseline (e.g. form-only submitters).
func applyComputed(prev map[string]MemberEntry, totals map[string]*Totals) map[string]MemberEntry {
	next := cloneEntries(prev)
	for name, t := range totals {
		entry, ok := next[name]
		if !ok {
			entry = MemberEntry{Team: t.Team, Name: name}
		}
		if t.Team != models.UnknownTeam || entry.Team == "" {
			entry.Team = t.Team
		}
		entry.Meditation = t.Meditation
		entry.Practice = t.Practice
		entry.Class = t.Class
		next[name] = entry
	}
	return next
}

// applyOverrides applies admin-entered member metadata last. Overrides may
// replace name/team fields but never clobber computed scores unless the
// manual record supplies its own.
func applyOverrides(prev map[string]MemberEntry, manual []models.ManualMember) map[string]MemberEntry {
	next := cloneEntries(prev)
	for _, m := range manual {
		if m.Name == "" {
			continue
		}
		entry, ok := next[m.Name]
		if !ok {
			entry = MemberEntry{Name: m.Name}
		}
		if m.Team != "" {
			entry.Team = m.Team
		}
		if m.Meditation != nil {
			entry.Meditation = *m.Meditation
		}
		if m.Practice != nil {
			entry.Practice = *m.Practice
		}
		if m.Class != nil {
			entry.Class = *m.Class
		}
		next[m.Name] = entry
	}
	return next
}

// ComposeMembers folds the three sources in their fixed order and returns the
// listing sorted by total points descending, name ascending on ties.
func ComposeMembers(baseline []models.SyncedMember, totals map[string]*Totals, manual []models.ManualMember) []MemberEntry {
	entries := applyOverrides(applyComputed(applyBaseline(map[string]MemberEntry{}, baseline), totals), manual)

	out := make([]MemberEntry, 0, len(entries))
	for _, e := range entries {
		if e.Team == "" {
			e.Team = models.UnknownTeam
		}
		e.Total = e.Meditation + e.Practice + e.Class
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func cloneEntries(in map[string]MemberEntry) map[string]MemberEntry {
	out := make(map[string]MemberEntry, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
