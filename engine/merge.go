package engine

import (
	"sort"

	"github.com/mYstoRi/medcontest/models"
)

// MergeTables overlays a freshly parsed per-type table onto the persisted
// one. Members are indexed by (team, name); a fresh record replaces the
// existing one wholesale, and members present only in the existing table are
// retained, so the merged member count is never below either input's.
func MergeTables(existing, fresh models.Table) models.Table {
	existingByKey := make(map[models.MemberKey]models.MemberRecord, len(existing.Members))
	for _, m := range existing.Members {
		existingByKey[m.Key()] = m
	}

	merged := models.Table{Dates: fresh.Dates, Members: make([]models.MemberRecord, 0, len(fresh.Members))}
	if len(merged.Dates) == 0 {
		merged.Dates = existing.Dates
	}
	if merged.Dates == nil {
		merged.Dates = []string{}
	}

	seen := make(map[models.MemberKey]bool, len(fresh.Members))
	for _, m := range fresh.Members {
		merged.Members = append(merged.Members, m)
		seen[m.Key()] = true
	}
	for _, m := range existing.Members {
		if !seen[m.Key()] {
			merged.Members = append(merged.Members, m)
		}
	}
	return merged
}

// MergeSubmissions reconciles fresh submissions with persisted ones. Both
// sides are indexed by (name, timestamp); fresh overwrites on collision. The
// result is re-sorted descending by effective timestamp and truncated to the
// given window to cap storage growth.
func MergeSubmissions(existing, fresh []models.Submission, window int) []models.Submission {
	index := make(map[string]int, len(existing)+len(fresh))
	out := make([]models.Submission, 0, len(existing)+len(fresh))
	add := func(s models.Submission) {
		k := s.DedupKey()
		if i, ok := index[k]; ok {
			out[i] = s
			return
		}
		index[k] = len(out)
		out = append(out, s)
	}
	for _, s := range existing {
		add(s)
	}
	for _, s := range fresh {
		add(s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	if window > 0 && len(out) > window {
		out = out[:window]
	}
	return out
}
