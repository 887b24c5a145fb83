package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mYstoRi/medcontest/models"
)

func member(team, name string, daily map[string]float64) models.MemberRecord {
	rec := models.MemberRecord{Team: team, Name: name, Daily: daily}
	rec.RecomputeTotal()
	return rec
}

func TestMergeTablesFreshWinsWholeRecord(t *testing.T) {
	existing := models.Table{
		Dates: []string{"9/1"},
		Members: []models.MemberRecord{
			member("Team A", "Alice", map[string]float64{"9/1": 10, "9/2": 5}),
			member("Team B", "Bob", map[string]float64{"9/1": 20}),
		},
	}
	fresh := models.Table{
		Dates: []string{"9/1", "9/2"},
		Members: []models.MemberRecord{
			member("Team A", "Alice", map[string]float64{"9/2": 99}),
			member("Team C", "Carol", map[string]float64{"9/1": 1}),
		},
	}

	merged := MergeTables(existing, fresh)
	assert.Equal(t, []string{"9/1", "9/2"}, merged.Dates)
	require.Len(t, merged.Members, 3)

	byKey := map[models.MemberKey]models.MemberRecord{}
	for _, m := range merged.Members {
		byKey[m.Key()] = m
	}
	// fresh replaces the whole record, no field-level merge
	alice := byKey[models.MemberKey{Team: "Team A", Name: "Alice"}]
	assert.Equal(t, map[string]float64{"9/2": 99.0}, alice.Daily)
	assert.Equal(t, 99.0, alice.Total)
	// existing-only members are retained
	assert.Contains(t, byKey, models.MemberKey{Team: "Team B", Name: "Bob"})
	assert.Contains(t, byKey, models.MemberKey{Team: "Team C", Name: "Carol"})
}

func TestMergeTablesNonRegression(t *testing.T) {
	tests := []struct {
		name     string
		existing int
		fresh    int
	}{
		{"both empty", 0, 0},
		{"fresh empty", 3, 0},
		{"existing empty", 0, 3},
		{"overlapping", 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := models.EmptyTable()
			for i := 0; i < tt.existing; i++ {
				existing.Members = append(existing.Members, member("T", string(rune('a'+i)), nil))
			}
			fresh := models.EmptyTable()
			for i := 0; i < tt.fresh; i++ {
				fresh.Members = append(fresh.Members, member("T", string(rune('a'+i)), map[string]float64{"9/1": 1}))
			}

			merged := MergeTables(existing, fresh)
			if len(merged.Members) < tt.existing || len(merged.Members) < tt.fresh {
				t.Fatalf("merged count %d below max(%d, %d)", len(merged.Members), tt.existing, tt.fresh)
			}
		})
	}
}

func sub(name, ts string, at time.Time, minutes float64) models.Submission {
	return models.Submission{Name: name, Timestamp: ts, SubmittedAt: at, Minutes: minutes}
}

func TestMergeSubmissionsDedup(t *testing.T) {
	base := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	existing := []models.Submission{
		sub("Alice", "9/1/2025 8:00:00 AM", base, 30),
		sub("Bob", "9/1/2025 9:00:00 AM", base.Add(time.Hour), 10),
	}
	fresh := []models.Submission{
		// same (name, timestamp): the later-applied record wins
		sub("Alice", "9/1/2025 8:00:00 AM", base, 45),
		sub("Carol", "9/1/2025 10:00:00 AM", base.Add(2*time.Hour), 5),
	}

	merged := MergeSubmissions(existing, fresh, 500)
	require.Len(t, merged, 3)

	// sorted newest first
	assert.Equal(t, "Carol", merged[0].Name)
	assert.Equal(t, "Bob", merged[1].Name)
	assert.Equal(t, "Alice", merged[2].Name)
	assert.Equal(t, 45.0, merged[2].Minutes)
}

func TestMergeSubmissionsWindow(t *testing.T) {
	base := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	var fresh []models.Submission
	for i := 0; i < 10; i++ {
		fresh = append(fresh, sub("m", base.Add(time.Duration(i)*time.Minute).String(), base.Add(time.Duration(i)*time.Minute), 1))
	}

	merged := MergeSubmissions(nil, fresh, 3)
	require.Len(t, merged, 3)
	// the retained window is the most recent entries
	assert.True(t, merged[0].SubmittedAt.After(merged[2].SubmittedAt))
	assert.Equal(t, base.Add(9*time.Minute), merged[0].SubmittedAt)
}
