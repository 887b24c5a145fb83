package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mYstoRi/medcontest/models"
)

func fptr(v float64) *float64 { return &v }

func TestComposeMembersLayering(t *testing.T) {
	baseline := []models.SyncedMember{
		{Team: "Team A", Name: "Alice"},
		{Team: "Team B", Name: "Bob"},
	}
	totals := map[string]*Totals{
		"Alice": {Team: "Team A", Name: "Alice", Meditation: 45},
		// Carol only exists in the computed layer (form-only submitter)
		"Carol": {Team: models.UnknownTeam, Name: "Carol", Meditation: 5},
	}
	manual := []models.ManualMember{
		// override moves Bob to Team C but supplies no scores
		{Team: "Team C", Name: "Bob"},
		// override supplies its own score for Carol
		{Team: "Team B", Name: "Carol", Meditation: fptr(50)},
	}

	out := ComposeMembers(baseline, totals, manual)
	require.Len(t, out, 3)

	byName := map[string]MemberEntry{}
	for _, e := range out {
		byName[e.Name] = e
	}

	// computed scores survive a metadata-only override
	assert.Equal(t, "Team C", byName["Bob"].Team)
	assert.Equal(t, 0.0, byName["Bob"].Total)

	// manual scores replace computed ones when supplied
	carol := byName["Carol"]
	assert.Equal(t, "Team B", carol.Team)
	assert.Equal(t, 50.0, carol.Meditation)
	assert.Equal(t, 50.0, carol.Total)

	alice := byName["Alice"]
	assert.Equal(t, 45.0, alice.Meditation)
	assert.Equal(t, 45.0, alice.Total)

	// sorted by total descending
	assert.Equal(t, "Carol", out[0].Name)
	assert.Equal(t, "Alice", out[1].Name)
}

func TestApplyBaselineDoesNotOverwrite(t *testing.T) {
	prev := map[string]MemberEntry{
		"Alice": {Team: "Team A", Name: "Alice", Meditation: 10},
	}
	next := applyBaseline(prev, []models.SyncedMember{{Team: "Team Z", Name: "Alice"}})
	assert.Equal(t, "Team A", next["Alice"].Team)
	assert.Equal(t, 10.0, next["Alice"].Meditation)
	// input map untouched: each stage is a pure function
	assert.Equal(t, prev["Alice"], next["Alice"])
}

func TestApplyComputedKeepsKnownTeamOverSentinel(t *testing.T) {
	prev := applyBaseline(map[string]MemberEntry{}, []models.SyncedMember{{Team: "Team A", Name: "Alice"}})
	next := applyComputed(prev, map[string]*Totals{
		"Alice": {Team: models.UnknownTeam, Name: "Alice", Meditation: 5},
	})
	assert.Equal(t, "Team A", next["Alice"].Team)
	assert.Equal(t, 5.0, next["Alice"].Meditation)
}
