package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mYstoRi/medcontest/models"
	"github.com/mYstoRi/medcontest/sheets"
)

func TestApplySubmissionAccumulates(t *testing.T) {
	e, _ := newTestEngine(t, fullSources())
	ctx := context.Background()
	_, err := e.Sync(ctx, models.SyncModeMerge)
	require.NoError(t, err)

	base := time.Date(2025, 9, 3, 8, 0, 0, 0, time.UTC)
	first := models.Submission{
		Name:        "Alice",
		Date:        "9/3",
		Minutes:     10,
		Timestamp:   "9/3/2025 8:00:00 AM",
		SubmittedAt: base,
	}
	second := first
	second.Minutes = 20
	second.Timestamp = "9/3/2025 9:00:00 AM"
	second.SubmittedAt = base.Add(time.Hour)

	act, err := e.ApplySubmission(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "Team A", act.Team)
	assert.Equal(t, models.SourceForm, act.Source)

	_, err = e.ApplySubmission(ctx, second)
	require.NoError(t, err)

	meditation, _, _ := e.Tables(ctx)
	var alice models.MemberRecord
	for _, m := range meditation.Members {
		if m.Name == "Alice" {
			alice = m
		}
	}
	// same member/date accumulates, and the total is the sum of the daily map
	assert.Equal(t, 30.0, alice.Daily["9/3"])
	sum := 0.0
	for _, v := range alice.Daily {
		sum += v
	}
	assert.Equal(t, sum, alice.Total)

	// both submissions land in the log, activity log grew by two
	assert.Len(t, e.Submissions(ctx), 4)
	assert.Len(t, e.Activities(ctx), 2)
}

func TestApplySubmissionUnknownMemberGetsSentinelTeam(t *testing.T) {
	e, _ := newTestEngine(t, sheets.RawSources{})
	ctx := context.Background()

	act, err := e.ApplySubmission(ctx, models.Submission{
		Name:        "Dana",
		Date:        "9/3",
		Minutes:     15,
		Timestamp:   "9/3/2025 8:00:00 AM",
		SubmittedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, models.UnknownTeam, act.Team)

	meditation, _, _ := e.Tables(ctx)
	require.Len(t, meditation.Members, 1)
	assert.Equal(t, models.UnknownTeam, meditation.Members[0].Team)
	assert.Equal(t, 15.0, meditation.Members[0].Total)
}

func TestApplySubmissionDedupByNameAndTimestamp(t *testing.T) {
	e, _ := newTestEngine(t, sheets.RawSources{})
	ctx := context.Background()

	sub := models.Submission{
		Name:        "Alice",
		Date:        "9/3",
		Minutes:     10,
		Timestamp:   "9/3/2025 8:00:00 AM",
		SubmittedAt: time.Now(),
	}
	_, err := e.ApplySubmission(ctx, sub)
	require.NoError(t, err)
	_, err = e.ApplySubmission(ctx, sub)
	require.NoError(t, err)

	// identical (name, timestamp) collapses in the submission log even though
	// the table accumulated both writes
	assert.Len(t, e.Submissions(ctx), 1)
}

func TestAddAndDeleteActivity(t *testing.T) {
	e, _ := newTestEngine(t, sheets.RawSources{})
	ctx := context.Background()

	act := models.Activity{
		ID:     "act-1",
		Type:   models.ActivityPractice,
		Team:   "Team A",
		Member: "Alice",
		Value:  20,
		Source: models.SourceAdmin,
	}
	require.NoError(t, e.AddActivity(ctx, act))
	require.Len(t, e.Activities(ctx), 1)

	assert.ErrorIs(t, e.DeleteActivity(ctx, "missing"), ErrActivityNotFound)
	require.NoError(t, e.DeleteActivity(ctx, "act-1"))
	assert.Empty(t, e.Activities(ctx))
}
