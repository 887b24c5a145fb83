package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mYstoRi/medcontest/models"
	"github.com/mYstoRi/medcontest/sheets"
	"github.com/mYstoRi/medcontest/store"
)

func TestSyncRejectsInvalidMode(t *testing.T) {
	e, _ := newTestEngine(t, fullSources())
	_, err := e.Sync(context.Background(), models.SyncMode("replace"))
	assert.ErrorIs(t, err, ErrInvalidSyncMode)
}

func TestSyncMergeWritesAllKeys(t *testing.T) {
	e, st := newTestEngine(t, fullSources())
	ctx := context.Background()

	summary, err := e.Sync(ctx, models.SyncModeMerge)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.MeditationMembers)
	assert.Equal(t, 1, summary.PracticeMembers)
	assert.Equal(t, 1, summary.ClassMembers)
	assert.Equal(t, 2, summary.Submissions)
	assert.Equal(t, 2, summary.VerifiedMembers)

	var meta models.SyncMeta
	ok, err := st.Get(ctx, store.KeyMeta, &meta)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.SyncModeMerge, meta.LastSyncMode)
	assert.False(t, meta.SyncedAt.IsZero())
	assert.Len(t, meta.RecentActivity, 2)

	// baseline scaffold is the union of the three tables
	baseline := e.SyncedMembers(ctx)
	assert.Len(t, baseline, 2)
}

func TestSyncMergeIsIdempotent(t *testing.T) {
	e, _ := newTestEngine(t, fullSources())
	ctx := context.Background()

	first, err := e.Sync(ctx, models.SyncModeMerge)
	require.NoError(t, err)
	second, err := e.Sync(ctx, models.SyncModeMerge)
	require.NoError(t, err)

	assert.Equal(t, first.MeditationMembers, second.MeditationMembers)
	assert.Equal(t, first.PracticeMembers, second.PracticeMembers)
	assert.Equal(t, first.ClassMembers, second.ClassMembers)
	assert.Equal(t, first.Submissions, second.Submissions)

	meditation, _, _ := e.Tables(ctx)
	require.Len(t, meditation.Members, 2)
	assert.Equal(t, 45.0, meditation.Members[0].Total)
	assert.Equal(t, 20.0, meditation.Members[1].Total)
}

func TestSyncMergeRetainsExistingOnlyMembers(t *testing.T) {
	e, st := newTestEngine(t, fullSources())
	ctx := context.Background()

	existing := models.Table{
		Dates:   []string{"8/31"},
		Members: []models.MemberRecord{member("Team Z", "Zoe", map[string]float64{"8/31": 10})},
	}
	require.NoError(t, st.SetPermanent(ctx, store.KeyMeditation, existing))

	summary, err := e.Sync(ctx, models.SyncModeMerge)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.MeditationMembers)

	meditation, _, _ := e.Tables(ctx)
	names := []string{}
	for _, m := range meditation.Members {
		names = append(names, m.Name)
	}
	assert.Contains(t, names, "Zoe")
}

func TestSyncOverwriteDiscardsManualState(t *testing.T) {
	e, st := newTestEngine(t, fullSources())
	ctx := context.Background()

	existing := models.Table{
		Dates:   []string{"8/31"},
		Members: []models.MemberRecord{member("Team Z", "Zoe", map[string]float64{"8/31": 10})},
	}
	require.NoError(t, st.SetPermanent(ctx, store.KeyMeditation, existing))
	require.NoError(t, st.SetPermanent(ctx, store.KeyActivities, []models.Activity{{ID: "x", Type: models.ActivityMeditation, Member: "Zoe", Value: 10}}))
	require.NoError(t, st.SetPermanent(ctx, store.KeyMembers, []models.ManualMember{{Team: "Team Z", Name: "Zoe"}}))

	_, err := e.Sync(ctx, models.SyncModeOverwrite)
	require.NoError(t, err)

	// members only present in the pre-sync state do not survive an overwrite
	meditation, _, _ := e.Tables(ctx)
	for _, m := range meditation.Members {
		assert.NotEqual(t, "Zoe", m.Name)
	}
	assert.Empty(t, e.Activities(ctx))
	assert.Empty(t, e.ManualMembers(ctx))

	meta, ok := e.Meta(ctx)
	require.True(t, ok)
	assert.Equal(t, models.SyncModeOverwrite, meta.LastSyncMode)
}

func TestSyncDegradesFailedSourcesToEmpty(t *testing.T) {
	e, _ := newTestEngine(t, sheets.RawSources{Meditation: meditationCSV})
	ctx := context.Background()

	summary, err := e.Sync(ctx, models.SyncModeMerge)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.MeditationMembers)
	assert.Equal(t, 0, summary.PracticeMembers)
	assert.Equal(t, 0, summary.ClassMembers)
	assert.Equal(t, 0, summary.Submissions)
}
