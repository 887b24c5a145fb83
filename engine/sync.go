package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mYstoRi/medcontest/config"
	"github.com/mYstoRi/medcontest/models"
	"github.com/mYstoRi/medcontest/sheets"
	"github.com/mYstoRi/medcontest/store"
	"github.com/mYstoRi/medcontest/utils"
)

// Engine orchestrates sync runs and direct writes against the key-value
// store. It performs no locking: sync triggers are rare, serialized by human
// operation, and last-writer-wins on concurrent key writes is accepted.
type Engine struct {
	store            store.Store
	fetcher          sheets.SourceFetcher
	submissionWindow int
	recentLimit      int
}

// NewEngine builds an Engine on the given store and sheet fetcher.
func NewEngine(st store.Store, fetcher sheets.SourceFetcher) *Engine {
	cfg := config.Get()
	return &Engine{
		store:            st,
		fetcher:          fetcher,
		submissionWindow: cfg.SubmissionWindow,
		recentLimit:      cfg.RecentActivityLimit,
	}
}

// SyncSummary reports what a sync run observed and wrote.
type SyncSummary struct {
	Mode              models.SyncMode `json:"mode"`
	SyncedAt          time.Time       `json:"syncedAt"`
	MeditationMembers int             `json:"meditationMembers"`
	PracticeMembers   int             `json:"practiceMembers"`
	ClassMembers      int             `json:"classMembers"`
	Submissions       int             `json:"submissions"`
	VerifiedMembers   int             `json:"verifiedMembers"`
}

// Sync fetches the four sheet sources, reconciles them with persisted state
// under the given mode and writes the result back. A failed source fetch
// degrades to an empty table; only a store write failure fails the sync, since
// an incomplete write is not safe to report as success.
func (e *Engine) Sync(ctx context.Context, mode models.SyncMode) (*SyncSummary, error) {
	if !mode.Valid() {
		return nil, ErrInvalidSyncMode
	}

	raw := e.fetcher.FetchAll(ctx)
	meditation := sheets.ParseMeditation(raw.Meditation)
	practice := sheets.ParsePractice(raw.Practice)
	class := sheets.ParseClass(raw.Class)
	submissions := sheets.ParseForm(raw.Form)

	if mode == models.SyncModeMerge {
		meditation = MergeTables(e.loadTable(ctx, store.KeyMeditation), meditation)
		practice = MergeTables(e.loadTable(ctx, store.KeyPractice), practice)
		class = MergeTables(e.loadTable(ctx, store.KeyClass), class)
		submissions = MergeSubmissions(e.Submissions(ctx), submissions, e.submissionWindow)
	} else {
		// Overwrite discards manual and derived caches; the fresh tables
		// replace persisted ones wholesale below.
		for _, key := range []string{store.KeyMembers, store.KeyActivities} {
			if err := e.store.Delete(ctx, key); err != nil {
				utils.Sugar.Warnf("sync overwrite: delete %s failed: %v", key, err)
			}
		}
		if e.submissionWindow > 0 && len(submissions) > e.submissionWindow {
			submissions = submissions[:e.submissionWindow]
		}
	}

	baseline := baselineMembers(meditation, practice, class)
	meta := models.SyncMeta{
		SyncedAt:       time.Now(),
		LastSyncMode:   mode,
		RecentActivity: firstN(submissions, e.recentLimit),
	}

	// The table and metadata writes are issued concurrently with no ordering
	// guarantee among themselves; a reader mid-sync may observe a torn state.
	g, gctx := errgroup.WithContext(ctx)
	writes := []struct {
		key   string
		value interface{}
	}{
		{store.KeyMeditation, meditation},
		{store.KeyPractice, practice},
		{store.KeyClass, class},
		{store.KeySubmissions, submissions},
		{store.KeySyncedMembers, baseline},
		{store.KeyMeta, meta},
	}
	for _, w := range writes {
		w := w
		g.Go(func() error {
			if err := e.store.SetPermanent(gctx, w.key, w.value); err != nil {
				return fmt.Errorf("write %s: %w", w.key, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sync storage write failed: %w", err)
	}

	// Re-read one written table to surface silent write failures. Logged only,
	// never treated as a hard error.
	verified := 0
	var check models.Table
	if ok, err := e.store.Get(ctx, store.KeyMeditation, &check); err != nil {
		utils.Sugar.Warnf("sync verification read failed: %v", err)
	} else if ok {
		verified = len(check.Members)
	}
	utils.Sugar.Infof("sync %s done: meditation=%d practice=%d class=%d submissions=%d verified=%d",
		mode, len(meditation.Members), len(practice.Members), len(class.Members), len(submissions), verified)

	return &SyncSummary{
		Mode:              mode,
		SyncedAt:          meta.SyncedAt,
		MeditationMembers: len(meditation.Members),
		PracticeMembers:   len(practice.Members),
		ClassMembers:      len(class.Members),
		Submissions:       len(submissions),
		VerifiedMembers:   verified,
	}, nil
}

// baselineMembers builds the identity scaffold from the three per-type tables:
// the union of (team, name) pairs in table order.
func baselineMembers(tables ...models.Table) []models.SyncedMember {
	seen := map[models.MemberKey]bool{}
	out := []models.SyncedMember{}
	for _, t := range tables {
		for _, m := range t.Members {
			if seen[m.Key()] {
				continue
			}
			seen[m.Key()] = true
			out = append(out, models.SyncedMember{Team: m.Team, Name: m.Name})
		}
	}
	return out
}

func firstN(subs []models.Submission, n int) []models.Submission {
	if n <= 0 || len(subs) <= n {
		return subs
	}
	return subs[:n]
}

// loadTable reads a per-type table; a read failure is treated as "no cached
// data" rather than propagated.
func (e *Engine) loadTable(ctx context.Context, key string) models.Table {
	var t models.Table
	ok, err := e.store.Get(ctx, key, &t)
	if err != nil {
		utils.Sugar.Warnf("load %s failed, treating as empty: %v", key, err)
		return models.EmptyTable()
	}
	if !ok {
		return models.EmptyTable()
	}
	if t.Dates == nil {
		t.Dates = []string{}
	}
	if t.Members == nil {
		t.Members = []models.MemberRecord{}
	}
	return t
}

// Tables returns the current best-known per-type tables.
func (e *Engine) Tables(ctx context.Context) (meditation, practice, class models.Table) {
	return e.loadTable(ctx, store.KeyMeditation),
		e.loadTable(ctx, store.KeyPractice),
		e.loadTable(ctx, store.KeyClass)
}

// Meta returns the last sync metadata, or false when no sync ran yet.
func (e *Engine) Meta(ctx context.Context) (models.SyncMeta, bool) {
	var meta models.SyncMeta
	ok, err := e.store.Get(ctx, store.KeyMeta, &meta)
	if err != nil {
		utils.Sugar.Warnf("load sync meta failed: %v", err)
		return models.SyncMeta{}, false
	}
	return meta, ok
}

// Submissions returns the persisted submission log, newest first.
func (e *Engine) Submissions(ctx context.Context) []models.Submission {
	var subs []models.Submission
	ok, err := e.store.Get(ctx, store.KeySubmissions, &subs)
	if err != nil {
		utils.Sugar.Warnf("load submissions failed, treating as empty: %v", err)
		return []models.Submission{}
	}
	if !ok || subs == nil {
		return []models.Submission{}
	}
	return subs
}

// SyncedMembers returns the identity scaffold from the last sync.
func (e *Engine) SyncedMembers(ctx context.Context) []models.SyncedMember {
	var members []models.SyncedMember
	ok, err := e.store.Get(ctx, store.KeySyncedMembers, &members)
	if err != nil {
		utils.Sugar.Warnf("load synced members failed, treating as empty: %v", err)
		return []models.SyncedMember{}
	}
	if !ok || members == nil {
		return []models.SyncedMember{}
	}
	return members
}

// ManualMembers returns the admin-entered member metadata.
func (e *Engine) ManualMembers(ctx context.Context) []models.ManualMember {
	var members []models.ManualMember
	ok, err := e.store.Get(ctx, store.KeyMembers, &members)
	if err != nil {
		utils.Sugar.Warnf("load manual members failed, treating as empty: %v", err)
		return []models.ManualMember{}
	}
	if !ok || members == nil {
		return []models.ManualMember{}
	}
	return members
}

// SaveManualMembers replaces the admin-entered member metadata.
func (e *Engine) SaveManualMembers(ctx context.Context, members []models.ManualMember) error {
	return e.store.SetPermanent(ctx, store.KeyMembers, members)
}

// Members composes the layered member listing: synced baseline, then computed
// totals from the unified log, then manual overrides.
func (e *Engine) Members(ctx context.Context) []MemberEntry {
	totals := Aggregate(e.Activities(ctx))
	return ComposeMembers(e.SyncedMembers(ctx), totals, e.ManualMembers(ctx))
}
