package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mYstoRi/medcontest/models"
	"github.com/mYstoRi/medcontest/store"
	"github.com/mYstoRi/medcontest/utils"
)

// Activities returns the unified activity log.
func (e *Engine) Activities(ctx context.Context) []models.Activity {
	var log []models.Activity
	ok, err := e.store.Get(ctx, store.KeyActivities, &log)
	if err != nil {
		utils.Sugar.Warnf("load activities failed, treating as empty: %v", err)
		return []models.Activity{}
	}
	if !ok || log == nil {
		return []models.Activity{}
	}
	return log
}

// AddActivity appends a validated activity to the unified log. The append is a
// read-modify-write under the store's optimistic update, so a concurrent
// append to the log is retried instead of lost.
func (e *Engine) AddActivity(ctx context.Context, act models.Activity) error {
	err := e.store.Update(ctx, store.KeyActivities, func(current []byte, found bool) (interface{}, error) {
		return append(decodeActivities(current, found), act), nil
	})
	if err != nil {
		return fmt.Errorf("write activity log: %w", err)
	}
	return nil
}

// DeleteActivity removes an activity by id.
func (e *Engine) DeleteActivity(ctx context.Context, id string) error {
	err := e.store.Update(ctx, store.KeyActivities, func(current []byte, found bool) (interface{}, error) {
		log := decodeActivities(current, found)
		kept := make([]models.Activity, 0, len(log))
		removed := false
		for _, a := range log {
			if a.ID == id {
				removed = true
				continue
			}
			kept = append(kept, a)
		}
		if !removed {
			return nil, ErrActivityNotFound
		}
		return kept, nil
	})
	if err != nil {
		if errors.Is(err, ErrActivityNotFound) {
			return err
		}
		return fmt.Errorf("write activity log: %w", err)
	}
	return nil
}

// ApplySubmission records a direct form submission: the minutes accumulate
// into the meditation table (same member/date adds up, total stays the sum of
// the daily map), the submission joins the dedup-merged log, and a meditation
// activity lands in the unified log. Returns the created activity.
func (e *Engine) ApplySubmission(ctx context.Context, sub models.Submission) (*models.Activity, error) {
	team := models.UnknownTeam
	err := e.store.Update(ctx, store.KeyMeditation, func(current []byte, found bool) (interface{}, error) {
		table := decodeTable(current, found)
		team = models.UnknownTeam
		idx := -1
		for i, m := range table.Members {
			if m.Name == sub.Name {
				team = m.Team
				idx = i
				break
			}
		}
		if idx < 0 {
			table.Members = append(table.Members, models.MemberRecord{
				Team:  team,
				Name:  sub.Name,
				Daily: map[string]float64{},
			})
			idx = len(table.Members) - 1
		}
		rec := &table.Members[idx]
		if rec.Daily == nil {
			rec.Daily = map[string]float64{}
		}
		rec.Daily[sub.Date] += sub.Minutes
		rec.RecomputeTotal()
		return table, nil
	})
	if err != nil {
		return nil, fmt.Errorf("write meditation table: %w", err)
	}

	err = e.store.Update(ctx, store.KeySubmissions, func(current []byte, found bool) (interface{}, error) {
		existing := decodeSubmissions(current, found)
		return MergeSubmissions(existing, []models.Submission{sub}, e.submissionWindow), nil
	})
	if err != nil {
		return nil, fmt.Errorf("write submissions: %w", err)
	}

	act := models.Activity{
		ID:        uuid.NewString(),
		Type:      models.ActivityMeditation,
		Team:      team,
		Member:    sub.Name,
		Date:      sub.Date,
		Value:     sub.Minutes,
		Thoughts:  sub.Thoughts,
		TimeOfDay: sub.TimeOfDay,
		Source:    models.SourceForm,
		CreatedAt: time.Now(),
	}
	if err := e.AddActivity(ctx, act); err != nil {
		return nil, err
	}
	return &act, nil
}

func decodeActivities(current []byte, found bool) []models.Activity {
	if !found || len(current) == 0 {
		return []models.Activity{}
	}
	var log []models.Activity
	if err := json.Unmarshal(current, &log); err != nil {
		utils.Sugar.Warnf("activity log unreadable, starting fresh: %v", err)
		return []models.Activity{}
	}
	if log == nil {
		return []models.Activity{}
	}
	return log
}

func decodeSubmissions(current []byte, found bool) []models.Submission {
	if !found || len(current) == 0 {
		return []models.Submission{}
	}
	var subs []models.Submission
	if err := json.Unmarshal(current, &subs); err != nil {
		utils.Sugar.Warnf("submission log unreadable, starting fresh: %v", err)
		return []models.Submission{}
	}
	if subs == nil {
		return []models.Submission{}
	}
	return subs
}

func decodeTable(current []byte, found bool) models.Table {
	if !found || len(current) == 0 {
		return models.EmptyTable()
	}
	var t models.Table
	if err := json.Unmarshal(current, &t); err != nil {
		utils.Sugar.Warnf("table unreadable, starting fresh: %v", err)
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
