package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mYstoRi/medcontest/models"
	"github.com/mYstoRi/medcontest/store"
	"github.com/mYstoRi/medcontest/utils"
)

// Teams returns the team list, lazily seeding the defaults on first read.
func (e *Engine) Teams(ctx context.Context) []models.Team {
	var teams []models.Team
	ok, err := e.store.Get(ctx, store.KeyTeams, &teams)
	if err != nil {
		utils.Sugar.Warnf("load teams failed, treating as empty: %v", err)
		return []models.Team{}
	}
	if !ok {
		teams = models.DefaultTeams()
		if err := e.store.SetPermanent(ctx, store.KeyTeams, teams); err != nil {
			utils.Sugar.Warnf("seed default teams failed: %v", err)
		}
	}
	if teams == nil {
		teams = []models.Team{}
	}
	return teams
}

// CreateTeam appends a team after enforcing uniqueness on id, name and short
// name. Check and append run inside one optimistic update so two concurrent
// creates cannot both pass the uniqueness check.
func (e *Engine) CreateTeam(ctx context.Context, team models.Team) error {
	err := e.store.Update(ctx, store.KeyTeams, func(current []byte, found bool) (interface{}, error) {
		teams := decodeTeams(current, found)
		for _, t := range teams {
			if strings.EqualFold(t.ID, team.ID) ||
				strings.EqualFold(t.Name, team.Name) ||
				strings.EqualFold(t.ShortName, team.ShortName) {
				return nil, ErrTeamConflict
			}
		}
		return append(teams, team), nil
	})
	if err != nil {
		if errors.Is(err, ErrTeamConflict) {
			return err
		}
		return fmt.Errorf("write teams: %w", err)
	}
	return nil
}

// DeleteTeam removes a team by id. Deletion is refused while any member
// record in any per-type table still references the team's name.
func (e *Engine) DeleteTeam(ctx context.Context, id string) error {
	meditation, practice, class := e.Tables(ctx)
	tables := []models.Table{meditation, practice, class}

	err := e.store.Update(ctx, store.KeyTeams, func(current []byte, found bool) (interface{}, error) {
		teams := decodeTeams(current, found)
		idx := -1
		for i, t := range teams {
			if t.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, ErrTeamNotFound
		}
		for _, table := range tables {
			for _, m := range table.Members {
				if m.Team == teams[idx].Name {
					return nil, fmt.Errorf("%w: %s", ErrTeamHasMembers, teams[idx].Name)
				}
			}
		}
		return append(teams[:idx], teams[idx+1:]...), nil
	})
	if err != nil {
		if errors.Is(err, ErrTeamNotFound) || errors.Is(err, ErrTeamHasMembers) {
			return err
		}
		return fmt.Errorf("write teams: %w", err)
	}
	return nil
}

// decodeTeams reads the persisted team list; an absent key means the defaults
// have not been seeded yet, so uniqueness checks still run against them.
func decodeTeams(current []byte, found bool) []models.Team {
	if !found || len(current) == 0 {
		return models.DefaultTeams()
	}
	var teams []models.Team
	if err := json.Unmarshal(current, &teams); err != nil {
		utils.Sugar.Warnf("team list unreadable, reseeding defaults: %v", err)
		return models.DefaultTeams()
	}
	if teams == nil {
		return []models.Team{}
	}
	return teams
}
