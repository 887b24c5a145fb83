package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mYstoRi/medcontest/engine"
	"github.com/mYstoRi/medcontest/models"
	"github.com/mYstoRi/medcontest/utils"
)

// TeamController manages team records.
type TeamController struct {
	engine *engine.Engine
}

// NewTeamController creates a new TeamController instance.
func NewTeamController(e *engine.Engine) *TeamController {
	return &TeamController{engine: e}
}

// ListTeams returns all teams, seeding defaults on first read.
func (t *TeamController) ListTeams(ctx *gin.Context) {
	utils.Success(ctx, t.engine.Teams(ctx.Request.Context()))
}

type createTeamRequest struct {
	ID        string `json:"id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	ShortName string `json:"shortName" binding:"required"`
	Color     string `json:"color"`
}

// CreateTeam adds a team; id, name and shortName must all be unique.
func (t *TeamController) CreateTeam(ctx *gin.Context) {
	var req createTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "id, name and shortName are required")
		return
	}

	team := models.Team{
		ID:        strings.TrimSpace(req.ID),
		Name:      strings.TrimSpace(req.Name),
		ShortName: strings.TrimSpace(req.ShortName),
		Color:     strings.TrimSpace(req.Color),
	}
	if team.ID == "" || team.Name == "" || team.ShortName == "" {
		utils.Error(ctx, http.StatusBadRequest, 40050, "id, name and shortName are required")
		return
	}

	if err := t.engine.CreateTeam(ctx.Request.Context(), team); err != nil {
		if errors.Is(err, engine.ErrTeamConflict) {
			utils.Error(ctx, http.StatusConflict, 40950, err.Error())
			return
		}
		utils.Sugar.Errorf("create team failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to store team")
		return
	}
	utils.Success(ctx, team)
}

// DeleteTeam removes a team by id, guarded against deleting a team that still
// has member records referencing it.
func (t *TeamController) DeleteTeam(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := t.engine.DeleteTeam(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, engine.ErrTeamNotFound):
			utils.Error(ctx, http.StatusNotFound, 40450, "team not found")
		case errors.Is(err, engine.ErrTeamHasMembers):
			utils.Error(ctx, http.StatusConflict, 40951, err.Error())
		default:
			utils.Sugar.Errorf("delete team failed: %v", err)
			utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to delete team")
		}
		return
	}
	utils.Success(ctx, gin.H{"deleted": id})
}
