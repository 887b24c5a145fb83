package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mYstoRi/medcontest/engine"
	"github.com/mYstoRi/medcontest/models"
	"github.com/mYstoRi/medcontest/utils"
)

// ActivityController manages the unified activity log.
type ActivityController struct {
	engine *engine.Engine
}

// NewActivityController creates a new ActivityController instance.
func NewActivityController(e *engine.Engine) *ActivityController {
	return &ActivityController{engine: e}
}

// ListActivities returns the unified activity log.
func (a *ActivityController) ListActivities(ctx *gin.Context) {
	utils.Success(ctx, a.engine.Activities(ctx.Request.Context()))
}

type createActivityRequest struct {
	Type      string  `json:"type" binding:"required"`
	Team      string  `json:"team"`
	Member    string  `json:"member" binding:"required"`
	Date      string  `json:"date" binding:"required"`
	Value     float64 `json:"value"`
	Notes     string  `json:"notes"`
	Thoughts  string  `json:"thoughts"`
	TimeOfDay string  `json:"timeOfDay"`
}

// CreateActivity appends an admin-entered event to the unified log. All
// validation happens before any I/O.
func (a *ActivityController) CreateActivity(ctx *gin.Context) {
	var req createActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "type, member and date are required")
		return
	}
	actType := models.ActivityType(req.Type)
	if !actType.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40031, "type must be meditation, practice or class")
		return
	}
	if req.Value < 0 {
		utils.Error(ctx, http.StatusBadRequest, 40032, "value must not be negative")
		return
	}

	act := models.Activity{
		ID:        uuid.NewString(),
		Type:      actType,
		Team:      req.Team,
		Member:    req.Member,
		Date:      req.Date,
		Value:     req.Value,
		Notes:     utils.Sanitize(req.Notes),
		Thoughts:  utils.Sanitize(req.Thoughts),
		TimeOfDay: req.TimeOfDay,
		Source:    models.SourceAdmin,
		CreatedAt: time.Now(),
	}
	if err := a.engine.AddActivity(ctx.Request.Context(), act); err != nil {
		utils.Sugar.Errorf("create activity failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to store activity")
		return
	}
	utils.InvalidateByPrefix("view:")
	utils.Success(ctx, act)
}

// DeleteActivity removes an event from the unified log by id.
func (a *ActivityController) DeleteActivity(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := a.engine.DeleteActivity(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, engine.ErrActivityNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40430, "activity not found")
			return
		}
		utils.Sugar.Errorf("delete activity failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to delete activity")
		return
	}
	utils.InvalidateByPrefix("view:")
	utils.Success(ctx, gin.H{"deleted": id})
}
