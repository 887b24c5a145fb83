package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mYstoRi/medcontest/engine"
	"github.com/mYstoRi/medcontest/models"
	"github.com/mYstoRi/medcontest/utils"
)

// SyncController exposes the admin sync trigger.
type SyncController struct {
	engine *engine.Engine
}

// NewSyncController creates a new SyncController instance.
func NewSyncController(e *engine.Engine) *SyncController {
	return &SyncController{engine: e}
}

type syncRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// Trigger runs a sync in the requested mode. Any mode outside merge/overwrite
// is rejected before I/O occurs.
func (s *SyncController) Trigger(ctx *gin.Context) {
	var req syncRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "mode is required")
		return
	}

	summary, err := s.engine.Sync(ctx.Request.Context(), models.SyncMode(req.Mode))
	if err != nil {
		if errors.Is(err, engine.ErrInvalidSyncMode) {
			utils.Error(ctx, http.StatusBadRequest, 40011, err.Error())
			return
		}
		// Storage write failures must not be reported as success; the message
		// distinguishes "storage unreachable" from a degraded source fetch.
		utils.Sugar.Errorf("sync failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50010, err.Error())
		return
	}

	utils.InvalidateByPrefix("view:")
	utils.Success(ctx, summary)
}
