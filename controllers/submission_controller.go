package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mYstoRi/medcontest/engine"
	"github.com/mYstoRi/medcontest/models"
	"github.com/mYstoRi/medcontest/utils"
)

// SubmissionController handles direct meditation form submissions.
type SubmissionController struct {
	engine *engine.Engine
}

// NewSubmissionController creates a new SubmissionController instance.
func NewSubmissionController(e *engine.Engine) *SubmissionController {
	return &SubmissionController{engine: e}
}

// ListSubmissions returns the persisted submission log, newest first.
func (s *SubmissionController) ListSubmissions(ctx *gin.Context) {
	utils.Success(ctx, s.engine.Submissions(ctx.Request.Context()))
}

type createSubmissionRequest struct {
	Name         string  `json:"name" binding:"required"`
	Date         string  `json:"date" binding:"required"`
	Minutes      float64 `json:"minutes"`
	TimeOfDay    string  `json:"timeOfDay"`
	Thoughts     string  `json:"thoughts"`
	ShareConsent bool    `json:"shareConsent"`
}

// CreateSubmission records a direct submission. Required fields are checked
// synchronously before any I/O; minutes accumulate into the meditation table.
func (s *SubmissionController) CreateSubmission(ctx *gin.Context) {
	var req createSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "name and date are required")
		return
	}
	if req.Minutes <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40041, "minutes must be positive")
		return
	}

	now := time.Now()
	sub := models.Submission{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Date:         req.Date,
		Minutes:      req.Minutes,
		TimeOfDay:    req.TimeOfDay,
		Thoughts:     utils.Sanitize(req.Thoughts),
		ShareConsent: req.ShareConsent,
		Timestamp:    now.Format("1/2/2006 15:04:05"),
		SubmittedAt:  now,
		Source:       models.SourceForm,
	}

	act, err := s.engine.ApplySubmission(ctx.Request.Context(), sub)
	if err != nil {
		utils.Sugar.Errorf("apply submission failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to store submission")
		return
	}
	utils.InvalidateByPrefix("view:")
	utils.Success(ctx, gin.H{
		"submission": sub,
		"activity":   act,
	})
}
