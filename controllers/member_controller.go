package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mYstoRi/medcontest/engine"
	"github.com/mYstoRi/medcontest/models"
	"github.com/mYstoRi/medcontest/utils"
)

// MemberController serves the composed member listing and the manual member
// metadata admins may maintain on top of it.
type MemberController struct {
	engine *engine.Engine
}

// NewMemberController creates a new MemberController instance.
func NewMemberController(e *engine.Engine) *MemberController {
	return &MemberController{engine: e}
}

// ListMembers returns the layered member listing: sheets baseline, then
// computed scores, then manual overrides.
func (m *MemberController) ListMembers(ctx *gin.Context) {
	utils.Success(ctx, m.engine.Members(ctx.Request.Context()))
}

type manualMembersRequest struct {
	Members []models.ManualMember `json:"members"`
}

// PutManualMembers replaces the admin-entered member metadata.
func (m *MemberController) PutManualMembers(ctx *gin.Context) {
	var req manualMembersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid members payload")
		return
	}
	for _, entry := range req.Members {
		if entry.Name == "" {
			utils.Error(ctx, http.StatusBadRequest, 40021, "member name is required")
			return
		}
	}
	if req.Members == nil {
		req.Members = []models.ManualMember{}
	}

	if err := m.engine.SaveManualMembers(ctx.Request.Context(), req.Members); err != nil {
		utils.Sugar.Errorf("save manual members failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to save members")
		return
	}
	utils.InvalidateByPrefix("view:")
	utils.Success(ctx, gin.H{"count": len(req.Members)})
}
