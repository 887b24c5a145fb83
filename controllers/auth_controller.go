package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mYstoRi/medcontest/config"
	"github.com/mYstoRi/medcontest/utils"
)

const adminTokenDuration = 24 * time.Hour

// AuthController issues and revokes admin session tokens.
type AuthController struct{}

// NewAuthController creates a new AuthController instance.
func NewAuthController() *AuthController {
	return &AuthController{}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login exchanges the admin password for a JWT.
func (a *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "password is required")
		return
	}

	cfg := config.Get()
	if cfg.AdminPasswordHash == "" {
		utils.Error(ctx, http.StatusServiceUnavailable, 50301, "admin login is not configured")
		return
	}
	if !utils.CheckPassword(cfg.AdminPasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "invalid password")
		return
	}

	token, err := utils.GenerateToken(utils.RoleAdmin, adminTokenDuration)
	if err != nil {
		utils.Sugar.Errorf("issue admin token failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to issue token")
		return
	}

	utils.Success(ctx, gin.H{
		"token":      token,
		"expires_in": int(adminTokenDuration.Seconds()),
	})
}

// Logout revokes the presented token until its natural expiry.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusBadRequest, 40002, "missing bearer token")
		return
	}
	token := strings.TrimSpace(parts[1])

	claims, err := utils.ParseToken(token)
	if err == nil && claims.ExpiresAt != nil {
		utils.BlacklistToken(token, claims.ExpiresAt.Time)
	}
	utils.Success(ctx, gin.H{"message": "logged out"})
}
