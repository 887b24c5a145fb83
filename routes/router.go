package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mYstoRi/medcontest/config"
	"github.com/mYstoRi/medcontest/controllers"
	"github.com/mYstoRi/medcontest/engine"
	"github.com/mYstoRi/medcontest/middleware"
	"github.com/mYstoRi/medcontest/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(e *engine.Engine) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Record request counts after each request
	r.Use(middleware.RequestCounter())

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController()
	syncController := controllers.NewSyncController(e)
	dataController := controllers.NewDataController(e)
	memberController := controllers.NewMemberController(e)
	activityController := controllers.NewActivityController(e)
	submissionController := controllers.NewSubmissionController(e)
	teamController := controllers.NewTeamController(e)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)

	// Public read paths
	api.GET("/data", dataController.GetData)
	api.GET("/leaderboard", dataController.GetLeaderboard)
	api.GET("/members", memberController.ListMembers)
	api.GET("/teams", teamController.ListTeams)
	api.GET("/activities", activityController.ListActivities)
	api.GET("/submissions", submissionController.ListSubmissions)

	// Public direct write, rate limited
	api.POST("/submissions", middleware.RateLimitMiddleware(), submissionController.CreateSubmission)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())
	protected.POST("/sync", syncController.Trigger)
	protected.PUT("/members", memberController.PutManualMembers)
	protected.POST("/activities", activityController.CreateActivity)
	protected.DELETE("/activities/:id", activityController.DeleteActivity)
	protected.POST("/teams", teamController.CreateTeam)
	protected.DELETE("/teams/:id", teamController.DeleteTeam)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
