package controllers

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mYstoRi/medcontest/config"
	"github.com/mYstoRi/medcontest/engine"
	"github.com/mYstoRi/medcontest/models"
	"github.com/mYstoRi/medcontest/utils"
)

const leaderboardCacheKey = "view:leaderboard"

// DataController serves the read paths: per-type tables and the aggregated
// leaderboard.
type DataController struct {
	engine *engine.Engine
}

// NewDataController creates a new DataController instance.
func NewDataController(e *engine.Engine) *DataController {
	return &DataController{engine: e}
}

// GetData returns the current best-known per-type tables plus a bounded
// recent-activity preview. When the cached state is older than the configured
// TTL a merge-mode refresh is attempted first; a failed refresh degrades to
// serving the stale cache rather than failing the caller.
func (d *DataController) GetData(ctx *gin.Context) {
	cfg := config.Get()
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	rctx := ctx.Request.Context()

	cached := true
	meta, ok := d.engine.Meta(rctx)
	if !ok || time.Since(meta.SyncedAt) > ttl {
		if _, err := d.engine.Sync(rctx, models.SyncModeMerge); err != nil {
			utils.Sugar.Warnf("read-path refresh failed, serving cached data: %v", err)
		} else {
			cached = false
			meta, _ = d.engine.Meta(rctx)
		}
	}

	meditation, practice, class := d.engine.Tables(rctx)

	cacheAge := 0.0
	if !meta.SyncedAt.IsZero() {
		cacheAge = time.Since(meta.SyncedAt).Seconds()
	}

	utils.Success(ctx, gin.H{
		"meditation":     meditation,
		"practice":       practice,
		"class":          class,
		"recentActivity": meta.RecentActivity,
		"cached":         cached,
		"cacheAgeSec":    cacheAge,
		"syncedAt":       meta.SyncedAt,
		"lastSyncMode":   meta.LastSyncMode,
	})
}

type leaderboardView struct {
	Members []engine.MemberEntry `json:"members"`
	Teams   []engine.TeamTotals  `json:"teams"`
}

// GetLeaderboard returns aggregated member totals and per-team rollups
// derived from the unified activity log. The rendered view is cached with a
// short TTL and invalidated on writes.
func (d *DataController) GetLeaderboard(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(leaderboardCacheKey); ok {
		var view leaderboardView
		if err := json.Unmarshal(b, &view); err == nil {
			utils.Success(ctx, view)
			return
		}
	}

	rctx := ctx.Request.Context()
	totals := engine.Aggregate(d.engine.Activities(rctx))
	rollup := engine.RollupTeams(totals)

	members := engine.ComposeMembers(d.engine.SyncedMembers(rctx), totals, d.engine.ManualMembers(rctx))

	teams := make([]engine.TeamTotals, 0, len(rollup))
	for _, t := range rollup {
		teams = append(teams, *t)
	}
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].Total != teams[j].Total {
			return teams[i].Total > teams[j].Total
		}
		return teams[i].Team < teams[j].Team
	})

	view := leaderboardView{Members: members, Teams: teams}
	cfg := config.Get()
	utils.CacheSetJSON(leaderboardCacheKey, view, time.Duration(cfg.CacheTTLSeconds)*time.Second)

	utils.Success(ctx, view)
}
