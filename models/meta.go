package models

import "time"

// SyncMode selects how freshly parsed sheet data is reconciled with the
// persisted state.
type SyncMode string

const (
	// SyncModeMerge reconciles fresh data additively; nothing is deleted.
	SyncModeMerge SyncMode = "merge"
	// SyncModeOverwrite replaces the per-type tables wholesale and discards
	// manual and derived caches.
	SyncModeOverwrite SyncMode = "overwrite"
)

// Valid reports whether m is a supported sync mode.
func (m SyncMode) Valid() bool {
	return m == SyncModeMerge || m == SyncModeOverwrite
}

// SyncMeta is written on every sync run and acts as the single freshness
// signal for read paths: a reader checks SyncedAt age before trusting the
// cached per-type tables.
type SyncMeta struct {
	SyncedAt       time.Time    `json:"syncedAt"`
	LastSyncMode   SyncMode     `json:"lastSyncMode"`
	RecentActivity []Submission `json:"recentActivity"`
}
