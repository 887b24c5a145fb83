// Package engine holds the synchronization and aggregation core: merge
// strategies for freshly parsed sheet data, scoring rules per activity type,
// and the aggregator that derives member totals from the unified activity log.
package engine

import (
	"github.com/mYstoRi/medcontest/models"
	"github.com/mYstoRi/medcontest/sheets"
)

// classPointsThreshold disambiguates class values in the unified log, which
// mixes raw attendance counts with precomputed point values written at
// different times. Values below the threshold are assumed to be attendance
// counts. Fragile: a member attending exactly 5 classes would be misread as
// 5 points, but the threshold is kept for compatibility with existing data.
const classPointsThreshold = 5

// Score converts a unified-log value into points for the given activity type.
func Score(t models.ActivityType, value float64) float64 {
	switch t {
	case models.ActivityMeditation:
		// 1 minute = 1 point.
		return value
	case models.ActivityPractice:
		// Per-session points were resolved at parse time.
		return value
	case models.ActivityClass:
		if value < classPointsThreshold {
			return value * sheets.ClassAttendancePoints
		}
		return value
	}
	return 0
}
