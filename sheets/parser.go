// Package sheets turns the spreadsheet CSV exports into normalized per-member
// tables and submission lists. Parsing is total: malformed rows are dropped,
// never surfaced, and empty or unreachable input yields an empty result so a
// failed fetch degrades instead of failing a sync.
package sheets

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mYstoRi/medcontest/models"
)

// ClassAttendancePoints is the per-attendance score for the class table.
const ClassAttendancePoints = 50

// ParseMeditation parses the meditation attendance export.
// Row layout: [team, name, total, ...dailyMinutes]; the header row supplies
// date labels from column 3 on. The total column is ignored and recomputed;
// only strictly positive cells enter the daily map.
func ParseMeditation(raw string) models.Table {
	rows := splitRows(raw)
	if len(rows) == 0 {
		return models.EmptyTable()
	}

	dates := dateLabels(rows[0], 3)
	table := models.Table{Dates: dates, Members: []models.MemberRecord{}}

	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}
		team := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		if team == "" || name == "" {
			continue
		}
		rec := models.MemberRecord{Team: team, Name: name, Daily: map[string]float64{}}
		for i, cell := range row[3:] {
			if i >= len(dates) {
				break
			}
			if v := parseNumber(cell); v > 0 {
				rec.Daily[dates[i]] = v
			}
		}
		rec.RecomputeTotal()
		table.Members = append(table.Members, rec)
	}
	return table
}

// ParsePractice parses the practice attendance export.
// Two header rows: row 0 carries the points awarded per session for each date
// column, row 1 the date labels; data starts at row 2. A day earns points
// only when both the attendance cell and the configured per-session points
// are positive, and the stored daily value is the points value, not the raw
// attendance count.
func ParsePractice(raw string) models.Table {
	rows := splitRows(raw)
	if len(rows) < 2 {
		return models.EmptyTable()
	}

	pointsRow := rows[0]
	dates := dateLabels(rows[1], 3)
	pointsPerDay := make([]float64, len(dates))
	for i := range dates {
		if 3+i < len(pointsRow) {
			pointsPerDay[i] = parseNumber(pointsRow[3+i])
		}
	}

	table := models.Table{Dates: dates, Members: []models.MemberRecord{}}
	for _, row := range rows[2:] {
		if len(row) < 3 {
			continue
		}
		team := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		if team == "" || name == "" {
			continue
		}
		rec := models.MemberRecord{Team: team, Name: name, Daily: map[string]float64{}}
		for i, cell := range row[3:] {
			if i >= len(dates) {
				break
			}
			if parseNumber(cell) > 0 && pointsPerDay[i] > 0 {
				rec.Daily[dates[i]] = pointsPerDay[i]
			}
		}
		rec.RecomputeTotal()
		table.Members = append(table.Members, rec)
	}
	return table
}

// ParseClass parses the class attendance export.
// Row layout: [team, name, tier, total, ...dailyAttendance]; date labels start
// at header column 4. Total is the sheet's attendance count and points are
// derived as total * 50 at parse time.
func ParseClass(raw string) models.Table {
	rows := splitRows(raw)
	if len(rows) == 0 {
		return models.EmptyTable()
	}

	dates := dateLabels(rows[0], 4)
	table := models.Table{Dates: dates, Members: []models.MemberRecord{}}

	for _, row := range rows[1:] {
		if len(row) < 4 {
			continue
		}
		team := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		if team == "" || name == "" {
			continue
		}
		total := parseNumber(row[3])
		rec := models.MemberRecord{
			Team:   team,
			Name:   name,
			Total:  total,
			Points: total * ClassAttendancePoints,
			Daily:  map[string]float64{},
		}
		for i, cell := range row[4:] {
			if i >= len(dates) {
				break
			}
			if v := parseNumber(cell); v > 0 {
				rec.Daily[dates[i]] = v
			}
		}
		table.Members = append(table.Members, rec)
	}
	return table
}

// ParseForm parses the free-form submission log export.
// Row layout: [timestamp, name, date, minutes, timeOfDay, thoughts,
// shareConsent]. Rows missing name or date, or with non-positive minutes, are
// dropped. Output is sorted descending by parsed timestamp; timestamps that
// fail to parse sort as earliest.
func ParseForm(raw string) []models.Submission {
	rows := splitRows(raw)
	subs := []models.Submission{}

	for _, row := range rows {
		if len(row) < 4 {
			continue
		}
		name := strings.TrimSpace(row[1])
		date := strings.TrimSpace(row[2])
		minutes := parseNumber(row[3])
		if name == "" || date == "" || minutes <= 0 {
			continue
		}
		sub := models.Submission{
			ID:          uuid.NewString(),
			Name:        name,
			Date:        date,
			Minutes:     minutes,
			Timestamp:   strings.TrimSpace(row[0]),
			SubmittedAt: ParseFormTimestamp(row[0]),
			Source:      models.SourceSheets,
		}
		if len(row) > 4 {
			sub.TimeOfDay = strings.TrimSpace(row[4])
		}
		if len(row) > 5 {
			sub.Thoughts = strings.TrimSpace(row[5])
		}
		if len(row) > 6 {
			sub.ShareConsent = parseConsent(row[6])
		}
		subs = append(subs, sub)
	}

	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].SubmittedAt.After(subs[j].SubmittedAt)
	})
	return subs
}

// dateLabels returns trimmed header cells from the given column on.
func dateLabels(header []string, from int) []string {
	if len(header) <= from {
		return []string{}
	}
	dates := make([]string, 0, len(header)-from)
	for _, cell := range header[from:] {
		dates = append(dates, strings.TrimSpace(cell))
	}
	return dates
}

// parseNumber reads a numeric cell; anything unparseable counts as zero.
func parseNumber(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseConsent(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "yes", "true", "y", "1", "是", "同意":
		return true
	}
	return false
}
