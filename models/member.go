package models

// MemberKey identifies a member inside a per-type table.
type MemberKey struct {
	Team string
	Name string
}

// MemberRecord is one member's row in a per-type attendance table.
// Total is a derived cache of the daily values and is recomputed on every
// mutation, never edited directly. For the class table Total carries the
// attendance count from the sheet and Points carries the derived score.
type MemberRecord struct {
	Team   string             `json:"team"`
	Name   string             `json:"name"`
	Total  float64            `json:"total"`
	Daily  map[string]float64 `json:"daily"`
	Points float64            `json:"points,omitempty"`
}

// Key returns the identity key of the record.
func (m MemberRecord) Key() MemberKey {
	return MemberKey{Team: m.Team, Name: m.Name}
}

// RecomputeTotal refreshes the derived Total from the daily map.
func (m *MemberRecord) RecomputeTotal() {
	sum := 0.0
	for _, v := range m.Daily {
		sum += v
	}
	m.Total = sum
}

// Table is the normalized record set for one activity type.
type Table struct {
	Dates   []string       `json:"dates"`
	Members []MemberRecord `json:"members"`
}

// EmptyTable returns a table with non-nil slices, used when a source is
// unreachable or blank.
func EmptyTable() Table {
	return Table{Dates: []string{}, Members: []MemberRecord{}}
}

// ManualMember is an admin-entered member entry. It participates in the
// layered member listing: name/team override the computed entry, score
// fields only apply when set.
type ManualMember struct {
	Team       string   `json:"team"`
	Name       string   `json:"name"`
	Meditation *float64 `json:"meditation,omitempty"`
	Practice   *float64 `json:"practice,omitempty"`
	Class      *float64 `json:"class,omitempty"`
}

// SyncedMember is the identity scaffold persisted after each sync. It carries
// no scores; those are recomputed from the unified activity log on read.
type SyncedMember struct {
	Team string `json:"team"`
	Name string `json:"name"`
}
