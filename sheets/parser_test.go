package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mYstoRi/medcontest/models"
)

func TestParseMeditation(t *testing.T) {
	raw := "Team,Name,Total,9/1,9/2,9/3\n" +
		"Team A,Alice,999,30,0,15\n" +
		"Team B,Bob,5,,20,\n" +
		",NoTeam,1,1,1,1\n" +
		"Team A,,1,1,1,1\n" +
		"short,row\n"

	table := ParseMeditation(raw)
	assert.Equal(t, []string{"9/1", "9/2", "9/3"}, table.Dates)
	require.Len(t, table.Members, 2)

	alice := table.Members[0]
	assert.Equal(t, "Team A", alice.Team)
	assert.Equal(t, "Alice", alice.Name)
	// total is recomputed from the daily map, not taken from the sheet
	assert.Equal(t, 45.0, alice.Total)
	assert.Equal(t, map[string]float64{"9/1": 30, "9/3": 15}, alice.Daily)

	bob := table.Members[1]
	assert.Equal(t, 20.0, bob.Total)
	assert.Equal(t, map[string]float64{"9/2": 20}, bob.Daily)
}

func TestParseMeditationEmpty(t *testing.T) {
	table := ParseMeditation("")
	assert.NotNil(t, table.Dates)
	assert.NotNil(t, table.Members)
	assert.Empty(t, table.Members)
}

func TestParsePractice(t *testing.T) {
	raw := ",,,10,20,0\n" +
		"Team,Name,Total,9/1,9/2,9/3\n" +
		"Team A,Alice,0,1,0,1\n" +
		"Team B,Bob,0,2,3,0\n"

	table := ParsePractice(raw)
	assert.Equal(t, []string{"9/1", "9/2", "9/3"}, table.Dates)
	require.Len(t, table.Members, 2)

	// stored daily value is the per-session points, not the attendance count;
	// 9/3 awards nothing because its configured points are zero
	alice := table.Members[0]
	assert.Equal(t, map[string]float64{"9/1": 10}, alice.Daily)
	assert.Equal(t, 10.0, alice.Total)

	bob := table.Members[1]
	assert.Equal(t, map[string]float64{"9/1": 10, "9/2": 20}, bob.Daily)
	assert.Equal(t, 30.0, bob.Total)
}

func TestParsePracticeNeedsBothHeaderRows(t *testing.T) {
	table := ParsePractice(",,,10,20\n")
	assert.Empty(t, table.Members)
}

func TestParseClass(t *testing.T) {
	raw := "Team,Name,Tier,Total,9/1,9/2\n" +
		"Team A,Alice,gold,3,1,1\n" +
		"Team B,Bob,silver,0,0,0\n"

	table := ParseClass(raw)
	assert.Equal(t, []string{"9/1", "9/2"}, table.Dates)
	require.Len(t, table.Members, 2)

	alice := table.Members[0]
	assert.Equal(t, 3.0, alice.Total)
	assert.Equal(t, 150.0, alice.Points)

	bob := table.Members[1]
	assert.Equal(t, 0.0, bob.Points)
}

func TestParseForm(t *testing.T) {
	raw := "Timestamp,Name,Date,Minutes,Time of day,Thoughts,Share\n" +
		"9/1/2025 8:03:15 AM,Alice,9/1,30,morning,calm,yes\n" +
		"9/1/2025 8:03:15 PM,Bob,9/1,15,evening,\"tired, but ok\",no\n" +
		"not a time,Carol,9/1,10,,,yes\n" +
		"9/2/2025 9:00:00 AM,,9/2,10,,,yes\n" +
		"9/2/2025 9:00:00 AM,NoMinutes,9/2,0,,,yes\n"

	subs := ParseForm(raw)
	require.Len(t, subs, 3)

	// sorted descending by parsed timestamp; unparseable sorts last
	assert.Equal(t, "Bob", subs[0].Name)
	assert.Equal(t, "Alice", subs[1].Name)
	assert.Equal(t, "Carol", subs[2].Name)

	assert.Equal(t, "tired, but ok", subs[0].Thoughts)
	assert.False(t, subs[0].ShareConsent)
	assert.True(t, subs[1].ShareConsent)
	assert.Equal(t, models.SourceSheets, subs[0].Source)
	assert.True(t, subs[2].SubmittedAt.IsZero())
}

func TestParseFormEmpty(t *testing.T) {
	assert.Empty(t, ParseForm(""))
}
