package engine

import (
	"context"
	"testing"

	"github.com/mYstoRi/medcontest/config"
	"github.com/mYstoRi/medcontest/sheets"
	"github.com/mYstoRi/medcontest/store"
)

// stubFetcher serves fixed CSV text instead of hitting the network.
type stubFetcher struct {
	raw sheets.RawSources
}

func (s *stubFetcher) FetchAll(context.Context) sheets.RawSources {
	return s.raw
}

func newTestEngine(t *testing.T, raw sheets.RawSources) (*Engine, *store.MemoryStore) {
	t.Helper()
	config.SetForTest(config.AppConfig{
		JWTSecret:           "test-secret",
		SubmissionWindow:    500,
		RecentActivityLimit: 20,
		CacheTTLSeconds:     300,
	})
	st := store.NewMemoryStore()
	return NewEngine(st, &stubFetcher{raw: raw}), st
}

const meditationCSV = "Team,Name,Total,9/1,9/2\n" +
	"Team A,Alice,0,30,15\n" +
	"Team B,Bob,0,20,0\n"

const practiceCSV = ",,,10,10\n" +
	"Team,Name,Total,9/1,9/2\n" +
	"Team A,Alice,0,1,1\n"

const classCSV = "Team,Name,Tier,Total,9/1,9/2\n" +
	"Team A,Alice,gold,2,1,1\n"

const formCSV = "9/1/2025 8:00:00 AM,Alice,9/1,30,morning,calm,yes\n" +
	"9/1/2025 9:00:00 PM,Bob,9/1,20,evening,,no\n"

func fullSources() sheets.RawSources {
	return sheets.RawSources{
		Meditation: meditationCSV,
		Practice:   practiceCSV,
		Class:      classCSV,
		Form:       formCSV,
	}
}
