package sheets

import (
	"context"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mYstoRi/medcontest/utils"
)

// RawSources holds the raw CSV text of the four exports. A failed or missing
// source is the empty string, which parses to an empty table.
type RawSources struct {
	Meditation string
	Practice   string
	Class      string
	Form       string
}

// SourceFetcher is what the sync engine needs from the sheet transport.
type SourceFetcher interface {
	FetchAll(ctx context.Context) RawSources
}

// Fetcher downloads the spreadsheet exports over HTTP.
type Fetcher struct {
	client        *http.Client
	meditationURL string
	practiceURL   string
	classURL      string
	formURL       string
}

// NewFetcher builds a Fetcher for the four export URLs. Empty URLs simply
// yield empty sources.
func NewFetcher(meditationURL, practiceURL, classURL, formURL string) *Fetcher {
	return &Fetcher{
		client:        &http.Client{Timeout: 15 * time.Second},
		meditationURL: meditationURL,
		practiceURL:   practiceURL,
		classURL:      classURL,
		formURL:       formURL,
	}
}

// FetchAll downloads the four sources concurrently. Each source is allowed to
// fail independently and degrades to empty text; FetchAll itself never fails.
func (f *Fetcher) FetchAll(ctx context.Context) RawSources {
	var raw RawSources
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { raw.Meditation = f.fetch(gctx, "meditation", f.meditationURL); return nil })
	g.Go(func() error { raw.Practice = f.fetch(gctx, "practice", f.practiceURL); return nil })
	g.Go(func() error { raw.Class = f.fetch(gctx, "class", f.classURL); return nil })
	g.Go(func() error { raw.Form = f.fetch(gctx, "form", f.formURL); return nil })
	_ = g.Wait()
	return raw
}

func (f *Fetcher) fetch(ctx context.Context, source, url string) string {
	if url == "" {
		return ""
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		utils.Sugar.Warnf("sheet fetch %s: bad request: %v", source, err)
		return ""
	}
	resp, err := f.client.Do(req)
	if err != nil {
		utils.Sugar.Warnf("sheet fetch %s failed: %v", source, err)
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		utils.Sugar.Warnf("sheet fetch %s: unexpected status %d", source, resp.StatusCode)
		return ""
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.Sugar.Warnf("sheet fetch %s: read body: %v", source, err)
		return ""
	}
	return string(body)
}
