package handlers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/denisAlshanov/mediafetch/internal/config"
	"github.com/denisAlshanov/mediafetch/internal/services/cleanup"
	"github.com/denisAlshanov/mediafetch/internal/services/downloader"
	"github.com/denisAlshanov/mediafetch/internal/services/extractor"
)

// stubEngine writes "<stem>.mp4" plus a leftover intermediate, stamped with
// an old upstream mtime the way yt-dlp would without --no-mtime.
type stubEngine struct {
	err error
}

func (e *stubEngine) Download(ctx context.Context, req extractor.DownloadRequest) (*extractor.MediaInfo, error) {
	stem := strings.TrimSuffix(req.OutputTemplate, ".%(ext)s")
	upstream := time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)

	names := []string{stem + ".f137.mp4.part"}
	if e.err == nil {
		names = append(names, stem+".mp4")
	}
	for _, name := range names {
		if err := os.WriteFile(name, []byte("media-bytes"), 0o644); err != nil {
			return nil, err
		}
		if err := os.Chtimes(name, upstream, upstream); err != nil {
			return nil, err
		}
	}

	if e.err != nil {
		return nil, e.err
	}
	title := "Stub Clip"
	return &extractor.MediaInfo{Title: &title, Ext: "mp4"}, nil
}

func (e *stubEngine) Lookup(ctx context.Context, url string, cookiesFile string) (*extractor.MediaInfo, error) {
	return nil, errors.New("not used")
}

func TestDownloadLeavesNothingBehind(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "Delivered artifact", wantStatus: http.StatusOK},
		{name: "Engine failure", err: errors.New("ERROR: Video unavailable"), wantStatus: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "downloads")
			janitor := cleanup.NewJanitor(dir, time.Hour, 0)
			d, err := downloader.NewDownloader(&stubEngine{err: tc.err}, nil, janitor, &config.DownloadConfig{Directory: dir})
			if err != nil {
				t.Fatalf("NewDownloader() error = %v", err)
			}
			engine := newDownloadEngine(d, janitor)

			w := postJSON(engine, "/download", `{"url":"https://example.com/watch?v=1","format":"720p"}`)
			janitor.Wait()

			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tc.wantStatus, w.Code, w.Body.String())
			}
			if tc.err == nil && w.Body.String() != "media-bytes" {
				t.Errorf("unexpected body %q", w.Body.String())
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				t.Fatalf("ReadDir() error = %v", err)
			}
			if len(entries) != 0 {
				names := make([]string, 0, len(entries))
				for _, e := range entries {
					names = append(names, e.Name())
				}
				t.Errorf("expected an empty download directory, found %v", names)
			}
			if n := janitor.Sweep(); n != 0 {
				t.Errorf("expected nothing left to sweep, removed %d", n)
			}
		})
	}
}
