package downloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/denisAlshanov/mediafetch/internal/config"
	"github.com/denisAlshanov/mediafetch/internal/models"
	"github.com/denisAlshanov/mediafetch/internal/services/cleanup"
	"github.com/denisAlshanov/mediafetch/internal/services/extractor"
	"github.com/denisAlshanov/mediafetch/internal/services/formats"
	"github.com/denisAlshanov/mediafetch/internal/utils"
)

const DefaultTitle = "video"

// yt-dlp leaves these behind while (or after failing at) writing a file.
var (
	partialSuffixes = []string{".part", ".ytdl", ".temp"}
	partialMarkers  = []string{".part-Frag", ".temp."}
)

// CookieSource is the read side of the credential store.
type CookieSource interface {
	Path() (string, bool)
}

type Downloader struct {
	engine    extractor.Engine
	cookies   CookieSource
	janitor   *cleanup.Janitor
	dir       string
	timeout   time.Duration
	semaphore *semaphore.Weighted
}

func NewDownloader(engine extractor.Engine, cookies CookieSource, janitor *cleanup.Janitor, cfg *config.DownloadConfig) (*Downloader, error) {
	if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	d := &Downloader{
		engine:  engine,
		cookies: cookies,
		janitor: janitor,
		dir:     cfg.Directory,
		timeout: cfg.DownloadTimeout,
	}
	if cfg.MaxConcurrentDownloads > 0 {
		d.semaphore = semaphore.NewWeighted(int64(cfg.MaxConcurrentDownloads))
	}
	return d, nil
}

// Directory is where produced files are written.
func (d *Downloader) Directory() string {
	return d.dir
}

// Download invokes the engine under a fresh id and returns the one file it
// produced. The id stays tracked by the janitor until the caller schedules it.
func (d *Downloader) Download(ctx context.Context, url string, sel formats.Selection) (*models.Artifact, error) {
	if d.semaphore != nil {
		if err := d.semaphore.Acquire(ctx, 1); err != nil {
			return nil, utils.NewUpstreamError(fmt.Errorf("download aborted while waiting for a slot: %w", err))
		}
		defer d.semaphore.Release(1)
	}

	fileID := uuid.New().String()
	d.janitor.Track(fileID)
	req := extractor.DownloadRequest{
		URL:            url,
		Selector:       sel.Selector,
		OutputTemplate: filepath.Join(d.dir, fileID+".%(ext)s"),
		CookiesFile:    d.cookieFile(),
		AudioCodec:     sel.AudioCodec,
		AudioQuality:   sel.AudioQuality,
	}

	utils.LogInfo(ctx, "Starting download", utils.Fields{
		"file_id":  fileID,
		"url":      url,
		"format":   sel.Token,
		"selector": sel.Selector,
		"codec":    sel.AudioCodec,
		"cookies":  req.CookiesFile != "",
	})

	runCtx, cancel := d.withTimeout(ctx)
	defer cancel()

	started := time.Now()
	info, err := d.engine.Download(runCtx, req)
	if err != nil {
		d.janitor.Discard(fileID)
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("download timed out after %s: %w", d.timeout, err)
		}
		utils.LogWarn(ctx, "Extraction engine failed", utils.Fields{
			"file_id": fileID,
			"error":   err.Error(),
		})
		return nil, utils.NewUpstreamError(err)
	}

	path, err := d.locate(fileID)
	if err != nil {
		d.janitor.Discard(fileID)
		utils.LogError(ctx, "Engine reported success but produced no file", err, utils.Fields{
			"file_id": fileID,
		})
		return nil, utils.NewArtifactMissingError(fileID)
	}

	utils.LogInfo(ctx, "Download finished", utils.Fields{
		"file_id":  fileID,
		"path":     path,
		"duration": time.Since(started).String(),
	})

	return &models.Artifact{
		ID:        fileID,
		Title:     info.DisplayTitle(DefaultTitle),
		Path:      path,
		CreatedAt: time.Now(),
	}, nil
}

// Lookup resolves metadata without writing anything to the download directory.
func (d *Downloader) Lookup(ctx context.Context, url string) (*models.VideoMetadata, error) {
	runCtx, cancel := d.withTimeout(ctx)
	defer cancel()

	info, err := d.engine.Lookup(runCtx, url, d.cookieFile())
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("lookup timed out after %s: %w", d.timeout, err)
		}
		return nil, utils.NewUpstreamError(err)
	}

	return info.ToMetadata(), nil
}

func (d *Downloader) cookieFile() string {
	if d.cookies == nil {
		return ""
	}
	if path, ok := d.cookies.Path(); ok {
		return path
	}
	return ""
}

func (d *Downloader) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.timeout)
}

// locate finds the completed file named "<id>.<ext>", skipping partial leftovers.
func (d *Downloader) locate(fileID string) (string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return "", fmt.Errorf("failed to list download directory: %w", err)
	}

	prefix := fileID + "."
	var matches []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || !strings.HasPrefix(name, prefix) || isPartial(name) {
			continue
		}
		matches = append(matches, name)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("no file matching %s* in %s", prefix, d.dir)
	}

	// Prefer the final "<id>.<ext>" over intermediates like "<id>.f137.mp4".
	sort.Slice(matches, func(i, j int) bool {
		return strings.Count(matches[i], ".") < strings.Count(matches[j], ".") ||
			(strings.Count(matches[i], ".") == strings.Count(matches[j], ".") && matches[i] < matches[j])
	})

	return filepath.Join(d.dir, matches[0]), nil
}

func isPartial(name string) bool {
	for _, suffix := range partialSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	for _, marker := range partialMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}
