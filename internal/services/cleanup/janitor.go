// Package cleanup deletes produced files once they have been delivered and
// sweeps leftovers from requests that never got that far.
package cleanup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/denisAlshanov/mediafetch/internal/utils"
)

type Janitor struct {
	dir      string
	maxAge   time.Duration
	interval time.Duration
	wg       sync.WaitGroup
	live     sync.Map
}

func NewJanitor(dir string, maxAge, interval time.Duration) *Janitor {
	return &Janitor{
		dir:      dir,
		maxAge:   maxAge,
		interval: interval,
	}
}

// Track marks id as in flight. Sweep leaves its files alone until Release,
// Schedule or Discard is called for it.
func (j *Janitor) Track(id string) {
	if id != "" {
		j.live.Store(id, struct{}{})
	}
}

// Release hands id back to the sweeper without touching its files.
func (j *Janitor) Release(id string) {
	j.live.Delete(id)
}

func (j *Janitor) isLive(id string) bool {
	_, ok := j.live.Load(id)
	return ok
}

// Schedule removes every artifact of id in the background and releases it.
// Failures are logged and dropped.
func (j *Janitor) Schedule(id string) {
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		j.Discard(id)
	}()
}

// Discard removes every artifact of id right away and releases it.
func (j *Janitor) Discard(id string) int {
	defer j.Release(id)
	return j.RemoveArtifacts(id)
}

// Wait blocks until every scheduled removal has finished.
func (j *Janitor) Wait() {
	j.wg.Wait()
}

// RemoveArtifacts deletes every entry whose name starts with "<id>.".
func (j *Janitor) RemoveArtifacts(id string) int {
	if id == "" {
		return 0
	}

	entries, err := os.ReadDir(j.dir)
	if err != nil {
		return 0
	}

	removed := 0
	prefix := id + "."
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), prefix) {
			if removeQuietly(filepath.Join(j.dir, entry.Name())) {
				removed++
			}
		}
	}
	return removed
}

// Sweep removes regular files older than maxAge, skipping tracked ids. A zero
// maxAge disables it.
func (j *Janitor) Sweep() int {
	if j.maxAge <= 0 {
		return 0
	}

	entries, err := os.ReadDir(j.dir)
	if err != nil {
		return 0
	}

	cutoff := time.Now().Add(-j.maxAge)
	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if id, _, _ := strings.Cut(entry.Name(), "."); j.isLive(id) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if removeQuietly(filepath.Join(j.dir, entry.Name())) {
			removed++
		}
	}
	return removed
}

// Run sweeps once immediately and then on every interval until ctx is done.
func (j *Janitor) Run(ctx context.Context) {
	j.sweepAndLog(ctx)

	if j.interval <= 0 {
		return
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweepAndLog(ctx)
		}
	}
}

func (j *Janitor) sweepAndLog(ctx context.Context) {
	if n := j.Sweep(); n > 0 {
		utils.LogInfo(ctx, "Swept stale artifacts", utils.Fields{
			"removed": n,
			"dir":     j.dir,
		})
	}
}

func removeQuietly(path string) bool {
	err := os.Remove(path)
	if err == nil {
		return true
	}
	if !errors.Is(err, os.ErrNotExist) {
		utils.LogDebug(context.Background(), "Failed to remove artifact", utils.Fields{
			"path":  path,
			"error": err.Error(),
		})
	}
	return false
}
