package extractor

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"github.com/denisAlshanov/mediafetch/internal/config"
)

// YtDlpEngine drives the yt-dlp binary through go-ytdlp. Transcoding happens
// inside yt-dlp's FFmpegExtractAudio post-processor.
type YtDlpEngine struct {
	executable string
	userAgent  string
	referer    string
}

func NewYtDlpEngine(cfg *config.EngineConfig) *YtDlpEngine {
	return &YtDlpEngine{
		executable: cfg.YtDlpPath,
		userAgent:  cfg.UserAgent,
		referer:    cfg.Referer,
	}
}

// Install downloads a yt-dlp build into go-ytdlp's cache when none is available.
func Install(ctx context.Context) error {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	return nil
}

// ExecutableCandidates lists where yt-dlp is looked up, in go-ytdlp's order:
// the configured path alone, or go-ytdlp's install cache followed by PATH.
func ExecutableCandidates(configured string) []string {
	if configured != "" {
		return []string{configured}
	}

	names := []string{"yt-dlp-" + ytdlp.Version, "yt-dlp"}
	if runtime.GOOS == "windows" {
		for i := range names {
			names[i] += ".exe"
		}
	}

	var candidates []string
	if dir, err := ytdlp.GetCacheDir(); err == nil {
		for _, name := range names {
			candidates = append(candidates, filepath.Join(dir, name))
		}
	}
	return append(candidates, names...)
}

// options is the engine-independent view of one invocation.
type options struct {
	Format       string
	Output       string
	Cookies      string
	UserAgent    string
	Referer      string
	ExtractAudio bool
	AudioFormat  string
	AudioQuality string
	DumpOnly     bool
}

func (e *YtDlpEngine) downloadOptions(req DownloadRequest) options {
	opts := options{
		Format:    req.Selector,
		Output:    req.OutputTemplate,
		Cookies:   req.CookiesFile,
		UserAgent: e.userAgent,
		Referer:   e.referer,
	}
	if req.AudioCodec != "" {
		opts.ExtractAudio = true
		opts.AudioFormat = req.AudioCodec
		opts.AudioQuality = req.AudioQuality
	}
	return opts
}

func (e *YtDlpEngine) lookupOptions(cookiesFile string) options {
	return options{
		Cookies:   cookiesFile,
		UserAgent: e.userAgent,
		Referer:   e.referer,
		DumpOnly:  true,
	}
}

func (e *YtDlpEngine) command(opts options) *ytdlp.Command {
	cmd := ytdlp.New().
		NoPlaylist().
		NoWarnings().
		NoProgress()

	if e.executable != "" {
		cmd.SetExecutable(e.executable)
	}
	// AddHeaders keeps a single value, so both headers get their own flag.
	if opts.UserAgent != "" {
		cmd.UserAgent(opts.UserAgent)
	}
	if opts.Referer != "" {
		cmd.Referer(opts.Referer)
	}
	if opts.Cookies != "" {
		cmd.Cookies(opts.Cookies)
	}

	if opts.DumpOnly {
		return cmd.DumpSingleJSON()
	}

	// The janitor ages files by mtime, so keep it at write time rather than
	// the upstream Last-modified.
	cmd.Format(opts.Format).
		Output(opts.Output).
		NoMtime().
		PrintJSON()

	if opts.ExtractAudio {
		cmd.ExtractAudio().
			AudioFormat(opts.AudioFormat).
			AudioQuality(opts.AudioQuality)
	}

	return cmd
}

func (e *YtDlpEngine) Download(ctx context.Context, req DownloadRequest) (*MediaInfo, error) {
	result, err := e.command(e.downloadOptions(req)).Run(ctx, req.URL)
	if err != nil {
		return nil, runError(ctx, result, err)
	}

	info, err := parseInfo(result.Stdout)
	if err != nil {
		// The file may still exist; the caller discovers it by id.
		return &MediaInfo{}, nil
	}
	return info, nil
}

func (e *YtDlpEngine) Lookup(ctx context.Context, url string, cookiesFile string) (*MediaInfo, error) {
	result, err := e.command(e.lookupOptions(cookiesFile)).Run(ctx, url)
	if err != nil {
		return nil, runError(ctx, result, err)
	}

	info, err := parseInfo(result.Stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp metadata: %w", err)
	}
	return info, nil
}

func runError(ctx context.Context, result *ytdlp.Result, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("yt-dlp aborted: %w", ctxErr)
	}
	stderr := ""
	if result != nil {
		stderr = result.Stderr
	}
	return errors.New(errorMessage(stderr, err))
}

// errorMessage prefers yt-dlp's own "ERROR: ..." line over the exit status.
func errorMessage(stderr string, err error) string {
	var last string
	scanner := bufio.NewScanner(strings.NewReader(stderr))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "ERROR:") {
			last = line
		}
	}
	if last != "" {
		return last
	}
	if trimmed := strings.TrimSpace(stderr); trimmed != "" {
		return trimmed
	}
	if err != nil {
		return err.Error()
	}
	return "yt-dlp failed"
}

// parseInfo decodes the last JSON object yt-dlp printed on stdout.
func parseInfo(stdout string) (*MediaInfo, error) {
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var info MediaInfo
		if err := json.Unmarshal([]byte(line), &info); err != nil {
			return nil, err
		}
		return &info, nil
	}
	return nil, errors.New("no JSON object in yt-dlp output")
}
