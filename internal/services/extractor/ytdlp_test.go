package extractor

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lrstanley/go-ytdlp"

	"github.com/denisAlshanov/mediafetch/internal/config"
)

const sampleInfo = `{"id":"dQw4w9WgXcQ","title":"Never Gonna Give You Up","duration":212,"thumbnail":"https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg","uploader":"Rick Astley","view_count":1500000000,"ext":"mp4","formats":[{"format_id":"140","ext":"m4a","format_note":"medium","filesize":3433514},{"format_id":"22","ext":"mp4","format_note":"720p","filesize_approx":21000000},{"format_id":"sb0","ext":"mhtml","format_note":"storyboard"},{"ext":"mp4"}]}`

func newTestEngine() *YtDlpEngine {
	return NewYtDlpEngine(&config.EngineConfig{
		UserAgent: "TestAgent/1.0",
		Referer:   "https://example.com/",
	})
}

func TestParseInfoPicksLastJSONLine(t *testing.T) {
	stdout := "[youtube] Extracting URL\nnot json\n" + sampleInfo + "\n"

	info, err := parseInfo(stdout)
	if err != nil {
		t.Fatalf("parseInfo() error = %v", err)
	}
	if info.ID != "dQw4w9WgXcQ" {
		t.Errorf("unexpected id %q", info.ID)
	}
	if got := info.DisplayTitle("video"); got != "Never Gonna Give You Up" {
		t.Errorf("unexpected title %q", got)
	}
	if info.ViewCount == nil || *info.ViewCount != 1500000000 {
		t.Errorf("unexpected view count %v", info.ViewCount)
	}
}

func TestParseInfoWithoutJSON(t *testing.T) {
	if _, err := parseInfo("[download] 100%\n"); err == nil {
		t.Fatal("expected an error when stdout carries no JSON")
	}
}

func TestDisplayTitleFallback(t *testing.T) {
	empty := ""
	testCases := []struct {
		name string
		info *MediaInfo
	}{
		{name: "nil info", info: nil},
		{name: "missing title", info: &MediaInfo{}},
		{name: "empty title", info: &MediaInfo{Title: &empty}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.info.DisplayTitle("video"); got != "video" {
				t.Errorf("DisplayTitle() = %q, want fallback", got)
			}
		})
	}
}

func TestToMetadata(t *testing.T) {
	info, err := parseInfo(sampleInfo)
	if err != nil {
		t.Fatalf("parseInfo() error = %v", err)
	}

	meta := info.ToMetadata()
	if meta.Duration == nil || *meta.Duration != 212 {
		t.Errorf("unexpected duration %v", meta.Duration)
	}
	if len(meta.Formats) != 3 {
		t.Fatalf("expected 3 formats with id and ext, got %d", len(meta.Formats))
	}
	for _, f := range meta.Formats {
		if f.FormatID == "" || f.Ext == "" {
			t.Errorf("format missing id or ext: %+v", f)
		}
	}

	if meta.Formats[0].FileSize == nil || *meta.Formats[0].FileSize != 3433514 {
		t.Errorf("expected exact filesize for 140, got %v", meta.Formats[0].FileSize)
	}
	if meta.Formats[1].FileSize == nil || *meta.Formats[1].FileSize != 21000000 {
		t.Errorf("expected approximate filesize for 22, got %v", meta.Formats[1].FileSize)
	}
	if meta.Formats[2].FileSize != nil {
		t.Errorf("expected nil filesize for storyboard, got %v", *meta.Formats[2].FileSize)
	}
	if meta.Formats[1].Quality == nil || *meta.Formats[1].Quality != "720p" {
		t.Errorf("unexpected quality label %v", meta.Formats[1].Quality)
	}
}

func TestErrorMessage(t *testing.T) {
	testCases := []struct {
		name   string
		stderr string
		err    error
		want   string
	}{
		{
			name:   "Last ERROR line wins",
			stderr: "WARNING: throttled\nERROR: first\nERROR: [youtube] abc: Private video\n",
			err:    errors.New("exit status 1"),
			want:   "ERROR: [youtube] abc: Private video",
		},
		{
			name:   "Raw stderr without ERROR prefix",
			stderr: "  Sign in to confirm you're not a bot  \n",
			err:    errors.New("exit status 1"),
			want:   "Sign in to confirm you're not a bot",
		},
		{
			name: "Falls back to the exit error",
			err:  errors.New("exec: \"yt-dlp\": executable file not found in $PATH"),
			want: "exec: \"yt-dlp\": executable file not found in $PATH",
		},
		{
			name: "Nothing to report",
			want: "yt-dlp failed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := errorMessage(tc.stderr, tc.err); got != tc.want {
				t.Errorf("errorMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDownloadOptions(t *testing.T) {
	engine := newTestEngine()

	video := engine.downloadOptions(DownloadRequest{
		URL:            "https://example.com/v",
		Selector:       "bestvideo[height<=720]+bestaudio/best[height<=720]",
		OutputTemplate: "/tmp/downloads/abc.%(ext)s",
	})
	if video.ExtractAudio || video.AudioFormat != "" {
		t.Errorf("video download should not extract audio: %+v", video)
	}
	if video.Cookies != "" {
		t.Errorf("expected no cookies, got %q", video.Cookies)
	}
	if video.Output != "/tmp/downloads/abc.%(ext)s" {
		t.Errorf("unexpected output template %q", video.Output)
	}
	if video.UserAgent != "TestAgent/1.0" || video.Referer != "https://example.com/" {
		t.Errorf("unexpected headers %q %q", video.UserAgent, video.Referer)
	}

	audio := engine.downloadOptions(DownloadRequest{
		Selector:     "bestaudio/best",
		CookiesFile:  "/data/cookies.txt",
		AudioCodec:   "mp3",
		AudioQuality: "320",
	})
	if !audio.ExtractAudio || audio.AudioFormat != "mp3" || audio.AudioQuality != "320" {
		t.Errorf("unexpected audio options %+v", audio)
	}
	if audio.Cookies != "/data/cookies.txt" {
		t.Errorf("expected cookies to be forwarded, got %q", audio.Cookies)
	}
}

func TestLookupOptions(t *testing.T) {
	opts := newTestEngine().lookupOptions("/data/cookies.txt")

	if !opts.DumpOnly {
		t.Error("lookup must not download")
	}
	if opts.Format != "" || opts.Output != "" {
		t.Errorf("lookup should not set selection or output: %+v", opts)
	}
	if opts.Cookies != "/data/cookies.txt" {
		t.Errorf("expected cookies to be forwarded, got %q", opts.Cookies)
	}
}

func TestToMetadataFloatCounts(t *testing.T) {
	info, err := parseInfo(`{"title":"x","view_count":42.0,"formats":[{"format_id":"hls-1","ext":"mp4","filesize_approx":1234567.89}]}`)
	if err != nil {
		t.Fatalf("parseInfo() error = %v", err)
	}

	meta := info.ToMetadata()
	if meta.ViewCount == nil || *meta.ViewCount != 42 {
		t.Errorf("unexpected view count %v", meta.ViewCount)
	}
	if len(meta.Formats) != 1 || meta.Formats[0].FileSize == nil || *meta.Formats[0].FileSize != 1234567 {
		t.Errorf("unexpected formats %+v", meta.Formats)
	}
}

// commandArgs flattens the flags go-ytdlp would pass to the binary.
func commandArgs(e *YtDlpEngine, opts options) []string {
	var args []string
	for _, f := range e.command(opts).GetFlagConfig().ToFlags() {
		args = append(args, f.Raw()...)
	}
	return args
}

func flagValue(args []string, flag string) (string, bool) {
	for i, arg := range args {
		if arg != flag {
			continue
		}
		if i+1 < len(args) {
			return args[i+1], true
		}
		return "", true
	}
	return "", false
}

func TestCommandFlags(t *testing.T) {
	engine := newTestEngine()

	testCases := []struct {
		name   string
		opts   options
		want   map[string]string
		bools  []string
		absent []string
	}{
		{
			name: "Video download",
			opts: engine.downloadOptions(DownloadRequest{
				Selector:       "bestvideo[height<=720]+bestaudio/best[height<=720]",
				OutputTemplate: "/tmp/downloads/abc.%(ext)s",
				CookiesFile:    "/data/cookies.txt",
			}),
			want: map[string]string{
				"--format":     "bestvideo[height<=720]+bestaudio/best[height<=720]",
				"--output":     "/tmp/downloads/abc.%(ext)s",
				"--cookies":    "/data/cookies.txt",
				"--user-agent": "TestAgent/1.0",
				"--referer":    "https://example.com/",
			},
			bools:  []string{"--no-playlist", "--no-mtime", "--print-json"},
			absent: []string{"--extract-audio", "--add-headers", "--dump-single-json"},
		},
		{
			name: "Ogg transcodes to vorbis at best quality",
			opts: engine.downloadOptions(DownloadRequest{
				Selector:       "bestaudio[ext=ogg]/bestaudio/best",
				OutputTemplate: "/tmp/downloads/abc.%(ext)s",
				AudioCodec:     "vorbis",
				AudioQuality:   "0",
			}),
			want: map[string]string{
				"--format":        "bestaudio[ext=ogg]/bestaudio/best",
				"--audio-format":  "vorbis",
				"--audio-quality": "0",
			},
			bools:  []string{"--extract-audio", "--no-mtime"},
			absent: []string{"--cookies"},
		},
		{
			name: "Mp3 transcodes at 320k",
			opts: engine.downloadOptions(DownloadRequest{
				Selector:       "bestaudio/best",
				OutputTemplate: "/tmp/downloads/abc.%(ext)s",
				AudioCodec:     "mp3",
				AudioQuality:   "320",
			}),
			want: map[string]string{
				"--audio-format":  "mp3",
				"--audio-quality": "320",
			},
			bools: []string{"--extract-audio"},
		},
		{
			name: "Lookup dumps metadata only",
			opts: engine.lookupOptions("/data/cookies.txt"),
			want: map[string]string{
				"--cookies":    "/data/cookies.txt",
				"--user-agent": "TestAgent/1.0",
				"--referer":    "https://example.com/",
			},
			bools:  []string{"--dump-single-json", "--no-playlist"},
			absent: []string{"--format", "--output", "--print-json", "--extract-audio"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			args := commandArgs(engine, tc.opts)
			joined := strings.Join(args, " ")

			for flag, want := range tc.want {
				got, ok := flagValue(args, flag)
				if !ok {
					t.Errorf("missing %s in %q", flag, joined)
					continue
				}
				if got != want {
					t.Errorf("%s = %q, want %q", flag, got, want)
				}
			}
			for _, flag := range tc.bools {
				if _, ok := flagValue(args, flag); !ok {
					t.Errorf("missing %s in %q", flag, joined)
				}
			}
			for _, flag := range tc.absent {
				if _, ok := flagValue(args, flag); ok {
					t.Errorf("unexpected %s in %q", flag, joined)
				}
			}
		})
	}
}

func TestCommandFlagsWithoutHeaders(t *testing.T) {
	engine := NewYtDlpEngine(&config.EngineConfig{})

	args := commandArgs(engine, engine.lookupOptions(""))
	for _, flag := range []string{"--user-agent", "--referer", "--cookies"} {
		if _, ok := flagValue(args, flag); ok {
			t.Errorf("unexpected %s in %v", flag, args)
		}
	}
}

func TestExecutableCandidates(t *testing.T) {
	if got := ExecutableCandidates("/opt/bin/yt-dlp"); len(got) != 1 || got[0] != "/opt/bin/yt-dlp" {
		t.Errorf("configured path should be the only candidate, got %v", got)
	}

	got := ExecutableCandidates("")
	if len(got) == 0 || !strings.HasPrefix(filepath.Base(got[len(got)-1]), "yt-dlp") || filepath.IsAbs(got[len(got)-1]) {
		t.Fatalf("expected a bare PATH name last, got %v", got)
	}

	cacheDir, err := ytdlp.GetCacheDir()
	if err != nil {
		t.Skipf("no user cache dir: %v", err)
	}
	if !strings.HasPrefix(got[0], cacheDir) {
		t.Errorf("expected the install cache to be searched first, got %v", got)
	}
}
