// Package formats maps user-facing quality and codec tokens to yt-dlp
// stream selection expressions.
package formats

import (
	"fmt"
	"strings"
)

const (
	// BestSelector picks the single best stream and is used for unknown tokens.
	BestSelector = "best"

	mp3Quality     = "320"
	defaultQuality = "0"
)

// Selection is what the download invoker hands to the extraction engine.
type Selection struct {
	Token        string
	Selector     string
	AudioCodec   string
	AudioQuality string
}

// IsAudio reports whether the selection asks for post-extraction transcoding.
func (s Selection) IsAudio() bool {
	return s.AudioCodec != ""
}

type audioFormat struct {
	selector string
	codec    string
}

var videoCeilings = map[string]int{
	"144p":  144,
	"240p":  240,
	"360p":  360,
	"480p":  480,
	"720p":  720,
	"1080p": 1080,
	"1440p": 1440,
	"4k":    2160,
}

var audioFormats = map[string]audioFormat{
	"mp3":  {selector: "bestaudio/best", codec: "mp3"},
	"m4a":  {selector: "bestaudio[ext=m4a]/bestaudio/best", codec: "m4a"},
	"webm": {selector: "bestaudio[ext=webm]/bestaudio/best"},
	"aac":  {selector: "bestaudio/best", codec: "aac"},
	"flac": {selector: "bestaudio/best", codec: "flac"},
	"opus": {selector: "bestaudio[ext=opus]/bestaudio/best", codec: "opus"},
	"ogg":  {selector: "bestaudio[ext=ogg]/bestaudio/best", codec: "vorbis"},
	"wav":  {selector: "bestaudio/best", codec: "wav"},
}

// VideoTokens and AudioTokens list the vocabulary in display order.
var (
	VideoTokens = []string{"144p", "240p", "360p", "480p", "720p", "1080p", "1440p", "4k"}
	AudioTokens = []string{"mp3", "m4a", "webm", "aac", "flac", "opus", "ogg", "wav"}
)

// Resolve never fails: anything outside the vocabulary falls back to BestSelector
// without transcoding.
func Resolve(token string) Selection {
	key := strings.ToLower(strings.TrimSpace(token))

	if height, ok := videoCeilings[key]; ok {
		return Selection{
			Token:    key,
			Selector: VideoSelector(height),
		}
	}

	if af, ok := audioFormats[key]; ok {
		sel := Selection{
			Token:    key,
			Selector: af.selector,
		}
		if af.codec != "" {
			sel.AudioCodec = af.codec
			sel.AudioQuality = AudioQuality(af.codec)
		}
		return sel
	}

	return Selection{Token: key, Selector: BestSelector}
}

// VideoSelector prefers separate video+audio streams under the ceiling and
// falls back to the best muxed stream under the same ceiling.
func VideoSelector(maxHeight int) string {
	return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]", maxHeight, maxHeight)
}

// AudioQuality is the --audio-quality value for codec: a fixed 320k for mp3,
// the encoder's best (0) for everything else.
func AudioQuality(codec string) string {
	if codec == "mp3" {
		return mp3Quality
	}
	return defaultQuality
}

// MaxHeight returns the resolution ceiling for a video token.
func MaxHeight(token string) (int, bool) {
	h, ok := videoCeilings[strings.ToLower(strings.TrimSpace(token))]
	return h, ok
}
