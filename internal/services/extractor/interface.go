package extractor

import (
	"context"

	"github.com/denisAlshanov/mediafetch/internal/models"
)

// Engine is the external extraction + transcoding collaborator.
type Engine interface {
	// Download fetches the stream(s) picked by req.Selector into req.OutputTemplate
	// and returns the engine's description of the produced media.
	Download(ctx context.Context, req DownloadRequest) (*MediaInfo, error)

	// Lookup resolves metadata without producing any file.
	Lookup(ctx context.Context, url string, cookiesFile string) (*MediaInfo, error)
}

type DownloadRequest struct {
	URL            string
	Selector       string
	OutputTemplate string
	CookiesFile    string
	AudioCodec     string
	AudioQuality   string
}

// MediaInfo mirrors the subset of yt-dlp's info JSON the service reads.
// Counts and sizes are decoded as floats since some extractors report them that way.
type MediaInfo struct {
	ID        string         `json:"id"`
	Title     *string        `json:"title"`
	Duration  *float64       `json:"duration"`
	Thumbnail *string        `json:"thumbnail"`
	Uploader  *string        `json:"uploader"`
	ViewCount *float64       `json:"view_count"`
	Ext       string         `json:"ext"`
	Filename  string         `json:"filename"`
	Formats   []StreamFormat `json:"formats"`
}

type StreamFormat struct {
	FormatID       *string  `json:"format_id"`
	Ext            *string  `json:"ext"`
	FormatNote     *string  `json:"format_note"`
	FileSize       *float64 `json:"filesize"`
	FileSizeApprox *float64 `json:"filesize_approx"`
}

// ToMetadata flattens the engine result into the API shape.
func (m *MediaInfo) ToMetadata() *models.VideoMetadata {
	meta := &models.VideoMetadata{
		Title:     m.Title,
		Duration:  m.Duration,
		Thumbnail: m.Thumbnail,
		Uploader:  m.Uploader,
		ViewCount: toInt64(m.ViewCount),
		Formats:   make([]models.StreamFormat, 0, len(m.Formats)),
	}

	for _, f := range m.Formats {
		if f.FormatID == nil || f.Ext == nil {
			continue
		}
		size := f.FileSize
		if size == nil {
			size = f.FileSizeApprox
		}
		meta.Formats = append(meta.Formats, models.StreamFormat{
			FormatID: *f.FormatID,
			Ext:      *f.Ext,
			Quality:  f.FormatNote,
			FileSize: toInt64(size),
		})
	}

	return meta
}

// DisplayTitle returns the reported title or fallback when there is none.
func (m *MediaInfo) DisplayTitle(fallback string) string {
	if m == nil || m.Title == nil || *m.Title == "" {
		return fallback
	}
	return *m.Title
}

func toInt64(v *float64) *int64 {
	if v == nil {
		return nil
	}
	n := int64(*v)
	return &n
}
