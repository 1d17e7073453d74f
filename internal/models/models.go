package models

import "time"

type DownloadRequest struct {
	URL    string `json:"url" binding:"required" example:"https://www.youtube.com/watch?v=dQw4w9WgXcQ"`
	Format string `json:"format" example:"720p"`
}

// VideoMetadata is the flattened description returned by /info.
// Pointer fields are null when the source does not report them.
type VideoMetadata struct {
	Title     *string        `json:"title"`
	Duration  *float64       `json:"duration"`
	Thumbnail *string        `json:"thumbnail"`
	Uploader  *string        `json:"uploader"`
	ViewCount *int64         `json:"view_count"`
	Formats   []StreamFormat `json:"formats"`
}

type StreamFormat struct {
	FormatID string  `json:"format_id"`
	Ext      string  `json:"ext"`
	Quality  *string `json:"quality"`
	FileSize *int64  `json:"filesize"`
}

type MessageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type CookiesStatusResponse struct {
	HasCookies bool  `json:"has_cookies"`
	FileSize   int64 `json:"file_size"`
}

type FormatsResponse struct {
	Video   []string `json:"video"`
	Audio   []string `json:"audio"`
	Default string   `json:"default"`
}

type ErrorResponse struct {
	Detail    string `json:"detail"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
	Timestamp string `json:"timestamp"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

type ReadinessResponse struct {
	Ready     bool                   `json:"ready"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks"`
}

type CheckResult struct {
	Ready        bool   `json:"ready"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Artifact is a produced file awaiting delivery.
type Artifact struct {
	ID        string
	Title     string
	Path      string
	CreatedAt time.Time
}
