package utils

import (
	"strings"
)

const DefaultDownloadName = "download"

// SanitizeTitle keeps ASCII letters, digits, spaces, hyphens and underscores
// so the result is safe both on disk and inside a Content-Disposition header.
func SanitizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}

// AttachmentName builds the advertised filename from a title and the
// produced file's extension (including the leading dot).
func AttachmentName(title, ext string) string {
	name := SanitizeTitle(title)
	if name == "" {
		name = DefaultDownloadName
	}

	// Limit filename length
	if len(name) > 200 {
		name = strings.TrimSpace(name[:200])
	}

	return name + ext
}
