package storage

import "strings"

// MediaTypeExtension maps a sniffed media type to the format token used as the
// stored file extension.
var MediaTypeExtension = map[string]string{
	"image/jpeg":     "jpeg",
	"image/pjpeg":    "jpeg",
	"image/png":      "png",
	"image/gif":      "gif",
	"image/webp":     "webp",
	"image/bmp":      "bmp",
	"image/x-ms-bmp": "bmp",
	"image/tiff":     "tiff",
}

// FormatForMediaType returns the format token for mediaType, or "" if unknown.
func FormatForMediaType(mediaType string) string {
	mediaType, _, _ = strings.Cut(mediaType, ";")
	return MediaTypeExtension[strings.TrimSpace(strings.ToLower(mediaType))]
}
