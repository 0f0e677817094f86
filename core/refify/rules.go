// Package refify — URL reference compaction.
// Long and media URLs in the AST are replaced with short tokens
// (ref0, ref1, ...) and the prefix-to-token table is returned so the
// originals can be recovered.
package refify

import (
	"net/url"
	"path"
	"strings"
)

// mediaExtensions are file extensions whose URLs keep their final path
// segment and have only the prefix tokenized.
var mediaExtensions = map[string]bool{
	// images
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".bmp": true,
	".tiff": true, ".tif": true, ".svg": true, ".webp": true, ".ico": true,
	// video
	".avi": true, ".mov": true, ".mp4": true, ".mkv": true, ".flv": true,
	".wmv": true, ".webm": true, ".mpeg": true, ".mpg": true,
	// audio
	".mp3": true, ".wav": true, ".aac": true, ".ogg": true, ".flac": true, ".m4a": true,
	// documents and markup
	".pdf": true, ".doc": true, ".docx": true, ".ppt": true, ".pptx": true,
	".xls": true, ".xlsx": true, ".txt": true, ".css": true, ".js": true,
	".xml": true, ".json": true, ".html": true, ".htm": true,
}

// maxPlainSegments is the number of "/"-separated parts a non-media URL
// may have before it is tokenized whole.
const maxPlainSegments = 4

// IsWebURL reports whether u uses the http or https scheme.
func IsWebURL(u string) bool {
	lower := strings.ToLower(u)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// IsMedia checks if a URL points to a media or document file.
func IsMedia(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	return mediaExtensions[ext]
}

// splitLeaf separates everything before the final "/" from the final segment.
func splitLeaf(u string) (prefix, leaf string) {
	i := strings.LastIndex(u, "/")
	if i < 0 {
		return "", u
	}
	return u[:i], u[i+1:]
}
