// Package output handles file naming and writing for semanticmd outputs.
// By default filenames are flattened from the source (e.g., example_com_docs.md);
// in mirror mode they follow the URL path structure.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
	// Mirror lays files out by URL path instead of flattening the name.
	Mirror bool
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string, mirror bool) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir, Mirror: mirror}, nil
}

// ErrOutsideOutputDir is returned for a mirrored source whose path would
// leave the output directory.
var ErrOutsideOutputDir = errors.New("output path escapes the output directory")

// Path returns where output for source with extension ext is written.
func (w *Writer) Path(source, ext string) (string, error) {
	if w.Mirror {
		if rel, ok := mirrorPath(source); ok {
			target := filepath.Join(w.OutputDir, rel+ext)
			if !within(w.OutputDir, target) {
				return "", fmt.Errorf("%s: %w", source, ErrOutsideOutputDir)
			}
			return target, nil
		}
	}
	return filepath.Join(w.OutputDir, filenameFromSource(source)+ext), nil
}

// Conflicts reports, for every source that cannot be written safely, why:
// its path is invalid, or an earlier source already maps to the same file.
// Sources are checked in order, so the first one to claim a path keeps it.
func (w *Writer) Conflicts(sources []string, ext string) map[string]error {
	conflicts := make(map[string]error)
	claimed := make(map[string]string, len(sources))
	for _, src := range sources {
		target, err := w.Path(src, ext)
		if err != nil {
			conflicts[src] = err
			continue
		}
		if first, ok := claimed[target]; ok {
			conflicts[src] = fmt.Errorf("output file %s is already written for %s", target, first)
			continue
		}
		claimed[target] = src
	}
	return conflicts
}

// Write writes data for source and returns the file path.
func (w *Writer) Write(source string, data []byte, ext string) (string, error) {
	target, err := w.Path(source, ext)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", target, err)
	}
	return target, nil
}

// WriteURLMap writes the refify reference table next to the main output
// as <name>.urlmap.json, inverted so tokens map back to URL prefixes.
func (w *Writer) WriteURLMap(source string, refs map[string]string) (string, error) {
	inverted := make(map[string]string, len(refs))
	for prefix, tok := range refs {
		inverted[tok] = prefix
	}
	data, err := json.MarshalIndent(inverted, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling url map: %w", err)
	}
	return w.Write(source, data, ".urlmap.json")
}

// mirrorPath maps https://site.com/docs/intro to docs/intro. Dot
// segments are resolved against the site root.
func mirrorPath(rawURL string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "", false
	}
	urlPath := strings.Trim(path.Clean("/"+parsed.Path), "/")
	if urlPath == "" {
		urlPath = "index"
	}
	return filepath.FromSlash(urlPath), true
}

// within reports whether target lies inside dir.
func within(dir, target string) bool {
	rel, err := filepath.Rel(dir, target)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// filenameFromSource converts a URL or file path into a flat filename.
// Example: https://example.com/docs/intro → example_com_docs_intro,
// ./pages/about.html → about
func filenameFromSource(source string) string {
	parsed, err := url.Parse(source)
	if err != nil || parsed.Host == "" {
		base := filepath.Base(source)
		return sanitize(strings.TrimSuffix(base, filepath.Ext(base)))
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
