// Package render provides output renderers for the semanticmd pipeline.
// This file implements the Markdown renderer, which is a simple passthrough.
package render

import (
	"github.com/gaurav-prasanna/semanticmd/core"
)

// MarkdownRenderer writes Markdown as-is. It's the simplest renderer
// since Markdown is already the canonical pipeline format.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown as bytes with a trailing newline.
func (r *MarkdownRenderer) Render(doc *core.Document, meta core.PageMetadata) ([]byte, error) {
	if doc.Markdown == "" {
		return nil, nil
	}
	return []byte(doc.Markdown + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// New returns the renderer for a format name.
func New(format string) (core.Renderer, error) {
	switch format {
	case "", "markdown":
		return NewMarkdownRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "pdf":
		return NewPDFRenderer(), nil
	}
	return nil, &UnknownFormatError{Format: format}
}

// UnknownFormatError is returned by New for an unsupported format.
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return "unknown output format " + `"` + e.Format + `"` + " (want markdown, json or pdf)"
}
