// Package core defines the conversion options and pipeline interfaces for semanticmd.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"io"

	"github.com/gaurav-prasanna/semanticmd/core/ast"
	"golang.org/x/net/html"
)

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// PageMetadata holds metadata extracted from the page and URL.
type PageMetadata struct {
	URL       string `json:"url"`
	Domain    string `json:"domain"`
	Path      string `json:"path"`
	Title     string `json:"title"`
	Language  string `json:"language"`
	FetchedAt string `json:"fetched_at"` // ISO8601
}

// Section represents a heading-delimited section of content.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Text    string `json:"text"`
}

// Heading represents a single heading found in the content.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a hyperlink found in the content.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// PageContent holds the text and structured content of a page.
type PageContent struct {
	Markdown string    `json:"markdown"`
	Sections []Section `json:"sections"`
}

// PageStructure holds structural metadata read from the AST.
type PageStructure struct {
	Headings   []Heading `json:"headings"`
	Links      []Link    `json:"links"`
	Images     int       `json:"images"`
	CodeBlocks int       `json:"code_blocks"`
	Tables     int       `json:"tables"`
	Lists      int       `json:"lists"`
}

// PageJSON is the complete JSON output for a single page.
type PageJSON struct {
	Metadata  PageMetadata      `json:"metadata"`
	Content   PageContent       `json:"content"`
	Structure PageStructure     `json:"structure"`
	URLMap    map[string]string `json:"url_map,omitempty"`
}

// Document is the canonical pipeline format: rendered Markdown plus, when
// the semantic engine produced it, the AST it was rendered from.
type Document struct {
	Markdown string
	AST      []ast.Node
	URLMap   map[string]string
}

// Parser turns HTML text into a document tree.
type Parser interface {
	ParseHTML(r io.Reader) (*html.Node, error)
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor selects the main content subtree of a parsed document.
type Extractor interface {
	Extract(doc *html.Node) *html.Node
}

// Normalizer converts a parsed document into the canonical Markdown document.
type Normalizer interface {
	Normalize(doc *html.Node, opts *Options) (*Document, error)
}

// Renderer converts a Document (and metadata) into a final output format.
type Renderer interface {
	Render(doc *Document, meta PageMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
