// Package render — JSON renderer.
// Builds the structured JSON output from a Document and page metadata.
// Structure (headings, links, images, code blocks, tables, lists) is read
// from the AST when the semantic engine produced one, and parsed from the
// Markdown otherwise.
package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/semanticmd/core"
	"github.com/gaurav-prasanna/semanticmd/core/ast"
)

// JSONRenderer produces structured JSON output.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts the Document and metadata into the JSON structure.
func (r *JSONRenderer) Render(doc *core.Document, meta core.PageMetadata) ([]byte, error) {
	var structure core.PageStructure
	if doc.AST != nil {
		structure = structureFromAST(doc.AST)
	} else {
		structure = structureFromMarkdown(doc.Markdown)
	}

	page := core.PageJSON{
		Metadata: meta,
		Content: core.PageContent{
			Markdown: doc.Markdown,
			Sections: buildSections(doc.Markdown),
		},
		Structure: structure,
		URLMap:    doc.URLMap,
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

func structureFromAST(nodes []ast.Node) core.PageStructure {
	s := core.PageStructure{
		Headings: []core.Heading{},
		Links:    []core.Link{},
	}
	for _, n := range ast.FindAll(nodes, ast.OfType(ast.TypeHeading)) {
		h := n.(*ast.Heading)
		s.Headings = append(s.Headings, core.Heading{Level: h.Level, Text: textOf(h.Content)})
	}
	for _, n := range ast.FindAll(nodes, ast.OfType(ast.TypeLink)) {
		l := n.(*ast.Link)
		s.Links = append(s.Links, core.Link{Text: textOf(l.Content), Href: l.Href})
	}
	s.Images = len(ast.FindAll(nodes, ast.OfType(ast.TypeImage)))
	s.CodeBlocks = len(ast.FindAll(nodes, func(n ast.Node) bool {
		c, ok := n.(*ast.Code)
		return ok && !c.Inline
	}))
	s.Tables = len(ast.FindAll(nodes, ast.OfType(ast.TypeTable)))
	s.Lists = len(ast.FindAll(nodes, ast.OfType(ast.TypeList)))
	return s
}

// --- Markdown parsing helpers, used when no AST is available ---

var headingRegex = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

// linkRegex matches Markdown links [text](url).
var linkRegex = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)

var (
	imageRegex    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	tableSepRegex = regexp.MustCompile(`(?m)^\|[-:| ]+\|$`)
	listItemRegex = regexp.MustCompile(`^\s*([-*]|\d+\.)(\s|$)`)
)

func structureFromMarkdown(md string) core.PageStructure {
	s := core.PageStructure{
		Headings: []core.Heading{},
		Links:    []core.Link{},
	}
	for _, m := range headingRegex.FindAllStringSubmatch(md, -1) {
		s.Headings = append(s.Headings, core.Heading{Level: len(m[1]), Text: strings.TrimSpace(m[2])})
	}
	withoutImages := imageRegex.ReplaceAllString(md, "")
	for _, m := range linkRegex.FindAllStringSubmatch(withoutImages, -1) {
		s.Links = append(s.Links, core.Link{Text: m[1], Href: m[2]})
	}
	s.Images = len(imageRegex.FindAllString(md, -1))
	s.CodeBlocks = strings.Count(md, "```") / 2
	s.Tables = len(tableSepRegex.FindAllString(md, -1))
	s.Lists = countLists(md)
	return s
}

// countLists counts runs of consecutive list item lines.
func countLists(md string) int {
	count, inList := 0, false
	for _, line := range strings.Split(md, "\n") {
		item := listItemRegex.MatchString(line)
		if item && !inList {
			count++
		}
		inList = item
	}
	return count
}

// buildSections splits the Markdown at heading lines.
func buildSections(md string) []core.Section {
	var sections []core.Section
	var current *core.Section
	var lines []string
	inFence := false

	flush := func() {
		if current != nil {
			current.Text = strings.TrimSpace(strings.Join(lines, "\n"))
			sections = append(sections, *current)
		}
	}
	for _, line := range strings.Split(md, "\n") {
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
		}
		if m := headingRegex.FindStringSubmatch(line); m != nil && !inFence {
			flush()
			current = &core.Section{Heading: strings.TrimSpace(m[2]), Level: len(m[1])}
			lines = nil
			continue
		}
		if current != nil {
			lines = append(lines, line)
		}
	}
	flush()
	return sections
}
