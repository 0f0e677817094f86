// Package normalize implements the Normalizer interface.
// It converts a parsed page into Markdown, the canonical intermediate
// format for all downstream renderers. Two engines are available: the
// semantic engine built on this module's AST, and a CommonMark engine
// backed by html-to-markdown.
package normalize

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/gaurav-prasanna/semanticmd/core"
	"github.com/gaurav-prasanna/semanticmd/core/convert"
	"github.com/gaurav-prasanna/semanticmd/core/extract"
	"github.com/gaurav-prasanna/semanticmd/core/markdown"
	"golang.org/x/net/html"
)

// Engine names accepted by New.
const (
	EngineSemantic   = "semantic"
	EngineCommonmark = "commonmark"
)

// New returns the Normalizer for the named engine.
func New(engine string) (core.Normalizer, error) {
	switch engine {
	case "", EngineSemantic:
		return NewSemantic(), nil
	case EngineCommonmark:
		return NewCommonmark(), nil
	}
	return nil, fmt.Errorf("unknown engine %q (want %s or %s)", engine, EngineSemantic, EngineCommonmark)
}

// SemanticNormalizer converts through the semantic AST.
type SemanticNormalizer struct{}

// NewSemantic creates a SemanticNormalizer.
func NewSemantic() *SemanticNormalizer {
	return &SemanticNormalizer{}
}

// Normalize selects the content root, lowers it and renders Markdown.
func (n *SemanticNormalizer) Normalize(doc *html.Node, opts *core.Options) (*core.Document, error) {
	if opts == nil {
		opts = &core.Options{}
	}
	nodes, err := convert.AST(convert.Select(doc, opts), opts)
	if err != nil {
		return nil, err
	}
	md, err := markdown.Render(nodes, opts)
	if err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return &core.Document{Markdown: md, AST: nodes, URLMap: opts.URLMap}, nil
}

// CommonmarkNormalizer converts with html-to-markdown. It produces no AST,
// so AST-based structure in the JSON output stays empty.
type CommonmarkNormalizer struct {
	conv *converter.Converter
}

// NewCommonmark creates a CommonmarkNormalizer with the base, CommonMark
// and table plugins. Inline data-URI images are replaced by their alt text.
func NewCommonmark() *CommonmarkNormalizer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	conv.Register.RendererFor("img", converter.TagTypeInline,
		func(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
			if !strings.HasPrefix(dom.GetAttributeOr(n, "src", ""), "data:") {
				return converter.RenderTryNext
			}
			if alt := strings.TrimSpace(dom.GetAttributeOr(n, "alt", "")); alt != "" {
				w.WriteString("[Image: " + alt + "]")
			}
			return converter.RenderSuccess
		},
		converter.PriorityEarly,
	)
	return &CommonmarkNormalizer{conv: conv}
}

// Normalize converts the body, or the detected main content, to CommonMark.
func (n *CommonmarkNormalizer) Normalize(doc *html.Node, opts *core.Options) (*core.Document, error) {
	if opts == nil {
		opts = &core.Options{}
	}
	root := doc
	if opts.ExtractMainContent {
		root = extract.New(opts).FindMainContent(doc)
	}

	var convOpts []converter.ConvertOptionFunc
	if opts.WebsiteDomain != "" {
		convOpts = append(convOpts, converter.WithDomain(opts.WebsiteDomain))
	}
	md, err := n.conv.ConvertNode(root, convOpts...)
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return &core.Document{Markdown: strings.TrimSpace(string(md))}, nil
}

// MainOnly wraps a Normalizer so its Markdown keeps only the main region:
// the text between main markers when present, otherwise everything but
// the navigation, header, footer and aside regions.
func MainOnly(next core.Normalizer) core.Normalizer {
	return mainOnly{next: next}
}

type mainOnly struct {
	next core.Normalizer
}

func (m mainOnly) Normalize(doc *html.Node, opts *core.Options) (*core.Document, error) {
	out, err := m.next.Normalize(doc, opts)
	if err != nil {
		return nil, err
	}
	out.Markdown = markdown.MainContent(out.Markdown)
	return out, nil
}
