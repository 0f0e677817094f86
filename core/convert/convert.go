// Package convert provides the library entry points: HTML text or a parsed
// element in, Markdown out. Each call runs detect (optional) -> lower ->
// refify (optional) -> render.
package convert

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/semanticmd/core"
	"github.com/gaurav-prasanna/semanticmd/core/ast"
	"github.com/gaurav-prasanna/semanticmd/core/extract"
	"github.com/gaurav-prasanna/semanticmd/core/htmldom"
	"github.com/gaurav-prasanna/semanticmd/core/lower"
	"github.com/gaurav-prasanna/semanticmd/core/markdown"
	"github.com/gaurav-prasanna/semanticmd/core/refify"
	"golang.org/x/net/html"
)

// HTML parses src and converts it to Markdown.
func HTML(src string, opts *core.Options) (string, error) {
	if opts == nil {
		opts = &core.Options{}
	}
	parser, err := opts.HTMLParser()
	if err != nil {
		return "", err
	}
	doc, err := parser.ParseHTML(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("parsing document: %w", err)
	}
	return Element(Select(doc, opts), opts)
}

// Select picks the element a parsed document should be converted from.
// With ExtractMainContent it is the detected main content; when metadata
// is also requested and the detected element lies outside <head>, a
// detached <html> holding copies of the head and the element is returned
// so the caller's tree is left untouched.
func Select(doc *html.Node, opts *core.Options) *html.Node {
	head := htmldom.Head(doc)
	wantHead := opts.Meta().Enabled() && head != nil && head.FirstChild != nil

	if opts != nil && opts.ExtractMainContent {
		el := extract.New(opts).FindMainContent(doc)
		if wantHead && !htmldom.Contains(el, head) {
			return withHead(head, el)
		}
		return el
	}
	if wantHead {
		return htmldom.DocumentElement(doc)
	}
	if body := htmldom.Body(doc); body != nil {
		return body
	}
	if root := htmldom.DocumentElement(doc); root != nil {
		return root
	}
	return doc
}

func withHead(head, el *html.Node) *html.Node {
	root := htmldom.CreateElement("html")
	body := htmldom.CreateElement("body")
	root.AppendChild(htmldom.Clone(head))
	body.AppendChild(htmldom.Clone(el))
	root.AppendChild(body)
	return root
}

// Element converts the children of n to Markdown.
func Element(n *html.Node, opts *core.Options) (string, error) {
	if opts == nil {
		opts = &core.Options{}
	}
	nodes, err := AST(n, opts)
	if err != nil {
		return "", err
	}
	md, err := markdown.Render(nodes, opts)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return md, nil
}

// AST lowers n and, when requested, refifies the result, storing the
// reference table in opts.URLMap. A document node is lowered from its
// <html> element.
func AST(n *html.Node, opts *core.Options) ([]ast.Node, error) {
	if opts == nil {
		opts = &core.Options{}
	}
	if n == nil {
		return nil, nil
	}
	if htmldom.KindOf(n) == htmldom.DocumentNode {
		if root := htmldom.DocumentElement(n); root != nil {
			n = root
		}
	}
	nodes, err := lower.Lower(n, opts, 0)
	if err != nil {
		return nil, fmt.Errorf("lowering <%s>: %w", htmldom.TagName(n), err)
	}
	if opts.RefifyURLs {
		opts.URLMap = refify.URLs(nodes, nil)
		opts.Debugf("[convert] refified %d url prefixes", len(opts.URLMap))
	}
	return nodes, nil
}

// FindInMarkdownAST returns the first node matching pred.
func FindInMarkdownAST(nodes []ast.Node, pred func(ast.Node) bool) ast.Node {
	return ast.Find(nodes, pred)
}

// FindAllInMarkdownAST returns every node matching pred.
func FindAllInMarkdownAST(nodes []ast.Node, pred func(ast.Node) bool) []ast.Node {
	return ast.FindAll(nodes, pred)
}
