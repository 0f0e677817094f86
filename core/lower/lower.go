// Package lower converts a DOM subtree into the semantic AST.
//
// Each child of the given element is dispatched in priority order: the
// caller's OverrideElementProcessing hook, then text handling, then the
// built-in rule for the element's tag category, and finally the
// ProcessUnhandledElement hook before flattening unknown elements.
package lower

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/semanticmd/core"
	"github.com/gaurav-prasanna/semanticmd/core/ast"
	"github.com/gaurav-prasanna/semanticmd/core/htmldom"
	"golang.org/x/net/html"
)

// Lower converts the children of n, never n itself, into AST nodes.
func Lower(n *html.Node, opts *core.Options, indentLevel int) ([]ast.Node, error) {
	if opts == nil {
		opts = &core.Options{}
	}
	l := &lowerer{opts: opts, limit: opts.Depth()}
	return l.children(n, indentLevel, 0)
}

type lowerer struct {
	opts  *core.Options
	limit int
}

func (l *lowerer) children(n *html.Node, indent, depth int) ([]ast.Node, error) {
	if depth > l.limit {
		return nil, core.ErrTooDeep
	}
	var out []ast.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		nodes, err := l.node(c, indent, depth)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

func (l *lowerer) node(n *html.Node, indent, depth int) ([]ast.Node, error) {
	if hook := l.opts.OverrideElementProcessing; hook != nil {
		res, err := hook(n, l.opts, indent)
		if err != nil {
			return nil, fmt.Errorf("override element processing: %w", err)
		}
		if len(res) > 0 {
			l.opts.Debugf("[lower] element processing overridden: %s", htmldom.KindOf(n))
			return res, nil
		}
	}

	switch htmldom.KindOf(n) {
	case htmldom.TextNode:
		text := strings.TrimSpace(n.Data)
		if Escape(text) == "" {
			return nil, nil
		}
		l.opts.Debugf("[lower] text %q", text)
		return []ast.Node{&ast.Text{Content: text}}, nil
	case htmldom.ElementNode:
		return l.element(n, indent, depth)
	}
	return nil, nil
}

func (l *lowerer) element(n *html.Node, indent, depth int) ([]ast.Node, error) {
	tag := htmldom.TagName(n)
	next := depth + 1

	switch classify(tag, l.opts) {
	case catDrop:
		return nil, nil

	case catHeading:
		level, _ := strconv.Atoi(tag[1:])
		l.opts.Debugf("[lower] heading %d", level)
		return []ast.Node{&ast.Heading{Level: level, Content: escapedText(n)}}, nil

	case catParagraph:
		l.opts.Debugf("[lower] paragraph")
		content, err := l.children(n, 0, next)
		if err != nil {
			return nil, err
		}
		return append(content, &ast.Text{Content: "\n\n"}), nil

	case catLink:
		link, err := l.link(n, next)
		if err != nil {
			return nil, err
		}
		return []ast.Node{link}, nil

	case catImage:
		src := htmldom.Src(n)
		if strings.HasPrefix(src, "data:image") {
			src = "-"
		} else {
			src = l.relativize(src)
		}
		l.opts.Debugf("[lower] image src=%q", src)
		return []ast.Node{&ast.Image{Src: src, Alt: Escape(htmldom.Alt(n))}}, nil

	case catVideo:
		l.opts.Debugf("[lower] video src=%q", htmldom.Src(n))
		return []ast.Node{&ast.Video{
			Src:      htmldom.Src(n),
			Poster:   Escape(htmldom.Poster(n)),
			Controls: htmldom.Controls(n),
		}}, nil

	case catList:
		list := &ast.List{Ordered: tag == "ol"}
		for _, li := range htmldom.Children(n) {
			content, err := l.children(li, indent+1, next)
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, &ast.ListItem{Content: content})
		}
		l.opts.Debugf("[lower] list ordered=%t items=%d", list.Ordered, len(list.Items))
		return []ast.Node{list}, nil

	case catBreak:
		return []ast.Node{&ast.Text{Content: "\n"}}, nil

	case catTable:
		table, err := l.table(n, indent, next)
		if err != nil {
			return nil, err
		}
		return []ast.Node{table}, nil

	case catHead:
		return []ast.Node{l.meta(n)}, nil

	case catEmphasis:
		content := escapedText(n)
		if len(content) == 0 {
			return nil, nil
		}
		l.opts.Debugf("[lower] %s", tag)
		return []ast.Node{emphasisNodes[tag](content)}, nil

	case catCode:
		text := strings.TrimSpace(htmldom.TextContent(n))
		if text == "" {
			return nil, nil
		}
		inline := htmldom.TagName(n.Parent) != "pre"
		l.opts.Debugf("[lower] code inline=%t", inline)
		return []ast.Node{&ast.Code{Content: text, Language: language(n), Inline: inline}}, nil

	case catBlockquote:
		content, err := l.children(n, 0, next)
		if err != nil {
			return nil, err
		}
		return []ast.Node{&ast.Blockquote{Content: content}}, nil

	case catSemantic:
		content, err := l.children(n, 0, next)
		if err != nil {
			return nil, err
		}
		l.opts.Debugf("[lower] semantic element %s", tag)
		return []ast.Node{&ast.SemanticHTML{Tag: semanticTags[tag], Content: content}}, nil
	}

	if hook := l.opts.ProcessUnhandledElement; hook != nil {
		res, err := hook(n, l.opts, indent)
		if err != nil {
			return nil, fmt.Errorf("process unhandled element <%s>: %w", tag, err)
		}
		if len(res) > 0 {
			l.opts.Debugf("[lower] unhandled element %s processed by hook", tag)
			return res, nil
		}
	}
	l.opts.Debugf("[lower] flattening %s", tag)
	return l.children(n, indent+1, next)
}

func (l *lowerer) link(n *html.Node, depth int) (*ast.Link, error) {
	href, ok := htmldom.Href(n)
	switch {
	case !ok:
		href = "#"
	case strings.HasPrefix(href, "data:image"):
		content, err := l.children(n, 0, depth)
		if err != nil {
			return nil, err
		}
		return &ast.Link{Href: "-", Content: content}, nil
	default:
		href = l.relativize(href)
	}
	l.opts.Debugf("[lower] link href=%q", href)

	if onlyText(n) {
		text := strings.TrimSpace(htmldom.TextContent(n))
		return &ast.Link{Href: href, Content: []ast.Node{&ast.Text{Content: text}}}, nil
	}
	content, err := l.children(n, 0, depth)
	if err != nil {
		return nil, err
	}
	return &ast.Link{Href: href, Content: content}, nil
}

// relativize strips the configured website domain from the front of u.
func (l *lowerer) relativize(u string) string {
	if d := l.opts.WebsiteDomain; d != "" && strings.HasPrefix(u, d) {
		return u[len(d):]
	}
	return u
}

// escapedText is the escaped, trimmed text of n as a single Text node,
// or nothing when n has no text.
func escapedText(n *html.Node) []ast.Node {
	text := Escape(strings.TrimSpace(htmldom.TextContent(n)))
	if text == "" {
		return nil
	}
	return []ast.Node{&ast.Text{Content: text}}
}

func onlyText(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if htmldom.KindOf(c) != htmldom.TextNode {
			return false
		}
	}
	return true
}

func language(n *html.Node) string {
	for _, class := range htmldom.Classes(n) {
		if lang, ok := strings.CutPrefix(class, "language-"); ok {
			return lang
		}
	}
	return ""
}
