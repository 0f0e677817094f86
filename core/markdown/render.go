// Package markdown renders the semantic AST to Markdown text.
//
// Rendering runs in two passes: an optional front-matter block built from
// the first Meta node, then the content itself. Inline nodes are joined
// on the running line with single spaces; block nodes always start on a
// fresh line and are separated from a following block by a blank line.
package markdown

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/semanticmd/core"
	"github.com/gaurav-prasanna/semanticmd/core/ast"
)

// Render produces the complete Markdown document for nodes, trimmed of
// trailing whitespace.
func Render(nodes []ast.Node, opts *core.Options) (string, error) {
	content, err := RenderContent(nodes, opts, 0)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(RenderMeta(nodes, opts)+content, " \t\r\n"), nil
}

// RenderContent renders nodes without front matter. Hooks use it to
// render nested content at their own indent level.
func RenderContent(nodes []ast.Node, opts *core.Options, indentLevel int) (string, error) {
	if opts == nil {
		opts = &core.Options{}
	}
	r := &renderer{opts: opts, limit: opts.Depth()}
	return r.content(nodes, indentLevel, 0)
}

type renderer struct {
	opts  *core.Options
	limit int
}

func (r *renderer) content(nodes []ast.Node, indent, depth int) (string, error) {
	if depth > r.limit {
		return "", core.ErrTooDeep
	}
	var out string
	for i, n := range nodes {
		if n == nil {
			continue
		}
		text, err := r.node(n, indent, depth)
		if err != nil {
			return "", err
		}
		if text == "" {
			continue
		}
		if ast.IsInline(n) {
			out = joinInline(out, text)
			continue
		}

		if out != "" && !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		out += text
		switch {
		case n.Type() == ast.TypeHeading:
			out += "\n\n"
		case i+1 < len(nodes) && nodes[i+1] != nil && !ast.IsInline(nodes[i+1]):
			out += "\n\n"
		default:
			out += "\n"
		}
	}
	return out, nil
}

// node renders a single node. The override hook is consulted first for
// every node; a handled result, even empty, replaces built-in rendering.
func (r *renderer) node(n ast.Node, indent, depth int) (string, error) {
	if hook := r.opts.OverrideNodeRenderer; hook != nil {
		out, ok, err := hook(n, r.opts, indent)
		if err != nil {
			return "", fmt.Errorf("override node renderer: %w", err)
		}
		if ok {
			return out, nil
		}
	}

	next := depth + 1
	switch v := n.(type) {
	case *ast.Text:
		return v.Content, nil
	case *ast.Bold:
		return r.wrap(v.Content, "**", indent, next)
	case *ast.Italic:
		return r.wrap(v.Content, "*", indent, next)
	case *ast.Strikethrough:
		return r.wrap(v.Content, "~~", indent, next)
	case *ast.Link:
		return r.link(v, indent, next)
	case *ast.Heading:
		inner, err := r.content(v.Content, indent, next)
		if err != nil {
			return "", err
		}
		level := min(max(v.Level, 1), 6)
		return strings.Repeat("#", level) + " " + strings.TrimSpace(inner), nil
	case *ast.Image:
		return image(v), nil
	case *ast.Video:
		return video(v), nil
	case *ast.List:
		return r.list(v, indent, next)
	case *ast.Table:
		return r.table(v, indent, next)
	case *ast.Code:
		if v.Inline {
			return "`" + v.Content + "`", nil
		}
		return "```" + v.Language + "\n" + v.Content + "\n```", nil
	case *ast.Blockquote:
		return r.blockquote(v, next)
	case *ast.SemanticHTML:
		return r.semantic(v, next)
	case *ast.Meta:
		return "", nil
	case *ast.Custom:
		if hook := r.opts.RenderCustomNode; hook != nil {
			out, err := hook(v, r.opts, indent)
			if err != nil {
				return "", fmt.Errorf("render custom node %q: %w", v.Kind, err)
			}
			return out, nil
		}
		return "", nil
	}
	r.opts.Debugf("[render] no renderer for node type %s", n.Type())
	return "", nil
}

func (r *renderer) wrap(content []ast.Node, marker string, indent, depth int) (string, error) {
	inner, err := r.content(content, indent, depth)
	if err != nil {
		return "", err
	}
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return "", nil
	}
	return marker + inner + marker, nil
}

func (r *renderer) link(l *ast.Link, indent, depth int) (string, error) {
	href := EncodeURI(l.Href)
	if len(l.Content) == 1 {
		if t, ok := l.Content[0].(*ast.Text); ok &&
			t.Content == strings.TrimSpace(t.Content) && !strings.Contains(t.Content, "\n") {
			return "[" + t.Content + "](" + href + ")", nil
		}
	}
	inner, err := r.content(l.Content, indent, depth)
	if err != nil {
		return "", err
	}
	return `<a href="` + href + `">` + strings.TrimSpace(inner) + "</a>", nil
}

// altTrimSet covers ASCII whitespace, no-break space and the zero-width characters.
const altTrimSet = " \t\n\r\f\v\u00a0\u200b\u200c\u200d\u2060\ufeff"

func image(img *ast.Image) string {
	alt := strings.Trim(img.Alt, altTrimSet)
	src := strings.TrimSpace(img.Src)
	if alt != "" && src == "" {
		return ""
	}
	return "![" + alt + "](" + EncodeURI(src) + ")"
}

func video(v *ast.Video) string {
	out := "![Video](" + v.Src + ")"
	if v.Poster != "" {
		out += "\n![Poster](" + v.Poster + ")"
	}
	if v.Controls {
		out += "\nControls: " + strconv.FormatBool(v.Controls)
	}
	return out
}

func (r *renderer) list(l *ast.List, indent, depth int) (string, error) {
	pad := strings.Repeat("  ", indent)
	lines := make([]string, 0, len(l.Items))
	for i, item := range l.Items {
		prefix := "-"
		if l.Ordered {
			prefix = strconv.Itoa(i+1) + "."
		}
		inner, err := r.content(item.Content, indent+1, depth)
		if err != nil {
			return "", err
		}
		line := pad + prefix
		if inner = strings.TrimSpace(inner); inner != "" {
			line += " " + inner
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func (r *renderer) blockquote(b *ast.Blockquote, depth int) (string, error) {
	inner, err := r.content(b.Content, 0, depth)
	if err != nil {
		return "", err
	}
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return ">", nil
	}
	lines := strings.Split(inner, "\n")
	for i, line := range lines {
		lines[i] = "> " + strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n"), nil
}

func (r *renderer) semantic(s *ast.SemanticHTML, depth int) (string, error) {
	inner, err := r.content(s.Content, 0, depth)
	if err != nil {
		return "", err
	}
	inner = strings.Trim(inner, "\n")
	switch s.Tag {
	case ast.TagArticle:
		return inner, nil
	case ast.TagSection:
		if inner == "" {
			return "---\n\n---", nil
		}
		return "---\n\n" + inner + "\n\n---", nil
	}
	open, end := markers(string(s.Tag))
	if inner == "" {
		return open + "\n" + end, nil
	}
	return open + "\n" + inner + "\n" + end, nil
}

// markers returns the opening and closing comments that delimit a
// sectioning element in the output.
func markers(tag string) (open, end string) {
	return "<!-- " + tag + " -->", "<!-- /" + tag + " -->"
}
