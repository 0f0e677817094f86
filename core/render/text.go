package render

import (
	"strings"

	"github.com/gaurav-prasanna/semanticmd/core/ast"
	"github.com/gaurav-prasanna/semanticmd/core/lower"
)

// textOf flattens the visible text of nodes, undoing Markdown escapes.
// Unlike ast.Children it also descends into emphasis and heading content.
func textOf(nodes []ast.Node) string {
	return lower.Unescape(flatten(nodes))
}

func flatten(nodes []ast.Node) string {
	var parts []string
	for _, n := range nodes {
		var s string
		switch v := n.(type) {
		case *ast.Text:
			s = v.Content
		case *ast.Bold:
			s = flatten(v.Content)
		case *ast.Italic:
			s = flatten(v.Content)
		case *ast.Strikethrough:
			s = flatten(v.Content)
		case *ast.Heading:
			s = flatten(v.Content)
		case *ast.Code:
			s = v.Content
		case *ast.Image:
			s = v.Alt
		default:
			s = flatten(ast.Children(n))
		}
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
