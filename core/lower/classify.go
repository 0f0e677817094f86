package lower

import (
	"github.com/gaurav-prasanna/semanticmd/core"
	"github.com/gaurav-prasanna/semanticmd/core/ast"
)

// category is the closed set of built-in element handlers.
type category int

const (
	catUnhandled category = iota
	catDrop
	catHeading
	catParagraph
	catLink
	catImage
	catVideo
	catList
	catBreak
	catTable
	catHead
	catEmphasis
	catCode
	catBlockquote
	catSemantic
)

var tagCategories = map[string]category{
	"h1": catHeading, "h2": catHeading, "h3": catHeading,
	"h4": catHeading, "h5": catHeading, "h6": catHeading,
	"p":     catParagraph,
	"a":     catLink,
	"img":   catImage,
	"video": catVideo,
	"ul":    catList, "ol": catList,
	"br":    catBreak,
	"table": catTable,
	"head":  catHead,

	"noscript": catDrop, "script": catDrop, "style": catDrop, "html": catDrop,

	"strong": catEmphasis, "b": catEmphasis,
	"em": catEmphasis, "i": catEmphasis,
	"s": catEmphasis, "strike": catEmphasis,

	"code":       catCode,
	"blockquote": catBlockquote,
}

// emphasisNodes builds the inline wrapper for each emphasis tag alias.
var emphasisNodes = map[string]func([]ast.Node) ast.Node{
	"strong": func(c []ast.Node) ast.Node { return &ast.Bold{Content: c} },
	"b":      func(c []ast.Node) ast.Node { return &ast.Bold{Content: c} },
	"em":     func(c []ast.Node) ast.Node { return &ast.Italic{Content: c} },
	"i":      func(c []ast.Node) ast.Node { return &ast.Italic{Content: c} },
	"s":      func(c []ast.Node) ast.Node { return &ast.Strikethrough{Content: c} },
	"strike": func(c []ast.Node) ast.Node { return &ast.Strikethrough{Content: c} },
}

// semanticTags are the sectioning elements kept as SemanticHTML nodes.
var semanticTags = map[string]ast.SemanticTag{}

func init() {
	for _, t := range []ast.SemanticTag{
		ast.TagArticle, ast.TagAside, ast.TagDetails, ast.TagFigcaption,
		ast.TagFigure, ast.TagFooter, ast.TagHeader, ast.TagMain,
		ast.TagMark, ast.TagNav, ast.TagSection, ast.TagSummary, ast.TagTime,
	} {
		semanticTags[string(t)] = t
		tagCategories[string(t)] = catSemantic
	}
}

// classify maps a lower-cased tag name to its handler. <head> is only
// special while metadata is requested; otherwise it is an ordinary
// unhandled container.
func classify(tag string, opts *core.Options) category {
	c := tagCategories[tag]
	if c == catHead && !opts.Meta().Enabled() {
		return catUnhandled
	}
	return c
}
