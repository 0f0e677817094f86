package markdown

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/semanticmd/core/ast"
)

var chromeRegions []*regexp.Regexp

func init() {
	for _, tag := range []ast.SemanticTag{ast.TagNav, ast.TagFooter, ast.TagHeader, ast.TagAside} {
		open, end := markers(string(tag))
		chromeRegions = append(chromeRegions,
			regexp.MustCompile(`(?s)`+regexp.QuoteMeta(open)+`.*?`+regexp.QuoteMeta(end)))
	}
}

// MainContent narrows rendered Markdown to its main region. When a main
// element was rendered, the text between its markers is returned;
// otherwise navigation, header, footer and aside regions are removed.
func MainContent(md string) string {
	open, end := markers(string(ast.TagMain))
	if start := strings.Index(md, open); start >= 0 {
		rest := md[start+len(open):]
		if stop := strings.Index(rest, end); stop >= 0 {
			rest = rest[:stop]
		}
		return strings.TrimSpace(rest)
	}
	for _, re := range chromeRegions {
		md = re.ReplaceAllString(md, "")
	}
	return md
}
