package refify

import (
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/semanticmd/core/ast"
)

// URLs rewrites link hrefs and image/video srcs in place and returns the
// reference table. refs may carry entries from an earlier call; a nil map
// starts a fresh table. Tokens are numbered in first-seen order.
func URLs(nodes []ast.Node, refs map[string]string) map[string]string {
	if refs == nil {
		refs = map[string]string{}
	}
	ast.Walk(nodes, func(n ast.Node) {
		switch v := n.(type) {
		case *ast.Link:
			v.Href = rewrite(v.Href, refs)
		case *ast.Image:
			v.Src = rewrite(v.Src, refs)
		case *ast.Video:
			v.Src = rewrite(v.Src, refs)
		}
	})
	return refs
}

// rewrite applies the compaction policy to a single URL.
func rewrite(u string, refs map[string]string) string {
	if !IsWebURL(u) {
		return u
	}
	if IsMedia(u) {
		prefix, leaf := splitLeaf(u)
		return intern(prefix, refs) + "://" + leaf
	}
	if len(strings.Split(u, "/")) > maxPlainSegments {
		return intern(u, refs)
	}
	return u
}

func intern(key string, refs map[string]string) string {
	if tok, ok := refs[key]; ok {
		return tok
	}
	tok := "ref" + strconv.Itoa(len(refs))
	refs[key] = tok
	return tok
}

// Expand reverses the compaction for a single rewritten URL.
func Expand(u string, refs map[string]string) string {
	for prefix, tok := range refs {
		if u == tok {
			return prefix
		}
		if leaf, ok := strings.CutPrefix(u, tok+"://"); ok {
			return prefix + "/" + leaf
		}
	}
	return u
}
