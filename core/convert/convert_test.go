package convert

import (
	"testing"

	"github.com/gaurav-prasanna/semanticmd/core"
	"github.com/gaurav-prasanna/semanticmd/core/ast"
	"github.com/gaurav-prasanna/semanticmd/core/htmldom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func convert(t *testing.T, src string, opts *core.Options) string {
	t.Helper()
	out, err := HTML(src, opts)
	require.NoError(t, err)
	return out
}

func TestHTML_Headings(t *testing.T) {
	out := convert(t, `<h1>Heading 1</h1><h2>Heading 2</h2>`, nil)
	assert.Equal(t, "# Heading 1\n\n## Heading 2", out)
}

func TestHTML_Lists(t *testing.T) {
	t.Run("unordered", func(t *testing.T) {
		out := convert(t, `<ul><li>Item 1</li><li>Item 2</li></ul>`, nil)
		assert.Equal(t, "- Item 1\n- Item 2", out)
	})

	t.Run("ordered", func(t *testing.T) {
		out := convert(t, `<ol><li>First</li><li>Second</li></ol>`, nil)
		assert.Equal(t, "1. First\n2. Second", out)
	})

	t.Run("nested", func(t *testing.T) {
		out := convert(t, `<ul><li>Item 1</li><li>Item 2<ol><li>Subitem 2.1</li></ol></li></ul>`, nil)
		assert.Equal(t, "- Item 1\n- Item 2\n  1. Subitem 2.1", out)
	})
}

func TestHTML_Code(t *testing.T) {
	t.Run("fenced with language", func(t *testing.T) {
		out := convert(t, `<pre><code class="language-go">fmt.Println("hi")</code></pre>`, nil)
		assert.Equal(t, "```go\nfmt.Println(\"hi\")\n```", out)
	})

	t.Run("inline", func(t *testing.T) {
		out := convert(t, `<p>Use <code>go test</code> now</p>`, nil)
		assert.Equal(t, "Use `go test` now", out)
	})
}

func TestHTML_BlockquoteKeepsIndentation(t *testing.T) {
	out := convert(t, "<blockquote><pre><code class=\"language-py\">def f():\n    return 1</code></pre>"+
		"<ul><li>a<ul><li>b</li></ul></li></ul></blockquote>", nil)

	assert.Equal(t, "> ```py\n> def f():\n>     return 1\n> ```\n> \n> - a\n>   - b", out)
}

func TestHTML_Tables(t *testing.T) {
	t.Run("header and body", func(t *testing.T) {
		out := convert(t, `<table>
			<thead><tr><th>Header 1</th><th>Header 2</th></tr></thead>
			<tbody><tr><td>Cell 1</td><td>Cell 2</td></tr></tbody>
		</table>`, nil)
		assert.Equal(t, "| Header 1 | Header 2 |\n| --- | --- |\n| Cell 1 | Cell 2 |", out)
	})

	t.Run("merged cells with column tracking", func(t *testing.T) {
		out := convert(t, `<table>
			<tr><th colspan="2">Merged</th><th>C</th></tr>
			<tr><td>a</td><td>b</td><td>c</td></tr>
		</table>`, &core.Options{EnableTableColumnTracking: true})

		assert.Equal(t,
			"| Merged <!-- col-0 --> <!-- colspan: 2 --> | | C <!-- col-2 --> |\n"+
				"| --- | --- | --- |\n"+
				"| a <!-- col-0 --> | b <!-- col-1 --> | c <!-- col-2 --> |",
			out)
	})
}

func TestHTML_ExtractMainContent(t *testing.T) {
	src := `<body>
		<nav><a href="/">Home</a></nav>
		<div role="main"><p>Main content</p></div>
		<footer>Footer</footer>
	</body>`

	out := convert(t, src, &core.Options{ExtractMainContent: true})
	assert.Equal(t, "Main content", out)
}

func TestHTML_EmptyBody(t *testing.T) {
	assert.Equal(t, "", convert(t, "", nil))
	assert.Equal(t, "", convert(t, `<html><head></head><body>   </body></html>`, nil))
}

func TestHTML_Metadata(t *testing.T) {
	src := `<html><head>
		<title>Test Page Title</title>
		<meta name="description" content="Test description">
		<meta name="viewport" content="width=device-width">
	</head><body><h1>Test Page</h1></body></html>`

	t.Run("basic", func(t *testing.T) {
		out := convert(t, src, &core.Options{IncludeMetaData: core.MetaBasic})
		assert.Equal(t,
			"---\ntitle: \"Test Page Title\"\ndescription: \"Test description\"\n---\n\n# Test Page",
			out)
	})

	t.Run("disabled", func(t *testing.T) {
		assert.Equal(t, "# Test Page", convert(t, src, nil))
	})

	t.Run("with main content", func(t *testing.T) {
		out := convert(t, src, &core.Options{IncludeMetaData: core.MetaBasic, ExtractMainContent: true})
		assert.Contains(t, out, "title: \"Test Page Title\"")
		assert.Contains(t, out, "# Test Page")
	})
}

func TestSelect_LeavesTreeUntouched(t *testing.T) {
	doc, err := htmldom.ParseString(`<html><head><title>T</title></head>
		<body><div id="main" class="content"><p>One.</p><p>Two.</p></div></body></html>`)
	require.NoError(t, err)
	before, err := htmldom.Render(doc)
	require.NoError(t, err)

	root := Select(doc, &core.Options{IncludeMetaData: core.MetaBasic, ExtractMainContent: true})

	assert.Equal(t, "html", htmldom.TagName(root))
	assert.Nil(t, root.Parent, "the combined root is detached")
	after, err := htmldom.Render(doc)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestHTML_CustomElementHooks(t *testing.T) {
	opts := &core.Options{
		OverrideElementProcessing: func(n *html.Node, _ *core.Options, _ int) ([]ast.Node, error) {
			if htmldom.TagName(n) != "x-widget" {
				return nil, nil
			}
			return []ast.Node{&ast.Custom{Kind: "widget", Data: htmldom.AttrOr(n, "name", "")}}, nil
		},
		RenderCustomNode: func(node *ast.Custom, _ *core.Options, _ int) (string, error) {
			return "[widget: " + node.Data.(string) + "]", nil
		},
	}

	out := convert(t, `<h1>Title</h1><x-widget name="clock"></x-widget>`, opts)
	assert.Equal(t, "# Title\n\n[widget: clock]", out)
}

func TestHTML_RefifyFillsURLMap(t *testing.T) {
	opts := &core.Options{RefifyURLs: true}
	out := convert(t, `<p><a href="https://example.com/docs/guide/intro">Intro</a></p>`, opts)

	assert.Equal(t, "[Intro](ref0)", out)
	assert.Equal(t, map[string]string{"https://example.com/docs/guide/intro": "ref0"}, opts.URLMap)
}

func TestHTML_NoParser(t *testing.T) {
	saved := core.DefaultParser
	core.DefaultParser = nil
	t.Cleanup(func() { core.DefaultParser = saved })

	_, err := HTML("<p>x</p>", &core.Options{})
	assert.ErrorIs(t, err, core.ErrNoParser)
}

func TestElement_NilNode(t *testing.T) {
	out, err := Element(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestFindInMarkdownAST(t *testing.T) {
	doc, err := htmldom.ParseString(`<p><a href="/a">A</a></p><ul><li><a href="/b">B</a></li></ul>`)
	require.NoError(t, err)
	nodes, err := AST(htmldom.Body(doc), nil)
	require.NoError(t, err)

	first := FindInMarkdownAST(nodes, ast.OfType(ast.TypeLink))
	require.NotNil(t, first)
	assert.Equal(t, "/a", first.(*ast.Link).Href)
	assert.Len(t, FindAllInMarkdownAST(nodes, ast.OfType(ast.TypeLink)), 2)
}
