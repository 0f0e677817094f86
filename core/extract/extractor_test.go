package extract

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/semanticmd/core"
	"github.com/gaurav-prasanna/semanticmd/core/htmldom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

var _ core.Extractor = (*Detector)(nil)

func parse(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := htmldom.ParseString(src)
	require.NoError(t, err)
	return doc
}

func TestCalculateScore(t *testing.T) {
	tests := []struct {
		name string
		html string
		want int
	}{
		{"id main", `<div id="main">Content</div>`, 15},
		{"article tag", `<article>Content</article>`, 10},
		{"content class", `<div class="content">Content</div>`, 15},
		{"paragraphs capped", `<div><p>1</p><p>2</p><p>3</p><p>4</p><p>5</p><p>6</p></div>`, 10},
		{"data-main", `<div data-main>Content</div>`, 15},
		{"role main", `<div role="main">Content</div>`, 15},
		{"id and class", `<div id="main-content" class="article">Test</div>`, 25},
		{"partial id ignored", `<div id="article-wrapper"><h1>Article Title</h1><p>Some text.</p></div>`, 6},
		{"sidebar", `<div class="sidebar">Links and ads</div>`, 5},
		{"long text", `<div id="content">
			<p>This is some ` + strings.Repeat("very ", 50) + ` long text content.</p>
		</div>`, 17},
		{"only a link", `<div><a href="#">Link</a></div>`, 0},
		{"links among whitespace", `<div>
				<p>Some text.</p>
				<a href="#">Link 1</a>
				<a href="#">Link 2</a>
				<a href="#">Link 3</a>
			</div>`, 6},
		{"short text", `<div>` + strings.Repeat("very ", 20) + ` long text</div>`, 5},
		{"text bonus capped", `<div>` + strings.Repeat("a", 1200) + `</div>`, 10},
		{"long link", `<div><a href="#">` + strings.Repeat("L", 1200) + `</a></div>`, 5},
		{"section tag", `<section>Content</section>`, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, tt.html)
			el := htmldom.Query(doc, "div, article, p, section, main")
			require.NotNil(t, el)
			assert.Equal(t, tt.want, CalculateScore(el))
		})
	}
}

func TestCalculateScore_NonElement(t *testing.T) {
	assert.Equal(t, 0, CalculateScore(nil))
	doc := parse(t, `<p>x</p>`)
	assert.Equal(t, 0, CalculateScore(doc))
}

func TestFindMainContent_Landmark(t *testing.T) {
	doc := parse(t, `<!DOCTYPE html><html><head><title>Test Page</title></head><body>
		<header><h1>Page Header</h1></header>
		<div role="main" id="main-content"><article><h2>Article Title</h2><p>Body.</p></article></div>
		<aside>Sidebar</aside>
	</body></html>`)

	main := FindMainContent(doc)
	require.NotNil(t, main)
	assert.Equal(t, "main-content", htmldom.ID(main))
}

func TestFindMainContent_MainElementWins(t *testing.T) {
	doc := parse(t, `<div class="content main" data-main><p>a</p></div><main><p>b</p></main>`)
	assert.Equal(t, "main", htmldom.TagName(FindMainContent(doc)))
}

func TestFindMainContent_ScoredCandidate(t *testing.T) {
	doc := parse(t, `<body>
		<div id="nav"><a href="/">Home</a> <a href="/about">About</a></div>
		<div id="main" class="content"><p>One.</p><p>Two.</p><p>Three.</p></div>
		<div id="footer">Footer</div>
	</body>`)

	main := FindMainContent(doc)
	require.NotNil(t, main)
	assert.Equal(t, "main", htmldom.ID(main))
}

func TestFindMainContent_HighestScoreWins(t *testing.T) {
	doc := parse(t, `<div id="outer" class="content main"><p>a</p>
		<div id="inner" class="article" data-content><p>b</p></div>
	</div>`)

	assert.Equal(t, "outer", htmldom.ID(FindMainContent(doc)))
}

func TestFindMainContent_BelowThresholdReturnsBody(t *testing.T) {
	doc := parse(t, `<div class="sidebar">Links and ads</div><p>Short.</p>`)
	assert.Equal(t, htmldom.Body(doc), FindMainContent(doc))

	empty := parse(t, `<!DOCTYPE html><html><head><title>T</title></head><body></body></html>`)
	assert.Equal(t, htmldom.Body(empty), FindMainContent(empty))
}

func TestFindMainContent_NoBody(t *testing.T) {
	div := htmldom.CreateElement("div")
	assert.Equal(t, div, FindMainContent(div))
}

func TestDetector_DebugLogging(t *testing.T) {
	var logs bytes.Buffer
	doc := parse(t, `<div id="main" class="content"><p>One.</p></div>`)

	d := New(&core.Options{Debug: true, Logger: log.New(&logs, "", 0)})
	main := d.Extract(doc)

	assert.Equal(t, "main", htmldom.ID(main))
	assert.Contains(t, logs.String(), "[extract] selected div#main.content")
}

func TestWrapMainContent(t *testing.T) {
	doc := parse(t, `<div id="x"><p>Body</p></div><p>after</p>`)
	div := htmldom.Query(doc, "#x")

	wrapper := WrapMainContent(div)

	assert.Equal(t, "main", htmldom.TagName(wrapper))
	assert.Equal(t, DetectedID, htmldom.ID(wrapper))
	assert.Equal(t, wrapper, div.Parent)
	assert.Equal(t, htmldom.Body(doc), wrapper.Parent)
	assert.Equal(t, wrapper, htmldom.Body(doc).FirstChild, "wrapper takes the original position")

	main := htmldom.CreateElement("main")
	assert.Equal(t, main, WrapMainContent(main))
}

func TestWrapMainContent_Body(t *testing.T) {
	doc := parse(t, `<p>a</p><p>b</p>`)
	body := htmldom.Body(doc)

	wrapper := WrapMainContent(body)

	assert.Equal(t, body, wrapper.Parent)
	assert.Equal(t, body, htmldom.Body(doc), "body stays in place")
	assert.Len(t, htmldom.Children(body), 1)
	assert.Len(t, htmldom.Children(wrapper), 2)

	detached := htmldom.CreateElement("div")
	assert.Equal(t, detached, WrapMainContent(detached))
}
