package htmldom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Href returns the href of an anchor. Anchors inside foreign content
// (SVG, MathML) do not carry a plain string href and report ok=false.
func Href(n *html.Node) (href string, ok bool) {
	if n == nil || n.Namespace != "" {
		return "", false
	}
	return AttrOr(n, "href", ""), true
}

// Src returns the src attribute of an image or media element.
func Src(n *html.Node) string { return AttrOr(n, "src", "") }

// Alt returns the alt attribute of an image.
func Alt(n *html.Node) string { return AttrOr(n, "alt", "") }

// Poster returns the poster attribute of a video.
func Poster(n *html.Node) string { return AttrOr(n, "poster", "") }

// Controls reports whether a media element has the boolean controls attribute.
func Controls(n *html.Node) bool { return HasAttr(n, "controls") }

// Parser parses HTML text into a document tree using golang.org/x/net/html.
type Parser struct{}

// ParseHTML parses a full document. Fragments are wrapped in the implied
// html/head/body structure, as a browser would.
func (Parser) ParseHTML(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// ParseString is a convenience wrapper around Parser.ParseHTML.
func ParseString(s string) (*html.Node, error) {
	return Parser{}.ParseHTML(strings.NewReader(s))
}

// Render serializes n back to HTML.
func Render(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}
	return b.String(), nil
}
