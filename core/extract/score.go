package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/semanticmd/core/htmldom"
	"golang.org/x/net/html"
)

// MinScore is the score an element needs to become a candidate.
const MinScore = 20

// highImpactNames score when present in the class list or equal to the id.
var highImpactNames = []string{"article", "content", "main-container", "main", "main-content"}

// highImpactTags score for the element's own tag.
var highImpactTags = map[string]bool{"article": true, "main": true, "section": true}

const (
	nameBonus     = 10
	tagBonus      = 5
	maxParagraphs = 5
	textChunk     = 200
	maxTextBonus  = 5
	densityLimit  = 0.3
	densityBonus  = 5
	dataAttrBonus = 10
	roleMainBonus = 10
)

// CalculateScore rates how likely n is to be the main content container.
// The score only accumulates, so it is never negative.
func CalculateScore(n *html.Node) int {
	if n == nil || n.Type != html.ElementNode {
		return 0
	}
	sel := goquery.NewDocumentFromNode(n).Selection
	score := 0

	id := htmldom.ID(n)
	for _, name := range highImpactNames {
		if htmldom.HasClass(n, name) || id == name {
			score += nameBonus
		}
	}

	if highImpactTags[htmldom.TagName(n)] {
		score += tagBonus
	}

	score += min(sel.Find("p").Length(), maxParagraphs)

	text := htmldom.TextContent(n)
	if length := utf8.RuneCountInString(strings.TrimSpace(text)); length > textChunk {
		score += min(length/textChunk, maxTextBonus)
	}

	if linkDensity(sel, text) < densityLimit {
		score += densityBonus
	}

	if htmldom.HasAttr(n, "data-main") || htmldom.HasAttr(n, "data-content") {
		score += dataAttrBonus
	}

	if role, ok := htmldom.Attr(n, "role"); ok && strings.Contains(role, "main") {
		score += roleMainBonus
	}
	return score
}

// linkDensity is the share of text inside anchors. Empty text counts as
// length 1 so the ratio is always defined.
func linkDensity(sel *goquery.Selection, text string) float64 {
	linkLength := 0
	sel.Find("a").Each(func(_ int, a *goquery.Selection) {
		linkLength += utf8.RuneCountInString(a.Text())
	})
	textLength := utf8.RuneCountInString(text)
	if textLength == 0 {
		textLength = 1
	}
	return float64(linkLength) / float64(textLength)
}

func describe(n *html.Node) string {
	id := htmldom.ID(n)
	if id == "" {
		id = "no-id"
	}
	return fmt.Sprintf("%s#%s.%s", htmldom.TagName(n), id, strings.Join(htmldom.Classes(n), "."))
}
