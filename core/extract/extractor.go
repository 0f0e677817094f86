// Package extract implements the Extractor interface.
// It isolates the main content of a parsed page by:
//  1. Returning an explicit <main> or role="main" landmark when one exists
//  2. Otherwise scoring every element under <body> and picking the best
//     candidate that reaches the candidate threshold
package extract

import (
	"sort"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/semanticmd/core"
	"github.com/gaurav-prasanna/semanticmd/core/htmldom"
	"golang.org/x/net/html"
)

// landmarkSelector matches elements that declare themselves the main content.
const landmarkSelector = `main, [role="main"]`

// DetectedID is the id given to wrappers created by WrapMainContent.
const DetectedID = "detected-main-content"

// Detector selects the main content element of a document.
type Detector struct {
	opts *core.Options
}

// New creates a Detector. opts is used only for debug logging and may be nil.
func New(opts *core.Options) *Detector {
	return &Detector{opts: opts}
}

// Extract returns the main content element of doc.
func (d *Detector) Extract(doc *html.Node) *html.Node {
	return d.FindMainContent(doc)
}

// FindMainContent returns the element judged most likely to hold the
// page's primary content. Documents without a body yield their root element.
func (d *Detector) FindMainContent(doc *html.Node) *html.Node {
	if landmark := goquery.NewDocumentFromNode(doc).Find(landmarkSelector).First(); landmark.Length() > 0 {
		d.opts.Debugf("[extract] explicit landmark <%s>", htmldom.TagName(landmark.Get(0)))
		return landmark.Get(0)
	}
	body := htmldom.Body(doc)
	if body == nil {
		if root := htmldom.DocumentElement(doc); root != nil {
			return root
		}
		return doc
	}
	return d.Detect(body)
}

type candidate struct {
	node  *html.Node
	score int
}

// Detect scores root and every element below it and returns the best
// candidate, or root when nothing reaches MinScore.
func (d *Detector) Detect(root *html.Node) *html.Node {
	var candidates []candidate
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if score := CalculateScore(n); score >= MinScore {
			d.opts.Debugf("[extract] candidate %s score=%d", describe(n), score)
			candidates = append(candidates, candidate{node: n, score: score})
		}
		for _, c := range htmldom.Children(n) {
			collect(c)
		}
	}
	collect(root)

	if len(candidates) == 0 {
		d.opts.Debugf("[extract] no candidate reached %d, keeping %s", MinScore, describe(root))
		return root
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	best := candidates[0]
	for i := 1; i < len(candidates); i++ {
		if containedByOther(candidates, i) {
			continue
		}
		if candidates[i].score > best.score {
			best = candidates[i]
		}
	}
	d.opts.Debugf("[extract] selected %s score=%d", describe(best.node), best.score)
	return best.node
}

func containedByOther(candidates []candidate, i int) bool {
	for j, other := range candidates {
		if j != i && htmldom.Contains(other.node, candidates[i].node) {
			return true
		}
	}
	return false
}

// FindMainContent runs a Detector without logging.
func FindMainContent(doc *html.Node) *html.Node {
	return New(nil).FindMainContent(doc)
}

// WrapMainContent moves n into a new <main id="detected-main-content">
// placed where n was, and returns the wrapper. A <body> keeps its place
// and has its children moved into the wrapper instead. Nodes that already
// are a <main>, or have no parent element, are returned unchanged.
func WrapMainContent(n *html.Node) *html.Node {
	switch {
	case n == nil || n.Type != html.ElementNode:
		return n
	case htmldom.TagName(n) == "main":
		return n
	case htmldom.TagName(n) == "body":
		wrapper := newWrapper()
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			htmldom.Reparent(wrapper, c)
			c = next
		}
		n.AppendChild(wrapper)
		return wrapper
	case n.Parent == nil || n.Parent.Type != html.ElementNode:
		return n
	}
	wrapper := newWrapper()
	htmldom.InsertBefore(n, wrapper)
	htmldom.Reparent(wrapper, n)
	return wrapper
}

func newWrapper() *html.Node {
	wrapper := htmldom.CreateElement("main")
	htmldom.SetAttr(wrapper, "id", DetectedID)
	return wrapper
}
