package htmldom

import (
	"strings"
	"sync"

	"github.com/JohannesKaufmann/dom"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TagName returns the lower-cased tag name of an element, or "" for
// any other node kind.
func TagName(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.Data)
}

// Attr returns the value of an attribute and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	return dom.GetAttribute(n, key)
}

// AttrOr returns the value of an attribute or fallback when it is absent.
func AttrOr(n *html.Node, key, fallback string) string {
	if n == nil {
		return fallback
	}
	return dom.GetAttributeOr(n, key, fallback)
}

// HasAttr reports whether the attribute is present, regardless of value.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// ID returns the id attribute.
func ID(n *html.Node) string {
	return AttrOr(n, "id", "")
}

// Classes returns the whitespace-separated class tokens.
func Classes(n *html.Node) []string {
	return strings.Fields(AttrOr(n, "class", ""))
}

// HasClass reports whether the class list contains name exactly.
func HasClass(n *html.Node, name string) bool {
	for _, c := range Classes(n) {
		if c == name {
			return true
		}
	}
	return false
}

// TextContent concatenates the data of every descendant text node in
// document order. Comments and doctypes contribute nothing.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if KindOf(n) == TextNode {
		return n.Data
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		for ; c != nil; c = c.NextSibling {
			if KindOf(c) == TextNode {
				b.WriteString(c.Data)
				continue
			}
			walk(c.FirstChild)
		}
	}
	walk(n.FirstChild)
	return b.String()
}

// ChildNodes returns the ordered children of n.
func ChildNodes(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// Children returns the ordered element children of n.
func Children(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Contains reports whether other is n or one of its descendants.
func Contains(n, other *html.Node) bool {
	if n == nil {
		return false
	}
	for p := other; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}

// Root walks up to the top of the tree containing n.
func Root(n *html.Node) *html.Node {
	for n != nil && n.Parent != nil {
		n = n.Parent
	}
	return n
}

// DocumentElement returns the <html> element of the tree containing n.
// A detached element with no document above it is its own document element.
func DocumentElement(n *html.Node) *html.Node {
	root := Root(n)
	if root == nil {
		return nil
	}
	if root.Type == html.ElementNode {
		return root
	}
	for _, c := range Children(root) {
		if TagName(c) == "html" {
			return c
		}
	}
	if kids := Children(root); len(kids) > 0 {
		return kids[0]
	}
	return nil
}

func documentChild(n *html.Node, tag string) *html.Node {
	for _, c := range Children(DocumentElement(n)) {
		if TagName(c) == tag {
			return c
		}
	}
	return nil
}

// Body returns the <body> element, or nil.
func Body(n *html.Node) *html.Node { return documentChild(n, "body") }

// Head returns the <head> element, or nil.
func Head(n *html.Node) *html.Node { return documentChild(n, "head") }

var (
	selMu    sync.Mutex
	selCache = map[string]cascadia.Selector{}
)

func compile(selector string) cascadia.Selector {
	selMu.Lock()
	defer selMu.Unlock()
	if s, ok := selCache[selector]; ok {
		return s
	}
	s, err := cascadia.Compile(selector)
	if err != nil {
		s = nil
	}
	selCache[selector] = s
	return s
}

// Query returns the first descendant of n matching selector, or nil.
// An invalid selector matches nothing.
func Query(n *html.Node, selector string) *html.Node {
	s := compile(selector)
	if n == nil || s == nil {
		return nil
	}
	return cascadia.Query(n, s)
}

// QueryAll returns every descendant of n matching selector in document order.
func QueryAll(n *html.Node, selector string) []*html.Node {
	s := compile(selector)
	if n == nil || s == nil {
		return nil
	}
	return cascadia.QueryAll(n, s)
}

// CreateElement returns a detached element with the given tag.
func CreateElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// SetAttr sets or replaces an attribute on n.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// InsertBefore places the detached node in front of ref under ref's parent.
func InsertBefore(ref, node *html.Node) {
	if ref == nil || ref.Parent == nil {
		return
	}
	ref.Parent.InsertBefore(node, ref)
}

// Reparent moves child, with its subtree, to the end of parent's children.
func Reparent(parent, child *html.Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	parent.AppendChild(child)
}

// Clone returns a deep copy of n detached from any tree.
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(Clone(child))
	}
	return c
}
