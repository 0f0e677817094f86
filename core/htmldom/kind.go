// Package htmldom — DOM capability surface over golang.org/x/net/html.
// It exposes the small set of read accessors the converter needs
// (node kinds, text content, typed anchor/image/video fields, selector
// queries) plus the two mutating helpers used by main-content wrapping.
package htmldom

import "golang.org/x/net/html"

// NodeKind mirrors the standard DOM node-type codes.
type NodeKind int

const (
	ElementNode               NodeKind = 1
	AttributeNode             NodeKind = 2
	TextNode                  NodeKind = 3
	CDATASectionNode          NodeKind = 4
	EntityReferenceNode       NodeKind = 5
	EntityNode                NodeKind = 6
	ProcessingInstructionNode NodeKind = 7
	CommentNode               NodeKind = 8
	DocumentNode              NodeKind = 9
	DocumentTypeNode          NodeKind = 10
	DocumentFragmentNode      NodeKind = 11
	NotationNode              NodeKind = 12
)

var kindNames = map[NodeKind]string{
	ElementNode:               "element",
	AttributeNode:             "attribute",
	TextNode:                  "text",
	CDATASectionNode:          "cdata",
	EntityReferenceNode:       "entity-reference",
	EntityNode:                "entity",
	ProcessingInstructionNode: "processing-instruction",
	CommentNode:               "comment",
	DocumentNode:              "document",
	DocumentTypeNode:          "doctype",
	DocumentFragmentNode:      "document-fragment",
	NotationNode:              "notation",
}

func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindOf classifies a parsed node. Raw nodes carry text and are reported
// as text; error nodes have no DOM equivalent and report 0.
func KindOf(n *html.Node) NodeKind {
	if n == nil {
		return 0
	}
	switch n.Type {
	case html.ElementNode:
		return ElementNode
	case html.TextNode, html.RawNode:
		return TextNode
	case html.CommentNode:
		return CommentNode
	case html.DocumentNode:
		return DocumentNode
	case html.DoctypeNode:
		return DocumentTypeNode
	}
	return 0
}
