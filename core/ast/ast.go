// Package ast — the semantic Markdown tree produced by lowering.
//
// Every variant is a pointer type implementing Node. Fields holding an
// ordered []Node are content sequences; their order is output order.
package ast

// NodeType names a node variant.
type NodeType string

const (
	TypeText          NodeType = "text"
	TypeBold          NodeType = "bold"
	TypeItalic        NodeType = "italic"
	TypeStrikethrough NodeType = "strikethrough"
	TypeHeading       NodeType = "heading"
	TypeLink          NodeType = "link"
	TypeImage         NodeType = "image"
	TypeVideo         NodeType = "video"
	TypeList          NodeType = "list"
	TypeListItem      NodeType = "listItem"
	TypeTable         NodeType = "table"
	TypeTableRow      NodeType = "tableRow"
	TypeTableCell     NodeType = "tableCell"
	TypeCode          NodeType = "code"
	TypeBlockquote    NodeType = "blockquote"
	TypeSemanticHTML  NodeType = "semanticHtml"
	TypeMeta          NodeType = "meta"
	TypeCustom        NodeType = "custom"
)

// Node is implemented by every AST variant.
type Node interface {
	Type() NodeType
}

// Text is a run of literal text.
type Text struct {
	Content string
}

// Bold wraps content in strong emphasis.
type Bold struct {
	Content []Node
}

// Italic wraps content in emphasis.
type Italic struct {
	Content []Node
}

// Strikethrough wraps content in a strike.
type Strikethrough struct {
	Content []Node
}

// Heading is a level 1-6 heading.
type Heading struct {
	Level   int
	Content []Node
}

// Link is a hyperlink.
type Link struct {
	Href    string
	Content []Node
}

// Image is an embedded image.
type Image struct {
	Src string
	Alt string
}

// Video is an embedded video.
type Video struct {
	Src      string
	Poster   string
	Controls bool
}

// List is an ordered or unordered list.
type List struct {
	Ordered bool
	Items   []*ListItem
}

// ListItem is one entry of a List.
type ListItem struct {
	Content []Node
}

// Table is a grid of rows. ColIDs, when set, names each leaf column.
type Table struct {
	Rows   []*TableRow
	ColIDs []string
}

// TableRow is one row of cells.
type TableRow struct {
	Cells []*TableCell
}

// TableCell holds either raw text (Content == nil) or lowered content.
// Colspan and Rowspan are 0 when the cell spans a single column or row.
type TableCell struct {
	Raw     string
	Content []Node
	ColID   string
	Colspan int
	Rowspan int
}

// IsRaw reports whether the cell carries a raw string instead of nodes.
func (c *TableCell) IsRaw() bool { return c.Content == nil }

// Span returns the number of columns the cell occupies.
func (c *TableCell) Span() int {
	if c.Colspan > 1 {
		return c.Colspan
	}
	return 1
}

// Code is inline code or a fenced block.
type Code struct {
	Content  string
	Language string
	Inline   bool
}

// Blockquote wraps quoted content.
type Blockquote struct {
	Content []Node
}

// SemanticTag is one of the sectioning elements kept in the output.
type SemanticTag string

const (
	TagArticle    SemanticTag = "article"
	TagAside      SemanticTag = "aside"
	TagDetails    SemanticTag = "details"
	TagFigcaption SemanticTag = "figcaption"
	TagFigure     SemanticTag = "figure"
	TagFooter     SemanticTag = "footer"
	TagHeader     SemanticTag = "header"
	TagMain       SemanticTag = "main"
	TagMark       SemanticTag = "mark"
	TagNav        SemanticTag = "nav"
	TagSection    SemanticTag = "section"
	TagSummary    SemanticTag = "summary"
	TagTime       SemanticTag = "time"
)

// SemanticHTML wraps the content of a sectioning element.
type SemanticHTML struct {
	Tag     SemanticTag
	Content []Node
}

// Meta carries page metadata gathered from <head>.
type Meta struct {
	Standard  Fields
	OpenGraph Fields
	Twitter   Fields
	JSONLD    []JSONObject
}

// Custom is an extension node rendered only by a caller-supplied hook.
type Custom struct {
	Kind string
	Data any
}

func (*Text) Type() NodeType          { return TypeText }
func (*Bold) Type() NodeType          { return TypeBold }
func (*Italic) Type() NodeType        { return TypeItalic }
func (*Strikethrough) Type() NodeType { return TypeStrikethrough }
func (*Heading) Type() NodeType       { return TypeHeading }
func (*Link) Type() NodeType          { return TypeLink }
func (*Image) Type() NodeType         { return TypeImage }
func (*Video) Type() NodeType         { return TypeVideo }
func (*List) Type() NodeType          { return TypeList }
func (*ListItem) Type() NodeType      { return TypeListItem }
func (*Table) Type() NodeType         { return TypeTable }
func (*TableRow) Type() NodeType      { return TypeTableRow }
func (*TableCell) Type() NodeType     { return TypeTableCell }
func (*Code) Type() NodeType          { return TypeCode }
func (*Blockquote) Type() NodeType    { return TypeBlockquote }
func (*SemanticHTML) Type() NodeType  { return TypeSemanticHTML }
func (*Meta) Type() NodeType          { return TypeMeta }
func (*Custom) Type() NodeType        { return TypeCustom }

// IsInline reports whether a node is concatenated into the running line
// rather than separated as a block.
func IsInline(n Node) bool {
	switch v := n.(type) {
	case *Text, *Bold, *Italic, *Strikethrough, *Link:
		return true
	case *Code:
		return v.Inline
	}
	return false
}
