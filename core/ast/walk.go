package ast

// Children returns the nested content of n that traversals descend into:
// link content, list item content, non-raw table cell content, blockquote
// content and semantic element content. Other variants are leaves.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Link:
		return v.Content
	case *List:
		var out []Node
		for _, item := range v.Items {
			out = append(out, item.Content...)
		}
		return out
	case *ListItem:
		return v.Content
	case *Table:
		var out []Node
		for _, row := range v.Rows {
			for _, cell := range row.Cells {
				if !cell.IsRaw() {
					out = append(out, cell.Content...)
				}
			}
		}
		return out
	case *Blockquote:
		return v.Content
	case *SemanticHTML:
		return v.Content
	}
	return nil
}

// Walk calls fn for every node in nodes and, depth first, every node
// reachable through Children.
func Walk(nodes []Node, fn func(Node)) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		fn(n)
		Walk(Children(n), fn)
	}
}

// Find returns the first node, in document order, for which pred holds.
func Find(nodes []Node, pred func(Node) bool) Node {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if pred(n) {
			return n
		}
		if found := Find(Children(n), pred); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node for which pred holds. A matching node's own
// content is not searched further.
func FindAll(nodes []Node, pred func(Node) bool) []Node {
	var out []Node
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if pred(n) {
			out = append(out, n)
			continue
		}
		out = append(out, FindAll(Children(n), pred)...)
	}
	return out
}

// OfType returns a predicate matching nodes of type t.
func OfType(t NodeType) func(Node) bool {
	return func(n Node) bool { return n.Type() == t }
}
