package lower

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/semanticmd/core/ast"
	"github.com/gaurav-prasanna/semanticmd/core/htmldom"
	"golang.org/x/net/html"
)

// table lowers every descendant <tr> of t. Column ids follow the expanded
// column position of each cell, so a cell after a colspan=2 cell in the
// first column gets col-2.
func (l *lowerer) table(t *html.Node, indent, depth int) (*ast.Table, error) {
	rows := htmldom.QueryAll(t, "tr")
	table := &ast.Table{}

	headerWidth := 0
	if len(rows) > 0 {
		for _, cell := range htmldom.QueryAll(rows[0], "th, td") {
			headerWidth += max(parseSpan(htmldom.AttrOr(cell, "colspan", "")), 1)
		}
	}
	if l.opts.EnableTableColumnTracking {
		for i := 0; i < headerWidth; i++ {
			table.ColIDs = append(table.ColIDs, fmt.Sprintf("col-%d", i))
		}
	}

	for _, tr := range rows {
		row := &ast.TableRow{}
		col := 0
		for _, td := range htmldom.QueryAll(tr, "th, td") {
			cell, err := l.cell(td, indent, depth)
			if err != nil {
				return nil, err
			}
			if col < len(table.ColIDs) {
				cell.ColID = table.ColIDs[col]
			}
			col += cell.Span()
			row.Cells = append(row.Cells, cell)
		}
		table.Rows = append(table.Rows, row)
	}

	if len(rows) > 0 && htmldom.Query(rows[0], "th") != nil {
		sep := &ast.TableRow{}
		for i := 0; i < headerWidth; i++ {
			sep.Cells = append(sep.Cells, &ast.TableCell{Raw: "---"})
		}
		table.Rows = append(table.Rows[:1], append([]*ast.TableRow{sep}, table.Rows[1:]...)...)
	}
	l.opts.Debugf("[lower] table rows=%d columns=%d", len(table.Rows), headerWidth)
	return table, nil
}

func (l *lowerer) cell(td *html.Node, indent, depth int) (*ast.TableCell, error) {
	cell := &ast.TableCell{}
	if span := parseSpan(htmldom.AttrOr(td, "colspan", "")); span > 1 {
		cell.Colspan = span
	}
	if span := parseSpan(htmldom.AttrOr(td, "rowspan", "")); span > 1 {
		cell.Rowspan = span
	}
	if onlyText(td) {
		cell.Raw = Escape(strings.TrimSpace(htmldom.TextContent(td)))
		return cell, nil
	}
	content, err := l.children(td, indent+1, depth)
	if err != nil {
		return nil, err
	}
	if content == nil {
		content = []ast.Node{}
	}
	cell.Content = content
	return cell, nil
}

// parseSpan reads the leading integer of a span attribute. Missing or
// malformed values count as 1.
func parseSpan(v string) int {
	v = strings.TrimSpace(v)
	n, digits := 0, 0
	for _, r := range v {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
		if n > 1000 {
			return 1000
		}
	}
	if digits == 0 || n < 1 {
		return 1
	}
	return n
}
