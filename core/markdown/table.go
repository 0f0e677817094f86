package markdown

import (
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/semanticmd/core/ast"
)

// table renders a pipe table. Every row is padded to the widest row's
// column count, counting colspans, and spanned columns are emitted as
// empty cells after the spanning one.
func (r *renderer) table(t *ast.Table, indent, depth int) (string, error) {
	width := 0
	for _, row := range t.Rows {
		w := 0
		for _, cell := range row.Cells {
			w += cell.Span()
		}
		width = max(width, w)
	}
	if width == 0 {
		return "", nil
	}

	lines := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		var b strings.Builder
		used := 0
		for _, cell := range row.Cells {
			text, err := r.cell(cell, indent, depth)
			if err != nil {
				return "", err
			}
			b.WriteString("| " + text + " ")
			for i := 1; i < cell.Span(); i++ {
				b.WriteString("| ")
			}
			used += cell.Span()
		}
		for ; used < width; used++ {
			b.WriteString("|  ")
		}
		b.WriteString("|")
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n"), nil
}

func (r *renderer) cell(c *ast.TableCell, indent, depth int) (string, error) {
	text := c.Raw
	if !c.IsRaw() {
		inner, err := r.content(c.Content, indent+1, depth)
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(inner)
	}
	text = escapePipes(strings.Join(strings.FieldsFunc(text, isNewline), " "))
	if c.ColID != "" {
		text += " <!-- " + c.ColID + " -->"
	}
	if c.Colspan > 1 {
		text += " <!-- colspan: " + strconv.Itoa(c.Colspan) + " -->"
	}
	if c.Rowspan > 1 {
		text += " <!-- rowspan: " + strconv.Itoa(c.Rowspan) + " -->"
	}
	return text, nil
}

func isNewline(r rune) bool { return r == '\n' || r == '\r' }

// escapePipes backslash-escapes "|" unless it is already escaped.
func escapePipes(s string) string {
	if !strings.Contains(s, "|") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '|' && (i == 0 || s[i-1] != '\\') {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
