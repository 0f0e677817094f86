// Package render — PDF renderer.
// Lays out the semantic AST as a styled PDF using gofpdf: headings at
// graded font sizes, paragraphs, lists, code blocks, tables and quotes.
// Images and videos appear as captions only.
package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/semanticmd/core"
	"github.com/gaurav-prasanna/semanticmd/core/ast"
	"github.com/gaurav-prasanna/semanticmd/core/lower"
	"github.com/jung-kurt/gofpdf"
)

// headingSizes maps heading level to font size in points.
var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}

// PDFRenderer renders a Document as a PDF.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render lays out the AST, or the raw Markdown paragraphs when the
// engine produced no AST, and returns the PDF bytes.
func (r *PDFRenderer) Render(doc *core.Document, meta core.PageMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	if meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		w.cell(8, meta.Title, false)
		pdf.Ln(4)
	}
	if meta.URL != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		w.cell(5, "Source: "+meta.URL, false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	if doc.AST != nil {
		w.blocks(doc.AST, 0)
	} else {
		for _, para := range strings.Split(doc.Markdown, "\n\n") {
			if para = strings.TrimSpace(para); para != "" {
				w.paragraph(para)
			}
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("laying out PDF: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

type pdfWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
	// inline collects text until the next block node.
	inline []string
}

func (w *pdfWriter) cell(h float64, text string, fill bool) {
	w.pdf.MultiCell(0, h, w.tr(text), "", "L", fill)
}

func (w *pdfWriter) paragraph(text string) {
	w.pdf.SetFont("Helvetica", "", 10)
	w.cell(5, text, false)
	w.pdf.Ln(2)
}

func (w *pdfWriter) flush() {
	text := strings.TrimSpace(strings.Join(w.inline, " "))
	w.inline = w.inline[:0]
	if text != "" {
		w.paragraph(text)
	}
}

func (w *pdfWriter) blocks(nodes []ast.Node, indent int) {
	for _, n := range nodes {
		if t, ok := n.(*ast.Text); ok && strings.TrimSpace(t.Content) == "" && strings.Contains(t.Content, "\n\n") {
			w.flush()
			continue
		}
		if ast.IsInline(n) {
			if t := textOf([]ast.Node{n}); t != "" {
				w.inline = append(w.inline, t)
			}
			continue
		}
		w.flush()
		w.block(n, indent)
	}
	w.flush()
}

func (w *pdfWriter) block(n ast.Node, indent int) {
	pad := strings.Repeat("    ", indent)
	switch v := n.(type) {
	case *ast.Heading:
		size, ok := headingSizes[v.Level]
		if !ok {
			size = 10
		}
		w.pdf.Ln(4)
		w.pdf.SetFont("Helvetica", "B", size)
		w.cell(size*0.6, textOf(v.Content), false)
		w.pdf.Ln(2)

	case *ast.List:
		for i, item := range v.Items {
			marker := "-"
			if v.Ordered {
				marker = strconv.Itoa(i+1) + "."
			}
			var text []ast.Node
			var nested []ast.Node
			for _, c := range item.Content {
				if _, isList := c.(*ast.List); isList {
					nested = append(nested, c)
				} else {
					text = append(text, c)
				}
			}
			w.pdf.SetFont("Helvetica", "", 10)
			w.cell(5, pad+marker+" "+textOf(text), false)
			for _, c := range nested {
				w.block(c, indent+1)
			}
		}
		w.pdf.Ln(2)

	case *ast.Code:
		w.pdf.Ln(2)
		w.pdf.SetFont("Courier", "", 9)
		w.pdf.SetFillColor(245, 245, 245)
		w.cell(4.5, v.Content, true)
		w.pdf.Ln(2)

	case *ast.Table:
		w.pdf.SetFont("Courier", "", 9)
		for _, row := range v.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, c := range row.Cells {
				if c.IsRaw() {
					cells = append(cells, lower.Unescape(c.Raw))
				} else {
					cells = append(cells, textOf(c.Content))
				}
			}
			w.cell(4.5, strings.Join(cells, " | "), false)
		}
		w.pdf.Ln(2)

	case *ast.Blockquote:
		w.pdf.SetFont("Helvetica", "I", 10)
		w.pdf.SetTextColor(90, 90, 90)
		w.cell(5, textOf(v.Content), false)
		w.pdf.SetTextColor(0, 0, 0)
		w.pdf.Ln(2)

	case *ast.SemanticHTML:
		w.blocks(v.Content, indent)

	case *ast.Image:
		w.caption("[Image: " + lower.Unescape(v.Alt) + "]")

	case *ast.Video:
		w.caption("[Video: " + v.Src + "]")
	}
}

func (w *pdfWriter) caption(text string) {
	w.pdf.SetFont("Helvetica", "I", 9)
	w.pdf.SetTextColor(100, 100, 100)
	w.cell(5, text, false)
	w.pdf.SetTextColor(0, 0, 0)
}
