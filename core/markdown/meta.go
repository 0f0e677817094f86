package markdown

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/semanticmd/core"
	"github.com/gaurav-prasanna/semanticmd/core/ast"
)

// RenderMeta renders the front-matter block. It is empty when metadata
// is off and a bare "---" pair when no Meta node exists.
func RenderMeta(nodes []ast.Node, opts *core.Options) string {
	mode := opts.Meta()
	if !mode.Enabled() {
		return ""
	}
	var b strings.Builder
	b.WriteString("---\n")
	if m, ok := ast.Find(nodes, ast.OfType(ast.TypeMeta)).(*ast.Meta); ok {
		for _, f := range m.Standard {
			fmt.Fprintf(&b, "%s: \"%s\"\n", f.Key, f.Value)
		}
		if mode.Extended() {
			writeFields(&b, "openGraph", m.OpenGraph)
			writeFields(&b, "twitter", m.Twitter)
			writeSchema(&b, m.JSONLD, opts)
		}
	}
	b.WriteString("---\n\n")
	return b.String()
}

func writeFields(b *strings.Builder, label string, fields ast.Fields) {
	if fields.Len() == 0 {
		return
	}
	b.WriteString(label + ":\n")
	for _, f := range fields {
		fmt.Fprintf(b, "  %s: \"%s\"\n", f.Key, f.Value)
	}
}

func writeSchema(b *strings.Builder, items []ast.JSONObject, opts *core.Options) {
	if len(items) == 0 {
		return
	}
	b.WriteString("schema:\n")
	for _, item := range items {
		typ, _ := item.Get("@type")
		fmt.Fprintf(b, "  %s:\n", schemaType(typ))
		for _, m := range item {
			if m.Key == "@context" || m.Key == "@type" {
				continue
			}
			v, err := encodeValue(m.Value)
			if err != nil {
				opts.Warnf("[render] skipping JSON-LD field %q: %v", m.Key, err)
				continue
			}
			fmt.Fprintf(b, "    %s: %s\n", m.Key, v)
		}
	}
}

func schemaType(t any) string {
	switch v := t.(type) {
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, p := range v {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, ",")
	case nil:
		return "(unknown type)"
	}
	return fmt.Sprint(t)
}

func encodeValue(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
