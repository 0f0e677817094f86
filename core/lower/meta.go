package lower

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gaurav-prasanna/semanticmd/core/ast"
	"github.com/gaurav-prasanna/semanticmd/core/htmldom"
	"golang.org/x/net/html"
)

// nonSemanticMeta are <meta name> values that describe the browser
// environment rather than the page.
var nonSemanticMeta = []string{"viewport", "referrer", "Content-Security-Policy"}

func (l *lowerer) meta(head *html.Node) *ast.Meta {
	extended := l.opts.Meta().Extended()
	m := &ast.Meta{}

	for _, title := range htmldom.QueryAll(head, "title") {
		m.Standard.Set("title", Escape(strings.TrimSpace(htmldom.TextContent(title))))
	}

	for _, tag := range htmldom.QueryAll(head, "meta") {
		name, _ := htmldom.Attr(tag, "name")
		property, _ := htmldom.Attr(tag, "property")
		content, _ := htmldom.Attr(tag, "content")
		if content == "" {
			continue
		}
		switch {
		case strings.HasPrefix(property, "og:"):
			if extended {
				m.OpenGraph.Set(property[len("og:"):], content)
			}
		case strings.HasPrefix(name, "twitter:"):
			if extended {
				m.Twitter.Set(name[len("twitter:"):], content)
			}
		case name != "" && !isNonSemantic(name):
			m.Standard.Set(name, content)
		}
	}

	if extended {
		for _, script := range htmldom.QueryAll(head, `script[type="application/ld+json"]`) {
			m.JSONLD = append(m.JSONLD, l.jsonLD(htmldom.TextContent(script))...)
		}
	}
	l.opts.Debugf("[lower] meta standard=%d openGraph=%d twitter=%d jsonLd=%d",
		m.Standard.Len(), m.OpenGraph.Len(), m.Twitter.Len(), len(m.JSONLD))
	return m
}

// jsonLD decodes one script body, keeping object members in source
// order. A top-level array contributes each of its objects. Malformed
// content is logged and skipped.
func (l *lowerer) jsonLD(raw string) []ast.JSONObject {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	v, err := decodeJSON(dec)
	if err == nil {
		if _, trailing := dec.Token(); trailing != io.EOF {
			err = fmt.Errorf("unexpected data after top-level value")
		}
	}
	if err != nil {
		l.opts.Warnf("[lower] skipping malformed JSON-LD: %v", err)
		return nil
	}
	switch data := v.(type) {
	case ast.JSONObject:
		return []ast.JSONObject{data}
	case []any:
		var out []ast.JSONObject
		for _, item := range data {
			if obj, ok := item.(ast.JSONObject); ok {
				out = append(out, obj)
			}
		}
		return out
	}
	l.opts.Warnf("[lower] skipping JSON-LD that is not an object: %T", v)
	return nil
}

// decodeJSON reads one value token by token. Objects become
// ast.JSONObject, arrays []any, numbers json.Number.
func decodeJSON(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		obj := ast.JSONObject{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T, not a string", keyTok)
			}
			val, err := decodeJSON(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := decodeJSON(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %q", delim)
}

func isNonSemantic(name string) bool {
	for _, n := range nonSemanticMeta {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
