package lower

import (
	"html"
	"strings"
)

var entityReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

const markdownSpecial = "\\`*_{}[]#+!|"

// Escape makes text safe to place in Markdown. HTML-sensitive characters
// become entities, then Markdown-significant characters are backslash
// escaped. Empty and whitespace-only input is returned unchanged.
func Escape(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	text = entityReplacer.Replace(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(markdownSpecial, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Unescape reverses Escape: backslash escapes are dropped, then HTML
// entities are decoded. An escaped backslash yields one backslash.
func Unescape(text string) string {
	if strings.ContainsRune(text, '\\') {
		var b strings.Builder
		b.Grow(len(text))
		for i := 0; i < len(text); i++ {
			if text[i] == '\\' && i+1 < len(text) && strings.IndexByte(markdownSpecial, text[i+1]) >= 0 {
				i++
			}
			b.WriteByte(text[i])
		}
		text = b.String()
	}
	return html.UnescapeString(text)
}
