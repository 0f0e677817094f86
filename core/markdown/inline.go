package markdown

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// clingingPunctuation attaches to the preceding text without a space.
const clingingPunctuation = ".,!?;:)"

// joinInline appends an inline fragment, inserting a single space unless
// one side already provides whitespace, the fragment is a lone clinging
// punctuation mark, or the running output ends with an opening bracket.
func joinInline(out, text string) string {
	if out == "" || text == "" {
		return out + text
	}
	last, _ := utf8.DecodeLastRuneInString(out)
	first, _ := utf8.DecodeRuneInString(text)
	switch {
	case unicode.IsSpace(last), unicode.IsSpace(first):
	case utf8.RuneCountInString(text) == 1 && strings.ContainsRune(clingingPunctuation, first):
	case last == '(' || last == '[':
	default:
		out += " "
	}
	return out + text
}

// uriReserved are the characters EncodeURI leaves untouched besides
// ASCII letters and digits.
const uriReserved = "-_.!~*'();/?:@&=+$,#"

const hexDigits = "0123456789ABCDEF"

// EncodeURI percent-encodes a URL the way a browser's encodeURI does,
// leaving reserved characters and existing %XX escapes intact.
func EncodeURI(u string) string {
	var b strings.Builder
	b.Grow(len(u))
	for i := 0; i < len(u); i++ {
		c := u[i]
		switch {
		case c < utf8.RuneSelf && (isAlnum(c) || strings.IndexByte(uriReserved, c) >= 0):
			b.WriteByte(c)
		case c == '%' && i+2 < len(u) && isHex(u[i+1]) && isHex(u[i+2]):
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0x0F])
		}
	}
	return b.String()
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
