// FILE: lixenwraith/dotenv/stringify.go
package dotenv

import (
	"io"
	"runtime"
	"strings"
)

// Newline sequences accepted by Stringify.
const (
	NewlineLF   = "\n"
	NewlineCRLF = "\r\n"
)

// PlatformNewline returns CRLF on Windows and LF elsewhere.
func PlatformNewline() string {
	if runtime.GOOS == "windows" {
		return NewlineCRLF
	}
	return NewlineLF
}

// Stringify renders doc in canonical form. An empty newline selects the
// platform default.
//
// Tokens are joined by newline; a blank token renders as an empty line.
// Comments render as "#" followed by their text. Items render as KEY='value',
// switching to double quotes with `"` escaped when the value contains a single
// quote or a line break. Single-quoted output never escapes its delimiter.
func Stringify(doc *Document, newline string) string {
	if newline == "" {
		newline = PlatformNewline()
	}

	var sb strings.Builder
	for i, t := range doc.All() {
		if i > 0 {
			sb.WriteString(newline)
		}
		switch t.Kind {
		case KindComment:
			sb.WriteByte('#')
			sb.WriteString(t.Text)
		case KindBlank:
			// the separators around it produce the empty line
		case KindItem:
			sb.WriteString(t.Key)
			sb.WriteByte('=')
			writeQuoted(&sb, t.Value)
		}
	}
	return sb.String()
}

// WriteTo writes the canonical LF form of the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, Stringify(d, NewlineLF))
	return int64(n), err
}

// String returns the canonical LF form of the document.
func (d *Document) String() string {
	return Stringify(d, NewlineLF)
}

func writeQuoted(sb *strings.Builder, value string) {
	if !strings.ContainsRune(value, '\'') && !strings.ContainsAny(value, "\r\n") {
		sb.WriteByte('\'')
		sb.WriteString(value)
		sb.WriteByte('\'')
		return
	}
	sb.WriteByte('"')
	sb.WriteString(strings.ReplaceAll(value, `"`, `\"`))
	sb.WriteByte('"')
}
