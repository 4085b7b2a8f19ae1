// FILE: lixenwraith/dotenv/parse.go
package dotenv

import (
	"fmt"
	"io"
	"strings"
)

// ParseError reports a malformed document. Line is 1-based.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v on line %d", e.Err, e.Line)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// quote tracks whether the value being scanned sits inside an open quote.
// quoteClosed means a value just ended and only whitespace or a line end may
// follow on the same line.
type quote int

const (
	quoteNone quote = iota
	quoteSingle
	quoteDouble
	quoteBackTick
	quoteClosed
)

// delim returns the closing delimiter of an open quote.
func (q quote) delim() rune {
	switch q {
	case quoteSingle:
		return '\''
	case quoteDouble:
		return '"'
	case quoteBackTick:
		return '`'
	default:
		return 0
	}
}

// unescape resolves the character following a backslash inside an open
// quote. Single quotes only understand an escaped delimiter.
func (q quote) unescape(next rune) (rune, bool) {
	if next == q.delim() {
		return next, true
	}
	if q == quoteSingle {
		return 0, false
	}
	switch next {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

// Parse scans dotenv text into a Document in a single forward pass.
//
// Grammar, line by line: "# comment", blank lines, and KEY=value where KEY is
// [A-Za-z_][A-Za-z0-9_]*. Values are unquoted (left-trimmed, ended by the
// first whitespace or the line end), single-quoted, double-quoted or
// back-tick-quoted. Double and back-tick quotes understand \n, \r, \t and an
// escaped delimiter; quoted values may span lines. A quote left open at end of
// input is accepted as if it were closed there.
func Parse(text string) (*Document, error) {
	p := &parser{
		src:  []rune(text),
		line: 1,
		doc:  New(),
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.doc, nil
}

// ParseBytes parses UTF-8 encoded dotenv data.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(string(data))
}

// ParseReader reads r to the end and parses the content.
func ParseReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read dotenv input: %w", err)
	}
	return Parse(string(data))
}

type parser struct {
	src     []rune
	pos     int
	line    int
	doc     *Document
	buf     strings.Builder
	key     string
	quote   quote
	inValue bool
}

func (p *parser) run() error {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		var err error
		if p.inValue {
			err = p.scanValue(c)
		} else {
			err = p.scanKey(c)
		}
		if err != nil {
			return err
		}
	}
	return p.finish()
}

func (p *parser) scanKey(c rune) error {
	switch {
	case c == '#' && p.buf.Len() == 0:
		start := p.pos + 1
		end := start
		for end < len(p.src) && !isLineEnd(p.src[end]) {
			end++
		}
		p.doc.Comment(string(p.src[start:end]))
		p.pos = end
		p.newline()

	case isLineEnd(c):
		if p.buf.Len() == 0 {
			p.doc.Blank()
		} else {
			if err := p.emitBareKey(); err != nil {
				return err
			}
		}
		p.newline()

	case isBlank(c):
		if p.buf.Len() == 0 && p.restIsBlank() {
			p.doc.Blank()
			p.pos = len(p.src)
			return nil
		}
		p.pos++

	case c == '=':
		if p.buf.Len() == 0 {
			return p.fail(ErrEmptyKey)
		}
		key := p.buf.String()
		if !isKeyStart(rune(key[0])) {
			return p.fail(ErrInvalidKeyChar)
		}
		p.key = key
		p.buf.Reset()
		p.inValue = true
		p.quote = quoteNone
		p.pos++

	case isKeyChar(c):
		p.buf.WriteRune(c)
		p.pos++

	default:
		return p.fail(ErrInvalidKeyChar)
	}
	return nil
}

func (p *parser) scanValue(c rune) error {
	switch p.quote {
	case quoteClosed:
		switch {
		case isLineEnd(c):
			if p.key != "" {
				p.doc.Item(p.key, p.buf.String())
			}
			p.endValue()
			p.newline()
		case isBlank(c):
			p.pos++
		default:
			return p.fail(ErrTrailingContent)
		}

	case quoteSingle, quoteDouble, quoteBackTick:
		switch {
		case c == '\\' && p.pos+1 < len(p.src):
			if r, ok := p.quote.unescape(p.src[p.pos+1]); ok {
				p.buf.WriteRune(r)
				p.pos += 2
				return nil
			}
			p.buf.WriteRune(c)
			p.pos++
		case c == p.quote.delim():
			p.doc.Item(p.key, p.buf.String())
			p.key = ""
			p.buf.Reset()
			p.quote = quoteClosed
			p.pos++
		default:
			if c == '\n' || (c == '\r' && !p.peekIs('\n')) {
				p.line++
			}
			p.buf.WriteRune(c)
			p.pos++
		}

	case quoteNone:
		if p.buf.Len() == 0 {
			switch {
			case isBlank(c):
				p.pos++
			case c == '"':
				p.quote = quoteDouble
				p.pos++
			case c == '\'':
				p.quote = quoteSingle
				p.pos++
			case c == '`':
				p.quote = quoteBackTick
				p.pos++
			case isLineEnd(c):
				p.doc.Item(p.key, "")
				p.endValue()
				p.newline()
			default:
				p.buf.WriteRune(c)
				p.pos++
			}
			return nil
		}

		switch {
		case isLineEnd(c):
			p.doc.Item(p.key, p.buf.String())
			p.endValue()
			p.newline()
		case isBlank(c):
			p.quote = quoteClosed
			p.pos++
		default:
			p.buf.WriteRune(c)
			p.pos++
		}
	}
	return nil
}

// finish flushes whatever is pending at end of input.
func (p *parser) finish() error {
	if p.inValue {
		if p.key != "" {
			p.doc.Item(p.key, p.buf.String())
		}
		return nil
	}
	if p.buf.Len() > 0 {
		return p.emitBareKey()
	}
	return nil
}

// emitBareKey emits a key typed without "=" as an item with an empty value.
func (p *parser) emitBareKey() error {
	key := p.buf.String()
	if !isKeyStart(rune(key[0])) {
		return p.fail(ErrInvalidKeyChar)
	}
	p.doc.Item(key, "")
	p.buf.Reset()
	return nil
}

func (p *parser) endValue() {
	p.key = ""
	p.buf.Reset()
	p.inValue = false
	p.quote = quoteNone
}

// newline consumes one line terminator (CR, LF or CRLF) if present and
// advances the line counter.
func (p *parser) newline() {
	if p.pos >= len(p.src) {
		return
	}
	switch p.src[p.pos] {
	case '\r':
		p.pos++
		if p.pos < len(p.src) && p.src[p.pos] == '\n' {
			p.pos++
		}
	case '\n':
		p.pos++
	default:
		return
	}
	p.line++
}

func (p *parser) peekIs(r rune) bool {
	return p.pos+1 < len(p.src) && p.src[p.pos+1] == r
}

func (p *parser) restIsBlank() bool {
	for _, r := range p.src[p.pos:] {
		if !isBlank(r) {
			return false
		}
	}
	return true
}

func (p *parser) fail(err error) error {
	return &ParseError{Line: p.line, Err: err}
}

func isLineEnd(r rune) bool {
	return r == '\n' || r == '\r'
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\v' || r == '\f'
}

// isAlpha checks if a character is an ASCII letter
func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isNumeric checks if a character is an ASCII digit
func isNumeric(r rune) bool {
	return r >= '0' && r <= '9'
}

func isKeyStart(r rune) bool {
	return isAlpha(r) || r == '_'
}

func isKeyChar(r rune) bool {
	return isAlpha(r) || isNumeric(r) || r == '_'
}

// IsValidKey reports whether s matches [A-Za-z_][A-Za-z0-9_]*.
func IsValidKey(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !isKeyStart(r) {
			return false
		}
		if !isKeyChar(r) {
			return false
		}
	}
	return true
}
