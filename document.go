// FILE: lixenwraith/dotenv/document.go
package dotenv

import (
	"fmt"
	"iter"
)

// Document is an ordered sequence of tokens. Insertion order is preserved so
// that a parsed file can be written back with its comments and blank lines in
// place. Duplicate keys are kept as separate items; folding to a map keeps the
// last one.
//
// A Document is built by Parse or by the builder methods and is treated as
// read-only once handed to a consumer. It is not safe for concurrent mutation.
type Document struct {
	tokens []Token
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// Comment appends a comment token holding text (without the leading "#").
func (d *Document) Comment(text string) *Document {
	return d.Push(CommentToken(text))
}

// Blank appends a blank line marker.
func (d *Document) Blank() *Document {
	return d.Push(BlankToken())
}

// Item appends a key/value pair.
func (d *Document) Item(key, value string) *Document {
	return d.Push(ItemToken(key, value))
}

// Push appends an arbitrary token.
func (d *Document) Push(t Token) *Document {
	d.tokens = append(d.tokens, t)
	return d
}

// Len returns the number of tokens.
func (d *Document) Len() int {
	return len(d.tokens)
}

// At returns the token at index i.
func (d *Document) At(i int) (Token, error) {
	if i < 0 || i >= len(d.tokens) {
		return Token{}, fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, i, len(d.tokens))
	}
	return d.tokens[i], nil
}

// Tokens returns a copy of the tokens in insertion order.
func (d *Document) Tokens() []Token {
	out := make([]Token, len(d.tokens))
	copy(out, d.tokens)
	return out
}

// All iterates the tokens in insertion order. The sequence reads the backing
// slice on every call, so it can be ranged over more than once.
func (d *Document) All() iter.Seq2[int, Token] {
	return func(yield func(int, Token) bool) {
		for i, t := range d.tokens {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Items iterates key/value pairs in insertion order, duplicates included.
func (d *Document) Items() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, t := range d.tokens {
			if t.Kind != KindItem {
				continue
			}
			if !yield(t.Key, t.Value) {
				return
			}
		}
	}
}

// ToMap folds the items into a key/value map. Later duplicates overwrite
// earlier ones; comments and blanks are ignored.
func (d *Document) ToMap() map[string]string {
	m := make(map[string]string)
	for k, v := range d.Items() {
		m[k] = v
	}
	return m
}

// Get returns the value of the last item with the given key.
func (d *Document) Get(key string) (string, bool) {
	for i := len(d.tokens) - 1; i >= 0; i-- {
		if t := d.tokens[i]; t.Kind == KindItem && t.Key == key {
			return t.Value, true
		}
	}
	return "", false
}

// Keys returns the distinct item keys in order of first appearance.
func (d *Document) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for k := range d.Items() {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}
