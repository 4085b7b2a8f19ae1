// FILE: lixenwraith/dotenv/token.go
package dotenv

import "fmt"

// TokenKind tags the variant held by a Token.
type TokenKind int

const (
	// KindComment is a "#" line; Text holds everything after the "#".
	KindComment TokenKind = iota
	// KindBlank marks a blank line.
	KindBlank
	// KindItem is a resolved KEY=value pair.
	KindItem
)

// String returns the lower-case name of the kind.
func (k TokenKind) String() string {
	switch k {
	case KindComment:
		return "comment"
	case KindBlank:
		return "blank"
	case KindItem:
		return "item"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is one parsed unit of a dotenv document. Tokens are plain values and
// never reference each other.
type Token struct {
	Kind  TokenKind
	Text  string // comment body, KindComment only
	Key   string // KindItem only
	Value string // KindItem only
}

// CommentToken returns a comment token with the raw body text.
func CommentToken(text string) Token {
	return Token{Kind: KindComment, Text: text}
}

// BlankToken returns a blank line marker.
func BlankToken() Token {
	return Token{Kind: KindBlank}
}

// ItemToken returns a key/value token.
func ItemToken(key, value string) Token {
	return Token{Kind: KindItem, Key: key, Value: value}
}

// String renders the token for debugging. It is not the serialized form;
// use Stringify for that.
func (t Token) String() string {
	switch t.Kind {
	case KindComment:
		return "comment " + fmt.Sprintf("%q", t.Text)
	case KindBlank:
		return "blank"
	case KindItem:
		return fmt.Sprintf("item %s=%q", t.Key, t.Value)
	default:
		return t.Kind.String()
	}
}
