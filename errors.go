// FILE: lixenwraith/dotenv/errors.go
package dotenv

import "errors"

// Parser errors, wrapped in *ParseError with the offending line.
var (
	ErrEmptyKey        = errors.New("empty key")
	ErrInvalidKeyChar  = errors.New("invalid character in key")
	ErrTrailingContent = errors.New("invalid character after quoted value - use quotes for embedded spaces")
)

// Expansion errors, wrapped in *ExpandError.
var (
	ErrBadSubstitution     = errors.New("bad substitution: empty variable name")
	ErrInvalidVariableName = errors.New("invalid variable name")
	ErrVariableNotSet      = errors.New("variable not set")
	ErrMissingDelimiter    = errors.New("missing closing delimiter")
	ErrRequired            = errors.New("required variable not set")
)

// Document and store errors.
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidKey      = errors.New("invalid key")
	ErrKeyNotFound     = errors.New("key not found")
	ErrUnknownSource   = errors.New("unknown source")
	ErrUnknownFormat   = errors.New("unknown format")
)
