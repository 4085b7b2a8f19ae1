// FILE: lixenwraith/dotenv/expand.go
package dotenv

import (
	"fmt"
	"strconv"
	"strings"
)

// ExpandError reports a failed expansion. Message carries the caller supplied
// text of a ${NAME:?message} placeholder.
type ExpandError struct {
	Name    string
	Message string
	Err     error
}

func (e *ExpandError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Name, e.Message)
	case e.Name != "":
		return fmt.Sprintf("%v: %s", e.Err, e.Name)
	default:
		return e.Err.Error()
	}
}

func (e *ExpandError) Unwrap() error {
	return e.Err
}

// scanMode is the placeholder state of the expansion scanner.
type scanMode int

const (
	modePlain scanMode = iota
	modeWindowsToken
	modeBashVariable
	modeBashInterpolation
)

// Expand substitutes placeholders in template using vars. A nil opts uses
// DefaultExpandOptions.
//
// Supported forms: %NAME% (WindowsExpansion), $NAME, ${NAME}, ${NAME:-default},
// ${NAME:=default}, ${NAME:?message} and $N positional arguments
// (UnixArgsExpansion). A bare ${NAME:default} behaves like ":-". "\$" is a
// literal dollar sign. Defaults only apply to unset variables, and an empty
// default counts as none.
func Expand(template string, vars Vars, opts *ExpandOptions) (string, error) {
	if template == "" {
		return "", nil
	}
	o := DefaultExpandOptions()
	if opts != nil {
		o = *opts
	}

	e := &expander{src: []rune(template), opts: o, vars: vars}
	return e.run()
}

type expander struct {
	src  []rune
	opts ExpandOptions
	vars Vars
	out  strings.Builder
	tok  strings.Builder
}

func (e *expander) run() (string, error) {
	src := e.src
	mode := modePlain

	for i := 0; i < len(src); i++ {
		c := src[i]

		switch mode {
		case modePlain:
			if c == '%' && e.opts.WindowsExpansion {
				mode = modeWindowsToken
				e.tok.Reset()
				continue
			}
			if e.opts.UnixExpansion {
				if c == '\\' && i+1 < len(src) && src[i+1] == '$' {
					e.out.WriteRune('$')
					i++
					continue
				}
				if c == '$' && i+1 < len(src) {
					next := src[i+1]
					if next == '{' && i+2 < len(src) {
						mode = modeBashInterpolation
						e.tok.Reset()
						i++
						continue
					}
					if isAlpha(next) || isNumeric(next) {
						mode = modeBashVariable
						e.tok.Reset()
						continue
					}
				}
			}
			e.out.WriteRune(c)

		case modeWindowsToken:
			if c != '%' {
				e.tok.WriteRune(c)
				continue
			}
			e.windowsToken()
			mode = modePlain

		case modeBashInterpolation:
			if c != '}' {
				e.tok.WriteRune(c)
				continue
			}
			if err := e.interpolate(); err != nil {
				return "", err
			}
			mode = modePlain

		case modeBashVariable:
			if isKeyChar(c) {
				e.tok.WriteRune(c)
				continue
			}
			if err := e.variable(); err != nil {
				return "", err
			}
			mode = modePlain

			switch {
			case c == '$':
				// starts the next placeholder
				i--
			case c == '\\' && i+1 < len(src) && src[i+1] == '$':
				// leave "\$" to the escape rule
				i--
			case c == '\\':
				// separator between a name and following word characters, dropped
			default:
				e.out.WriteRune(c)
			}
		}
	}

	switch mode {
	case modeWindowsToken, modeBashInterpolation:
		return "", &ExpandError{Name: e.tok.String(), Err: ErrMissingDelimiter}
	case modeBashVariable:
		if err := e.variable(); err != nil {
			return "", err
		}
	}

	return e.out.String(), nil
}

// windowsToken resolves a %NAME% placeholder. Unset and empty variables
// expand to nothing; "%%" stays literal.
func (e *expander) windowsToken() {
	name := e.tok.String()
	if name == "" {
		e.out.WriteString("%%")
		return
	}
	if v, ok := e.lookup(name); ok && v != "" {
		e.out.WriteString(v)
	}
}

// interpolate resolves the body of a ${...} placeholder.
func (e *expander) interpolate() error {
	body := e.tok.String()
	if body == "" {
		return &ExpandError{Err: ErrBadSubstitution}
	}

	key := body
	var def, msg string
	var assign, required bool

	if idx := strings.Index(body, ":-"); idx >= 0 {
		key, def = body[:idx], body[idx+2:]
	} else if idx := strings.Index(body, ":="); idx >= 0 {
		key, def = body[:idx], body[idx+2:]
		assign = true
	} else if idx := strings.Index(body, ":?"); idx >= 0 {
		key, msg = body[:idx], body[idx+2:]
		required = e.opts.UnixCustomErrorMessage
	} else if idx := strings.IndexByte(body, ':'); idx >= 0 {
		key, def = body[:idx], body[idx+1:]
	}

	if !isIdentifier(key) {
		return &ExpandError{Name: key, Err: ErrInvalidVariableName}
	}

	if v, ok := e.lookup(key); ok {
		e.out.WriteString(v)
		return nil
	}
	if required {
		return &ExpandError{Name: key, Message: msg, Err: ErrRequired}
	}
	if def != "" {
		if assign && e.opts.UnixAssignment {
			e.assign(key, def)
		}
		e.out.WriteString(def)
		return nil
	}
	return &ExpandError{Name: key, Err: ErrVariableNotSet}
}

// variable resolves a $NAME or $N placeholder.
func (e *expander) variable() error {
	name := e.tok.String()

	if e.opts.UnixArgsExpansion && isDigits(name) {
		if idx, err := strconv.Atoi(name); err == nil && idx < len(e.opts.Args) {
			e.out.WriteString(e.opts.Args[idx])
		}
		return nil
	}

	if !isIdentifier(name) {
		return &ExpandError{Name: name, Err: ErrInvalidVariableName}
	}
	v, ok := e.lookup(name)
	if !ok {
		return &ExpandError{Name: name, Err: ErrVariableNotSet}
	}
	e.out.WriteString(v)
	return nil
}

func (e *expander) lookup(name string) (string, bool) {
	if e.opts.Get != nil {
		return e.opts.Get(name)
	}
	if e.vars == nil {
		return "", false
	}
	return e.vars.Get(name)
}

func (e *expander) assign(name, value string) {
	if e.opts.Set != nil {
		e.opts.Set(name, value)
		return
	}
	if e.vars != nil {
		e.vars.Set(name, value)
	}
}

// isIdentifier reports whether s is a letter followed by letters, digits or
// underscores.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !isAlpha(r) {
			return false
		}
		if !isKeyChar(r) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isNumeric(r) {
			return false
		}
	}
	return true
}
