// FILE: lixenwraith/dotenv/expand_options.go
package dotenv

// Vars is the variable store consulted during expansion. Store and MapVars
// implement it. Implementations shared between goroutines must do their own
// locking; Expand adds none.
type Vars interface {
	Get(name string) (string, bool)
	Set(name, value string)
}

// MapVars adapts a plain map to Vars.
type MapVars map[string]string

// Get returns the value stored under name.
func (m MapVars) Get(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Set stores value under name.
func (m MapVars) Set(name, value string) {
	m[name] = value
}

// ExpandOptions selects the placeholder syntaxes Expand understands.
type ExpandOptions struct {
	// WindowsExpansion enables %NAME% placeholders.
	WindowsExpansion bool

	// UnixExpansion enables $NAME and ${NAME...} placeholders.
	UnixExpansion bool

	// UnixAssignment makes ${NAME:=default} store the default when NAME is unset.
	UnixAssignment bool

	// UnixCustomErrorMessage makes ${NAME:?message} fail with message when NAME is unset.
	// When disabled the message is dropped and the generic "variable not set" error is used.
	UnixCustomErrorMessage bool

	// UnixArgsExpansion resolves $0, $1, ... from Args.
	UnixArgsExpansion bool

	// Args are the positional arguments for UnixArgsExpansion.
	Args []string

	// Get, when set, replaces the lookup of the Vars passed to Expand.
	Get func(name string) (string, bool)

	// Set, when set, replaces the assignment of the Vars passed to Expand.
	Set func(name, value string)
}

// DefaultExpandOptions returns the standard expansion options: unix
// placeholders with assignment and custom error messages, no Windows
// placeholders, no positional arguments.
func DefaultExpandOptions() ExpandOptions {
	return ExpandOptions{
		WindowsExpansion:       false,
		UnixExpansion:          true,
		UnixAssignment:         true,
		UnixCustomErrorMessage: true,
		UnixArgsExpansion:      false,
	}
}
