// FILE: lixenwraith/dotenv/source.go
package dotenv

// Source identifies the layer a store value came from, used to define
// precedence.
type Source string

const (
	// SourceDefault holds registered default values
	SourceDefault Source = "default"
	// SourceFile holds values parsed from dotenv text
	SourceFile Source = "file"
	// SourceEnv holds values taken from a process environment list
	SourceEnv Source = "env"
	// SourceOverride holds values written with Set, including ${NAME:=default} assignments
	SourceOverride Source = "override"
)

// StoreOptions configures a Store.
type StoreOptions struct {
	// Sources defines the precedence order (first = highest priority)
	// Default: [SourceOverride, SourceEnv, SourceFile, SourceDefault]
	Sources []Source
}

// DefaultStoreOptions returns the standard store options
func DefaultStoreOptions() StoreOptions {
	return StoreOptions{
		Sources: []Source{SourceOverride, SourceEnv, SourceFile, SourceDefault},
	}
}

func isKnownSource(s Source) bool {
	switch s {
	case SourceDefault, SourceFile, SourceEnv, SourceOverride:
		return true
	}
	return false
}
