// File: lixenwraith/dotenv/convenience.go
package dotenv

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Quick parses dotenv text and layers the environment list over it with the
// default precedence (override > env > file > default).
func Quick(text string, environ []string) (*Store, error) {
	return NewBuilder().
		WithText(text).
		WithEnviron(environ).
		Build()
}

// MustQuick is like Quick but panics on error
func MustQuick(text string, environ []string) *Store {
	store, err := Quick(text, environ)
	if err != nil {
		panic(fmt.Sprintf("dotenv initialization failed: %v", err))
	}
	return store
}

// Validate checks that all required keys resolve to a non-empty value.
// A key supplied only by SourceDefault counts as set.
func (s *Store) Validate(required ...string) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var missing []string
	for _, key := range required {
		item, exists := s.items[key]
		if !exists || item.source == "" || item.current == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Debug returns a formatted string showing all values and their sources
func (s *Store) Debug() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var b strings.Builder
	b.WriteString("Store Debug Info:\n")
	b.WriteString(fmt.Sprintf("Precedence: %v\n", s.options.Sources))
	b.WriteString("Current values:\n")

	for _, key := range slices.Sorted(maps.Keys(s.items)) {
		item := s.items[key]
		b.WriteString(fmt.Sprintf("  %s:\n", key))
		b.WriteString(fmt.Sprintf("    Current: %q (%s)\n", item.current, item.source))

		for _, source := range s.options.Sources {
			if value, ok := item.values[source]; ok {
				b.WriteString(fmt.Sprintf("    %s: %q\n", source, value))
			}
		}
	}

	return b.String()
}

// Clone creates a deep copy of the store
func (s *Store) Clone() *Store {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	clone := &Store{
		items:     make(map[string]storeItem, len(s.items)),
		fileOrder: slices.Clone(s.fileOrder),
		options:   StoreOptions{Sources: slices.Clone(s.options.Sources)},
	}

	for key, item := range s.items {
		clone.items[key] = storeItem{
			values:  maps.Clone(item.values),
			current: item.current,
			source:  item.source,
		}
	}

	return clone
}
