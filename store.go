// FILE: lixenwraith/dotenv/store.go
package dotenv

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// storeItem holds every layer's value for a key plus the resolved winner
type storeItem struct {
	values  map[Source]string
	current string
	source  Source
}

// Store is a thread-safe layered key/value store. Each key may hold one value
// per Source; Get returns the value of the highest-precedence source. Store
// implements Vars, so it can be passed directly to Expand.
type Store struct {
	items     map[string]storeItem
	fileOrder []string // file-layer keys in merge order
	options   StoreOptions
	mutex     sync.RWMutex
}

// NewStore creates a store with DefaultStoreOptions.
func NewStore() *Store {
	return NewStoreWithOptions(DefaultStoreOptions())
}

// NewStoreWithOptions creates a store with the given precedence.
func NewStoreWithOptions(opts StoreOptions) *Store {
	if len(opts.Sources) == 0 {
		opts = DefaultStoreOptions()
	}
	return &Store{
		items:   make(map[string]storeItem),
		options: opts,
	}
}

// Get returns the resolved value for key.
func (s *Store) Get(key string) (string, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	item, ok := s.items[key]
	if !ok || item.source == "" {
		return "", false
	}
	return item.current, true
}

// Set writes key into the SourceOverride layer. Invalid keys are ignored;
// use SetSource to get the validation error.
func (s *Store) Set(key, value string) {
	_ = s.SetSource(SourceOverride, key, value)
}

// SetSource writes key into the given layer and recomputes its value.
func (s *Store) SetSource(source Source, key, value string) error {
	if !isKnownSource(source) {
		return fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
	if !IsValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.setLocked(source, key, value)
	return nil
}

func (s *Store) setLocked(source Source, key, value string) {
	item := s.items[key]
	if item.values == nil {
		item.values = make(map[Source]string)
	}
	if _, exists := item.values[SourceFile]; source == SourceFile && !exists {
		s.fileOrder = append(s.fileOrder, key)
	}
	item.values[source] = value
	s.items[key] = s.resolve(item)
}

// resolve recomputes the winning value based on source precedence.
func (s *Store) resolve(item storeItem) storeItem {
	item.current, item.source = "", ""
	for _, source := range s.options.Sources {
		if v, ok := item.values[source]; ok {
			item.current, item.source = v, source
			break
		}
	}
	return item
}

// Delete removes key from every layer.
func (s *Store) Delete(key string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.items, key)
	s.fileOrder = slices.DeleteFunc(s.fileOrder, func(k string) bool { return k == key })
}

// DeleteSource removes key from a single layer.
func (s *Store) DeleteSource(source Source, key string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	item, ok := s.items[key]
	if !ok {
		return
	}
	delete(item.values, source)
	if source == SourceFile {
		s.fileOrder = slices.DeleteFunc(s.fileOrder, func(k string) bool { return k == key })
	}
	if len(item.values) == 0 {
		delete(s.items, key)
		return
	}
	s.items[key] = s.resolve(item)
}

// Has reports whether key resolves to a value.
func (s *Store) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Len returns the number of keys that resolve to a value.
func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	n := 0
	for _, item := range s.items {
		if item.source != "" {
			n++
		}
	}
	return n
}

// Keys returns the resolvable keys in sorted order.
func (s *Store) Keys() []string {
	return slices.Sorted(maps.Keys(s.Snapshot()))
}

// Snapshot returns the resolved key/value pairs.
func (s *Store) Snapshot() map[string]string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	snapshot := make(map[string]string, len(s.items))
	for key, item := range s.items {
		if item.source != "" {
			snapshot[key] = item.current
		}
	}
	return snapshot
}

// SourceOf returns the source that supplies the resolved value of key.
func (s *Store) SourceOf(key string) (Source, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	item, ok := s.items[key]
	if !ok || item.source == "" {
		return "", false
	}
	return item.source, true
}

// SourceValues returns the raw values held by a single layer.
func (s *Store) SourceValues(source Source) map[string]string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	values := make(map[string]string)
	for key, item := range s.items {
		if v, ok := item.values[source]; ok {
			values[key] = v
		}
	}
	return values
}

// MergeDocument folds the items of doc into a layer. Later duplicates win.
func (s *Store) MergeDocument(doc *Document, source Source) error {
	if !isKnownSource(source) {
		return fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
	for key := range doc.Items() {
		if !IsValidKey(key) {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key, value := range doc.Items() {
		s.setLocked(source, key, value)
	}
	return nil
}

// LoadEnviron loads "KEY=VALUE" entries, as returned by os.Environ, into
// SourceEnv. Entries without "=" or with names outside the key grammar are
// skipped.
func (s *Store) LoadEnviron(environ []string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || !IsValidKey(key) {
			continue
		}
		s.setLocked(SourceEnv, key, value)
	}
	return nil
}

// Document returns the resolved values as items sorted by key.
func (s *Store) Document() *Document {
	snapshot := s.Snapshot()
	doc := New()
	for _, key := range slices.Sorted(maps.Keys(snapshot)) {
		doc.Item(key, snapshot[key])
	}
	return doc
}

// ExpandValues expands placeholders in every file-layer value, in the order
// the values were merged, resolving references against the store itself.
// The first failure aborts; values expanded before it are kept.
func (s *Store) ExpandValues(opts ExpandOptions) error {
	s.mutex.RLock()
	order := slices.Clone(s.fileOrder)
	s.mutex.RUnlock()

	for _, key := range order {
		s.mutex.RLock()
		raw, ok := s.items[key].values[SourceFile]
		s.mutex.RUnlock()
		if !ok {
			continue
		}

		expanded, err := Expand(raw, s, &opts)
		if err != nil {
			return fmt.Errorf("failed to expand %s: %w", key, err)
		}
		if expanded != raw {
			if err := s.SetSource(SourceFile, key, expanded); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExportEnv returns "KEY=VALUE" entries, sorted by key, for values not
// supplied by SourceDefault. Keys are filtered by prefix. The result can be
// passed to exec.Cmd.Env or back into LoadEnviron.
func (s *Store) ExportEnv(prefix string) []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	exports := make([]string, 0, len(s.items))
	for _, key := range slices.Sorted(maps.Keys(s.items)) {
		item := s.items[key]
		if item.source == "" || item.source == SourceDefault || !strings.HasPrefix(key, prefix) {
			continue
		}
		exports = append(exports, key+"="+item.current)
	}
	return exports
}
