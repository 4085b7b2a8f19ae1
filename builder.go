// File: lixenwraith/dotenv/builder.go
package dotenv

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// ValidatorFunc defines the signature for a function that can validate a Store.
// It receives the fully loaded *Store and should return an error if validation fails.
type ValidatorFunc func(s *Store) error

// Builder provides a fluent interface for assembling a Store from defaults,
// dotenv text and an environment list.
type Builder struct {
	store      *Store
	opts       StoreOptions
	defaults   any
	prefix     string
	texts      []string
	readers    []io.Reader
	docs       []*Document
	environ    []string
	expand     *ExpandOptions
	logger     logrus.FieldLogger
	err        error
	validators []ValidatorFunc
}

// NewBuilder creates a new store builder
func NewBuilder() *Builder {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &Builder{
		opts:       DefaultStoreOptions(),
		logger:     logger,
		validators: make([]ValidatorFunc, 0),
	}
}

// WithDefaults sets the struct containing default values
func (b *Builder) WithDefaults(defaults any) *Builder {
	b.defaults = defaults
	return b
}

// WithPrefix sets the key prefix for struct registration and BuildAndScan
func (b *Builder) WithPrefix(prefix string) *Builder {
	b.prefix = prefix
	return b
}

// WithText adds dotenv text to merge into SourceFile. Multiple texts are
// merged in the order added.
func (b *Builder) WithText(text string) *Builder {
	b.texts = append(b.texts, text)
	return b
}

// WithReader adds a reader of dotenv text, consumed during Build.
func (b *Builder) WithReader(r io.Reader) *Builder {
	if r == nil {
		b.err = fmt.Errorf("WithReader requires a non-nil reader")
		return b
	}
	b.readers = append(b.readers, r)
	return b
}

// WithDocument adds an already parsed document
func (b *Builder) WithDocument(doc *Document) *Builder {
	if doc != nil {
		b.docs = append(b.docs, doc)
	}
	return b
}

// WithEnviron sets the "KEY=VALUE" list loaded into SourceEnv, typically os.Environ()
func (b *Builder) WithEnviron(environ []string) *Builder {
	b.environ = environ
	return b
}

// WithSources sets the precedence order for store sources
func (b *Builder) WithSources(sources ...Source) *Builder {
	for _, s := range sources {
		if !isKnownSource(s) {
			b.err = fmt.Errorf("%w: %q", ErrUnknownSource, s)
			return b
		}
	}
	b.opts.Sources = sources
	return b
}

// WithExpansion enables placeholder expansion of file values after loading
func (b *Builder) WithExpansion(opts ExpandOptions) *Builder {
	b.expand = &opts
	return b
}

// WithLogger sets the logger used to report build progress. The default
// logger discards output.
func (b *Builder) WithLogger(logger logrus.FieldLogger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the Store with all specified options
func (b *Builder) Build() (*Store, error) {
	if b.err != nil {
		return nil, b.err
	}

	b.store = NewStoreWithOptions(b.opts)
	log := b.logger.WithField("component", "dotenv")

	// Register defaults if provided
	if b.defaults != nil {
		if err := b.store.RegisterStruct(b.prefix, b.defaults); err != nil {
			return nil, fmt.Errorf("failed to register defaults: %w", err)
		}
		log.WithField("keys", len(b.store.SourceValues(SourceDefault))).Debug("registered defaults")
	}

	// Parse all text inputs before merging so a bad input leaves nothing half-loaded
	docs := make([]*Document, 0, len(b.texts)+len(b.readers)+len(b.docs))
	for i, text := range b.texts {
		doc, err := Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse text %d: %w", i, err)
		}
		docs = append(docs, doc)
	}
	for i, r := range b.readers {
		doc, err := ParseReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to parse reader %d: %w", i, err)
		}
		docs = append(docs, doc)
	}
	docs = append(docs, b.docs...)

	for _, doc := range docs {
		if err := b.store.MergeDocument(doc, SourceFile); err != nil {
			return nil, fmt.Errorf("failed to merge document: %w", err)
		}
	}
	log.WithFields(logrus.Fields{
		"documents": len(docs),
		"keys":      len(b.store.SourceValues(SourceFile)),
	}).Debug("merged documents")

	if b.environ != nil {
		if err := b.store.LoadEnviron(b.environ); err != nil {
			return nil, fmt.Errorf("failed to load environment: %w", err)
		}
		log.WithField("keys", len(b.store.SourceValues(SourceEnv))).Debug("loaded environment")
	}

	if b.expand != nil {
		if err := b.store.ExpandValues(*b.expand); err != nil {
			return nil, err
		}
		log.Debug("expanded file values")
	}

	// Run validators
	for _, validator := range b.validators {
		if err := validator(b.store); err != nil {
			return nil, fmt.Errorf("store validation failed: %w", err)
		}
	}

	log.WithField("keys", b.store.Len()).Info("store built")
	return b.store, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Store {
	store, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("dotenv build failed: %v", err))
	}
	return store
}

// BuildAndScan builds and unmarshals the final store into the provided target struct pointer
func (b *Builder) BuildAndScan(target any) error {
	store, err := b.Build()
	if err != nil {
		return err
	}

	// The prefix used during registration is the base prefix for scanning.
	if err := store.Scan(b.prefix, target); err != nil {
		return fmt.Errorf("failed to scan final store into target: %w", err)
	}
	return nil
}
