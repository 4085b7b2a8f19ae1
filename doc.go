// File: lixenwraith/dotenv/doc.go

// Package dotenv parses and writes dotenv configuration files without losing
// comments, blank lines or key order, and expands ${NAME} and %NAME%
// placeholders against a key/value store.
//
// Features:
//   - Lossless Document model: comments, blank lines and duplicate keys survive a round trip
//   - Single, double and back-tick quoted values, including multi-line values
//   - Canonical serialization with LF or CRLF newlines
//   - Bash-style expansion: ${NAME}, ${NAME:-default}, ${NAME:=default}, ${NAME:?message}, $NAME
//   - Windows-style expansion: %NAME%
//   - Positional arguments ($0, $1, ...) when enabled
//   - Thread-safe layered Store with configurable precedence
//   - Struct registration and decoding through `env` tags
//   - Conversion to and from TOML, YAML and JSON
//
// The package performs no file system access. Callers read files themselves
// and pass the text, bytes or an io.Reader.
//
// Quick Start:
//
//	doc, err := dotenv.Parse("# database\nDB_HOST=localhost\nDB_URL=\"postgres://${DB_HOST}/app\"\n")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := dotenv.NewStore()
//	_ = store.MergeDocument(doc, dotenv.SourceFile)
//	_ = store.LoadEnviron(os.Environ())
//
//	raw, _ := doc.Get("DB_URL")
//	url, _ := dotenv.Expand(raw, store, nil)
//
// Builder:
//
//	type Config struct {
//	    Host    string        `env:"HOST"`
//	    Port    int           `env:"PORT"`
//	    Timeout time.Duration `env:"TIMEOUT"`
//	}
//
//	var cfg Config
//	err := dotenv.NewBuilder().
//	    WithDefaults(Config{Host: "localhost", Port: 8080}).
//	    WithPrefix("APP_").
//	    WithText(text).
//	    WithEnviron(os.Environ()).
//	    WithExpansion(dotenv.DefaultExpandOptions()).
//	    BuildAndScan(&cfg)
//
// Default Precedence (highest to lowest):
//  1. Overrides (Store.Set and ${NAME:=default} assignments)
//  2. Environment list (WithEnviron, LoadEnviron)
//  3. Dotenv documents
//  4. Default values
//
// Thread Safety:
// Store operations are thread-safe. Documents are not synchronized; build one
// in a single goroutine and treat it as read-only afterwards.
package dotenv
