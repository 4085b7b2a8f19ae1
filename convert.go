// FILE: lixenwraith/dotenv/convert.go
package dotenv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format names an interchange format for Import and Export.
type Format string

const (
	FormatEnv  Format = "env"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatEnv, FormatTOML, FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "dotenv":
		return FormatEnv, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// DetectFormat determines the format from a file name. It returns "" when
// the extension is not recognised.
func DetectFormat(name string) Format {
	base := strings.ToLower(filepath.Base(name))
	if base == ".env" || strings.HasPrefix(base, ".env.") {
		return FormatEnv
	}
	switch filepath.Ext(base) {
	case ".env":
		return FormatEnv
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return ""
	}
}

// Export renders the folded items of doc in the given format. FormatEnv is
// the canonical Stringify output with LF newlines; the other formats write a
// flat table of string values.
func Export(doc *Document, format Format) ([]byte, error) {
	m := doc.ToMap()

	switch format {
	case FormatEnv:
		return []byte(Stringify(doc, NewlineLF)), nil

	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(m); err != nil {
			return nil, fmt.Errorf("failed to marshal document to TOML: %w", err)
		}
		return buf.Bytes(), nil

	case FormatJSON:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal document to JSON: %w", err)
		}
		return append(data, '\n'), nil

	case FormatYAML:
		data, err := yaml.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal document to YAML: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Import reads a TOML, YAML or JSON tree and flattens it into a document of
// items sorted by key. Nested tables join their path with "_" and keys are
// upper-cased: [server] port = 8080 becomes SERVER_PORT='8080'. The prefix is
// prepended to every key. FormatEnv parses data as dotenv text. An empty
// format is detected from the content.
func Import(data []byte, format Format, prefix string) (*Document, error) {
	if format == "" {
		format = detectFormatFromContent(data)
	}
	if format == FormatEnv {
		return Parse(string(data))
	}

	tree, err := decodeTree(data, format)
	if err != nil {
		return nil, err
	}

	flat := flattenMap(tree, "")
	doc := New()
	for _, path := range slices.Sorted(maps.Keys(flat)) {
		key := envKey(prefix, path)
		if !IsValidKey(key) {
			return nil, fmt.Errorf("%w: %q (from %q)", ErrInvalidKey, key, path)
		}
		value, err := scalarString(flat[path])
		if err != nil {
			return nil, fmt.Errorf("failed to convert %q: %w", path, err)
		}
		doc.Item(key, value)
	}
	return doc, nil
}

// decodeTree parses structured data into a nested map
func decodeTree(data []byte, format Format) (map[string]any, error) {
	tree := make(map[string]any)
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&tree); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return tree, nil
}

// detectFormatFromContent attempts to detect format by parsing.
// Anything that is not a JSON, YAML or TOML table is treated as dotenv text.
func detectFormatFromContent(data []byte) Format {
	// Try JSON first (strict format)
	var jsonTest map[string]any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return FormatJSON
	}

	// Try YAML (superset of JSON, so check after JSON)
	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil && len(yamlTest) > 0 {
		return FormatYAML
	}

	// Try TOML last
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil && len(tomlTest) > 0 {
		return FormatTOML
	}

	return FormatEnv
}
