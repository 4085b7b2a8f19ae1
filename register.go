package dotenv

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// tagName is the struct tag consulted by RegisterStruct and the decoders.
const tagName = "env"

// RegisterStruct registers default values taken from a struct into the
// SourceDefault layer. Field names come from the `env:"NAME"` tag, or the
// upper snake case form of the Go field name when untagged; `env:"-"` skips
// a field. Nested structs contribute their fields under "NAME_". The prefix
// is prepended to every key.
func (s *Store) RegisterStruct(prefix string, structWithDefaults any) error {
	v := reflect.ValueOf(structWithDefaults)

	// Handle pointer or direct struct value
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return fmt.Errorf("RegisterStruct requires a non-nil struct pointer or value")
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return fmt.Errorf("RegisterStruct requires a struct or struct pointer, got %T", structWithDefaults)
	}

	var errors []string
	s.registerFields(v, prefix, "", &errors)

	if len(errors) > 0 {
		return fmt.Errorf("failed to register %d field(s): %s", len(errors), strings.Join(errors, "; "))
	}
	return nil
}

// registerFields walks the struct recursively and writes each leaf field.
func (s *Store) registerFields(v reflect.Value, keyPrefix, fieldPath string, errors *[]string) {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if !field.IsExported() {
			continue
		}

		name, skip := fieldKey(field)
		if skip {
			continue
		}
		key := keyPrefix + name

		if nested, ok := nestedStruct(fieldValue); ok {
			if nested.IsValid() {
				s.registerFields(nested, key+"_", fieldPath+field.Name+".", errors)
			}
			continue
		}

		value, ok := formatValue(fieldValue)
		if !ok {
			continue
		}
		if err := s.SetSource(SourceDefault, key, value); err != nil {
			*errors = append(*errors, fmt.Sprintf("field %s%s (key %s): %v", fieldPath, field.Name, key, err))
		}
	}
}

// fieldKey returns the dotenv key for a struct field and whether it is skipped.
func fieldKey(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get(tagName)
	if tag == "-" {
		return "", true
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, false
	}
	return upperSnake(field.Name), false
}

// nestedStruct reports whether v is a struct (or pointer to one) that should
// be walked rather than stored. A nil pointer returns an invalid value.
func nestedStruct(v reflect.Value) (reflect.Value, bool) {
	t := v.Type()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || isLeafStruct(t) {
		return reflect.Value{}, false
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return reflect.Value{}, true
		}
		return v.Elem(), true
	}
	return v, true
}

// isLeafStruct lists struct types that decode from a single string.
func isLeafStruct(t reflect.Type) bool {
	switch t {
	case reflect.TypeOf(time.Time{}):
		return true
	}
	return t.PkgPath() == "net/url" || t.PkgPath() == "net"
}

// formatValue renders a default value as dotenv text.
func formatValue(v reflect.Value) (string, bool) {
	if v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}
	if (v.Kind() == reflect.Slice || v.Kind() == reflect.Map) && v.IsNil() {
		return "", false
	}

	if t, ok := v.Interface().(time.Time); ok {
		return t.Format(time.RFC3339), true
	}
	// Addressable copy so pointer-receiver String methods are found too
	pv := reflect.New(v.Type())
	pv.Elem().Set(v)
	if s, ok := pv.Interface().(fmt.Stringer); ok {
		return s.String(), true
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), true
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			part, ok := formatValue(v.Index(i))
			if !ok {
				return "", false
			}
			parts = append(parts, part)
		}
		return strings.Join(parts, ","), true
	}
	return "", false
}

// upperSnake converts a Go identifier to UPPER_SNAKE_CASE ("MaxConns" -> "MAX_CONNS",
// "HTTPPort" -> "HTTP_PORT").
func upperSnake(name string) string {
	runes := []rune(name)
	var sb strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteByte('_')
			}
		}
		sb.WriteRune(unicode.ToUpper(r))
	}
	return sb.String()
}
