// FILE: lixenwraith/dotenv/decode.go
package dotenv

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Scan decodes the resolved store values whose keys begin with prefix into
// target, which must be a non-nil pointer to a struct or map. Keys are matched
// with the prefix removed. Struct fields follow the same naming rules as
// RegisterStruct.
func (s *Store) Scan(prefix string, target any) error {
	return unmarshal(s.Snapshot(), prefix, target)
}

// Decode decodes the folded items of the document into target.
func (d *Document) Decode(target any) error {
	return unmarshal(d.ToMap(), "", target)
}

// unmarshal is the single authoritative function for decoding flat dotenv
// values into target structures. All public decoding methods delegate to this.
func unmarshal(flat map[string]string, prefix string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("unmarshal target must be non-nil pointer, got %T", target)
	}

	section := make(map[string]string)
	for key, value := range flat {
		if rest, ok := strings.CutPrefix(key, prefix); ok && rest != "" {
			section[rest] = value
		}
	}

	var input any = section
	if t := rv.Elem().Type(); t.Kind() == reflect.Struct {
		input = nestSection(t, "", section)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          tagName,
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("decode failed for prefix %q: %w", prefix, err)
	}
	return nil
}

// nestSection shapes flat keys after the struct type so that nested structs
// receive their "NAME_" prefixed keys as a sub-map.
func nestSection(t reflect.Type, keyPrefix string, flat map[string]string) map[string]any {
	out := make(map[string]any)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, skip := fieldKey(field)
		if skip {
			continue
		}

		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && !isLeafStruct(ft) {
			if sub := nestSection(ft, keyPrefix+name+"_", flat); len(sub) > 0 {
				out[mapKey(field, name)] = sub
			}
			continue
		}

		if value, ok := flat[keyPrefix+name]; ok {
			out[mapKey(field, name)] = value
		}
	}
	return out
}

// mapKey is the key mapstructure expects for the field: the tag name when
// tagged, the Go field name otherwise.
func mapKey(field reflect.StructField, name string) string {
	if tag, _, _ := strings.Cut(field.Tag.Get(tagName), ","); tag != "" {
		return name
	}
	return field.Name
}

// decodeHook returns the composite decode hook for all type conversions
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		// Network types
		parseHook(reflect.TypeOf(net.IP{}), 45, func(s string) (any, error) { // max IPv6 length
			ip := net.ParseIP(s)
			if ip == nil {
				return nil, fmt.Errorf("invalid IP address: %s", s)
			}
			return ip, nil
		}),
		parseHook(reflect.TypeOf(net.IPNet{}), 49, func(s string) (any, error) { // max IPv6 CIDR length
			_, ipnet, err := net.ParseCIDR(s)
			if err != nil {
				return nil, fmt.Errorf("invalid CIDR: %w", err)
			}
			return ipnet, nil
		}),
		parseHook(reflect.TypeOf(url.URL{}), 2048, func(s string) (any, error) {
			u, err := url.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("invalid URL: %w", err)
			}
			return u, nil
		}),

		// Bare integers are seconds, as with Store.Duration
		stringToSecondsHookFunc(),

		// Standard hooks
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// parseHook converts strings into target, or a pointer to target, using
// parse. parse may return either form; the result is adapted to the field.
func parseHook(target reflect.Type, maxLen int, parse func(string) (any, error)) mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		if t != target && !(isPtr && t.Elem() == target) {
			return data, nil
		}

		str := data.(string)
		if len(str) > maxLen {
			return nil, fmt.Errorf("%s value too long: %d bytes", target, len(str))
		}
		parsed, err := parse(str)
		if err != nil {
			return nil, err
		}

		v := reflect.ValueOf(parsed)
		switch {
		case isPtr && v.Kind() != reflect.Ptr:
			ptr := reflect.New(target)
			ptr.Elem().Set(v)
			return ptr.Interface(), nil
		case !isPtr && v.Kind() == reflect.Ptr:
			return v.Elem().Interface(), nil
		}
		return parsed, nil
	}
}

// stringToSecondsHookFunc turns a bare integer string into a duration in seconds
func stringToSecondsHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		i, err := strconv.ParseInt(data.(string), 10, 64)
		if err != nil {
			return data, nil
		}
		return time.Duration(i) * time.Second, nil
	}
}
