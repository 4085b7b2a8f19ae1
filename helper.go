// File: lixenwraith/dotenv/helper.go
package dotenv

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// flattenMap converts a nested map[string]any to a flat map[string]any with dot-notation paths.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		newPath := key
		if prefix != "" {
			newPath = prefix + "." + key
		}

		// Check if the value is a map that can be further flattened
		if nestedMap, isMap := value.(map[string]any); isMap {
			for subPath, subValue := range flattenMap(nestedMap, newPath) {
				flat[subPath] = subValue
			}
		} else {
			flat[newPath] = value
		}
	}

	return flat
}

// envKey converts a dot-notation path to a dotenv key:
// "server.port" with prefix "APP_" becomes "APP_SERVER_PORT".
func envKey(prefix, path string) string {
	key := strings.NewReplacer(".", "_", "-", "_").Replace(path)
	return prefix + strings.ToUpper(key)
}

// scalarString renders a decoded TOML/YAML/JSON leaf as dotenv text.
// Lists become comma separated values, matching the decoder's slice hook.
func scalarString(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	case time.Time:
		return v.Format(time.RFC3339), nil
	case []any:
		parts := make([]string, 0, len(v))
		for _, elem := range v {
			part, err := scalarString(elem)
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return strings.Join(parts, ","), nil
	case map[string]any:
		return "", fmt.Errorf("nested table inside a list cannot be flattened")
	case fmt.Stringer:
		return v.String(), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}
