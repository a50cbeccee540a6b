package cli

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseScalar interprets a command-line value as a JSON scalar. JSON
// literals take priority: numbers, quoted strings, true, false, null. A
// value that does not parse as JSON is taken as a bare string, so quoting
// is only needed to force digits into a string. Booleans map to 0/1,
// matching how the store reads them back. Objects and arrays are rejected.
func parseScalar(raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		// Not a JSON literal; a bare string.
		return raw, nil
	}

	switch x := v.(type) {
	case nil:
		return nil, nil
	case bool:
		if x {
			return int64(1), nil
		}
		return int64(0), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		if f, err := x.Float64(); err == nil {
			return f, nil
		}
		return raw, nil
	case string:
		return x, nil
	case map[string]interface{}:
		return nil, fmt.Errorf("value must be a JSON scalar, got an object")
	case []interface{}:
		return nil, fmt.Errorf("value must be a JSON scalar, got an array")
	default:
		return nil, fmt.Errorf("value must be a JSON scalar, got %T", v)
	}
}
