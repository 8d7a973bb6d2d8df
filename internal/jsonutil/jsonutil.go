// Package jsonutil provides shared utilities for JSON parsing patterns:
// error handling, type conversion, and loosely-typed body inspection.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// GetString safely extracts a string value from a map[string]interface{}.
// Returns the value if it's a string, otherwise returns empty string.
func GetString(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

// ToString converts an interface{} value to a string representation.
// Handles string, float64 (formatted as integer for whole numbers), bool,
// and other types.
func ToString(v interface{}) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%.0f", val)
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// ExtractDetail pulls a human-readable detail message out of an error
// response body. Servers return either {"detail": "..."} (occasionally a
// bare number or bool in that slot), a validation shape
// {"detail": [{"msg": "..."}, ...]}, or a bare {"message": "..."}.
// Returns "" when the body carries none of these (or is not JSON at all).
func ExtractDetail(body []byte) string {
	var m map[string]interface{}
	if err := json.Unmarshal(body, &m); err != nil {
		return ""
	}
	switch detail := m["detail"].(type) {
	case nil:
	case []interface{}:
		parts := make([]string, 0, len(detail))
		for _, entry := range detail {
			if em, ok := entry.(map[string]interface{}); ok {
				if msg := ToString(em["msg"]); msg != "" {
					parts = append(parts, msg)
				}
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	default:
		if s := ToString(detail); s != "" {
			return s
		}
	}
	return GetString(m, "message")
}
