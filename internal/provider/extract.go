package provider

import "strconv"

// Best-effort accessors for the provider's loosely-typed JSON payloads.
// Missing or renamed fields degrade to zero values rather than failing;
// field presence varies between leagues and between live and final payloads.

// ExtractString returns m[key] if it is a string, else "".
func ExtractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// ExtractInt returns m[key] coerced to int, else 0.
func ExtractInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		return ParseInt(v)
	}
	return 0
}

// ExtractFloat returns m[key] coerced to float64, else 0.
func ExtractFloat(m map[string]interface{}, key string) float64 {
	switch val := m[key].(type) {
	case float64:
		return val
	case string:
		f, _ := strconv.ParseFloat(val, 64)
		return f
	case int:
		return float64(val)
	default:
		return 0
	}
}

// ExtractBool returns m[key] if it is a bool, else false.
func ExtractBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// ExtractMap returns m[key] if it is an object, else an empty map.
func ExtractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]interface{}); ok {
			return mapVal
		}
	}
	return map[string]interface{}{}
}

// ExtractArray returns m[key] if it is an array, else an empty slice.
func ExtractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]interface{}); ok {
			return arrVal
		}
	}
	return []interface{}{}
}

// ParseInt coerces a JSON value (number or numeric string) to int.
func ParseInt(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		i, _ := strconv.Atoi(val)
		return i
	case int:
		return val
	default:
		return 0
	}
}
