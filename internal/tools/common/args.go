package common

// Argument extraction helpers for tool handlers. Arguments arrive as a
// generic map decoded from JSON, so numbers are float64 and arrays are
// []interface{}.

// StringArg returns a string argument or the fallback when absent.
func StringArg(args map[string]interface{}, key, fallback string) string {
	if value, ok := args[key].(string); ok && value != "" {
		return value
	}
	return fallback
}

// IntArg returns an integer argument or the fallback when absent.
func IntArg(args map[string]interface{}, key string, fallback int) int {
	if value, ok := args[key].(float64); ok {
		return int(value)
	}
	return fallback
}

// BoolArg returns a boolean argument or the fallback when absent.
func BoolArg(args map[string]interface{}, key string, fallback bool) bool {
	if value, ok := args[key].(bool); ok {
		return value
	}
	return fallback
}

// StringSliceArg returns a string-array argument; non-string elements
// are skipped. Returns nil when the argument is absent.
func StringSliceArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ObjectSliceArg returns an array-of-objects argument. Returns nil when
// the argument is absent or not an array.
func ObjectSliceArg(args map[string]interface{}, key string) []map[string]interface{} {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if obj, ok := item.(map[string]interface{}); ok {
			out = append(out, obj)
		}
	}
	return out
}
