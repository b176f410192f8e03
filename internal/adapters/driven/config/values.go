// Package config holds the value coercions shared by the config store
// adapters. TOML decodes integers as int64, JSON as float64 and env
// values arrive as strings; every store answers typed reads the same way.
package config

import (
	"strconv"
	"strings"
)

// String returns v as a string, or "".
func String(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int, int64, float64, bool:
		return toText(t)
	default:
		return ""
	}
}

// Int returns v as an int, or 0.
func Int(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Float returns v as a float64, or 0.
func Float(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Bool returns v as a bool, or false.
func Bool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	default:
		return false
	}
}

// StringSlice returns v as a string slice, or nil. Strings are split on
// commas.
func StringSlice(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		result := make([]string, 0, len(t))
		for _, item := range t {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	case string:
		if t == "" {
			return nil
		}
		parts := strings.Split(t, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				result = append(result, p)
			}
		}
		return result
	default:
		return nil
	}
}

func toText(v any) string {
	switch t := v.(type) {
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
