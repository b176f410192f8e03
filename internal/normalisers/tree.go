package normalisers

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxSearchDepth bounds recursion into nested provider records.
const MaxSearchDepth = 32

// placeholderIDLen is how much of an identifier a placeholder name keeps.
const placeholderIDLen = 6

// FindText searches tree depth-first for the first field named key whose
// value resolves to non-empty text. At each object the direct field is
// checked before any child is entered; children are visited in sorted key
// order and array elements in index order. Nodes deeper than maxDepth are
// not visited.
func FindText(tree any, key string, maxDepth int) (string, bool) {
	return findText(tree, key, 0, maxDepth)
}

func findText(node any, key string, depth, maxDepth int) (string, bool) {
	if depth > maxDepth {
		return "", false
	}
	switch n := node.(type) {
	case map[string]any:
		if v, ok := n[key]; ok {
			if s, ok := Text(v); ok {
				return s, true
			}
		}
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s, ok := findText(n[k], key, depth+1, maxDepth); ok {
				return s, true
			}
		}
	case []any:
		for _, child := range n {
			if s, ok := findText(child, key, depth+1, maxDepth); ok {
				return s, true
			}
		}
	}
	return "", false
}

// FirstText tries each key in turn over the whole tree.
func FirstText(tree any, keys ...string) (string, bool) {
	for _, key := range keys {
		if s, ok := FindText(tree, key, MaxSearchDepth); ok {
			return s, true
		}
	}
	return "", false
}

// Text resolves a field value to display text. Plain strings, rich-text
// arrays of {"plain_text": ...} segments and single rich-text objects are
// understood. Blank results are reported as not found.
func Text(v any) (string, bool) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case []any:
		var sb strings.Builder
		for _, seg := range t {
			if part, ok := segmentText(seg); ok {
				sb.WriteString(part)
			}
		}
		s = sb.String()
	case map[string]any:
		s, _ = segmentText(t)
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func segmentText(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		if s, ok := v.(string); ok {
			return s, true
		}
		return "", false
	}
	if s, ok := m["plain_text"].(string); ok {
		return s, true
	}
	if text, ok := m["text"].(map[string]any); ok {
		if s, ok := text["content"].(string); ok {
			return s, true
		}
	}
	return "", false
}

// Placeholder names an untitled record: the type with its first letter
// upper-cased and the rest lower-cased, a space, then the first six
// characters of the id ("Page abcdef").
func Placeholder(itemType, id string) string {
	if itemType == "" {
		itemType = "item"
	}
	first, size := utf8.DecodeRuneInString(itemType)
	name := string(unicode.ToUpper(first)) + strings.ToLower(itemType[size:])

	runes := []rune(id)
	if len(runes) > placeholderIDLen {
		runes = runes[:placeholderIDLen]
	}
	return name + " " + string(runes)
}

// String returns m[key] as a trimmed string, rendering numbers without
// exponent. Missing or non-scalar values return "".
func String(m map[string]any, key string) string {
	switch t := m[key].(type) {
	case string:
		return strings.TrimSpace(t)
	case interface{ String() string }:
		return t.String()
	case float64:
		return formatFloat(t)
	case int64, int:
		return formatInt(t)
	default:
		return ""
	}
}

// Object returns m[key] as an object, or nil.
func Object(m map[string]any, key string) map[string]any {
	o, _ := m[key].(map[string]any)
	return o
}
