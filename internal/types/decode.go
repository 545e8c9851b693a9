// Package types provides typed records for the data the LLM returns: skills,
// career paths and learning items. Optional fields are pointers or presence
// flags so renderers can tell "absent" from "zero".
package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// asString reads a string field. Numbers are formatted so "salary_range": 120000 still reads.
func asString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// asNumber reads a numeric field, accepting numeric strings like "4" or "4.5".
func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t)
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// asInt reads a whole-number field. Fractions are truncated.
func asInt(v any) (int, bool) {
	f, ok := asNumber(v)
	if !ok || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// asStrings reads a list of strings. A single string becomes a one-item list;
// non-string items are formatted.
func asStrings(v any) ([]string, bool) {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := asString(item); ok {
				out = append(out, s)
				continue
			}
			if item != nil {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out, true
	case []string:
		return t, true
	case string:
		return []string{t}, true
	default:
		return nil, false
	}
}

func stringPtr(v any) *string {
	s, ok := asString(v)
	if !ok {
		return nil
	}
	return &s
}

func numberPtr(v any) *float64 {
	f, ok := asNumber(v)
	if !ok {
		return nil
	}
	return &f
}

func intPtr(v any) *int {
	n, ok := asInt(v)
	if !ok {
		return nil
	}
	return &n
}
