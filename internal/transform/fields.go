package transform

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record is one raw entity as decoded from an upstream response.
type Record = map[string]any

// TimeLayout is the layout used when a timestamp has to be synthesized.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// String returns the first non-blank value found under keys, formatted as a
// string. Numbers are rendered without exponent so numeric ids survive.
func String(r Record, keys ...string) string {
	for _, key := range keys {
		val, ok := r[key]
		if !ok || val == nil {
			continue
		}
		if s := scalarString(val); strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func scalarString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Int returns the first value under keys that reads as an integer.
func Int(r Record, keys ...string) (int64, bool) {
	for _, key := range keys {
		val, ok := r[key]
		if !ok || val == nil {
			continue
		}
		switch v := val.(type) {
		case json.Number:
			if n, err := v.Int64(); err == nil {
				return n, true
			}
			if f, err := v.Float64(); err == nil {
				return int64(f), true
			}
		case float64:
			return int64(v), true
		case int:
			return int64(v), true
		case int64:
			return v, true
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// Bool reads a flag that may arrive as a bool, a "true"/"false" string or a
// 0/1 number. def is returned when no key holds a readable value.
func Bool(r Record, def bool, keys ...string) bool {
	for _, key := range keys {
		val, ok := r[key]
		if !ok || val == nil {
			continue
		}
		switch v := val.(type) {
		case bool:
			return v
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				return b
			}
		case json.Number:
			if n, err := v.Int64(); err == nil {
				return n != 0
			}
		case float64:
			return v != 0
		case int:
			return v != 0
		}
	}
	return def
}

// List returns the records held under key, skipping elements that are not
// objects.
func List(r Record, key string) ([]Record, bool) {
	raw, ok := r[key].([]any)
	if !ok {
		return nil, false
	}
	return Records(raw), true
}

// Records keeps the object elements of a raw list in order.
func Records(raw []any) []Record {
	out := make([]Record, 0, len(raw))
	for _, item := range raw {
		if rec, ok := item.(map[string]any); ok {
			out = append(out, rec)
		}
	}
	return out
}

// ParseTime accepts the ISO-8601 variants seen from the CRM as well as
// epoch milliseconds.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}
	return time.Time{}, false
}

// FormatTime renders t the way the CRM does: UTC with millisecond precision.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// timePair resolves an ISO string and its epoch-ms companion from whichever
// of the two is present. ok is false when neither is.
func timePair(r Record, isoKeys []string, msKeys []string) (iso string, ms int64, ok bool) {
	iso = String(r, isoKeys...)
	ms, hasMS := Int(r, msKeys...)

	switch {
	case iso != "" && hasMS:
		return iso, ms, true
	case iso != "":
		if t, parsed := ParseTime(iso); parsed {
			return iso, t.UnixMilli(), true
		}
		return iso, 0, true
	case hasMS:
		return FormatTime(time.UnixMilli(ms)), ms, true
	}
	return "", 0, false
}
