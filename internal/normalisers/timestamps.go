package normalisers

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Unit is the scale of a numeric epoch timestamp.
type Unit int

const (
	// UnitSeconds is seconds since the Unix epoch.
	UnitSeconds Unit = iota
	// UnitMillis is milliseconds since the Unix epoch.
	UnitMillis
)

// ParseTime converts a provider timestamp to UTC. RFC3339 strings are
// parsed as-is; numbers and numeric strings are read in unit. Missing or
// unparsable values return nil.
func ParseTime(v any, unit Unit) *time.Time {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			ts = ts.UTC()
			return &ts
		}
		return parseNumber(s, unit)
	case json.Number:
		return parseNumber(t.String(), unit)
	case int64:
		return fromInt(t, unit)
	case int:
		return fromInt(int64(t), unit)
	case float64:
		return fromFloat(t, unit)
	default:
		return nil
	}
}

func parseNumber(s string, unit Unit) *time.Time {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return fromInt(n, unit)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return fromFloat(f, unit)
}

func fromInt(n int64, unit Unit) *time.Time {
	var ts time.Time
	if unit == UnitMillis {
		ts = time.UnixMilli(n).UTC()
	} else {
		ts = time.Unix(n, 0).UTC()
	}
	return &ts
}

func fromFloat(f float64, unit Unit) *time.Time {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	if unit == UnitMillis {
		f /= 1000
	}
	sec, frac := math.Modf(f)
	ts := time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC()
	return &ts
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(v any) string {
	switch t := v.(type) {
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}
