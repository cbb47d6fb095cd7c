package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// JSONTime wraps time.Time so we can control both
// JSON un/marshaling and SQL driver encoding.
type JSONTime time.Time

// UnmarshalJSON lets us parse either RFC3339 ("2025-05-16T15:32:25Z")
// or the shorter form ("2025-05-16T15:32:25.000") or microseconds ("2025-05-16T15:32:25.181226").
func (jt *JSONTime) UnmarshalJSON(b []byte) error {
	// strip quotes
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	t, ok := parseDateString(s)
	if !ok {
		return fmt.Errorf("JSONTime.UnmarshalJSON: cannot parse %q", s)
	}
	*jt = JSONTime(t)
	return nil
}

// MarshalJSON always emits full RFC3339 ("…Z").
func (jt JSONTime) MarshalJSON() ([]byte, error) {
	t := time.Time(jt)
	return json.Marshal(t.Format(time.RFC3339))
}

// Value implements driver.Valuer so GORM/pgx can
// turn JSONTime into a SQL TIMESTAMPTZ parameter.
func (jt JSONTime) Value() (driver.Value, error) {
	t := time.Time(jt)
	return t, nil
}

// Scan implements sql.Scanner so GORM can read
// TIMESTAMPTZ back into JSONTime when querying.
func (jt *JSONTime) Scan(src interface{}) error {
	if src == nil {
		*jt = JSONTime(time.Time{})
		return nil
	}

	switch v := src.(type) {
	case time.Time:
		*jt = JSONTime(v)
		return nil
	case []byte:
		// Postgres driver sometimes gives []byte
		t, err := time.Parse(time.RFC3339Nano, string(v))
		if err != nil {
			return fmt.Errorf("JSONTime.Scan: parse %q: %w", string(v), err)
		}
		*jt = JSONTime(t)
		return nil
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return fmt.Errorf("JSONTime.Scan: parse %q: %w", v, err)
		}
		*jt = JSONTime(t)
		return nil
	default:
		return fmt.Errorf("JSONTime.Scan: unsupported type %T", src)
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"Jan 2, 2006, 3:04:05 PM",
}

// ParseFlexibleDate converts any date-ish value the survey form or the
// database may hand us into a time.Time. It is total: unparsable input
// reports ok=false and is treated as "no date" by callers, never as an error.
func ParseFlexibleDate(v interface{}) (time.Time, bool) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if d.IsZero() {
			return time.Time{}, false
		}
		return d, true
	case *time.Time:
		if d == nil {
			return time.Time{}, false
		}
		return ParseFlexibleDate(*d)
	case JSONTime:
		t := time.Time(d)
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	case *JSONTime:
		if d == nil {
			return time.Time{}, false
		}
		return ParseFlexibleDate(*d)
	case string:
		return parseDateString(d)
	case float64:
		// epoch milliseconds from older exports
		if d <= 0 {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(d)).UTC(), true
	default:
		return time.Time{}, false
	}
}

func parseDateString(s string) (time.Time, bool) {
	// Locale-formatted timestamps can carry U+202F (narrow no-break space)
	// between the seconds and the AM/PM marker.
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.TrimSpace(s)
	if s == "" || s == "null" || s == "undefined" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatISO renders a parsed date as RFC3339 for persistence, "" when absent.
func FormatISO(t time.Time, ok bool) string {
	if !ok || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
