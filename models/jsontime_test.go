package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseFlexibleDateStrings(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
		want   time.Time
	}{
		{"rfc3339", "2025-04-01T10:30:00Z", true, time.Date(2025, 4, 1, 10, 30, 0, 0, time.UTC)},
		{"rfc3339 millis", "2025-04-01T10:30:00.000Z", true, time.Date(2025, 4, 1, 10, 30, 0, 0, time.UTC)},
		{"date only", "2025-04-01", true, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
		{"dd/mm/yyyy", "01/04/2025", true, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
		{"locale with narrow no-break space", "Apr 1, 2025, 10:30:00 AM", true, time.Date(2025, 4, 1, 10, 30, 0, 0, time.UTC)},
		{"empty", "", false, time.Time{}},
		{"null literal", "null", false, time.Time{}},
		{"undefined literal", "undefined", false, time.Time{}},
		{"garbage", "not-a-date", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFlexibleDate(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseFlexibleDate(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseFlexibleDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFlexibleDateNonStrings(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	if got, ok := ParseFlexibleDate(now); !ok || !got.Equal(now) {
		t.Errorf("time.Time input: got %v ok=%v", got, ok)
	}
	if _, ok := ParseFlexibleDate(time.Time{}); ok {
		t.Error("zero time.Time should report ok=false")
	}
	if got, ok := ParseFlexibleDate(JSONTime(now)); !ok || !got.Equal(now) {
		t.Errorf("JSONTime input: got %v ok=%v", got, ok)
	}
	if _, ok := ParseFlexibleDate(nil); ok {
		t.Error("nil should report ok=false")
	}

	// epoch milliseconds from older exports
	millis := float64(now.UnixMilli())
	if got, ok := ParseFlexibleDate(millis); !ok || !got.Equal(now) {
		t.Errorf("epoch millis input: got %v ok=%v", got, ok)
	}
	if _, ok := ParseFlexibleDate(float64(0)); ok {
		t.Error("zero millis should report ok=false")
	}
}

func TestFormatISO(t *testing.T) {
	at := time.Date(2025, 4, 1, 10, 30, 0, 0, time.UTC)
	if got := FormatISO(at, true); got != "2025-04-01T10:30:00Z" {
		t.Errorf("FormatISO = %q", got)
	}
	if got := FormatISO(time.Time{}, false); got != "" {
		t.Errorf("FormatISO absent = %q, want empty", got)
	}
}

func TestJSONTimeRoundTrip(t *testing.T) {
	var jt JSONTime
	if err := json.Unmarshal([]byte(`"2025-05-16T15:32:25.181226"`), &jt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	out, err := json.Marshal(jt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"2025-05-16T15:32:25Z"` {
		t.Errorf("marshal = %s", out)
	}
}

func TestJSONTimeUnmarshalRejectsGarbage(t *testing.T) {
	var jt JSONTime
	if err := json.Unmarshal([]byte(`"tomorrow"`), &jt); err == nil {
		t.Error("expected error for unparsable timestamp")
	}
}
