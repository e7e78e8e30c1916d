package timeutil_test

import (
	"testing"
	"time"

	"github.com/shivanished/boon-pipeline/pkg/timeutil"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
		ok   bool
	}{
		{
			"short year slash format",
			"01/28/25 11:00",
			time.Date(2025, 1, 28, 11, 0, 0, 0, time.UTC),
			true,
		},
		{
			"full year slash format",
			"01/28/2025 11:00",
			time.Date(2025, 1, 28, 11, 0, 0, 0, time.UTC),
			true,
		},
		{
			"iso with fractional seconds",
			"2025-01-28T11:00:00.000Z",
			time.Date(2025, 1, 28, 11, 0, 0, 0, time.UTC),
			true,
		},
		{
			"standard format",
			"2025-01-28 11:00:00",
			time.Date(2025, 1, 28, 11, 0, 0, 0, time.UTC),
			true,
		},
		{
			"date only via loose sweep",
			"1/5/25",
			time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
			true,
		},
		{
			"embedded date and time via loose sweep",
			"appt 01-28-25 at 7:30 sharp",
			time.Date(2025, 1, 28, 7, 30, 0, 0, time.UTC),
			true,
		},
		{
			"two digit year above fifty is 1900s",
			"06/15/99",
			time.Date(1999, 6, 15, 0, 0, 0, 0, time.UTC),
			true,
		},
		{"empty", "", time.Time{}, false},
		{"whitespace", "   ", time.Time{}, false},
		{"no date at all", "call before arrival", time.Time{}, false},
		{"impossible month rejected", "13/45/25", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := timeutil.Parse(tt.text)
			if ok != tt.ok {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if !ok {
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseCompactWithOffset(t *testing.T) {
	got, ok := timeutil.Parse("20221108000000-0700")
	if !ok {
		t.Fatal("Parse returned not ok")
	}
	if got.Year() != 2022 || got.Month() != time.November || got.Day() != 8 {
		t.Errorf("Parse = %v, want 2022-11-08", got)
	}
}

func TestFormatTMS(t *testing.T) {
	ts := time.Date(2025, 1, 28, 11, 0, 0, 0, time.UTC)
	want := "2025-01-28T11:00:00.000Z"
	if got := timeutil.FormatTMS(ts); got != want {
		t.Errorf("FormatTMS = %q, want %q", got, want)
	}
}

func TestDateRoundTrip(t *testing.T) {
	parsed, ok := timeutil.Parse("01/28/25 11:00")
	if !ok {
		t.Fatal("Parse returned not ok")
	}
	want := "2025-01-28T11:00:00.000Z"
	if got := timeutil.FormatTMS(parsed); got != want {
		t.Errorf("round trip = %q, want %q", got, want)
	}
}

func TestValidWindow(t *testing.T) {
	base := time.Date(2025, 1, 28, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"normal window", base, base.Add(4 * time.Hour), true},
		{"end equals start", base, base, false},
		{"end before start", base.Add(time.Hour), base, false},
		{"exactly 24 hours", base, base.Add(24 * time.Hour), true},
		{"over 24 hours", base, base.Add(25 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timeutil.ValidWindow(tt.start, tt.end); got != tt.want {
				t.Errorf("ValidWindow = %v, want %v", got, tt.want)
			}
		})
	}
}
