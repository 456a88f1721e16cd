package praytimes

import (
	"testing"

	"github.com/anis00/mawaquit/internal/solar"
)

func TestFormatTime24h(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"morning", 5.25, "05:15"},
		{"rounds up to the next minute", 5.999, "06:00"},
		{"rounds across midnight", 23.9999, "00:00"},
		{"noon", 12, "12:00"},
		{"seconds under half a minute truncate", 10.5 + 20.0/3600, "10:30"},
		{"wraps past twenty four", 25.5, "01:30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTime(solar.NewHours(tt.in), Format24h); got != tt.want {
				t.Errorf("FormatTime(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatTime12h(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"after midnight", 0.2, "12:12am"},
		{"morning", 9.75, "9:45am"},
		{"last morning minute", 11 + 59.0/60, "11:59am"},
		{"noon", 12, "12:00pm"},
		{"afternoon", 13.5, "1:30pm"},
		{"evening", 23.25, "11:15pm"},
		{"rounds across midnight", 23.9999, "12:00am"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTime(solar.NewHours(tt.in), Format12h); got != tt.want {
				t.Errorf("FormatTime(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatTimeFloat(t *testing.T) {
	if got := FormatTime(solar.NewHours(6.5), FormatFloat); got != "6.5" {
		t.Errorf("float format = %q, want 6.5", got)
	}
	// No half-minute rounding in float mode: the raw value passes through.
	if got := FormatTime(solar.NewHours(12), FormatFloat); got != "12" {
		t.Errorf("float format = %q, want 12", got)
	}
}

func TestFormatTimeNoSolution(t *testing.T) {
	for _, f := range []TimeFormat{Format24h, Format12h, FormatFloat} {
		if got := FormatTime(solar.NoSolution, f); got != InvalidTime {
			t.Errorf("format %s rendered %q for an unsolved event", f, got)
		}
	}
}

func TestClockLabel(t *testing.T) {
	tests := []struct {
		minute int
		want   string
	}{
		{0, "00:00"},
		{725, "12:05"},
		{1439, "23:59"},
		{1445, "00:05"},
		{-3, "23:57"},
	}
	for _, tt := range tests {
		if got := ClockLabel(tt.minute); got != tt.want {
			t.Errorf("ClockLabel(%d) = %q, want %q", tt.minute, got, tt.want)
		}
	}
}
