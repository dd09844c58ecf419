package geo

import (
	"testing"
	"time"
)

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "0 m"},
		{42, "42 m"},
		{500, "500 m"},
		{999, "999 m"},
		{1000, "1.0 km"},
		{1500, "1.5 km"},
		{9940, "9.9 km"},
		{10000, "10 km"},
		{15000, "15 km"},
		{15400, "15 km"},
	}

	for _, tt := range tests {
		if got := FormatDistance(tt.meters); got != tt.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", tt.meters, got, tt.want)
		}
	}
}

func TestFormatETA(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		offset time.Duration
		want   string
	}{
		{"half a minute out", 30 * time.Second, "Less than a minute"},
		{"just under a minute", 59 * time.Second, "Less than a minute"},
		{"ninety seconds rounds up", 90 * time.Second, "2 minutes"},
		{"five minutes", 5 * time.Minute, "5 minutes"},
		{"just under an hour", 59 * time.Minute, "59 minutes"},
		{"seventy-five minutes", 4500 * time.Second, "1h 15m"},
		{"exactly two hours", 2 * time.Hour, "2h 0m"},
		{"already passed clamps", -10 * time.Minute, "Less than a minute"},
	}

	for _, tt := range tests {
		if got := FormatETA(now.Add(tt.offset), now); got != tt.want {
			t.Errorf("%s: FormatETA = %q, want %q", tt.name, got, tt.want)
		}
	}
}
