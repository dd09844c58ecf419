package geo

import (
	"math"
	"testing"
)

func TestDistance_OneDegreeAtEquator(t *testing.T) {
	// One degree of longitude at the equator is ~111.32 km.
	got := Distance(0, 0, 0, 1)

	want := 111320.0
	if math.Abs(got-want)/want > 0.01 {
		t.Errorf("Distance(0,0,0,1) = %f, want %f ±1%%", got, want)
	}
}

func TestDistance_ZeroForSamePoint(t *testing.T) {
	if d := Distance(52.52, 13.405, 52.52, 13.405); d != 0 {
		t.Errorf("distance between identical points = %f, want 0", d)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	ab := Distance(40.7128, -74.0060, 34.0522, -118.2437)
	ba := Distance(34.0522, -118.2437, 40.7128, -74.0060)
	if math.Abs(ab-ba) > 1e-6 {
		t.Errorf("distance not symmetric: %f vs %f", ab, ba)
	}
}

func TestDistance_KnownCityPair(t *testing.T) {
	// New York -> Los Angeles, ~3936 km great-circle.
	got := Distance(40.7128, -74.0060, 34.0522, -118.2437)

	want := 3936000.0
	if math.Abs(got-want)/want > 0.01 {
		t.Errorf("NYC-LA distance = %f, want %f ±1%%", got, want)
	}
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name string
		from Point
		to   Point
		want float64
	}{
		{"due north", Point{0, 0}, Point{1, 0}, 0},
		{"due east", Point{0, 0}, Point{0, 1}, 90},
		{"due south", Point{1, 0}, Point{0, 0}, 180},
		{"due west", Point{0, 1}, Point{0, 0}, 270},
	}

	for _, tt := range tests {
		got := Bearing(tt.from, tt.to)
		if math.Abs(got-tt.want) > 0.5 {
			t.Errorf("%s: Bearing = %f, want %f", tt.name, got, tt.want)
		}
	}
}

func TestPoint_IsValid(t *testing.T) {
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{0, 0}, true},
		{Point{-90, 180}, true},
		{Point{90, -180}, true},
		{Point{91, 0}, false},
		{Point{-91, 0}, false},
		{Point{0, 181}, false},
		{Point{0, -181}, false},
	}

	for _, tt := range tests {
		if got := tt.p.IsValid(); got != tt.want {
			t.Errorf("IsValid(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}
