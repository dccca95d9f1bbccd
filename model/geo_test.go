package model

import (
	"math"
	"testing"
)

func TestDistanceMeters(t *testing.T) {
	// Esplanade to Park Street, roughly 1.1 km.
	a := Coordinate{Lat: 22.5604, Lon: 88.3510}
	b := Coordinate{Lat: 22.5519, Lon: 88.3520}
	d := DistanceMeters(a, b)
	if d < 900 || d > 1100 {
		t.Errorf("DistanceMeters = %.0f, want roughly 950", d)
	}
	if DistanceMeters(a, a) != 0 {
		t.Error("distance to self should be zero")
	}
}

func TestPresentableDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{50, "nearby"},
		{240, "240 m"},
		{244, "240 m"},
		{950, "950 m"},
		{1500, "1.5 km"},
		{12345, "12.3 km"},
		{-1, ""},
		{math.NaN(), ""},
	}
	for _, tt := range tests {
		if got := PresentableDistance(tt.meters); got != tt.want {
			t.Errorf("PresentableDistance(%v) = %q, want %q", tt.meters, got, tt.want)
		}
	}
}
