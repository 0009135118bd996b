package geom

import (
	"math"
	"testing"
)

func near(got, want, tol float64) bool { return math.Abs(got-want) <= tol*math.Abs(want) }

func TestMeasure(t *testing.T) {
	// 0.01° square on the equator: side ≈ 1111.95 m
	side := 0.01 * math.Pi / 180 * EarthRadiusMeters
	square := [][2]float64{{0, 0}, {0.01, 0}, {0.01, 0.01}, {0, 0.01}, {0, 0}}
	reversed := [][2]float64{{0, 0}, {0, 0.01}, {0.01, 0.01}, {0.01, 0}, {0, 0}}
	hole := [][2]float64{{0.004, 0.004}, {0.006, 0.004}, {0.006, 0.006}, {0.004, 0.006}, {0.004, 0.004}}

	tests := []struct {
		name    string
		feature Feature
		length  float64
		area    float64
	}{
		{"Point", NewPoint(1, 1), 0, 0},
		{"LineString", NewLineString([][2]float64{{0, 0}, {0.01, 0}, {0.01, 0.01}}), 2 * side, 0},
		{"Square", NewPolygon(square), 4 * side, side * side},
		{"Clockwise Square", NewPolygon(reversed), 4 * side, side * side},
		{"Square With Hole", NewPolygon(square, hole), 4 * side, side*side - (side/5)*(side/5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Measure(tt.feature)
			if !near(got.Length, tt.length, 1e-3) {
				t.Errorf("length: expected %.2f, got %.2f", tt.length, got.Length)
			}
			if !near(got.Area, tt.area, 1e-3) {
				t.Errorf("area: expected %.2f, got %.2f", tt.area, got.Area)
			}
		})
	}
}

func TestPathLengthClosesOpenRing(t *testing.T) {
	open := [][2]float64{{0, 0}, {0.01, 0}, {0.01, 0.01}, {0, 0.01}}
	closed := append(open, open[0])
	if a, b := PathLength(open, true), PathLength(closed, true); !near(a, b, 1e-9) {
		t.Errorf("expected equal perimeters, got %.3f and %.3f", a, b)
	}
	if got := RingArea(open[:2]); got != 0 {
		t.Errorf("expected zero area for two positions, got %v", got)
	}
}
