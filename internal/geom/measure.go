package geom

import (
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the mean Earth radius used to scale angles.
const EarthRadiusMeters = 6371000.0

// Measurement is the metric size of a feature: Length in meters (perimeter
// for polygons) and Area in square meters.
type Measurement struct {
	Length float64
	Area   float64
}

// Measure returns the great-circle length and spherical area of f.
// Polygon holes are subtracted from the exterior area; points measure zero.
func Measure(f Feature) Measurement {
	switch f.Geometry.Type {
	case TypeLineString:
		return Measurement{Length: PathLength(f.Geometry.Path, false)}
	case TypePolygon:
		if len(f.Geometry.Rings) == 0 {
			return Measurement{}
		}
		m := Measurement{
			Length: PathLength(f.Geometry.Rings[0], true),
			Area:   RingArea(f.Geometry.Rings[0]),
		}
		for _, hole := range f.Geometry.Rings[1:] {
			m.Area -= RingArea(hole)
		}
		return m
	}
	return Measurement{}
}

// PathLength sums great-circle distances between consecutive lng/lat
// positions. closed adds the edge back to the first position unless the path
// already ends there.
func PathLength(path [][2]float64, closed bool) float64 {
	if len(path) < 2 {
		return 0
	}
	var rad float64
	for i := 1; i < len(path); i++ {
		rad += latLng(path[i-1]).Distance(latLng(path[i])).Radians()
	}
	if closed && path[0] != path[len(path)-1] {
		rad += latLng(path[len(path)-1]).Distance(latLng(path[0])).Radians()
	}
	return rad * EarthRadiusMeters
}

// RingArea is the area enclosed by ring in square meters, independent of its
// winding order. Rings with fewer than three distinct positions have no area.
func RingArea(ring [][2]float64) float64 {
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		ring = ring[:n-1]
	}
	if len(ring) < 3 {
		return 0
	}
	pts := make([]s2.Point, 0, len(ring))
	for _, p := range ring {
		pts = append(pts, s2.PointFromLatLng(latLng(p)))
	}
	a := s2.LoopFromPoints(pts).Area()
	// a clockwise ring encloses the complement
	a = math.Min(a, 4*math.Pi-a)
	return a * EarthRadiusMeters * EarthRadiusMeters
}

func latLng(p [2]float64) s2.LatLng { return s2.LatLngFromDegrees(p[1], p[0]) }
