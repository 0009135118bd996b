package geom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mdobak/go-xerrors"
)

// ParseWKT parses a subset of WKT into features.
// Supported: POINT(x y), MULTIPOINT(x y, ...), LINESTRING(x y, ...), POLYGON((x y, ...), (...))
func ParseWKT(wkt string) ([]Feature, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, xerrors.New("wkt: empty")
	}
	up := strings.ToUpper(s)
	parseTuples := func(block string) [][2]float64 {
		var out [][2]float64
		for _, tup := range strings.Split(block, ",") {
			// MULTIPOINT((1 2), (3 4)) is valid too
			tup = strings.Trim(strings.TrimSpace(tup), "()")
			parts := strings.Fields(tup)
			if len(parts) < 2 {
				continue
			}
			x, e1 := strconv.ParseFloat(parts[0], 64)
			y, e2 := strconv.ParseFloat(parts[1], 64)
			if e1 != nil || e2 != nil {
				continue
			}
			out = append(out, [2]float64{x, y})
		}
		return out
	}
	inner := func(open, close string) (string, error) {
		i := strings.Index(s, open)
		j := strings.LastIndex(s, close)
		if i < 0 || j <= i {
			return "", xerrors.New(fmt.Sprintf("wkt: invalid %s", strings.Fields(up)[0]))
		}
		return s[i+len(open) : j], nil
	}
	var out []Feature
	switch {
	case strings.HasPrefix(up, "MULTIPOINT"):
		block, err := inner("(", ")")
		if err != nil {
			return nil, err
		}
		for _, p := range parseTuples(block) {
			out = append(out, NewPoint(p[0], p[1]))
		}
	case strings.HasPrefix(up, "POINT"):
		block, err := inner("(", ")")
		if err != nil {
			return nil, err
		}
		if pts := parseTuples(block); len(pts) > 0 {
			out = append(out, NewPoint(pts[0][0], pts[0][1]))
		}
	case strings.HasPrefix(up, "LINESTRING"):
		block, err := inner("(", ")")
		if err != nil {
			return nil, err
		}
		if ls := parseTuples(block); len(ls) > 0 {
			out = append(out, NewLineString(ls))
		}
	case strings.HasPrefix(up, "POLYGON"):
		block, err := inner("((", "))")
		if err != nil {
			return nil, err
		}
		// normalize spaces around ring separators
		norm := strings.ReplaceAll(block, "), (", "),(")
		norm = strings.ReplaceAll(norm, ") , (", "),(")
		var poly [][][2]float64
		for _, rp := range strings.Split(norm, "),(") {
			if ring := parseTuples(rp); len(ring) > 0 {
				poly = append(poly, ring)
			}
		}
		if len(poly) > 0 {
			out = append(out, NewPolygon(poly...))
		}
	default:
		return nil, xerrors.New("wkt: unsupported type")
	}
	if len(out) == 0 {
		return nil, xerrors.New("wkt: no coordinates parsed")
	}
	return out, nil
}
