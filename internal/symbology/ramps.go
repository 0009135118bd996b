package symbology

// ColorRamps lists the ramp names offered for single-band rasters, the
// default first. Each ramp has low, middle and high hex stops.
var ColorRamps = []string{"rainbow", "viridis", "plasma", "inferno", "greys", "spectral", "rdylgn"}

var rampStops = map[string][3]string{
	"rainbow":  {"#6E40AA", "#1AC7C2", "#FF5E63"},
	"viridis":  {"#440154", "#21918C", "#FDE725"},
	"plasma":   {"#0D0887", "#CC4778", "#F0F921"},
	"inferno":  {"#000004", "#BC3754", "#FCFFA4"},
	"greys":    {"#000000", "#808080", "#FFFFFF"},
	"spectral": {"#9E0142", "#FFFFBF", "#5E4FA2"},
	"rdylgn":   {"#A50026", "#FFFFBF", "#006837"},
}

// NextColorRamp returns the ramp after name, wrapping around. Unknown names
// restart at the first ramp.
func NextColorRamp(name string) string {
	for i, r := range ColorRamps {
		if r == name {
			return ColorRamps[(i+1)%len(ColorRamps)]
		}
	}
	return ColorRamps[0]
}

// RampStops returns the hex stops of a ramp and whether it is known.
func RampStops(name string) ([3]string, bool) {
	s, ok := rampStops[name]
	return s, ok
}
