package assess

const (
	// YellowFloor is the lowest percentage classified YELLOW.
	YellowFloor = 45.0
	// GreenFloor is the lowest percentage classified GREEN.
	GreenFloor = 70.0
)

// ZoneFor classifies a 0-100 percentage. Lower bounds are inclusive.
func ZoneFor(pct float64) Zone {
	switch {
	case pct < YellowFloor:
		return ZoneRed
	case pct < GreenFloor:
		return ZoneYellow
	default:
		return ZoneGreen
	}
}

// Clamp bounds n to [lo, hi].
func Clamp(n, lo, hi float64) float64 {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
