package assess

import "strings"

// Zone is a band over the 0-100 percentage scale.
type Zone string

const (
	ZoneRed    Zone = "RED"
	ZoneYellow Zone = "YELLOW"
	ZoneGreen  Zone = "GREEN"
)

func (z Zone) Valid() bool {
	switch z {
	case ZoneRed, ZoneYellow, ZoneGreen:
		return true
	}
	return false
}

// order returns a sort key (lower = worse).
func (z Zone) order() int {
	switch z {
	case ZoneRed:
		return 0
	case ZoneYellow:
		return 1
	case ZoneGreen:
		return 2
	default:
		return 3
	}
}

// AtOrBelow reports whether z is the same band as other or a worse one.
func (z Zone) AtOrBelow(other Zone) bool {
	return z.Valid() && other.Valid() && z.order() <= other.order()
}

// ParseZone accepts a zone name in any case.
func ParseZone(s string) (Zone, bool) {
	z := Zone(strings.ToUpper(strings.TrimSpace(s)))
	return z, z.Valid()
}

// RankMode selects how the readout orders its signals.
type RankMode string

const (
	// RankFavorability surfaces the lowest-scoring, heaviest questions first.
	RankFavorability RankMode = "favorability"
	// RankDrivers orders variables by descending weighted score magnitude.
	RankDrivers RankMode = "drivers"
)

func (m RankMode) Valid() bool {
	switch m {
	case RankFavorability, RankDrivers:
		return true
	}
	return false
}

// ParseRankMode maps an empty string to RankFavorability.
func ParseRankMode(s string) (RankMode, bool) {
	if strings.TrimSpace(s) == "" {
		return RankFavorability, true
	}
	m := RankMode(strings.ToLower(strings.TrimSpace(s)))
	return m, m.Valid()
}
