package assess

import "sort"

// SortScored orders questions by directional score ascending,
// then by weight descending, so the heaviest low signals come first.
func SortScored(qs []ScoredQuestion) {
	sort.SliceStable(qs, func(i, j int) bool {
		if qs[i].Score != qs[j].Score {
			return qs[i].Score < qs[j].Score
		}
		return qs[i].Weight > qs[j].Weight
	})
}

// SortDrivers orders the present variables by pct x importance, highest first.
// Ties keep their position in order.
func SortDrivers(r *Result, order []string, importance map[string]float64) []Driver {
	var drivers []Driver
	for _, v := range presentInOrder(r, order) {
		pct := r.PerVariable[v].Pct
		drivers = append(drivers, Driver{
			Variable: v,
			Pct:      pct,
			Weighted: pct * importanceOf(importance, v),
		})
	}
	sort.SliceStable(drivers, func(i, j int) bool {
		return drivers[i].Weighted > drivers[j].Weighted
	})
	return drivers
}

// Extremes returns the lowest and highest scoring variables. Ties go to the
// variable encountered first in order. Both are empty when nothing was scored.
func Extremes(r *Result, order []string) (lowest, highest string) {
	first := true
	var lo, hi float64
	for _, v := range presentInOrder(r, order) {
		pct := r.PerVariable[v].Pct
		if first {
			lowest, highest, lo, hi = v, v, pct, pct
			first = false
			continue
		}
		if pct < lo {
			lowest, lo = v, pct
		}
		if pct > hi {
			highest, hi = v, pct
		}
	}
	return lowest, highest
}

// presentInOrder lists the scored variables following order, then any
// scored variable order does not mention, in first-appearance order.
func presentInOrder(r *Result, order []string) []string {
	seen := make(map[string]bool, len(r.PerVariable))
	var out []string
	for _, v := range order {
		if _, ok := r.PerVariable[v]; ok && !seen[v] {
			out = append(out, v)
			seen[v] = true
		}
	}
	for _, v := range r.Order {
		if _, ok := r.PerVariable[v]; ok && !seen[v] {
			out = append(out, v)
			seen[v] = true
		}
	}
	return out
}
