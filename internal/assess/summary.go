package assess

// Summarize derives the readout from a result. order fixes the variable
// iteration order used for tie-breaking and target selection.
func Summarize(r *Result, order []string, importance map[string]float64, mode RankMode) Readout {
	if !mode.Valid() {
		mode = RankFavorability
	}
	out := Readout{
		Distortions: TopDistortions(r, DefaultMaxDistortions),
		NextTargets: []string{},
		RankMode:    mode,
	}
	if out.Distortions == nil {
		out.Distortions = []ScoredQuestion{}
	}
	if mode == RankDrivers {
		out.Drivers = SortDrivers(r, order, importance)
	}

	lowest, highest := Extremes(r, order)
	if lowest == "" {
		return out
	}
	out.Strongest = highest
	out.PrimaryRisk = lowest
	out.Lever = Lever(r, lowest)
	out.NextTargets = NextTargets(r, order, lowest)
	return out
}

// Lever picks the single most leveraged question inside variable:
// its lowest score, heaviest weight item.
func Lever(r *Result, variable string) *ScoredQuestion {
	for i := range r.Ranked {
		if r.Ranked[i].Variable == variable {
			sq := r.Ranked[i]
			return &sq
		}
	}
	return nil
}

// NextTargets lists where to drill in next: the risk variable, every RED
// variable, then YELLOW ones until there are at least two. At most
// DefaultMaxTargets are returned.
func NextTargets(r *Result, order []string, risk string) []string {
	targets := []string{risk}
	has := map[string]bool{risk: true}
	present := presentInOrder(r, order)

	for _, v := range present {
		if r.PerVariable[v].Zone == ZoneRed && !has[v] {
			targets = append(targets, v)
			has[v] = true
		}
	}
	if len(targets) < minTargets {
		for _, v := range present {
			if r.PerVariable[v].Zone == ZoneYellow && !has[v] {
				targets = append(targets, v)
				has[v] = true
			}
			if len(targets) >= minTargets {
				break
			}
		}
	}
	if len(targets) > DefaultMaxTargets {
		targets = targets[:DefaultMaxTargets]
	}
	return targets
}
