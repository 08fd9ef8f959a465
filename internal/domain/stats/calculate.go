package stats

import "fmt"

// Domain limits.
const (
	MaxIV        = 31
	MaxEVPerStat = 252
	MaxTotalEV   = 508
	MinLevel     = 1
	MaxLevel     = 100
)

// CalculateStat applies the stat formula for one stat. IV and EV are clamped to their
// domains first; the nature multiplier is applied after the flat bonus and floored.
func CalculateStat(base, iv, ev, level int, stat StatName, nature *Nature) int {
	iv = clamp(iv, 0, MaxIV)
	ev = clamp(ev, 0, MaxEVPerStat)

	core := (2*base + iv + ev/4) * level / 100
	if stat == HP {
		return core + level + 1
	}

	raw := core + 5
	if nature == nil {
		return raw
	}
	// Integer forms of floor(raw*1.1) and floor(raw*0.9) for non-negative raw.
	switch stat {
	case nature.Increased:
		return raw * 11 / 10
	case nature.Decreased:
		return raw * 9 / 10
	}
	return raw
}

// CalculateAll applies CalculateStat to every stat independently.
func CalculateAll(base, ivs, evs Stats, level int, nature *Nature) Stats {
	var out Stats
	for _, name := range StatNames {
		out = out.With(name, CalculateStat(base.Get(name), ivs.Get(name), evs.Get(name), level, name, nature))
	}
	return out
}

// FindLevelForTargetStat returns the lowest level in 1..100 whose calculated stat reaches
// target. The stat is non-decreasing in level, so the search halves the range each step.
func FindLevelForTargetStat(base, iv, ev, target int, stat StatName, nature *Nature) (int, bool) {
	if CalculateStat(base, iv, ev, MaxLevel, stat, nature) < target {
		return 0, false
	}
	lo, hi := MinLevel, MaxLevel
	for lo < hi {
		mid := (lo + hi) / 2
		if CalculateStat(base, iv, ev, mid, stat, nature) >= target {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo, true
}

// EVValidation reports effort value rule violations without altering the input.
type EVValidation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// TotalEV sums the effort values.
func TotalEV(evs Stats) int {
	return evs.Total()
}

// RemainingEV is the unspent budget; negative when the vector is over budget.
func RemainingEV(evs Stats) int {
	return MaxTotalEV - evs.Total()
}

// ValidateEVs emits one message per stat above the per-stat cap and one for an
// over-budget total.
func ValidateEVs(evs Stats) EVValidation {
	errs := make([]string, 0)
	for _, name := range StatNames {
		if evs.Get(name) > MaxEVPerStat {
			errs = append(errs, fmt.Sprintf("%s EV cannot exceed %d", longNames[name], MaxEVPerStat))
		}
	}
	if total := evs.Total(); total > MaxTotalEV {
		errs = append(errs, fmt.Sprintf("Total EV is %d, cannot exceed %d", total, MaxTotalEV))
	}
	return EVValidation{Valid: len(errs) == 0, Errors: errs}
}

// DefaultIVs is the all-31 vector a fresh build starts with.
func DefaultIVs() Stats {
	return Uniform(MaxIV)
}

// DefaultEVs is the empty effort vector.
func DefaultEVs() Stats {
	return Stats{}
}

// DistributeEVs copies base and overrides each listed stat with its preference capped at 252.
func DistributeEVs(preferences map[StatName]int, base Stats) Stats {
	out := base
	for _, name := range StatNames {
		if v, ok := preferences[name]; ok {
			out = out.With(name, min(MaxEVPerStat, v))
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
