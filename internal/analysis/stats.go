package analysis

import (
	"math"
	"sort"
)

// PriceStats summarizes the aligned price series in ct/kWh. It rides along
// with the summary so a user can sanity-check an upload at a glance.
type PriceStats struct {
	MinCt  float64 `json:"min_ct"`
	MaxCt  float64 `json:"max_ct"`
	MeanCt float64 `json:"mean_ct"`
	P05Ct  float64 `json:"p05_ct"`
	P95Ct  float64 `json:"p95_ct"`

	// NegativeShare is the fraction of intervals with a negative price.
	NegativeShare float64 `json:"negative_share"`
}

// ComputePriceStats derives price statistics from the interval rows.
func ComputePriceStats(rows []IntervalRow) PriceStats {
	s := PriceStats{}
	if len(rows) == 0 {
		return s
	}

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	negative := 0
	vals := make([]float64, 0, len(rows))
	for _, r := range rows {
		v := r.PriceCtPerKWh
		vals = append(vals, v)
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
		if v < 0 {
			negative++
		}
	}
	sort.Float64s(vals)

	s.MinCt = minv
	s.MaxCt = maxv
	s.MeanCt = sum / float64(len(vals))
	s.P05Ct = percentileSorted(vals, 0.05)
	s.P95Ct = percentileSorted(vals, 0.95)
	s.NegativeShare = float64(negative) / float64(len(rows))
	return s
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
