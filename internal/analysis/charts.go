package analysis

import "time"

// ChartData carries the three plot-ready series derived from one run. The
// rendering layer (web UI or PDF export) consumes these directly; nothing is
// recomputed for the export path.
type ChartData struct {
	Clipping         []ClippingPoint `json:"clipping"`
	MonthlyLoss      []MonthlyLoss   `json:"monthly_loss"`
	PriceNonNegative []PricePoint    `json:"price_non_negative"`
	PriceNegative    []PricePoint    `json:"price_negative"`
}

// ClippingPoint shows original vs clipped power for one interval.
type ClippingPoint struct {
	Timestamp      time.Time `json:"timestamp"`
	PowerKW        float64   `json:"power_kw"`
	ClippedPowerKW float64   `json:"clipped_power_kw"`
	OverLimit      bool      `json:"over_limit"`
}

// MonthlyLoss is the lost energy aggregated per calendar month.
type MonthlyLoss struct {
	Month   time.Time `json:"month"` // first instant of the month
	LostKWh float64   `json:"lost_kwh"`
}

// PricePoint is one interval of the price series, already split by sign.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	PriceCt   float64   `json:"price_ct"`
}

// BuildCharts derives the three chart series from the interval rows.
func BuildCharts(rows []IntervalRow) ChartData {
	var cd ChartData

	monthTotals := map[time.Time]float64{}
	var monthOrder []time.Time

	for _, r := range rows {
		cd.Clipping = append(cd.Clipping, ClippingPoint{
			Timestamp:      r.Timestamp,
			PowerKW:        r.PowerKW,
			ClippedPowerKW: r.ClippedPowerKW,
			OverLimit:      r.PowerKW > r.ClippedPowerKW,
		})

		m := time.Date(r.Timestamp.Year(), r.Timestamp.Month(), 1, 0, 0, 0, 0, r.Timestamp.Location())
		if _, seen := monthTotals[m]; !seen {
			monthOrder = append(monthOrder, m)
		}
		monthTotals[m] += r.LostEnergyKWh

		pp := PricePoint{Timestamp: r.Timestamp, PriceCt: r.PriceCtPerKWh}
		if r.PriceCtPerKWh >= 0 {
			cd.PriceNonNegative = append(cd.PriceNonNegative, pp)
		} else {
			cd.PriceNegative = append(cd.PriceNegative, pp)
		}
	}

	// Rows arrive in chronological order, so monthOrder already is too.
	for _, m := range monthOrder {
		cd.MonthlyLoss = append(cd.MonthlyLoss, MonthlyLoss{Month: m, LostKWh: monthTotals[m]})
	}
	return cd
}
