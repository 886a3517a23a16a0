package analysis

import (
	"fmt"
	"time"

	"pv-clipping/internal/model"
)

// NoOverlapError means the two series share no usable time domain, even
// after nearest-neighbor matching. It carries both original ranges so the
// user can diagnose the mismatch.
type NoOverlapError struct {
	PVStart, PVEnd       time.Time
	PriceStart, PriceEnd time.Time
}

func (e *NoOverlapError) Error() string {
	return fmt.Sprintf("series do not overlap: pv covers %s to %s, price covers %s to %s",
		e.PVStart.Format(time.RFC3339), e.PVEnd.Format(time.RFC3339),
		e.PriceStart.Format(time.RFC3339), e.PriceEnd.Format(time.RFC3339))
}

// Align restricts both series to their common time window and pairs them up.
//
// Exact timestamp intersection is preferred. When no exact matches exist,
// each PV timestamp is matched to the nearest price point within tolerance;
// PV points without a match inside the tolerance window are dropped. The
// returned series have identical timestamp sets (the PV timestamps).
func Align(pv, price model.TimeSeries, tolerance time.Duration) (model.TimeSeries, model.TimeSeries, error) {
	overlapErr := &NoOverlapError{
		PVStart: pv.Start(), PVEnd: pv.End(),
		PriceStart: price.Start(), PriceEnd: price.End(),
	}
	if len(pv) == 0 || len(price) == 0 {
		return nil, nil, overlapErr
	}

	from := maxTime(pv.Start(), price.Start())
	to := minTime(pv.End(), price.End())
	// A gap wider than the tolerance can never produce a match.
	if from.After(to.Add(tolerance)) {
		return nil, nil, overlapErr
	}

	// Pad the window by the tolerance so edge points can still find a
	// nearest neighbor.
	pvW := pv.Window(from.Add(-tolerance), to.Add(tolerance))
	priceW := price.Window(from.Add(-tolerance), to.Add(tolerance))
	if len(pvW) == 0 || len(priceW) == 0 {
		return nil, nil, overlapErr
	}

	if pvOut, priceOut := exactIntersection(pvW, priceW); len(pvOut) > 0 {
		return pvOut, priceOut, nil
	}

	pvOut, priceOut := nearestMatch(pvW, priceW, tolerance)
	if len(pvOut) == 0 {
		return nil, nil, overlapErr
	}
	return pvOut, priceOut, nil
}

func exactIntersection(pv, price model.TimeSeries) (model.TimeSeries, model.TimeSeries) {
	byInstant := make(map[int64]float64, len(price))
	for _, p := range price {
		byInstant[p.Timestamp.Unix()] = p.Value
	}
	var pvOut, priceOut model.TimeSeries
	for _, p := range pv {
		v, ok := byInstant[p.Timestamp.Unix()]
		if !ok {
			continue
		}
		pvOut = append(pvOut, p)
		priceOut = append(priceOut, model.TimePoint{Timestamp: p.Timestamp, Value: v})
	}
	return pvOut, priceOut
}

// nearestMatch pairs each PV point with the closest price point within
// tolerance. Both inputs are sorted, so a single forward pointer suffices.
func nearestMatch(pv, price model.TimeSeries, tolerance time.Duration) (model.TimeSeries, model.TimeSeries) {
	var pvOut, priceOut model.TimeSeries
	j := 0
	for _, p := range pv {
		for j+1 < len(price) && absDuration(price[j+1].Timestamp.Sub(p.Timestamp)) <= absDuration(price[j].Timestamp.Sub(p.Timestamp)) {
			j++
		}
		if absDuration(price[j].Timestamp.Sub(p.Timestamp)) > tolerance {
			continue
		}
		pvOut = append(pvOut, p)
		priceOut = append(priceOut, model.TimePoint{Timestamp: p.Timestamp, Value: price[j].Value})
	}
	return pvOut, priceOut
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
