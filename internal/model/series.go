package model

import (
	"sort"
	"time"
)

// TimePoint is one (timestamp, value) sample of an uploaded series.
// For PV series the value is energy per quarter-hour interval (kWh);
// for price series it is the day-ahead price (EUR/MWh).
type TimePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// TimeSeries is a chronologically ordered sequence of TimePoints.
// After a successful load, timestamps are strictly increasing and unique.
type TimeSeries []TimePoint

func (s TimeSeries) Start() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[0].Timestamp
}

func (s TimeSeries) End() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].Timestamp
}

// Window returns the sub-series with from <= timestamp <= to.
// The receiver must already be sorted.
func (s TimeSeries) Window(from, to time.Time) TimeSeries {
	lo := sort.Search(len(s), func(i int) bool {
		return !s[i].Timestamp.Before(from)
	})
	hi := sort.Search(len(s), func(i int) bool {
		return s[i].Timestamp.After(to)
	})
	if lo >= hi {
		return nil
	}
	return s[lo:hi]
}

// SortDedup sorts the series ascending by timestamp and collapses duplicate
// timestamps. The sort is stable, so among duplicates the point that appeared
// last in the input wins. Returns the normalized series.
func (s TimeSeries) SortDedup() TimeSeries {
	if len(s) == 0 {
		return s
	}
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Timestamp.Before(s[j].Timestamp)
	})
	out := s[:0]
	for i, p := range s {
		if i+1 < len(s) && s[i+1].Timestamp.Equal(p.Timestamp) {
			continue // a later occurrence of the same instant follows
		}
		out = append(out, p)
	}
	return out
}
