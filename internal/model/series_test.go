package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, time.June, 24, 12, 0, 0, 0, time.UTC)

func series(values ...float64) TimeSeries {
	s := make(TimeSeries, 0, len(values))
	for i, v := range values {
		s = append(s, TimePoint{Timestamp: base.Add(time.Duration(i) * 15 * time.Minute), Value: v})
	}
	return s
}

func TestTimeSeries_StartEnd(t *testing.T) {
	s := series(1, 2, 3)
	assert.Equal(t, base, s.Start())
	assert.Equal(t, base.Add(30*time.Minute), s.End())

	var empty TimeSeries
	assert.True(t, empty.Start().IsZero())
	assert.True(t, empty.End().IsZero())
}

func TestTimeSeries_Window(t *testing.T) {
	s := series(1, 2, 3, 4)

	w := s.Window(base.Add(15*time.Minute), base.Add(30*time.Minute))
	require.Len(t, w, 2)
	assert.Equal(t, 2.0, w[0].Value)
	assert.Equal(t, 3.0, w[1].Value)

	// bounds are inclusive
	assert.Len(t, s.Window(base, s.End()), 4)

	// window outside the series
	assert.Empty(t, s.Window(base.Add(-2*time.Hour), base.Add(-time.Hour)))
	assert.Empty(t, s.Window(base.Add(time.Hour), base.Add(2*time.Hour)))
}

func TestTimeSeries_SortDedup(t *testing.T) {
	s := TimeSeries{
		{Timestamp: base.Add(30 * time.Minute), Value: 3},
		{Timestamp: base, Value: 1},
		{Timestamp: base.Add(15 * time.Minute), Value: 2},
		{Timestamp: base, Value: 10}, // later occurrence wins
	}

	got := s.SortDedup()
	require.Len(t, got, 3)
	assert.Equal(t, 10.0, got[0].Value)
	assert.Equal(t, 2.0, got[1].Value)
	assert.Equal(t, 3.0, got[2].Value)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Timestamp.Before(got[i].Timestamp))
	}
}

func TestParams_Validate(t *testing.T) {
	assert.NoError(t, Params{MaxPowerKW: 100, TariffCtPerKWh: 7.5}.Validate())
	assert.NoError(t, Params{}.Validate())
	assert.Error(t, Params{MaxPowerKW: -1, TariffCtPerKWh: 7.5}.Validate())
	assert.Error(t, Params{MaxPowerKW: 100, TariffCtPerKWh: -0.1}.Validate())
}
