package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv-clipping/internal/model"
)

func TestEngine_ClippingAndEEG(t *testing.T) {
	// 1.0 kWh and 3.0 kWh per quarter-hour => 4 kW and 12 kW instantaneous.
	pv := quarterHours(t0, 1.0, 3.0)
	// 50 EUR/MWh => 5 ct/kWh; -20 EUR/MWh => -2 ct/kWh.
	price := quarterHours(t0, 50, -20)

	engine := New(DefaultPolicy())
	res, err := engine.Run(pv, price, model.Params{MaxPowerKW: 8, TariffCtPerKWh: 10})
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)

	first, second := res.Rows[0], res.Rows[1]
	assert.Equal(t, 4.0, first.PowerKW)
	assert.Equal(t, 4.0, first.ClippedPowerKW)
	assert.Equal(t, 1.0, first.ClippedEnergyKWh)
	assert.Equal(t, 0.0, first.LostEnergyKWh)
	assert.Equal(t, 5.0, first.PriceCtPerKWh)
	assert.Equal(t, 10.0, first.EEGPaymentCt, "tariff paid on clipped energy at non-negative price")
	assert.False(t, first.Curtailed)

	assert.Equal(t, 12.0, second.PowerKW)
	assert.Equal(t, 8.0, second.ClippedPowerKW)
	assert.Equal(t, 2.0, second.ClippedEnergyKWh)
	assert.Equal(t, 1.0, second.LostEnergyKWh)
	assert.Equal(t, -2.0, second.PriceCtPerKWh)
	assert.Equal(t, 0.0, second.EEGPaymentCt, "no tariff while the price is negative")
	assert.True(t, second.Curtailed)

	s := res.Summary
	assert.InDelta(t, 0.10, s.TotalEEGRevenueEur, 1e-9)
	assert.InDelta(t, 0.10, s.LostRevenueEur, 1e-9)
	assert.InDelta(t, 0.25, s.CurtailmentHours, 1e-9)
	assert.InDelta(t, 3.0, s.TotalGeneratedKWh, 1e-9)
	assert.InDelta(t, 1.0, s.TotalLostKWh, 1e-9)
	assert.InDelta(t, 25.0, s.LossPercent, 1e-9)
	assert.Equal(t, 2, s.Intervals)
	assert.Equal(t, t0, s.Window.Start)
}

func TestEngine_ClipInvariant(t *testing.T) {
	pv := quarterHours(t0, 0, 0.5, 1, 2, 4, 8)
	price := quarterHours(t0, 10, 10, 10, 10, 10, 10)

	for _, maxPower := range []float64{0, 1, 5, 100} {
		res, err := New(DefaultPolicy()).Run(pv, price, model.Params{MaxPowerKW: maxPower, TariffCtPerKWh: 7})
		require.NoError(t, err)
		for _, r := range res.Rows {
			assert.LessOrEqual(t, r.ClippedEnergyKWh, r.PVEnergyKWh+1e-12)
			assert.GreaterOrEqual(t, r.LostEnergyKWh, 0.0)
		}
	}
}

func TestEngine_NoClippingWhenCeilingHigh(t *testing.T) {
	pv := quarterHours(t0, 1, 2, 3)
	price := quarterHours(t0, 40, 40, 40)

	res, err := New(DefaultPolicy()).Run(pv, price, model.Params{MaxPowerKW: 1000, TariffCtPerKWh: 10})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Summary.TotalLostKWh)
	assert.Equal(t, 0.0, res.Summary.LossPercent)
	assert.Equal(t, 0.0, res.Summary.LostRevenueEur)
}

func TestEngine_AllZeroPV(t *testing.T) {
	pv := quarterHours(t0, 0, 0, 0)
	price := quarterHours(t0, 50, -10, 20)

	res, err := New(DefaultPolicy()).Run(pv, price, model.Params{MaxPowerKW: 8, TariffCtPerKWh: 10})
	require.NoError(t, err)
	s := res.Summary
	assert.Equal(t, 0.0, s.LossPercent, "zero denominator resolves to zero, not a fault")
	assert.Equal(t, 0.0, s.TotalGeneratedKWh)
	assert.Equal(t, 0.0, s.TotalEEGRevenueEur)
	assert.Equal(t, 0.0, s.CurtailmentHours, "no generation means no curtailment hours")
}

func TestEngine_ZeroPriceThresholdPolicy(t *testing.T) {
	pv := quarterHours(t0, 1.0)
	price := quarterHours(t0, 0.0)

	inclusive, err := New(Policy{ZeroPriceEligible: true}).Run(pv, price, model.Params{MaxPowerKW: 8, TariffCtPerKWh: 10})
	require.NoError(t, err)
	assert.Equal(t, 10.0, inclusive.Rows[0].EEGPaymentCt, "inclusive threshold pays at exactly zero")

	exclusive, err := New(Policy{ZeroPriceEligible: false}).Run(pv, price, model.Params{MaxPowerKW: 8, TariffCtPerKWh: 10})
	require.NoError(t, err)
	assert.Equal(t, 0.0, exclusive.Rows[0].EEGPaymentCt, "exclusive threshold pays only above zero")
}

func TestEngine_DisjointSeries(t *testing.T) {
	pv := quarterHours(t0, 1, 2)
	price := quarterHours(t0.AddDate(0, 2, 0), 10, 20)

	_, err := New(DefaultPolicy()).Run(pv, price, model.Params{MaxPowerKW: 8, TariffCtPerKWh: 10})
	var noOverlap *NoOverlapError
	require.ErrorAs(t, err, &noOverlap)
}

func TestEngine_RejectsNegativeParams(t *testing.T) {
	pv := quarterHours(t0, 1)
	price := quarterHours(t0, 10)

	_, err := New(DefaultPolicy()).Run(pv, price, model.Params{MaxPowerKW: -1, TariffCtPerKWh: 10})
	assert.Error(t, err)

	_, err = New(DefaultPolicy()).Run(pv, price, model.Params{MaxPowerKW: 1, TariffCtPerKWh: -0.1})
	assert.Error(t, err)
}

func TestEngine_EmptyInput(t *testing.T) {
	price := quarterHours(t0, 10)
	_, err := New(DefaultPolicy()).Run(nil, price, model.Params{})
	assert.Error(t, err)
	_, err = New(DefaultPolicy()).Run(price, nil, model.Params{})
	assert.Error(t, err)
}

func TestEngine_Deterministic(t *testing.T) {
	pv := quarterHours(t0, 1, 3, 2, 5)
	price := quarterHours(t0, 50, -20, 0, 90)
	params := model.Params{MaxPowerKW: 9, TariffCtPerKWh: 8.1}

	engine := New(DefaultPolicy())
	a, err := engine.Run(pv, price, params)
	require.NoError(t, err)
	b, err := engine.Run(pv, price, params)
	require.NoError(t, err)
	assert.Equal(t, a, b, "identical inputs yield identical outputs")
}

func TestEngine_WindowRestriction(t *testing.T) {
	pv := quarterHours(t0, 1, 2, 3, 4)
	price := quarterHours(t0.Add(15*time.Minute), 10, 10) // covers pv[1:3] only

	res, err := New(DefaultPolicy()).Run(pv, price, model.Params{MaxPowerKW: 100, TariffCtPerKWh: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Summary.Intervals)
	assert.InDelta(t, 5.0, res.Summary.TotalGeneratedKWh, 1e-9)
}
