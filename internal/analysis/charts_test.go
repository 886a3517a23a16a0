package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv-clipping/internal/model"
)

func TestBuildCharts(t *testing.T) {
	// Two intervals in June, one in July.
	june := time.Date(2024, time.June, 30, 23, 30, 0, 0, time.UTC)
	pv := quarterHours(june, 2, 3, 4)
	price := quarterHours(june, 50, -20, 30)

	res, err := New(DefaultPolicy()).Run(pv, price, model.Params{MaxPowerKW: 10, TariffCtPerKWh: 10})
	require.NoError(t, err)

	cd := BuildCharts(res.Rows)

	require.Len(t, cd.Clipping, 3)
	assert.False(t, cd.Clipping[0].OverLimit) // 8 kW under the 10 kW ceiling
	assert.True(t, cd.Clipping[1].OverLimit)  // 12 kW clipped to 10
	assert.Equal(t, 10.0, cd.Clipping[1].ClippedPowerKW)

	require.Len(t, cd.MonthlyLoss, 2, "intervals span two calendar months")
	assert.Equal(t, time.June, cd.MonthlyLoss[0].Month.Month())
	assert.Equal(t, time.July, cd.MonthlyLoss[1].Month.Month())
	// June losses: 0 + (3 - 2.5); July: (4 - 2.5).
	assert.InDelta(t, 0.5, cd.MonthlyLoss[0].LostKWh, 1e-9)
	assert.InDelta(t, 1.5, cd.MonthlyLoss[1].LostKWh, 1e-9)

	assert.Len(t, cd.PriceNonNegative, 2)
	assert.Len(t, cd.PriceNegative, 1)
	assert.Equal(t, -2.0, cd.PriceNegative[0].PriceCt)
}

func TestComputePriceStats(t *testing.T) {
	pv := quarterHours(t0, 1, 1, 1, 1)
	price := quarterHours(t0, -10, 0, 20, 30)

	res, err := New(DefaultPolicy()).Run(pv, price, model.Params{MaxPowerKW: 100, TariffCtPerKWh: 10})
	require.NoError(t, err)

	stats := ComputePriceStats(res.Rows)
	assert.Equal(t, -1.0, stats.MinCt)
	assert.Equal(t, 3.0, stats.MaxCt)
	assert.InDelta(t, 1.0, stats.MeanCt, 1e-9)
	assert.InDelta(t, 0.25, stats.NegativeShare, 1e-9)
	assert.LessOrEqual(t, stats.P05Ct, stats.P95Ct)
}

func TestComputePriceStats_Empty(t *testing.T) {
	stats := ComputePriceStats(nil)
	assert.Equal(t, PriceStats{}, stats)
}
