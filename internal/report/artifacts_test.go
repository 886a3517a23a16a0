package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pv-clipping/internal/analysis"
	"pv-clipping/internal/model"
)

func sampleResult(t *testing.T) *analysis.Result {
	t.Helper()

	start := time.Date(2024, time.June, 24, 11, 0, 0, 0, time.UTC)
	pv := make(model.TimeSeries, 0, 8)
	price := make(model.TimeSeries, 0, 8)
	for i := 0; i < 8; i++ {
		ts := start.Add(time.Duration(i) * 15 * time.Minute)
		pv = append(pv, model.TimePoint{Timestamp: ts, Value: 2.5})
		price = append(price, model.TimePoint{Timestamp: ts, Value: 80 - float64(i)*30})
	}

	res, err := analysis.New(analysis.DefaultPolicy()).Run(pv, price, model.Params{
		MaxPowerKW:     8,
		TariffCtPerKWh: 7.5,
	})
	require.NoError(t, err)
	require.Len(t, res.Rows, 8)
	return res
}

func TestBuildReportPDF(t *testing.T) {
	res := sampleResult(t)
	charts := analysis.BuildCharts(res.Rows)

	pdf, err := BuildReportPDF(res, charts)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output starts with a PDF header")
	assert.Greater(t, len(pdf), 1000)
}

func TestBuildAnalysisXLSX(t *testing.T) {
	res := sampleResult(t)

	raw, err := BuildAnalysisXLSX(res)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"summary", "intervals"}, f.GetSheetList())

	title, err := f.GetCellValue("summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "PV Clipping & EEG Analyse", title)

	rows, err := f.GetRows("intervals")
	require.NoError(t, err)
	require.Len(t, rows, len(res.Rows)+1, "header plus one row per interval")
	assert.Equal(t, "Zeitstempel", rows[0][0])
	assert.Equal(t, res.Rows[0].Timestamp.Format(time.RFC3339), rows[1][0])
}
