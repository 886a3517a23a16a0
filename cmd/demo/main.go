package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"pv-clipping/internal/analysis"
	"pv-clipping/internal/model"
	"pv-clipping/internal/report"
)

// Demo:
// - Synthesize one year of quarter-hour PV generation and day-ahead prices
// - Run the clipping/EEG analysis with a deliberately tight inverter ceiling
// - Print the summary and optionally write the PDF report
func main() {
	maxPower := flag.Float64("max-power", 8, "Inverter ceiling in kW")
	tariff := flag.Float64("tariff", 7.5, "EEG tariff in ct/kWh")
	pdfPath := flag.String("pdf", "", "Optional path to write the PDF report")
	flag.Parse()

	pv, price := synthesizeYear(2024)

	engine := analysis.New(analysis.DefaultPolicy())
	res, err := engine.Run(pv, price, model.Params{
		MaxPowerKW:     *maxPower,
		TariffCtPerKWh: *tariff,
	})
	if err != nil {
		panic(err)
	}

	for _, line := range report.SummaryLines(res.Summary) {
		fmt.Println(line)
	}

	stats := analysis.ComputePriceStats(res.Rows)
	fmt.Printf("Preisspanne: %.1f bis %.1f ct/kWh, negativ in %.1f%% der Intervalle\n",
		stats.MinCt, stats.MaxCt, stats.NegativeShare*100)

	if *pdfPath != "" {
		charts := analysis.BuildCharts(res.Rows)
		pdf, err := report.BuildReportPDF(res, charts)
		if err != nil {
			panic(err)
		}
		if err := os.WriteFile(*pdfPath, pdf, 0o644); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote report to %s\n", *pdfPath)
	}
}

// synthesizeYear builds plausible series: a seasonal bell-curve PV profile
// peaking around noon, and a price curve that dips negative around midday in
// high-PV months.
func synthesizeYear(year int) (model.TimeSeries, model.TimeSeries) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var pv, price model.TimeSeries
	for ts := start; ts.Before(end); ts = ts.Add(15 * time.Minute) {
		hour := float64(ts.Hour()) + float64(ts.Minute())/60
		day := float64(ts.YearDay())

		season := 0.35 + 0.65*math.Sin(math.Pi*day/365)                  // winter low, summer high
		daylight := math.Exp(-math.Pow(hour-12.5, 2) / (2 * 3.2 * 3.2)) // bell around midday
		powerKW := 12.0 * season * daylight
		if powerKW < 0.05 {
			powerKW = 0
		}
		pv = append(pv, model.TimePoint{Timestamp: ts, Value: powerKW / 4}) // kWh per quarter-hour

		priceMWh := 70 - 90*season*daylight // solar pushes midday prices down
		price = append(price, model.TimePoint{Timestamp: ts, Value: priceMWh})
	}
	return pv, price
}
