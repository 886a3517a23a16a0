package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"pv-clipping/internal/analysis"
	"pv-clipping/internal/config"
	"pv-clipping/internal/loader"
	"pv-clipping/internal/model"
	"pv-clipping/internal/report"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "analyze":
		cmdAnalyze(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli analyze --pv lastgang.csv --price dayahead.csv --max-power 8 --tariff 7.5 \\")
	fmt.Println("              [--config config.yaml] [--out intervals.csv] [--pdf report.pdf] [--xlsx report.xlsx]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - both inputs are two-column files: timestamp label, value")
	fmt.Println("  - pv values are kWh per quarter-hour, prices are EUR/MWh")
	fmt.Println("  - --debug logs every skipped row")
}

func cmdAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	pvPath := fs.String("pv", "", "Path to the PV generation file (.csv or .xlsx)")
	pricePath := fs.String("price", "", "Path to the day-ahead price file (.csv or .xlsx)")
	maxPower := fs.Float64("max-power", 0, "Inverter power ceiling in kW")
	tariff := fs.Float64("tariff", 0, "EEG tariff in ct/kWh")
	cfgPath := fs.String("config", "", "Optional YAML config (policy overrides)")
	outPath := fs.String("out", "", "Optional interval CSV output path")
	pdfPath := fs.String("pdf", "", "Optional PDF report output path")
	xlsxPath := fs.String("xlsx", "", "Optional XLSX export output path")
	debug := fs.Bool("debug", false, "Log skipped rows")
	_ = fs.Parse(args)

	if *pvPath == "" || *pricePath == "" {
		fmt.Println("--pv and --price are required")
		os.Exit(2)
	}

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fatal(err)
		}
		cfg = loaded
	}
	opts := cfg.LoaderOptions()
	opts.Debug = *debug

	pv, err := loadFile(*pvPath, opts)
	if err != nil {
		fatal(err)
	}
	price, err := loadFile(*pricePath, opts)
	if err != nil {
		fatal(err)
	}

	engine := analysis.New(cfg.EnginePolicy())
	res, err := engine.Run(pv, price, model.Params{MaxPowerKW: *maxPower, TariffCtPerKWh: *tariff})
	if err != nil {
		fatal(err)
	}

	for _, line := range report.SummaryLines(res.Summary) {
		fmt.Println(line)
	}
	fmt.Printf("(%d Intervalle, %s bis %s)\n",
		res.Summary.Intervals,
		res.Summary.Window.Start.Format("02.01.2006 15:04"),
		res.Summary.Window.End.Format("02.01.2006 15:04"))

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			fatal(err)
		}
		if err := analysis.WriteIntervalsCSV(*outPath, res.Rows); err != nil {
			fatal(err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(res.Rows), *outPath)
	}
	if *pdfPath != "" {
		charts := analysis.BuildCharts(res.Rows)
		pdf, err := report.BuildReportPDF(res, charts)
		if err != nil {
			fatal(err)
		}
		if err := os.WriteFile(*pdfPath, pdf, 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("Wrote report to %s\n", *pdfPath)
	}
	if *xlsxPath != "" {
		book, err := report.BuildAnalysisXLSX(res)
		if err != nil {
			fatal(err)
		}
		if err := os.WriteFile(*xlsxPath, book, 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("Wrote workbook to %s\n", *xlsxPath)
	}
}

func loadFile(path string, opts loader.Options) (model.TimeSeries, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return loader.Load(raw, path, opts)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
