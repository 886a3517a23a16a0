package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"pv-clipping/internal/analysis"
)

// BuildAnalysisXLSX renders the run as a workbook: one summary sheet, one
// sheet with the full interval table.
func BuildAnalysisXLSX(res *analysis.Result) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	intervalsSheet := "intervals"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(intervalsSheet); err != nil {
		return nil, err
	}

	s := res.Summary
	_ = f.SetCellValue(summarySheet, "A1", "PV Clipping & EEG Analyse")
	_ = f.SetCellValue(summarySheet, "A3", "Zeitraum von")
	_ = f.SetCellValue(summarySheet, "B3", s.Window.Start.Format("02.01.2006 15:04"))
	_ = f.SetCellValue(summarySheet, "A4", "Zeitraum bis")
	_ = f.SetCellValue(summarySheet, "B4", s.Window.End.Format("02.01.2006 15:04"))
	_ = f.SetCellValue(summarySheet, "A5", "Intervalle")
	_ = f.SetCellValue(summarySheet, "B5", s.Intervals)
	_ = f.SetCellValue(summarySheet, "A6", "WR-Maximalleistung (kW)")
	_ = f.SetCellValue(summarySheet, "B6", res.Params.MaxPowerKW)
	_ = f.SetCellValue(summarySheet, "A7", "EEG-Verguetung (ct/kWh)")
	_ = f.SetCellValue(summarySheet, "B7", res.Params.TariffCtPerKWh)

	_ = f.SetCellValue(summarySheet, "A9", "Gesamtertrag EEG (EUR)")
	_ = f.SetCellValue(summarySheet, "B9", s.TotalEEGRevenueEur)
	_ = f.SetCellValue(summarySheet, "A10", "Verlust EEG durch Clipping (EUR)")
	_ = f.SetCellValue(summarySheet, "B10", s.LostRevenueEur)
	_ = f.SetCellValue(summarySheet, "A11", "Abregelung neg. Preise (h)")
	_ = f.SetCellValue(summarySheet, "B11", s.CurtailmentHours)
	_ = f.SetCellValue(summarySheet, "A12", "Verlust durch Clipping (kWh)")
	_ = f.SetCellValue(summarySheet, "B12", s.TotalLostKWh)
	_ = f.SetCellValue(summarySheet, "A13", "Verlust (%)")
	_ = f.SetCellValue(summarySheet, "B13", s.LossPercent)
	_ = f.SetCellValue(summarySheet, "A14", "Gesamtertrag (kWh)")
	_ = f.SetCellValue(summarySheet, "B14", s.TotalGeneratedKWh)

	headers := []string{
		"Zeitstempel", "PV (kWh)", "Leistung (kW)", "Leistung geclippt (kW)",
		"Energie geclippt (kWh)", "Verlust (kWh)", "Preis (EUR/MWh)",
		"Preis (ct/kWh)", "EEG-Zahlung (ct)", "Abgeregelt",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(intervalsSheet, cell, h)
	}
	for i, r := range res.Rows {
		row := i + 2
		_ = f.SetCellValue(intervalsSheet, fmt.Sprintf("A%d", row), r.Timestamp.Format(time.RFC3339))
		_ = f.SetCellValue(intervalsSheet, fmt.Sprintf("B%d", row), r.PVEnergyKWh)
		_ = f.SetCellValue(intervalsSheet, fmt.Sprintf("C%d", row), r.PowerKW)
		_ = f.SetCellValue(intervalsSheet, fmt.Sprintf("D%d", row), r.ClippedPowerKW)
		_ = f.SetCellValue(intervalsSheet, fmt.Sprintf("E%d", row), r.ClippedEnergyKWh)
		_ = f.SetCellValue(intervalsSheet, fmt.Sprintf("F%d", row), r.LostEnergyKWh)
		_ = f.SetCellValue(intervalsSheet, fmt.Sprintf("G%d", row), r.PriceEurPerMWh)
		_ = f.SetCellValue(intervalsSheet, fmt.Sprintf("H%d", row), r.PriceCtPerKWh)
		_ = f.SetCellValue(intervalsSheet, fmt.Sprintf("I%d", row), r.EEGPaymentCt)
		_ = f.SetCellValue(intervalsSheet, fmt.Sprintf("J%d", row), r.Curtailed)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
