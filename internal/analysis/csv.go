package analysis

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// WriteIntervalsCSV dumps the per-interval rows for inspection in a
// spreadsheet. Values keep machine formatting; locale rendering is a
// presentation concern.
func WriteIntervalsCSV(path string, rows []IntervalRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"timestamp",
		"pv_energy_kwh",
		"power_kw",
		"clipped_power_kw",
		"clipped_energy_kwh",
		"lost_energy_kwh",
		"price_eur_per_mwh",
		"price_ct_per_kwh",
		"eeg_payment_ct",
		"curtailed",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Index),
			r.Timestamp.Format(time.RFC3339),
			fmtFloat(r.PVEnergyKWh),
			fmtFloat(r.PowerKW),
			fmtFloat(r.ClippedPowerKW),
			fmtFloat(r.ClippedEnergyKWh),
			fmtFloat(r.LostEnergyKWh),
			fmtFloat(r.PriceEurPerMWh),
			fmtFloat(r.PriceCtPerKWh),
			fmtFloat(r.EEGPaymentCt),
			strconv.FormatBool(r.Curtailed),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
