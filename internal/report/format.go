package report

import (
	"strconv"
	"strings"

	"pv-clipping/internal/analysis"
)

// FormatNumber renders v in the report locale: "." groups thousands and ","
// marks the decimal. This is purely a presentation contract; all computation
// stays on raw float64 values.
func FormatNumber(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}

// Unit-tagged helpers. Currency, energy and percent show two decimals,
// hours one.
func Currency(v float64) string { return FormatNumber(v, 2) + " EUR" }
func Energy(v float64) string   { return FormatNumber(v, 2) + " kWh" }
func Hours(v float64) string    { return FormatNumber(v, 1) + " h" }
func Percent(v float64) string  { return FormatNumber(v, 2) + " %" }

// SummaryLines renders the six scalar metrics as labelled lines for the
// report. Labels keep the German domain vocabulary of the tool's users.
func SummaryLines(s analysis.Summary) []string {
	return []string{
		"Gesamtertrag EEG: " + Currency(s.TotalEEGRevenueEur),
		"Verlust EEG durch Clipping: " + Currency(s.LostRevenueEur),
		"Abregelung (neg. Preise): " + Hours(s.CurtailmentHours),
		"Verlust durch Clipping: " + Energy(s.TotalLostKWh),
		"Verlust in %: " + Percent(s.LossPercent),
		"Gesamtertrag: " + Energy(s.TotalGeneratedKWh),
	}
}
