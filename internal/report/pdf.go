package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"pv-clipping/internal/analysis"
)

// Page geometry (A4 portrait, mm).
const (
	plotLeft   = 20.0
	plotTop    = 40.0
	plotWidth  = 170.0
	plotHeight = 90.0

	// Dense quarter-hour series are thinned before drawing; a year of data
	// would otherwise put 35k vector ops on one page.
	maxPlotPoints = 800
)

// BuildReportPDF assembles the exportable report: cover page, metrics page,
// and the three chart pages. Charts are drawn from the same series the
// dashboard consumes; nothing is recomputed here.
func BuildReportPDF(res *analysis.Result, charts analysis.ChartData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Cover
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.SetY(120)
	pdf.CellFormat(0, 10, tr("PV Wirtschaftlichkeitsanalyse"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Zeitraum: %s bis %s",
		res.Summary.Window.Start.Format("02.01.2006"),
		res.Summary.Window.End.Format("02.01.2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("WR-Maximalleistung: %s kW, Tarif: %s ct/kWh",
		FormatNumber(res.Params.MaxPowerKW, 2),
		FormatNumber(res.Params.TariffCtPerKWh, 2)), "", 1, "C", false, 0, "")

	// Metrics page
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr("Wirtschaftlichkeitsanalyse"), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont("Arial", "", 11)
	for _, line := range SummaryLines(res.Summary) {
		pdf.CellFormat(0, 8, tr(line), "", 1, "L", false, 0, "")
	}

	drawClippingChart(pdf, tr, charts.Clipping, res.Params.MaxPowerKW)
	drawMonthlyLossChart(pdf, tr, charts.MonthlyLoss)
	drawPriceChart(pdf, tr, charts)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func chartPage(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
}

// scale maps a data point onto the plot box. Y grows downward on the page.
type scale struct {
	t0, t1     time.Time
	vMin, vMax float64
}

func (s scale) x(t time.Time) float64 {
	span := s.t1.Sub(s.t0)
	if span <= 0 {
		return plotLeft
	}
	return plotLeft + plotWidth*float64(t.Sub(s.t0))/float64(span)
}

func (s scale) y(v float64) float64 {
	span := s.vMax - s.vMin
	if span <= 0 {
		return plotTop + plotHeight
	}
	return plotTop + plotHeight - plotHeight*(v-s.vMin)/span
}

func drawAxes(pdf *gofpdf.Fpdf, s scale) {
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Rect(plotLeft, plotTop, plotWidth, plotHeight, "D")

	pdf.SetFont("Arial", "", 8)
	pdf.Text(plotLeft, plotTop+plotHeight+5, s.t0.Format("02.01.2006"))
	pdf.Text(plotLeft+plotWidth-22, plotTop+plotHeight+5, s.t1.Format("02.01.2006"))
	pdf.Text(plotLeft-15, plotTop+2, FormatNumber(s.vMax, 1))
	pdf.Text(plotLeft-15, plotTop+plotHeight, FormatNumber(s.vMin, 1))
}

func drawClippingChart(pdf *gofpdf.Fpdf, tr func(string) string, points []analysis.ClippingPoint, maxPowerKW float64) {
	chartPage(pdf, tr, "Clipping im Zeitverlauf")
	if len(points) == 0 {
		pdf.CellFormat(0, 8, tr("Keine Daten"), "", 1, "L", false, 0, "")
		return
	}

	vMax := maxPowerKW
	for _, p := range points {
		if p.PowerKW > vMax {
			vMax = p.PowerKW
		}
	}
	s := scale{
		t0: points[0].Timestamp, t1: points[len(points)-1].Timestamp,
		vMin: 0, vMax: vMax,
	}
	drawAxes(pdf, s)

	step := len(points)/maxPlotPoints + 1
	pdf.SetLineWidth(0.25)
	for i := 0; i < len(points); i += step {
		p := points[i]
		x := s.x(p.Timestamp)
		pdf.SetDrawColor(255, 165, 0) // orange: deliverable power
		pdf.Line(x, s.y(0), x, s.y(p.ClippedPowerKW))
		if p.OverLimit {
			pdf.SetDrawColor(220, 50, 50) // red: clipped away
			pdf.Line(x, s.y(p.ClippedPowerKW), x, s.y(p.PowerKW))
		}
	}

	// Inverter ceiling
	pdf.SetDrawColor(220, 50, 50)
	pdf.SetDashPattern([]float64{2, 2}, 0)
	pdf.Line(plotLeft, s.y(maxPowerKW), plotLeft+plotWidth, s.y(maxPowerKW))
	pdf.SetDashPattern([]float64{}, 0)
}

func drawMonthlyLossChart(pdf *gofpdf.Fpdf, tr func(string) string, months []analysis.MonthlyLoss) {
	chartPage(pdf, tr, "Clipping-Verluste pro Monat")
	if len(months) == 0 {
		pdf.CellFormat(0, 8, tr("Keine Daten"), "", 1, "L", false, 0, "")
		return
	}

	vMax := 0.0
	for _, m := range months {
		if m.LostKWh > vMax {
			vMax = m.LostKWh
		}
	}
	if vMax == 0 {
		vMax = 1 // all-zero losses still render an empty chart
	}

	s := scale{vMin: 0, vMax: vMax}
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Rect(plotLeft, plotTop, plotWidth, plotHeight, "D")
	pdf.SetFont("Arial", "", 8)
	pdf.Text(plotLeft-15, plotTop+2, FormatNumber(vMax, 0))

	barSlot := plotWidth / float64(len(months))
	barWidth := barSlot * 0.6
	pdf.SetFillColor(250, 128, 114) // salmon, as in the dashboard
	for i, m := range months {
		x := plotLeft + barSlot*float64(i) + (barSlot-barWidth)/2
		top := s.y(m.LostKWh)
		pdf.Rect(x, top, barWidth, plotTop+plotHeight-top, "F")
		pdf.Text(x, plotTop+plotHeight+5, m.Month.Format("Jan"))
	}
}

func drawPriceChart(pdf *gofpdf.Fpdf, tr func(string) string, charts analysis.ChartData) {
	chartPage(pdf, tr, "Day-Ahead Preise")
	points := mergePricePoints(charts)
	if len(points) == 0 {
		pdf.CellFormat(0, 8, tr("Keine Daten"), "", 1, "L", false, 0, "")
		return
	}

	vMin, vMax := points[0].PriceCt, points[0].PriceCt
	for _, p := range points {
		if p.PriceCt < vMin {
			vMin = p.PriceCt
		}
		if p.PriceCt > vMax {
			vMax = p.PriceCt
		}
	}
	if vMax == vMin {
		vMax = vMin + 1
	}
	s := scale{
		t0: points[0].Timestamp, t1: points[len(points)-1].Timestamp,
		vMin: vMin, vMax: vMax,
	}
	drawAxes(pdf, s)

	step := len(points)/maxPlotPoints + 1
	pdf.SetLineWidth(0.25)
	var prev *analysis.PricePoint
	for i := 0; i < len(points); i += step {
		p := points[i]
		if prev != nil {
			if p.PriceCt >= 0 {
				pdf.SetDrawColor(255, 165, 0)
			} else {
				pdf.SetDrawColor(220, 50, 50)
			}
			pdf.Line(s.x(prev.Timestamp), s.y(prev.PriceCt), s.x(p.Timestamp), s.y(p.PriceCt))
		}
		cp := p
		prev = &cp
	}

	// Zero line
	if vMin < 0 && vMax > 0 {
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetDashPattern([]float64{2, 2}, 0)
		pdf.Line(plotLeft, s.y(0), plotLeft+plotWidth, s.y(0))
		pdf.SetDashPattern([]float64{}, 0)
	}
}

// mergePricePoints re-joins the sign-split price series in time order for
// line drawing.
func mergePricePoints(charts analysis.ChartData) []analysis.PricePoint {
	a, b := charts.PriceNonNegative, charts.PriceNegative
	out := make([]analysis.PricePoint, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].Timestamp.Before(b[j].Timestamp) {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
