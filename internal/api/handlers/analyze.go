package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"pv-clipping/internal/analysis"
	"pv-clipping/internal/api/models"
	"pv-clipping/internal/config"
	"pv-clipping/internal/loader"
	"pv-clipping/internal/metrics"
	"pv-clipping/internal/model"
	"pv-clipping/internal/report"

	"github.com/gin-gonic/gin"
)

// AnalyzeHandler owns one engine, one series cache and the run metrics.
// Every endpoint performs a full run from the uploaded files; nothing is
// kept between requests except the content-addressed parse cache.
type AnalyzeHandler struct {
	cfg       *config.Config
	engine    *analysis.Engine
	cache     *loader.SeriesCache
	collector *metrics.Collector
}

func NewAnalyzeHandler(cfg *config.Config, collector *metrics.Collector) *AnalyzeHandler {
	return &AnalyzeHandler{
		cfg:       cfg,
		engine:    analysis.New(cfg.EnginePolicy()),
		cache:     loader.NewSeriesCache(),
		collector: collector,
	}
}

// Analyze handles POST /api/v1/analyze
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	result, ok := h.run(c)
	if !ok {
		return
	}

	s := result.Summary
	resp := models.AnalyzeResponse{
		Status:  "completed",
		Summary: s,
		Formatted: models.FormattedMetrics{
			TotalEEGRevenue:  report.Currency(s.TotalEEGRevenueEur),
			LostRevenue:      report.Currency(s.LostRevenueEur),
			CurtailmentHours: report.Hours(s.CurtailmentHours),
			TotalGenerated:   report.Energy(s.TotalGeneratedKWh),
			TotalLost:        report.Energy(s.TotalLostKWh),
			LossPercent:      report.Percent(s.LossPercent),
		},
		PriceStats: analysis.ComputePriceStats(result.Rows),
		Charts:     analysis.BuildCharts(result.Rows),
	}
	if c.PostForm("include_intervals") == "true" {
		resp.Intervals = result.Rows
	}
	c.JSON(http.StatusOK, resp)
}

// Report handles POST /api/v1/analyze/report
func (h *AnalyzeHandler) Report(c *gin.Context) {
	result, ok := h.run(c)
	if !ok {
		return
	}
	charts := analysis.BuildCharts(result.Rows)
	pdf, err := report.BuildReportPDF(result, charts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "REPORT_ERROR", Message: err.Error()},
		})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="PV_Analyse.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Export handles POST /api/v1/analyze/export
func (h *AnalyzeHandler) Export(c *gin.Context) {
	result, ok := h.run(c)
	if !ok {
		return
	}
	book, err := report.BuildAnalysisXLSX(result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "EXPORT_ERROR", Message: err.Error()},
		})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="PV_Analyse.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", book)
}

// run performs the shared load/validate/analyze pipeline. On failure it has
// already written the error response and returns ok=false; no partial
// results ever leave this method.
func (h *AnalyzeHandler) run(c *gin.Context) (*analysis.Result, bool) {
	started := time.Now()

	params, err := h.parseParams(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, "INVALID_PARAMETER", err, nil)
		return nil, false
	}

	pv, ok := h.loadUpload(c, "pv_file")
	if !ok {
		return nil, false
	}
	price, ok := h.loadUpload(c, "price_file")
	if !ok {
		return nil, false
	}

	result, err := h.engine.Run(pv, price, params)
	if err != nil {
		var noOverlap *analysis.NoOverlapError
		if errors.As(err, &noOverlap) {
			h.fail(c, http.StatusUnprocessableEntity, "NO_OVERLAP", err, map[string]interface{}{
				"pv_start":    noOverlap.PVStart,
				"pv_end":      noOverlap.PVEnd,
				"price_start": noOverlap.PriceStart,
				"price_end":   noOverlap.PriceEnd,
			})
			return nil, false
		}
		h.fail(c, http.StatusBadRequest, "ANALYSIS_ERROR", err, nil)
		return nil, false
	}

	h.collector.AnalysesTotal.WithLabelValues("ok").Inc()
	h.collector.AnalysisDuration.Observe(time.Since(started).Seconds())
	log.Printf("[Analyze] %d intervals, window %s to %s (%.1fms)",
		result.Summary.Intervals,
		result.Summary.Window.Start.Format(time.RFC3339),
		result.Summary.Window.End.Format(time.RFC3339),
		float64(time.Since(started).Microseconds())/1000)
	return result, true
}

func (h *AnalyzeHandler) parseParams(c *gin.Context) (model.Params, error) {
	maxPower, err := parseFormFloat(c, "max_power_kw")
	if err != nil {
		return model.Params{}, err
	}
	tariff, err := parseFormFloat(c, "tariff_ct_per_kwh")
	if err != nil {
		return model.Params{}, err
	}
	p := model.Params{MaxPowerKW: maxPower, TariffCtPerKWh: tariff}
	return p, p.Validate()
}

func parseFormFloat(c *gin.Context, field string) (float64, error) {
	raw := c.PostForm(field)
	if raw == "" {
		return 0, fmt.Errorf("%s form field is required", field)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s is not a number: %q", field, raw)
	}
	return v, nil
}

// loadUpload fetches one multipart file and parses it, going through the
// content-addressed cache so re-uploads of identical bytes skip the parse.
func (h *AnalyzeHandler) loadUpload(c *gin.Context, field string) (model.TimeSeries, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		h.fail(c, http.StatusBadRequest, "MISSING_FILE",
			fmt.Errorf("%s upload is required", field), nil)
		return nil, false
	}
	raw, err := readUpload(fh)
	if err != nil {
		h.fail(c, http.StatusBadRequest, loader.CodeUnreadableFile, err, nil)
		return nil, false
	}

	key := loader.Fingerprint(raw)
	if series, ok := h.cache.Get(key); ok {
		h.collector.LoaderCacheHits.Inc()
		return series, true
	}
	h.collector.LoaderCacheMiss.Inc()

	series, err := loader.Load(raw, fh.Filename, h.cfg.LoaderOptions())
	if err != nil {
		var le *loader.LoadError
		if errors.As(err, &le) {
			h.fail(c, http.StatusBadRequest, le.Code, err, map[string]interface{}{"file": fh.Filename})
			return nil, false
		}
		h.fail(c, http.StatusBadRequest, "LOAD_ERROR", err, nil)
		return nil, false
	}
	h.cache.Set(key, series)
	return series, true
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("could not open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *AnalyzeHandler) fail(c *gin.Context, status int, code string, err error, details map[string]interface{}) {
	h.collector.AnalysesTotal.WithLabelValues(code).Inc()
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: err.Error(), Details: details},
	})
}
