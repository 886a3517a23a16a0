package models

import (
	"pv-clipping/internal/analysis"
)

// AnalyzeResponse is the JSON result of one analysis run.
type AnalyzeResponse struct {
	Status     string                 `json:"status"`
	Summary    analysis.Summary       `json:"summary"`
	Formatted  FormattedMetrics       `json:"formatted"`
	PriceStats analysis.PriceStats    `json:"price_stats"`
	Charts     analysis.ChartData     `json:"charts"`
	Intervals  []analysis.IntervalRow `json:"intervals,omitempty"`
}

// FormattedMetrics carries the six scalar metrics in display form (locale
// separators, unit suffix). Clients that only render text use these; the
// raw values sit in Summary.
type FormattedMetrics struct {
	TotalEEGRevenue  string `json:"total_eeg_revenue"`
	LostRevenue      string `json:"lost_revenue"`
	CurtailmentHours string `json:"curtailment_hours"`
	TotalGenerated   string `json:"total_generated"`
	TotalLost        string `json:"total_lost"`
	LossPercent      string `json:"loss_percent"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
