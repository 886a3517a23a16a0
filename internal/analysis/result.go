package analysis

import (
	"time"

	"pv-clipping/internal/model"
)

// IntervalRow is one quarter-hour of derived output. This is the primary
// artifact for "what happened" in an analysis run.
type IntervalRow struct {
	Index int `json:"index"`

	Timestamp time.Time `json:"timestamp"`

	PVEnergyKWh float64 `json:"pv_energy_kwh"`
	PowerKW     float64 `json:"power_kw"`

	ClippedPowerKW   float64 `json:"clipped_power_kw"`
	ClippedEnergyKWh float64 `json:"clipped_energy_kwh"`
	LostEnergyKWh    float64 `json:"lost_energy_kwh"`

	PriceEurPerMWh float64 `json:"price_eur_per_mwh"`
	PriceCtPerKWh  float64 `json:"price_ct_per_kwh"`

	// EEGPaymentCt is the tariff paid on the deliverable energy of this
	// interval, zero while the market price is ineligible.
	EEGPaymentCt float64 `json:"eeg_payment_ct"`

	// Curtailed marks generation during negative prices.
	Curtailed bool `json:"curtailed"`
}

// TimeWindow is the aligned time domain of one run.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Summary holds the six scalar metrics plus run metadata.
type Summary struct {
	TotalEEGRevenueEur float64 `json:"total_eeg_revenue_eur"`
	LostRevenueEur     float64 `json:"lost_revenue_eur"`
	CurtailmentHours   float64 `json:"curtailment_hours"`
	TotalGeneratedKWh  float64 `json:"total_generated_kwh"`
	TotalLostKWh       float64 `json:"total_lost_kwh"`
	LossPercent        float64 `json:"loss_percent"`

	Window    TimeWindow `json:"window"`
	Intervals int        `json:"intervals"`
}

// Result is the full output of one analysis run. It is owned by the caller;
// the engine keeps nothing between runs.
type Result struct {
	Params  model.Params  `json:"params"`
	Rows    []IntervalRow `json:"rows"`
	Summary Summary       `json:"summary"`
}
