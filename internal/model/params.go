package model

import "fmt"

// Params are the two user-supplied scalars of an analysis run.
type Params struct {
	// MaxPowerKW is the inverter power ceiling applied to instantaneous PV power.
	MaxPowerKW float64 `json:"max_power_kw"`
	// TariffCtPerKWh is the fixed EEG feed-in price paid per kWh of
	// deliverable (clipped) energy while the market price is eligible.
	TariffCtPerKWh float64 `json:"tariff_ct_per_kwh"`
}

// Validate rejects parameters that violate their non-negativity constraints.
// This runs at the boundary, before any series is loaded or aligned.
func (p Params) Validate() error {
	if p.MaxPowerKW < 0 {
		return fmt.Errorf("max_power_kw must be >= 0, got %v", p.MaxPowerKW)
	}
	if p.TariffCtPerKWh < 0 {
		return fmt.Errorf("tariff_ct_per_kwh must be >= 0, got %v", p.TariffCtPerKWh)
	}
	return nil
}
