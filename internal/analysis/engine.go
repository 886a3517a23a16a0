package analysis

import (
	"fmt"
	"time"

	"pv-clipping/internal/model"
)

// DefaultMatchTolerance is the nearest-neighbor window used when the two
// series share no exact timestamps: one quarter-hour.
const DefaultMatchTolerance = 15 * time.Minute

// Policy pins down the behaviors that vary across observed implementations
// of this calculation. Both knobs are explicit so a run is reproducible.
type Policy struct {
	// ZeroPriceEligible controls the tariff threshold: when true the EEG
	// tariff is paid at a market price of exactly zero (price >= 0),
	// when false only at strictly positive prices.
	ZeroPriceEligible bool
	// MatchTolerance bounds nearest-neighbor alignment. Zero means
	// DefaultMatchTolerance.
	MatchTolerance time.Duration
}

// DefaultPolicy matches the reference behavior: inclusive zero threshold,
// quarter-hour tolerance.
func DefaultPolicy() Policy {
	return Policy{ZeroPriceEligible: true, MatchTolerance: DefaultMatchTolerance}
}

// Engine turns two aligned series plus parameters into clipping and EEG
// economics. It is a pure function of its inputs; Run holds no state
// between invocations.
type Engine struct {
	policy Policy
}

func New(policy Policy) *Engine {
	if policy.MatchTolerance <= 0 {
		policy.MatchTolerance = DefaultMatchTolerance
	}
	return &Engine{policy: policy}
}

func (e *Engine) Policy() Policy { return e.policy }

// Run aligns the PV and price series and computes all derived series and
// scalar metrics.
//
// The PV series is energy per 15-minute interval (kWh), so instantaneous
// power is energy*4; clipping caps that power and the clipped energy is
// power/4. Prices arrive in EUR/MWh and are converted to ct/kWh (/10).
func (e *Engine) Run(pv, price model.TimeSeries, params model.Params) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(pv) == 0 {
		return nil, fmt.Errorf("pv series is empty")
	}
	if len(price) == 0 {
		return nil, fmt.Errorf("price series is empty")
	}

	pvA, priceA, err := Align(pv, price, e.policy.MatchTolerance)
	if err != nil {
		return nil, err
	}

	rows := make([]IntervalRow, len(pvA))
	var (
		eegCt        float64
		lostCt       float64
		curtailed    int
		generatedKWh float64
		lostKWh      float64
		pvTotalKWh   float64
	)

	for i := range pvA {
		energy := pvA[i].Value
		powerKW := energy * 4
		clippedKW := powerKW
		if clippedKW > params.MaxPowerKW {
			clippedKW = params.MaxPowerKW
		}
		clippedKWh := clippedKW / 4
		lost := energy - clippedKWh

		priceMWh := priceA[i].Value
		priceCt := priceMWh / 10

		payment := 0.0
		if priceCt > 0 || (priceCt == 0 && e.policy.ZeroPriceEligible) {
			payment = clippedKWh * params.TariffCtPerKWh
		}
		isCurtailed := energy > 0 && priceCt < 0

		rows[i] = IntervalRow{
			Index:            i,
			Timestamp:        pvA[i].Timestamp,
			PVEnergyKWh:      energy,
			PowerKW:          powerKW,
			ClippedPowerKW:   clippedKW,
			ClippedEnergyKWh: clippedKWh,
			LostEnergyKWh:    lost,
			PriceEurPerMWh:   priceMWh,
			PriceCtPerKWh:    priceCt,
			EEGPaymentCt:     payment,
			Curtailed:        isCurtailed,
		}

		eegCt += payment
		lostCt += lost * params.TariffCtPerKWh
		if isCurtailed {
			curtailed++
		}
		generatedKWh += clippedKWh
		lostKWh += lost
		pvTotalKWh += energy
	}

	lossPct := 0.0
	if pvTotalKWh > 0 {
		lossPct = lostKWh / pvTotalKWh * 100
	}

	return &Result{
		Params: params,
		Rows:   rows,
		Summary: Summary{
			TotalEEGRevenueEur: eegCt / 100,
			LostRevenueEur:     lostCt / 100,
			CurtailmentHours:   float64(curtailed) / 4,
			TotalGeneratedKWh:  generatedKWh,
			TotalLostKWh:       lostKWh,
			LossPercent:        lossPct,
			Window: TimeWindow{
				Start: pvA[0].Timestamp,
				End:   pvA[len(pvA)-1].Timestamp,
			},
			Intervals: len(rows),
		},
	}, nil
}
