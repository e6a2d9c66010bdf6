package stats

import "errors"

// ErrNoSpecLimits is returned when neither specification limit is given.
var ErrNoSpecLimits = errors.New("stats: at least one specification limit is required")

// ErrZeroSpread is returned when the sample has no variation, which makes
// capability indices undefined.
var ErrZeroSpread = errors.New("stats: sample standard deviation is zero")

// Capability rating thresholds.
const (
	CapabilityCapable  = 1.33
	CapabilityMarginal = 1.0
)

// CapabilityResult holds process capability indices for a sample against
// specification limits. Cp is only defined with both limits.
type CapabilityResult struct {
	Mean   float64  `json:"mean"`
	StdDev float64  `json:"std_dev"`
	Cp     *float64 `json:"cp,omitempty"`
	Cpk    float64  `json:"cpk"`
	Rating string   `json:"rating"`
}

// ProcessCapability computes Cp/Cpk. lsl and usl are optional; pass nil for
// a one-sided study.
func ProcessCapability(data []float64, lsl, usl *float64) (CapabilityResult, error) {
	if lsl == nil && usl == nil {
		return CapabilityResult{}, ErrNoSpecLimits
	}

	s, err := Describe(data)
	if err != nil {
		return CapabilityResult{}, err
	}
	if s.StdDev == 0 {
		return CapabilityResult{}, ErrZeroSpread
	}

	res := CapabilityResult{Mean: s.Mean, StdDev: s.StdDev}

	switch {
	case lsl != nil && usl != nil:
		cp := (*usl - *lsl) / (6 * s.StdDev)
		res.Cp = &cp
		cpu := (*usl - s.Mean) / (3 * s.StdDev)
		cpl := (s.Mean - *lsl) / (3 * s.StdDev)
		res.Cpk = min(cpu, cpl)
	case usl != nil:
		res.Cpk = (*usl - s.Mean) / (3 * s.StdDev)
	default:
		res.Cpk = (s.Mean - *lsl) / (3 * s.StdDev)
	}

	res.Rating = rateCapability(res.Cpk)
	return res, nil
}

func rateCapability(cpk float64) string {
	switch {
	case cpk >= CapabilityCapable:
		return "capable"
	case cpk >= CapabilityMarginal:
		return "marginal"
	default:
		return "incapable"
	}
}
