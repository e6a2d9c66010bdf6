package stats

// ControlChart holds the limits of an individuals control chart: the center
// line with one, two and three sigma zones.
type ControlChart struct {
	Center       float64 `json:"center"`
	Sigma        float64 `json:"sigma"`
	UCL          float64 `json:"ucl"`
	LCL          float64 `json:"lcl"`
	ZoneA        float64 `json:"zone_a"` // center +/- 2..3 sigma
	ZoneB        float64 `json:"zone_b"` // center +/- 1..2 sigma
	OutOfControl []int   `json:"out_of_control"`
}

// IndividualsChart computes 3-sigma control limits for an individuals chart
// and flags the indices of points beyond them.
func IndividualsChart(data []float64) (ControlChart, error) {
	s, err := Describe(data)
	if err != nil {
		return ControlChart{}, err
	}

	chart := ControlChart{
		Center: s.Mean,
		Sigma:  s.StdDev,
		UCL:    s.Mean + 3*s.StdDev,
		LCL:    s.Mean - 3*s.StdDev,
		ZoneA:  2 * s.StdDev,
		ZoneB:  s.StdDev,
	}

	for i, v := range data {
		if v > chart.UCL || v < chart.LCL {
			chart.OutOfControl = append(chart.OutOfControl, i)
		}
	}
	return chart, nil
}

// InControl reports whether the chart has no points beyond the limits.
func (c ControlChart) InControl() bool {
	return len(c.OutOfControl) == 0
}
