package stats

import "sort"

// VitalCutoff is the cumulative-percentage threshold separating the vital
// few causes from the trivial many.
const VitalCutoff = 80.0

// Cause is one input category for a Pareto analysis.
type Cause struct {
	Name      string  `json:"name"`
	Frequency float64 `json:"frequency"`
}

// ParetoItem is one ranked row of the analysis.
type ParetoItem struct {
	Name              string  `json:"name"`
	Frequency         float64 `json:"frequency"`
	Percent           float64 `json:"percent"`
	CumulativePercent float64 `json:"cumulative_percent"`
	Vital             bool    `json:"vital"`
}

// ParetoResult is the ranked cause list plus the vital-few subset.
type ParetoResult struct {
	Items       []ParetoItem `json:"items"`
	VitalCauses []string     `json:"vital_causes"`
}

// Pareto ranks causes by descending frequency and marks the causes whose
// cumulative share stays within VitalCutoff.
func Pareto(causes []Cause) (ParetoResult, error) {
	if len(causes) == 0 {
		return ParetoResult{}, ErrNoData
	}

	ranked := make([]Cause, len(causes))
	copy(ranked, causes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Frequency > ranked[j].Frequency
	})

	var total float64
	for _, c := range ranked {
		total += c.Frequency
	}
	if total == 0 {
		return ParetoResult{}, ErrNoData
	}

	res := ParetoResult{Items: make([]ParetoItem, 0, len(ranked))}
	var cumulative float64
	for _, c := range ranked {
		cumulative += c.Frequency
		item := ParetoItem{
			Name:              c.Name,
			Frequency:         c.Frequency,
			Percent:           c.Frequency / total * 100,
			CumulativePercent: cumulative / total * 100,
		}
		item.Vital = item.CumulativePercent <= VitalCutoff
		if item.Vital {
			res.VitalCauses = append(res.VitalCauses, c.Name)
		}
		res.Items = append(res.Items, item)
	}
	return res, nil
}
