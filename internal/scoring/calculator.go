package scoring

import (
	"fmt"
	"math"
)

// metricCount is the total number of impact metrics across all categories.
const metricCount = 10

// Values returns all ten metrics in a fixed order: material, care, origin.
func (m ImpactMetrics) Values() []float64 {
	return []float64{
		m.Material.CO2, m.Material.Water, m.Material.Energy, m.Material.Chemical,
		m.Care.CO2, m.Care.Water, m.Care.Energy,
		m.Origin.Grid, m.Origin.Transport, m.Origin.Manufacturing,
	}
}

// Average returns the material category sub-average.
func (m MaterialImpact) Average() float64 {
	return (m.CO2 + m.Water + m.Energy + m.Chemical) / 4
}

// Average returns the care category sub-average.
func (c CareImpact) Average() float64 {
	return (c.CO2 + c.Water + c.Energy) / 3
}

// Average returns the origin category sub-average.
func (o OriginImpact) Average() float64 {
	return (o.Grid + o.Transport + o.Manufacturing) / 3
}

// OverallImpact averages all ten metrics with equal per-metric weight, so
// categories with more metrics carry proportionally more weight. Result is
// in [0,100] for well-formed inputs.
func OverallImpact(m ImpactMetrics) float64 {
	sum := 0.0
	for _, v := range m.Values() {
		sum += v
	}
	return sum / metricCount
}

// ComputeScore maps ten impact metrics plus a certification bonus to the
// final sustainability score. The environmental score inverts the overall
// impact; the bonus is additive and the final score is clamped to [0,100].
func ComputeScore(m ImpactMetrics, certBonus float64) ScoreResult {
	impact := OverallImpact(m)
	env := 100 - impact
	final := clamp(env+certBonus, 0, 100)

	return ScoreResult{
		FinalScore:         int(math.Round(final)),
		EnvironmentalScore: round1(env),
		CertificationBonus: round1(certBonus),
		OverallImpact:      round1(impact),
		Categories: CategoryAverages{
			Material: round1(m.Material.Average()),
			Care:     round1(m.Care.Average()),
			Origin:   round1(m.Origin.Average()),
		},
	}
}

// ValidateMetrics checks every metric and the bonus at the API boundary.
// The calculator itself is permissive; callers reject malformed input here
// so NaN never reaches a response body. Returns a field -> message map,
// empty when the input is well-formed.
func ValidateMetrics(m ImpactMetrics, certBonus float64) map[string]string {
	problems := make(map[string]string)

	fields := []struct {
		name  string
		value float64
	}{
		{"material_impact.co2", m.Material.CO2},
		{"material_impact.water", m.Material.Water},
		{"material_impact.energy", m.Material.Energy},
		{"material_impact.chemical", m.Material.Chemical},
		{"care_impact.co2", m.Care.CO2},
		{"care_impact.water", m.Care.Water},
		{"care_impact.energy", m.Care.Energy},
		{"origin_impact.grid", m.Origin.Grid},
		{"origin_impact.transport", m.Origin.Transport},
		{"origin_impact.manufacturing", m.Origin.Manufacturing},
	}

	for _, f := range fields {
		switch {
		case math.IsNaN(f.value) || math.IsInf(f.value, 0):
			problems[f.name] = "must be a finite number"
		case f.value < 0 || f.value > 100:
			problems[f.name] = fmt.Sprintf("must be in [0,100], got %g", f.value)
		}
	}

	switch {
	case math.IsNaN(certBonus) || math.IsInf(certBonus, 0):
		problems["certification_bonus"] = "must be a finite number"
	case certBonus < 0:
		problems["certification_bonus"] = fmt.Sprintf("must be non-negative, got %g", certBonus)
	}

	return problems
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// round1 rounds to one decimal place for display.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
