package scoring

// Color band thresholds for metric bars. A value sits in the lowest band
// whose threshold it does not exceed; >80 falls in the last band.
var bandThresholds = [4]float64{20, 40, 60, 80}

var bandColors = [5]string{"green", "lime", "yellow", "orange", "red"}

// BandFor buckets a metric value into one of five color bands. Thresholds
// are inclusive: exactly 20.0 is still green, 20.1 is lime.
func BandFor(value float64) string {
	for i, limit := range bandThresholds {
		if value <= limit {
			return bandColors[i]
		}
	}
	return bandColors[4]
}

// MetricBar is one rendered impact bar in the breakdown view.
type MetricBar struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Value float64 `json:"value"` // rounded to 1 decimal
	Width float64 `json:"width"` // bar width in percent, capped at 100
	Band  string  `json:"band"`
}

// CategoryBreakdown groups a category's bars with its sub-average.
type CategoryBreakdown struct {
	Name    string      `json:"name"`
	Label   string      `json:"label"`
	Average float64     `json:"average"`
	Band    string      `json:"band"`
	Metrics []MetricBar `json:"metrics"`
}

// BreakdownView is the full view model for the expandable breakdown UI.
type BreakdownView struct {
	FinalScore         int                 `json:"final_score"`
	EnvironmentalScore float64             `json:"environmental_score"`
	CertificationBonus float64             `json:"certification_bonus"`
	OverallImpact      float64             `json:"overall_impact"`
	Categories         []CategoryBreakdown `json:"categories"`
	Formula            string              `json:"formula"`
}

const formulaExplanation = "environmental score = 100 − average of all ten impact metrics; " +
	"final score = min(100, environmental score + certification bonus)"

func bar(name, label string, value float64) MetricBar {
	v := round1(value)
	return MetricBar{
		Name:  name,
		Label: label,
		Value: v,
		Width: clamp(v, 0, 100),
		Band:  BandFor(v),
	}
}

// BuildBreakdown formats a scored garment for display. Pure presentation:
// the same inputs always produce the same view.
func BuildBreakdown(m ImpactMetrics, certBonus float64) BreakdownView {
	res := ComputeScore(m, certBonus)

	material := CategoryBreakdown{
		Name:    "material",
		Label:   "Material production",
		Average: res.Categories.Material,
		Band:    BandFor(res.Categories.Material),
		Metrics: []MetricBar{
			bar("co2", "CO2 emissions", m.Material.CO2),
			bar("water", "Water use", m.Material.Water),
			bar("energy", "Energy use", m.Material.Energy),
			bar("chemical", "Chemical load", m.Material.Chemical),
		},
	}

	care := CategoryBreakdown{
		Name:    "care",
		Label:   "Garment care",
		Average: res.Categories.Care,
		Band:    BandFor(res.Categories.Care),
		Metrics: []MetricBar{
			bar("co2", "CO2 emissions", m.Care.CO2),
			bar("water", "Water use", m.Care.Water),
			bar("energy", "Energy use", m.Care.Energy),
		},
	}

	origin := CategoryBreakdown{
		Name:    "origin",
		Label:   "Manufacturing origin",
		Average: res.Categories.Origin,
		Band:    BandFor(res.Categories.Origin),
		Metrics: []MetricBar{
			bar("grid", "Grid intensity", m.Origin.Grid),
			bar("transport", "Transport", m.Origin.Transport),
			bar("manufacturing", "Manufacturing", m.Origin.Manufacturing),
		},
	}

	return BreakdownView{
		FinalScore:         res.FinalScore,
		EnvironmentalScore: res.EnvironmentalScore,
		CertificationBonus: res.CertificationBonus,
		OverallImpact:      res.OverallImpact,
		Categories:         []CategoryBreakdown{material, care, origin},
		Formula:            formulaExplanation,
	}
}
