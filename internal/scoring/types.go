package scoring

// MaterialImpact holds the four material-phase impact metrics, each a
// normalized percentage in [0,100] where higher means more environmental cost.
type MaterialImpact struct {
	CO2      float64 `json:"co2"`
	Water    float64 `json:"water"`
	Energy   float64 `json:"energy"`
	Chemical float64 `json:"chemical"`
}

// CareImpact holds the three care-phase (washing/drying) impact metrics.
type CareImpact struct {
	CO2    float64 `json:"co2"`
	Water  float64 `json:"water"`
	Energy float64 `json:"energy"`
}

// OriginImpact holds the three manufacturing-origin impact metrics.
type OriginImpact struct {
	Grid          float64 `json:"grid"`
	Transport     float64 `json:"transport"`
	Manufacturing float64 `json:"manufacturing"`
}

// ImpactMetrics groups all ten impact metrics for one garment.
type ImpactMetrics struct {
	Material MaterialImpact `json:"material_impact"`
	Care     CareImpact     `json:"care_impact"`
	Origin   OriginImpact   `json:"origin_impact"`
}

// CategoryAverages holds the per-category sub-averages of the impact metrics.
type CategoryAverages struct {
	Material float64 `json:"material"`
	Care     float64 `json:"care"`
	Origin   float64 `json:"origin"`
}

// ScoreResult is the output of the score calculator.
type ScoreResult struct {
	FinalScore         int              `json:"final_score"`
	EnvironmentalScore float64          `json:"environmental_score"`
	CertificationBonus float64          `json:"certification_bonus"`
	OverallImpact      float64          `json:"overall_impact"`
	Categories         CategoryAverages `json:"categories"`
}
