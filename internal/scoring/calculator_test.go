package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func allMetrics(v float64) ImpactMetrics {
	return ImpactMetrics{
		Material: MaterialImpact{CO2: v, Water: v, Energy: v, Chemical: v},
		Care:     CareImpact{CO2: v, Water: v, Energy: v},
		Origin:   OriginImpact{Grid: v, Transport: v, Manufacturing: v},
	}
}

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name          string
		metrics       ImpactMetrics
		bonus         float64
		expectedEnv   float64
		expectedFinal int
	}{
		{
			name:          "all zero impacts give perfect score",
			metrics:       allMetrics(0),
			bonus:         0,
			expectedEnv:   100,
			expectedFinal: 100,
		},
		{
			name:          "all max impacts give zero score",
			metrics:       allMetrics(100),
			bonus:         0,
			expectedEnv:   0,
			expectedFinal: 0,
		},
		{
			name:          "uniform midpoint",
			metrics:       allMetrics(50),
			bonus:         0,
			expectedEnv:   50,
			expectedFinal: 50,
		},
		{
			name:          "bonus adds to final score",
			metrics:       allMetrics(50),
			bonus:         10,
			expectedEnv:   50,
			expectedFinal: 60,
		},
		{
			name:          "bonus never pushes final above 100",
			metrics:       allMetrics(10),
			bonus:         500,
			expectedEnv:   90,
			expectedFinal: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ComputeScore(tt.metrics, tt.bonus)
			assert.Equal(t, tt.expectedEnv, res.EnvironmentalScore)
			assert.Equal(t, tt.expectedFinal, res.FinalScore)
		})
	}
}

func TestOverallImpact_EqualPerMetricWeighting(t *testing.T) {
	// Three origin metrics at 100 out of ten metrics total: each metric
	// weighs 1/10, so the category's small size does not up-weight it.
	m := ImpactMetrics{
		Origin: OriginImpact{Grid: 100, Transport: 100, Manufacturing: 100},
	}

	assert.Equal(t, 30.0, OverallImpact(m))

	res := ComputeScore(m, 0)
	assert.Equal(t, 70.0, res.EnvironmentalScore)
	assert.Equal(t, 70, res.FinalScore)
}

func TestCategoryAverages(t *testing.T) {
	m := ImpactMetrics{
		Material: MaterialImpact{CO2: 10, Water: 20, Energy: 30, Chemical: 40},
		Care:     CareImpact{CO2: 30, Water: 60, Energy: 90},
		Origin:   OriginImpact{Grid: 15, Transport: 45, Manufacturing: 75},
	}

	res := ComputeScore(m, 0)
	assert.Equal(t, 25.0, res.Categories.Material)
	assert.Equal(t, 60.0, res.Categories.Care)
	assert.Equal(t, 45.0, res.Categories.Origin)
}

func TestComputeScore_FinalNeverNegative(t *testing.T) {
	// Out-of-range metrics are rejected at the boundary, but the clamp on
	// the final score still holds for permissive callers.
	m := allMetrics(100)
	m.Material.CO2 = 150

	res := ComputeScore(m, 0)
	assert.Equal(t, 0, res.FinalScore)
}

func TestValidateMetrics(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*ImpactMetrics, *float64)
		expectedField string
	}{
		{
			name:   "well-formed input passes",
			mutate: func(m *ImpactMetrics, b *float64) {},
		},
		{
			name:          "NaN metric rejected",
			mutate:        func(m *ImpactMetrics, b *float64) { m.Care.Water = math.NaN() },
			expectedField: "care_impact.water",
		},
		{
			name:          "infinite metric rejected",
			mutate:        func(m *ImpactMetrics, b *float64) { m.Origin.Grid = math.Inf(1) },
			expectedField: "origin_impact.grid",
		},
		{
			name:          "out of range metric rejected",
			mutate:        func(m *ImpactMetrics, b *float64) { m.Material.CO2 = 130 },
			expectedField: "material_impact.co2",
		},
		{
			name:          "negative metric rejected",
			mutate:        func(m *ImpactMetrics, b *float64) { m.Material.Water = -5 },
			expectedField: "material_impact.water",
		},
		{
			name:          "negative bonus rejected",
			mutate:        func(m *ImpactMetrics, b *float64) { *b = -1 },
			expectedField: "certification_bonus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := allMetrics(50)
			bonus := 5.0
			tt.mutate(&m, &bonus)

			problems := ValidateMetrics(m, bonus)
			if tt.expectedField == "" {
				assert.Empty(t, problems)
			} else {
				assert.Contains(t, problems, tt.expectedField)
			}
		})
	}
}
