package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWithBounds(t *testing.T) {
	b := Bounds{Min: 20, Max: 200}

	tests := []struct {
		name     string
		value    float64
		expected float64
	}{
		{"lower bound normalizes to 0", 20, 0},
		{"upper bound normalizes to 100", 200, 100},
		{"midpoint normalizes to 50", 110, 50},
		{"below bounds clamps to 0", 5, 0},
		{"above bounds clamps to 100", 500, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeWithBounds(tt.value, b))
		})
	}
}

func TestNormalizeWithBounds_DegenerateBounds(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeWithBounds(42, Bounds{Min: 7, Max: 7}))
}

func TestWeightedMaterial(t *testing.T) {
	fibres := []FibreComponent{
		{Name: "organic cotton", Percentage: 60, CO2: 4.0, Water: 2000, Energy: 55, Chemical: 18},
		{Name: "recycled polyester", Percentage: 40, CO2: 5.5, Water: 20, Energy: 65, Chemical: 12},
	}

	co2, water, energy, chemical := WeightedMaterial(fibres)
	assert.InDelta(t, 4.6, co2, 1e-9)
	assert.InDelta(t, 1208, water, 1e-9)
	assert.InDelta(t, 59, energy, 1e-9)
	assert.InDelta(t, 15.6, chemical, 1e-9)
}

func TestNormalize(t *testing.T) {
	raw := RawImpacts{
		Fibres: []FibreComponent{
			{Name: "hemp", Percentage: 100, CO2: 1.8, Water: 20, Energy: 20, Chemical: 8},
		},
		CareCO2:             0.25,
		CareWater:           15,
		CareEnergy:          3.5,
		OriginGrid:          0.3,
		OriginTransport:     1.0,
		OriginManufacturing: 1.4, // out of range, clamps
	}

	m := Normalize(raw)

	// Hemp sits at the lower bound of every material dimension.
	assert.Equal(t, 0.0, m.Material.CO2)
	assert.Equal(t, 0.0, m.Material.Water)
	assert.Equal(t, 0.0, m.Material.Energy)
	assert.Equal(t, 0.0, m.Material.Chemical)

	// Care values at the upper bound hit 100.
	assert.Equal(t, 100.0, m.Care.CO2)
	assert.Equal(t, 100.0, m.Care.Water)
	assert.Equal(t, 100.0, m.Care.Energy)

	// Origin indices rescale from [0,1] with clamping.
	assert.InDelta(t, 30.0, m.Origin.Grid, 1e-9)
	assert.Equal(t, 100.0, m.Origin.Transport)
	assert.Equal(t, 100.0, m.Origin.Manufacturing)
}
