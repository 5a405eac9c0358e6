package scoring

// Bounds holds the reference min/max for one raw impact dimension.
type Bounds struct {
	Min float64
	Max float64
}

// ReferenceBounds are fixed normalization bounds derived from reference LCA
// data, so scores stay comparable regardless of catalog size. Material bounds
// assume 100% of a single fibre; weighted blends fall inside them.
var ReferenceBounds = map[string]Bounds{
	"material_co2":      {1.8, 30.0},   // hemp to cashmere, kgCO2e
	"material_water":    {20, 2700},    // recycled polyester to cotton, L
	"material_energy":   {20, 200},     // hemp/recycled cotton to cashmere, MJ
	"material_chemical": {8, 60},       // hemp to cashmere
	"care_co2":          {0.015, 0.25}, // hand wash to dry clean, kg
	"care_water":        {0.5, 15},     // dry clean to machine wash, L
	"care_energy":       {0.2, 3.5},    // hand wash to dry clean, MJ
}

// FibreComponent is one fibre in a garment's composition with its raw
// per-unit LCA impact values.
type FibreComponent struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	CO2        float64 `json:"co2"`
	Water      float64 `json:"water"`
	Energy     float64 `json:"energy"`
	Chemical   float64 `json:"chemical"`
}

// RawImpacts holds a garment's pre-normalization impact values: fibre
// composition for the material phase, raw care values, and origin indices
// already expressed in [0,1].
type RawImpacts struct {
	Fibres []FibreComponent `json:"fibres"`

	CareCO2    float64 `json:"care_co2"`
	CareWater  float64 `json:"care_water"`
	CareEnergy float64 `json:"care_energy"`

	OriginGrid          float64 `json:"origin_grid"`
	OriginTransport     float64 `json:"origin_transport"`
	OriginManufacturing float64 `json:"origin_manufacturing"`
}

// NormalizeWithBounds maps a raw value onto [0,100] using fixed reference
// bounds. Values outside the bounds clamp to the range; degenerate bounds
// (max == min) normalize to 0.
func NormalizeWithBounds(value float64, b Bounds) float64 {
	if b.Max == b.Min {
		return 0
	}
	return clamp((value-b.Min)/(b.Max-b.Min), 0, 1) * 100
}

// WeightedMaterial sums each fibre's impact weighted by its share of the
// garment's composition.
func WeightedMaterial(fibres []FibreComponent) (co2, water, energy, chemical float64) {
	for _, f := range fibres {
		w := f.Percentage / 100
		co2 += f.CO2 * w
		water += f.Water * w
		energy += f.Energy * w
		chemical += f.Chemical * w
	}
	return co2, water, energy, chemical
}

// Normalize converts raw impact values into the ten [0,100] metrics the
// calculator consumes. Origin indices are already impact indices in [0,1]
// and only need rescaling.
func Normalize(raw RawImpacts) ImpactMetrics {
	co2, water, energy, chemical := WeightedMaterial(raw.Fibres)

	return ImpactMetrics{
		Material: MaterialImpact{
			CO2:      NormalizeWithBounds(co2, ReferenceBounds["material_co2"]),
			Water:    NormalizeWithBounds(water, ReferenceBounds["material_water"]),
			Energy:   NormalizeWithBounds(energy, ReferenceBounds["material_energy"]),
			Chemical: NormalizeWithBounds(chemical, ReferenceBounds["material_chemical"]),
		},
		Care: CareImpact{
			CO2:    NormalizeWithBounds(raw.CareCO2, ReferenceBounds["care_co2"]),
			Water:  NormalizeWithBounds(raw.CareWater, ReferenceBounds["care_water"]),
			Energy: NormalizeWithBounds(raw.CareEnergy, ReferenceBounds["care_energy"]),
		},
		Origin: OriginImpact{
			Grid:          clamp(raw.OriginGrid, 0, 1) * 100,
			Transport:     clamp(raw.OriginTransport, 0, 1) * 100,
			Manufacturing: clamp(raw.OriginManufacturing, 0, 1) * 100,
		},
	}
}
