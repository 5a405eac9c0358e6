package catalog

import "github.com/lmcassidy/Quantifying-sustainability-in-fashion/internal/scoring"

// Reference fibre impact values per unit of material. Sourced from the same
// LCA reference data the normalization bounds come from.
var (
	fibreHemp              = scoring.FibreComponent{Name: "hemp", CO2: 1.8, Water: 80, Energy: 20, Chemical: 8}
	fibreOrganicCotton     = scoring.FibreComponent{Name: "organic cotton", CO2: 3.8, Water: 1800, Energy: 54, Chemical: 16}
	fibreCotton            = scoring.FibreComponent{Name: "cotton", CO2: 5.9, Water: 2700, Energy: 60, Chemical: 30}
	fibreRecycledPolyester = scoring.FibreComponent{Name: "recycled polyester", CO2: 2.3, Water: 20, Energy: 45, Chemical: 12}
	fibrePolyester         = scoring.FibreComponent{Name: "polyester", CO2: 9.5, Water: 60, Energy: 125, Chemical: 25}
	fibreWool              = scoring.FibreComponent{Name: "wool", CO2: 20.0, Water: 500, Energy: 120, Chemical: 40}
	fibreCashmere          = scoring.FibreComponent{Name: "cashmere", CO2: 30.0, Water: 900, Energy: 200, Chemical: 60}
	fibreLinen             = scoring.FibreComponent{Name: "linen", CO2: 2.1, Water: 650, Energy: 25, Chemical: 10}
)

func blend(f scoring.FibreComponent, pct float64) scoring.FibreComponent {
	f.Percentage = pct
	return f
}

// Care profiles: machine wash cold, machine wash warm, hand wash, dry clean.
var (
	careMachineCold = [3]float64{0.06, 12, 0.8}  // co2 kg, water L, energy MJ
	careMachineWarm = [3]float64{0.12, 15, 1.6}
	careHandWash    = [3]float64{0.015, 8, 0.2}
	careDryClean    = [3]float64{0.25, 0.5, 3.5}
)

func impacts(fibres []scoring.FibreComponent, care [3]float64, grid, transport, manufacturing float64) scoring.RawImpacts {
	return scoring.RawImpacts{
		Fibres:              fibres,
		CareCO2:             care[0],
		CareWater:           care[1],
		CareEnergy:          care[2],
		OriginGrid:          grid,
		OriginTransport:     transport,
		OriginManufacturing: manufacturing,
	}
}

// sampleProducts is the bundled demo dataset loaded on first run.
var sampleProducts = []ProductInput{
	{
		Brand: "Verdant", Name: "Hemp crew tee", Price: 38, Category: "Tops", Subcategory: "T-shirts",
		Raw:        impacts([]scoring.FibreComponent{blend(fibreHemp, 100)}, careMachineCold, 0.22, 0.18, 0.25),
		Cert1Bonus: 5, Cert2Bonus: 3,
	},
	{
		Brand: "Verdant", Name: "Organic cotton oxford shirt", Price: 72, Category: "Tops", Subcategory: "Shirts",
		Raw:        impacts([]scoring.FibreComponent{blend(fibreOrganicCotton, 100)}, careMachineCold, 0.30, 0.25, 0.35),
		Cert1Bonus: 5,
	},
	{
		Brand: "Northloom", Name: "Classic cotton jeans", Price: 89, Category: "Bottoms", Subcategory: "Jeans",
		Raw: impacts([]scoring.FibreComponent{blend(fibreCotton, 98), blend(fibrePolyester, 2)},
			careMachineWarm, 0.55, 0.45, 0.60),
	},
	{
		Brand: "Northloom", Name: "Recycled shell jacket", Price: 149, Category: "Outerwear", Subcategory: "Jackets",
		Raw: impacts([]scoring.FibreComponent{blend(fibreRecycledPolyester, 85), blend(fibrePolyester, 15)},
			careMachineCold, 0.40, 0.55, 0.45),
		Cert1Bonus: 4,
	},
	{
		Brand: "Atelier Lune", Name: "Cashmere sweater", Price: 320, Category: "Knitwear", Subcategory: "Sweaters",
		Raw: impacts([]scoring.FibreComponent{blend(fibreCashmere, 100)}, careDryClean, 0.70, 0.65, 0.75),
	},
	{
		Brand: "Atelier Lune", Name: "Merino wool cardigan", Price: 180, Category: "Knitwear", Subcategory: "Cardigans",
		Raw: impacts([]scoring.FibreComponent{blend(fibreWool, 100)}, careHandWash, 0.50, 0.60, 0.55),
		Cert2Bonus: 3,
	},
	{
		Brand: "Coastline", Name: "Linen summer dress", Price: 110, Category: "Dresses", Subcategory: "Casual",
		Raw: impacts([]scoring.FibreComponent{blend(fibreLinen, 92), blend(fibreCotton, 8)},
			careHandWash, 0.28, 0.30, 0.30),
		Cert1Bonus: 5,
	},
	{
		Brand: "Coastline", Name: "Polyester rain parka", Price: 95, Category: "Outerwear", Subcategory: "Rainwear",
		Raw: impacts([]scoring.FibreComponent{blend(fibrePolyester, 100)}, careMachineCold, 0.80, 0.72, 0.68),
	},
}
