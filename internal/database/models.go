package database

import (
	"time"

	"github.com/google/uuid"

	"github.com/lmcassidy/Quantifying-sustainability-in-fashion/internal/scoring"
)

// Product is a catalog garment with its raw impact values.
type Product struct {
	ID          string             `json:"id" db:"id"`
	Brand       string             `json:"brand" db:"brand"`
	Name        string             `json:"product_name" db:"product_name"`
	Price       float64            `json:"price" db:"price"`
	Category    string             `json:"category" db:"category"`
	Subcategory string             `json:"subcategory" db:"subcategory"`
	Raw         scoring.RawImpacts `json:"-" db:"-"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" db:"updated_at"`

	Cert1Bonus float64 `json:"-" db:"cert1_bonus"`
	Cert2Bonus float64 `json:"-" db:"cert2_bonus"`
}

// CertificationTotal sums the product's certification bonuses.
func (p *Product) CertificationTotal() float64 {
	return p.Cert1Bonus + p.Cert2Bonus
}

// ProductScore is the stored result of scoring one product.
type ProductScore struct {
	ProductID          string                `json:"product_id"`
	Metrics            scoring.ImpactMetrics `json:"metrics"`
	EnvironmentalScore float64               `json:"environmental_score"`
	CertificationBonus float64               `json:"certification_bonus"`
	FinalScore         int                   `json:"final_score"`
	CreatedAt          time.Time             `json:"created_at"`
}

// ProductSummary is the browse view of a scored product.
type ProductSummary struct {
	ID                 string  `json:"id"`
	Brand              string  `json:"brand"`
	Name               string  `json:"product_name"`
	Price              float64 `json:"price"`
	Category           string  `json:"category"`
	Subcategory        string  `json:"subcategory"`
	EnvironmentalScore float64 `json:"environmental_score"`
	CertificationBonus float64 `json:"certification_bonus"`
	FinalScore         int     `json:"final_score"`
}

// NewProduct creates a new product with generated ID
func NewProduct(brand, name, category, subcategory string, price float64, raw scoring.RawImpacts) *Product {
	now := time.Now()
	return &Product{
		ID:          uuid.New().String(),
		Brand:       brand,
		Name:        name,
		Price:       price,
		Category:    category,
		Subcategory: subcategory,
		Raw:         raw,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
