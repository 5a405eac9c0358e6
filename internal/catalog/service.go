package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lmcassidy/Quantifying-sustainability-in-fashion/internal/database"
	"github.com/lmcassidy/Quantifying-sustainability-in-fashion/internal/scoring"
)

// ErrNotFound is returned when a product id has no catalog entry.
var ErrNotFound = errors.New("product not found")

// ProductInput describes a garment to ingest into the catalog.
type ProductInput struct {
	Brand       string             `json:"brand"`
	Name        string             `json:"product_name"`
	Price       float64            `json:"price"`
	Category    string             `json:"category"`
	Subcategory string             `json:"subcategory"`
	Raw         scoring.RawImpacts `json:"impacts"`
	Cert1Bonus  float64            `json:"cert1_bonus"`
	Cert2Bonus  float64            `json:"cert2_bonus"`
}

// ProductBreakdown is the detail view: summary plus the expandable breakdown.
type ProductBreakdown struct {
	Product   database.ProductSummary `json:"product"`
	Breakdown scoring.BreakdownView   `json:"breakdown"`
}

// ListResponse is the paginated browse response.
type ListResponse struct {
	Products []database.ProductSummary `json:"products"`
	Total    int                       `json:"total"`
	Limit    int                       `json:"limit"`
	Offset   int                       `json:"offset"`
}

// Service scores and serves the product catalog.
type Service struct {
	repo *database.Repository
}

// NewService creates a catalog service over the given repository.
func NewService(repo *database.Repository) *Service {
	return &Service{repo: repo}
}

// Ingest normalizes a product's raw impacts, scores it, and stores both.
// Scores are computed once at ingest so browse endpoints never recompute.
func (s *Service) Ingest(input ProductInput) (*database.ProductSummary, error) {
	product := database.NewProduct(input.Brand, input.Name, input.Category, input.Subcategory, input.Price, input.Raw)
	product.Cert1Bonus = input.Cert1Bonus
	product.Cert2Bonus = input.Cert2Bonus

	metrics := scoring.Normalize(input.Raw)
	result := scoring.ComputeScore(metrics, product.CertificationTotal())

	if err := s.repo.InsertProduct(product); err != nil {
		return nil, fmt.Errorf("ingest %q: %w", input.Name, err)
	}

	score := &database.ProductScore{
		ProductID:          product.ID,
		Metrics:            metrics,
		EnvironmentalScore: result.EnvironmentalScore,
		CertificationBonus: result.CertificationBonus,
		FinalScore:         result.FinalScore,
	}
	if err := s.repo.UpsertScore(score); err != nil {
		return nil, fmt.Errorf("score %q: %w", input.Name, err)
	}

	slog.Info("Product ingested",
		"product", input.Name,
		"brand", input.Brand,
		"final_score", result.FinalScore)

	return &database.ProductSummary{
		ID:                 product.ID,
		Brand:              product.Brand,
		Name:               product.Name,
		Price:              product.Price,
		Category:           product.Category,
		Subcategory:        product.Subcategory,
		EnvironmentalScore: result.EnvironmentalScore,
		CertificationBonus: result.CertificationBonus,
		FinalScore:         result.FinalScore,
	}, nil
}

// List returns a page of scored products, optionally filtered by category.
// Limit is clamped to [1,100], default 20. Total counts the products matching
// the filter, not the page.
func (s *Service) List(limit, offset int, category string) (*ListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.repo.ListProducts(limit, offset, category)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CountProducts(category)
	if err != nil {
		return nil, err
	}

	return &ListResponse{
		Products: products,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

// Get returns one product summary.
func (s *Service) Get(id string) (*database.ProductSummary, error) {
	summary, err := s.repo.GetProduct(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// Breakdown returns the detail view with the expandable breakdown built
// from the product's stored metrics.
func (s *Service) Breakdown(id string) (*ProductBreakdown, error) {
	summary, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	score, err := s.repo.GetScore(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	view := scoring.BuildBreakdown(score.Metrics, score.CertificationBonus)

	return &ProductBreakdown{
		Product:   *summary,
		Breakdown: view,
	}, nil
}

// Categories lists the distinct categories in the catalog.
func (s *Service) Categories() ([]string, error) {
	return s.repo.ListCategories()
}

// SeedIfEmpty loads the bundled sample dataset when the catalog has no
// products yet, so the demo UI has something to browse on first run.
func (s *Service) SeedIfEmpty() error {
	count, err := s.repo.CountProducts("")
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, input := range sampleProducts {
		if _, err := s.Ingest(input); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	slog.Info("Catalog seeded with sample dataset", "products", len(sampleProducts))
	return nil
}
