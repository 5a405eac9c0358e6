package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository handles database operations
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// InsertProduct stores a product with its fibre composition.
func (r *Repository) InsertProduct(p *Product) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO products (
			id, brand, product_name, price, category, subcategory,
			care_co2, care_water, care_energy,
			origin_grid, origin_transport, origin_manufacturing,
			cert1_bonus, cert2_bonus, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Brand, p.Name, p.Price, p.Category, p.Subcategory,
		p.Raw.CareCO2, p.Raw.CareWater, p.Raw.CareEnergy,
		p.Raw.OriginGrid, p.Raw.OriginTransport, p.Raw.OriginManufacturing,
		p.Cert1Bonus, p.Cert2Bonus, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	for _, f := range p.Raw.Fibres {
		_, err = tx.Exec(`
			INSERT INTO product_fibres (id, product_id, fibre_name, percentage, co2, water, energy, chemical)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), p.ID, f.Name, f.Percentage, f.CO2, f.Water, f.Energy, f.Chemical)
		if err != nil {
			return fmt.Errorf("failed to insert fibre: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product: %w", err)
	}

	return nil
}

// UpsertScore stores or refreshes a product's computed score.
func (r *Repository) UpsertScore(score *ProductScore) error {
	m := score.Metrics
	_, err := r.db.Exec(`
		INSERT INTO product_scores (
			product_id, material_co2, material_water, material_energy, material_chemical,
			care_co2, care_water, care_energy,
			origin_grid, origin_transport, origin_manufacturing,
			environmental_score, certification_bonus, final_score, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(product_id) DO UPDATE SET
			material_co2 = excluded.material_co2,
			material_water = excluded.material_water,
			material_energy = excluded.material_energy,
			material_chemical = excluded.material_chemical,
			care_co2 = excluded.care_co2,
			care_water = excluded.care_water,
			care_energy = excluded.care_energy,
			origin_grid = excluded.origin_grid,
			origin_transport = excluded.origin_transport,
			origin_manufacturing = excluded.origin_manufacturing,
			environmental_score = excluded.environmental_score,
			certification_bonus = excluded.certification_bonus,
			final_score = excluded.final_score,
			created_at = excluded.created_at
	`, score.ProductID,
		m.Material.CO2, m.Material.Water, m.Material.Energy, m.Material.Chemical,
		m.Care.CO2, m.Care.Water, m.Care.Energy,
		m.Origin.Grid, m.Origin.Transport, m.Origin.Manufacturing,
		score.EnvironmentalScore, score.CertificationBonus, score.FinalScore, time.Now())

	if err != nil {
		return fmt.Errorf("failed to upsert score: %w", err)
	}

	return nil
}

// GetProduct returns the browse summary for one product.
func (r *Repository) GetProduct(id string) (*ProductSummary, error) {
	stmt, err := r.db.GetPreparedStatement("get_product")
	if err != nil {
		return nil, err
	}

	var s ProductSummary
	err = stmt.QueryRow(id).Scan(
		&s.ID, &s.Brand, &s.Name, &s.Price, &s.Category, &s.Subcategory,
		&s.EnvironmentalScore, &s.CertificationBonus, &s.FinalScore,
	)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &s, nil
}

// GetScore returns the stored metrics and score for one product.
func (r *Repository) GetScore(productID string) (*ProductScore, error) {
	stmt, err := r.db.GetPreparedStatement("get_score")
	if err != nil {
		return nil, err
	}

	var s ProductScore
	m := &s.Metrics
	err = stmt.QueryRow(productID).Scan(
		&s.ProductID,
		&m.Material.CO2, &m.Material.Water, &m.Material.Energy, &m.Material.Chemical,
		&m.Care.CO2, &m.Care.Water, &m.Care.Energy,
		&m.Origin.Grid, &m.Origin.Transport, &m.Origin.Manufacturing,
		&s.EnvironmentalScore, &s.CertificationBonus, &s.FinalScore,
	)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	return &s, nil
}

// ListProducts returns scored product summaries with pagination and an
// optional case-insensitive category filter.
func (r *Repository) ListProducts(limit, offset int, category string) ([]ProductSummary, error) {
	query := `
		SELECT p.id, p.brand, p.product_name, p.price, p.category, p.subcategory,
			s.environmental_score, s.certification_bonus, s.final_score
		FROM products p JOIN product_scores s ON s.product_id = p.id`
	args := []interface{}{}

	if category != "" {
		query += ` WHERE LOWER(p.category) = LOWER(?)`
		args = append(args, category)
	}

	query += ` ORDER BY s.final_score DESC, p.product_name ASC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	summaries := make([]ProductSummary, 0, limit)
	for rows.Next() {
		var s ProductSummary
		if err := rows.Scan(
			&s.ID, &s.Brand, &s.Name, &s.Price, &s.Category, &s.Subcategory,
			&s.EnvironmentalScore, &s.CertificationBonus, &s.FinalScore,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// ListCategories returns the distinct product categories.
func (r *Repository) ListCategories() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT category FROM products ORDER BY category ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// CountProducts returns the number of products in the catalog, restricted to
// a category (case-insensitive) when one is given.
func (r *Repository) CountProducts(category string) (int, error) {
	var count int

	if category == "" {
		stmt, err := r.db.GetPreparedStatement("count_products")
		if err != nil {
			return 0, err
		}
		if err := stmt.QueryRow().Scan(&count); err != nil {
			return 0, fmt.Errorf("failed to count products: %w", err)
		}
		return count, nil
	}

	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM products WHERE LOWER(category) = LOWER(?)`, category,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}
