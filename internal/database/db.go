package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB represents the database connection with pooling
type DB struct {
	*sql.DB
	pool     *ConnectionPool
	prepared map[string]*sql.Stmt
	mutex    sync.RWMutex
}

// ConnectionPool manages database connection pooling
type ConnectionPool struct {
	db           *sql.DB
	maxOpenConns int
	maxIdleConns int
	maxLifetime  time.Duration
}

// NewConnectionPool creates a new database connection pool
func NewConnectionPool(db *sql.DB, maxOpen, maxIdle int, maxLifetime time.Duration) *ConnectionPool {
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)

	return &ConnectionPool{
		db:           db,
		maxOpenConns: maxOpen,
		maxIdleConns: maxIdle,
		maxLifetime:  maxLifetime,
	}
}

// GetStats returns connection pool statistics
func (cp *ConnectionPool) GetStats() map[string]interface{} {
	stats := cp.db.Stats()

	return map[string]interface{}{
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"max_open_connections": cp.maxOpenConns,
		"max_idle_connections": cp.maxIdleConns,
		"max_lifetime_seconds": cp.maxLifetime.Seconds(),
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		"max_idle_closed":      stats.MaxIdleClosed,
		"max_lifetime_closed":  stats.MaxLifetimeClosed,
	}
}

// NewDB creates a new database connection with optimized pooling
func NewDB(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "sustainability.db")

	connStr := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pool := NewConnectionPool(db, 25, 5, 5*time.Minute)

	database := &DB{
		DB:       db,
		pool:     pool,
		prepared: make(map[string]*sql.Stmt),
	}

	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := database.initPreparedStatements(); err != nil {
		return nil, fmt.Errorf("failed to initialize prepared statements: %w", err)
	}

	slog.Info("Database initialized with connection pooling",
		"max_open_conns", pool.maxOpenConns,
		"max_idle_conns", pool.maxIdleConns,
		"max_lifetime", pool.maxLifetime)

	return database, nil
}

// migrate creates the necessary tables
func (db *DB) migrate() error {
	queries := []string{
		// Product catalog
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			brand TEXT NOT NULL,
			product_name TEXT NOT NULL,
			price REAL,
			category TEXT NOT NULL,
			subcategory TEXT,
			care_co2 REAL NOT NULL,
			care_water REAL NOT NULL,
			care_energy REAL NOT NULL,
			origin_grid REAL NOT NULL,
			origin_transport REAL NOT NULL,
			origin_manufacturing REAL NOT NULL,
			cert1_bonus REAL DEFAULT 0,
			cert2_bonus REAL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,

		// Fibre composition, one row per fibre per product
		`CREATE TABLE IF NOT EXISTS product_fibres (
			id TEXT PRIMARY KEY,
			product_id TEXT NOT NULL,
			fibre_name TEXT NOT NULL,
			percentage REAL NOT NULL,
			co2 REAL NOT NULL,
			water REAL NOT NULL,
			energy REAL NOT NULL,
			chemical REAL NOT NULL,
			FOREIGN KEY (product_id) REFERENCES products(id)
		)`,

		// Computed scores, one row per product, refreshed on ingest
		`CREATE TABLE IF NOT EXISTS product_scores (
			product_id TEXT PRIMARY KEY,
			material_co2 REAL NOT NULL,
			material_water REAL NOT NULL,
			material_energy REAL NOT NULL,
			material_chemical REAL NOT NULL,
			care_co2 REAL NOT NULL,
			care_water REAL NOT NULL,
			care_energy REAL NOT NULL,
			origin_grid REAL NOT NULL,
			origin_transport REAL NOT NULL,
			origin_manufacturing REAL NOT NULL,
			environmental_score REAL NOT NULL,
			certification_bonus REAL NOT NULL,
			final_score INTEGER NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (product_id) REFERENCES products(id)
		)`,

		// Indexes for performance
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,
		`CREATE INDEX IF NOT EXISTS idx_products_created ON products(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_product_fibres_product ON product_fibres(product_id)`,
		`CREATE INDEX IF NOT EXISTS idx_product_scores_final ON product_scores(final_score DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	return nil
}

// initPreparedStatements initializes frequently used prepared statements
func (db *DB) initPreparedStatements() error {
	statements := map[string]string{
		"get_product": `SELECT p.id, p.brand, p.product_name, p.price, p.category, p.subcategory,
			s.environmental_score, s.certification_bonus, s.final_score
			FROM products p JOIN product_scores s ON s.product_id = p.id
			WHERE p.id = ?`,

		"get_score": `SELECT product_id, material_co2, material_water, material_energy, material_chemical,
			care_co2, care_water, care_energy, origin_grid, origin_transport, origin_manufacturing,
			environmental_score, certification_bonus, final_score
			FROM product_scores WHERE product_id = ?`,

		"count_products": `SELECT COUNT(*) FROM products`,
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	for name, query := range statements {
		stmt, err := db.Prepare(query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement %s: %w", name, err)
		}
		db.prepared[name] = stmt

		slog.Debug("Prepared statement initialized", "name", name)
	}

	return nil
}

// GetPreparedStatement retrieves a prepared statement
func (db *DB) GetPreparedStatement(name string) (*sql.Stmt, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	stmt, exists := db.prepared[name]
	if !exists {
		return nil, fmt.Errorf("prepared statement %s not found", name)
	}

	return stmt, nil
}

// GetPoolStats returns database connection pool statistics
func (db *DB) GetPoolStats() map[string]interface{} {
	return db.pool.GetStats()
}

// Close closes the database connection and prepared statements
func (db *DB) Close() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	for name, stmt := range db.prepared {
		if err := stmt.Close(); err != nil {
			slog.Warn("Failed to close prepared statement", "name", name, "error", err)
		}
	}

	db.prepared = make(map[string]*sql.Stmt)

	return db.DB.Close()
}
