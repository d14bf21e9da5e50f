package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

// Collection names used by the document store. Every stored entity lives in
// exactly one of these.
const (
	CollectionUsers      = "userx"
	CollectionProducts   = "products"
	CollectionCategories = "categories"
	CollectionOffers     = "offers"
	CollectionOrders     = "orders"
	CollectionCarts      = "carts"
	CollectionSaved      = "saved"
)

// Collections lists every known collection in migration order.
var Collections = []string{
	CollectionUsers,
	CollectionProducts,
	CollectionCategories,
	CollectionOffers,
	CollectionOrders,
	CollectionCarts,
	CollectionSaved,
}

// Initialize creates and returns a database connection
func Initialize(databaseURL string) (*sql.DB, error) {
	// Add SQLite-specific parameters for better concurrent access
	if databaseURL == "sokoni.db" {
		databaseURL = "sokoni.db?_busy_timeout=30000&_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000&_foreign_keys=1"
	}

	db, err := sql.Open("sqlite3", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool for better performance
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(0) // No limit

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set SQLite pragmas for better concurrent access
	pragmas := []string{
		"PRAGMA busy_timeout = 30000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = 1000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA temp_store = memory",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			log.Printf("Warning: failed to set pragma %s: %v", pragma, err)
		}
	}

	log.Println("Database connection established successfully")
	return db, nil
}

// Migrate creates one table per document collection. Each table holds the
// opaque document key, the JSON body and the server-assigned creation time.
func Migrate(db *sql.DB) error {
	for _, collection := range Collections {
		query := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				data TEXT NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`, collection)

		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", collection, err)
		}
	}

	return nil
}
