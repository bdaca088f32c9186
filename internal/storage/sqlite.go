package storage

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agilstore/agil/internal/product"
	_ "modernc.org/sqlite"
)

// ErrNotReadOnly is returned when Query is given a statement that could modify the cache.
var ErrNotReadOnly = errors.New("only SELECT queries are allowed")

// DB wraps the SQLite query cache built from the products file.
type DB struct {
	db *sql.DB
}

// selectProductFields contains the standard field list for SELECT queries.
const selectProductFields = `id, name, category, quantity, price`

// Row is a generic result row from an ad-hoc query.
type Row map[string]any

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			price REAL NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_products_category ON products(category COLLATE NOCASE);

		CREATE TABLE IF NOT EXISTS _meta (
			key TEXT PRIMARY KEY,
			value TEXT
		);
	`

	_, err := db.Exec(schema)
	return err
}

// ComputeFileHash computes a SHA256 hash of a file's contents.
// A missing file hashes like an empty one.
func ComputeFileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			h := sha256.Sum256([]byte{})
			return hex.EncodeToString(h[:]), nil
		}
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// RebuildFromFile clears the cache and reloads it from the products file.
func (d *DB) RebuildFromFile(productsPath string) (int, error) {
	products, err := ReadProducts(productsPath)
	if err != nil {
		return 0, fmt.Errorf("reading products: %w", err)
	}

	hash, err := ComputeFileHash(productsPath)
	if err != nil {
		return 0, fmt.Errorf("computing hash: %w", err)
	}

	if err := d.RebuildFromProducts(products); err != nil {
		return 0, err
	}

	if err := d.setMeta("products_hash", hash); err != nil {
		return 0, fmt.Errorf("updating hash: %w", err)
	}
	if err := d.setMeta("last_sync", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return 0, fmt.Errorf("updating sync time: %w", err)
	}

	return len(products), nil
}

// RebuildFromProducts replaces the cached rows with products.
func (d *DB) RebuildFromProducts(products []product.Product) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM products"); err != nil {
		return fmt.Errorf("clearing products table: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO products (` + selectProductFields + `) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing products insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.Exec(p.ID, p.Name, p.Category, p.Quantity, p.Price); err != nil {
			return fmt.Errorf("inserting product %d: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// NeedsRebuild reports whether the cache is out of date with the products file.
func (d *DB) NeedsRebuild(productsPath string) (bool, error) {
	current, err := ComputeFileHash(productsPath)
	if err != nil {
		return true, err
	}
	stored, err := d.getMeta("products_hash")
	if err != nil {
		return true, err
	}
	return current != stored, nil
}

// LastSync returns when the cache was last rebuilt, or the zero time.
func (d *DB) LastSync() (time.Time, error) {
	v, err := d.getMeta("last_sync")
	if err != nil || v == "" {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, v)
}

// Count returns the number of cached products.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count)
	return count, err
}

// ListByCategory returns cached products in a category, compared case-insensitively.
func (d *DB) ListByCategory(category string) ([]product.Product, error) {
	rows, err := d.db.Query(`SELECT `+selectProductFields+` FROM products
		WHERE category = ? COLLATE NOCASE ORDER BY id`, category)
	if err != nil {
		return nil, fmt.Errorf("listing category: %w", err)
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Quantity, &p.Price); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Query runs a read-only SQL statement against the cache. The statement
// runs on a connection with query_only set, so writes hidden behind a WITH
// clause or a second statement fail instead of touching the cache.
func (d *DB) Query(query string) ([]Row, error) {
	q := strings.ToUpper(strings.TrimSpace(query))
	if !strings.HasPrefix(q, "SELECT") && !strings.HasPrefix(q, "WITH") {
		return nil, ErrNotReadOnly
	}

	ctx := context.Background()
	conn, err := d.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return nil, fmt.Errorf("enabling query_only: %w", err)
	}
	defer conn.ExecContext(ctx, "PRAGMA query_only = OFF")

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result []Row
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = values[i]
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func (d *DB) getMeta(key string) (string, error) {
	var value sql.NullString
	err := d.db.QueryRow("SELECT value FROM _meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value.String, nil
}

func (d *DB) setMeta(key, value string) error {
	_, err := d.db.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES (?, ?)`, key, value)
	return err
}
