// Package storage handles product persistence as a JSON file, with an
// ephemeral SQLite cache for ad-hoc queries.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agilstore/agil/internal/product"
)

// ErrDuplicateID is reported when two stored records share an id.
var ErrDuplicateID = errors.New("duplicate id")

// RecordError reports a stored record that breaks the product rules.
type RecordError struct {
	Index   int // 1-based position in the file
	Product product.Product
	Err     error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("product %d (id %d, name %q): %v", e.Index, e.Product.ID, e.Product.Name, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// ReadProducts reads the product list from a JSON file.
// A missing or blank file yields an empty list. Every record is validated,
// so a file that parses but violates the product rules is reported as corrupt.
func ReadProducts(path string) ([]product.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading products file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var products []product.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parsing products file: %w", err)
	}

	seen := make(map[int]bool, len(products))
	for i, p := range products {
		if err := product.Validate(p); err != nil {
			return nil, &RecordError{Index: i + 1, Product: p, Err: err}
		}
		if seen[p.ID] {
			return nil, &RecordError{Index: i + 1, Product: p, Err: ErrDuplicateID}
		}
		seen[p.ID] = true
	}

	return products, nil
}

// WriteProducts writes all products to a JSON file, replacing existing content.
func WriteProducts(path string, products []product.Product) error {
	if products == nil {
		products = []product.Product{}
	}

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding products: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating products directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing products file: %w", err)
	}

	return nil
}

// FindByID searches for a product by ID.
func FindByID(products []product.Product, id int) (int, bool) {
	for i, p := range products {
		if p.ID == id {
			return i, true
		}
	}
	return -1, false
}

// MaxID returns the highest id in products, or 0 if there are none.
func MaxID(products []product.Product) int {
	max := 0
	for _, p := range products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max
}
