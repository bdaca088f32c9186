package storage

import (
	"github.com/agilstore/agil/internal/product"
)

// FileStore persists products to a JSON file plus its id high-water sidecar.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore for the products file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads all products and the highest id ever assigned. The high-water
// id is returned even when the products file cannot be read.
func (s *FileStore) Load() ([]product.Product, int, error) {
	highWater, err := ReadHighWater(s.Path)
	if err != nil {
		// The sidecar only protects against id reuse; the products are still good.
		highWater = 0
	}

	products, err := ReadProducts(s.Path)
	if err != nil {
		return nil, highWater, err
	}
	return products, highWater, nil
}

// Save rewrites the products file and records the high-water id.
func (s *FileStore) Save(products []product.Product, highWater int) error {
	if err := WriteProducts(s.Path, products); err != nil {
		return err
	}
	return WriteHighWater(s.Path, highWater)
}
