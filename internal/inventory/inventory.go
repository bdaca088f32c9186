// Package inventory holds the in-memory product collection and keeps it
// mirrored to a persistent store after every mutation.
package inventory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agilstore/agil/internal/product"
	"github.com/agilstore/agil/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

var (
	// ErrNotFound is returned when no product has the requested id.
	ErrNotFound = errors.New("product not found")
	// ErrLoad wraps failures to read the persisted store at startup.
	ErrLoad = errors.New("could not load products")
	// ErrSave wraps failures to write the persisted store. The in-memory
	// change that triggered the save has already been applied.
	ErrSave = errors.New("could not save products")
)

// Store persists the full product collection.
type Store interface {
	// Load returns the stored products and the highest id ever assigned.
	// The id is meaningful even when err is non-nil.
	Load() ([]product.Product, int, error)
	// Save replaces the stored collection.
	Save(products []product.Product, highWater int) error
}

// Manager owns the ordered product collection and the next-id counter.
type Manager struct {
	store    Store
	log      *zap.Logger
	products []product.Product
	nextID   int
}

// New returns an empty Manager backed by store. Call Load to read existing data.
func New(store Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: store, log: log, nextID: 1}
}

// Load replaces the collection with the stored products.
// If the store is unreadable the collection is left empty and an error
// wrapping ErrLoad is returned; callers report it and continue.
func (m *Manager) Load() error {
	m.products = nil
	m.nextID = 1

	products, highWater, err := m.store.Load()
	if highWater > 0 {
		m.nextID = highWater + 1
	}
	if err != nil {
		m.log.Warn("loading products failed, starting empty", zap.Error(err), zap.Int("next_id", m.nextID))
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	m.products = products
	if maxID := storage.MaxID(products); maxID >= m.nextID {
		m.nextID = maxID + 1
	}

	m.log.Info("products loaded", zap.Int("count", len(products)), zap.Int("next_id", m.nextID))
	return nil
}

// save writes the whole collection. The in-memory state is kept either way.
func (m *Manager) save() error {
	if err := m.store.Save(m.products, m.nextID-1); err != nil {
		m.log.Error("saving products failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrSave, err)
	}
	return nil
}

// NextID returns the id the next added product will receive.
func (m *Manager) NextID() int {
	return m.nextID
}

// Len returns the number of products.
func (m *Manager) Len() int {
	return len(m.products)
}

// List returns a copy of all products in insertion order.
func (m *Manager) List() []product.Product {
	out := make([]product.Product, len(m.products))
	copy(out, m.products)
	return out
}

// Add validates the raw field inputs in order name, category, quantity,
// price and appends a new product. The first invalid field aborts the add
// with a *product.FieldError and nothing is created.
//
// If only the save fails, the product is returned together with an error
// wrapping ErrSave.
func (m *Manager) Add(name, category, quantity, price string) (product.Product, error) {
	n, err := product.ValidateName(name)
	if err != nil {
		return product.Product{}, err
	}
	c, err := product.ValidateCategory(category)
	if err != nil {
		return product.Product{}, err
	}
	q, err := product.ParseQuantity(quantity)
	if err != nil {
		return product.Product{}, err
	}
	p, err := product.ParsePrice(price)
	if err != nil {
		return product.Product{}, err
	}

	prod := product.Product{
		ID:       m.nextID,
		Name:     n,
		Category: c,
		Quantity: q,
		Price:    p,
	}
	m.nextID++
	m.products = append(m.products, prod)
	m.log.Info("product added", zap.Int("id", prod.ID), zap.String("name", prod.Name))

	return prod, m.save()
}

// FindByID returns the product with the given id.
func (m *Manager) FindByID(id int) (product.Product, error) {
	i, err := m.index(id)
	if err != nil {
		return product.Product{}, err
	}
	return m.products[i], nil
}

func (m *Manager) index(id int) (int, error) {
	i, found := storage.FindByID(m.products, id)
	if !found {
		return -1, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return i, nil
}

// UpdateName sets the name of product id.
func (m *Manager) UpdateName(id int, input string) (product.Product, error) {
	return m.update(id, product.FieldName, func(p *product.Product) error {
		v, err := product.ValidateName(input)
		if err != nil {
			return err
		}
		p.Name = v
		return nil
	})
}

// UpdateCategory sets the category of product id.
func (m *Manager) UpdateCategory(id int, input string) (product.Product, error) {
	return m.update(id, product.FieldCategory, func(p *product.Product) error {
		v, err := product.ValidateCategory(input)
		if err != nil {
			return err
		}
		p.Category = v
		return nil
	})
}

// UpdateQuantity sets the stock quantity of product id.
func (m *Manager) UpdateQuantity(id int, input string) (product.Product, error) {
	return m.update(id, product.FieldQuantity, func(p *product.Product) error {
		v, err := product.ParseQuantity(input)
		if err != nil {
			return err
		}
		p.Quantity = v
		return nil
	})
}

// UpdatePrice sets the price of product id.
func (m *Manager) UpdatePrice(id int, input string) (product.Product, error) {
	return m.update(id, product.FieldPrice, func(p *product.Product) error {
		v, err := product.ParsePrice(input)
		if err != nil {
			return err
		}
		p.Price = v
		return nil
	})
}

// update applies set to a copy of the product, so a rejected value never
// touches the stored record.
func (m *Manager) update(id int, field product.Field, set func(*product.Product) error) (product.Product, error) {
	i, err := m.index(id)
	if err != nil {
		m.log.Info("update of unknown product", zap.Int("id", id))
		return product.Product{}, err
	}

	updated := m.products[i]
	if err := set(&updated); err != nil {
		m.log.Info("update rejected", zap.Int("id", id), zap.String("field", string(field)), zap.Error(err))
		return m.products[i], err
	}

	m.products[i] = updated
	m.log.Info("product updated", zap.Int("id", id), zap.String("field", string(field)))
	return updated, m.save()
}

// Delete removes product id. The id is never handed out again.
func (m *Manager) Delete(id int) (product.Product, error) {
	i, err := m.index(id)
	if err != nil {
		m.log.Info("delete of unknown product", zap.Int("id", id))
		return product.Product{}, err
	}

	removed := m.products[i]
	m.products = append(m.products[:i:i], m.products[i+1:]...)
	m.log.Info("product deleted", zap.Int("id", id), zap.String("name", removed.Name))

	return removed, m.save()
}

// SearchByName returns every product whose name contains query, ignoring
// case. A blank query matches nothing.
func (m *Manager) SearchByName(query string) []product.Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	fold := cases.Fold()
	needle := fold.String(query)

	var matches []product.Product
	for _, p := range m.products {
		if strings.Contains(fold.String(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	return matches
}

// SearchByID returns the product with id as a zero- or one-element slice.
func (m *Manager) SearchByID(id int) []product.Product {
	p, err := m.FindByID(id)
	if err != nil {
		return nil
	}
	return []product.Product{p}
}
