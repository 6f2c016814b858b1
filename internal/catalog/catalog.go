package catalog

import (
	"errors"
	"fmt"
)

// ErrUnknownProduct is returned when an id is not registered in the catalog.
var ErrUnknownProduct = errors.New("product not found in catalog")

// Catalog owns the products sold during a run. Carts and checkouts refer to
// products by id and always see the live stock held here.
//
// A Catalog is not safe for concurrent checkouts: stock is checked when an
// item is added and reduced only after payment, so two checkouts interleaving
// on one catalog could oversell. Run one checkout at a time per catalog.
type Catalog struct {
	products map[ID]Product
	order    []ID
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{products: make(map[ID]Product)}
}

// Add registers the product and returns its id. Adding the same product
// twice keeps the first registration.
func (c *Catalog) Add(p Product) ID {
	id := p.ID()
	if _, ok := c.products[id]; ok {
		return id
	}
	c.products[id] = p
	c.order = append(c.order, id)
	return id
}

// Get looks up a product by id.
func (c *Catalog) Get(id ID) (Product, error) {
	p, ok := c.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrUnknownProduct)
	}
	return p, nil
}

// Products lists products in registration order.
func (c *Catalog) Products() []Product {
	out := make([]Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.products[id])
	}
	return out
}

// Len returns the number of registered products.
func (c *Catalog) Len() int {
	return len(c.order)
}
