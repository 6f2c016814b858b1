package cart

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/common"
)

// CodeInsufficientStock tags rejected adds.
const CodeInsufficientStock = "insufficient_stock"

var (
	// ErrInsufficientStock indicates the requested quantity exceeds current stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidQuantity is returned for non-positive quantities.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Shortfall describes a rejected add.
type Shortfall struct {
	ProductID catalog.ID
	Name      string
	Requested int
	Available int
}

// Item is a product reference with the quantity the customer asked for.
type Item struct {
	ProductID catalog.ID
	Quantity  int
}

// Cart collects items for a single checkout attempt.
type Cart struct {
	catalog *catalog.Catalog
	logger  zerolog.Logger
	items   []Item
}

// New creates an empty cart over the provided catalog.
func New(cat *catalog.Catalog, logger zerolog.Logger) *Cart {
	return &Cart{catalog: cat, logger: logger.With().Str("component", "cart").Logger()}
}

// Catalog returns the catalog the cart's ids refer to.
func (c *Cart) Catalog() *catalog.Catalog {
	return c.catalog
}

// Add appends an item when the product currently has enough stock. Stock is
// not reserved; it is checked again at checkout.
func (c *Cart) Add(id catalog.ID, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("add %d: %w", qty, ErrInvalidQuantity)
	}
	if c.catalog == nil {
		return errors.New("cart catalog not configured")
	}
	product, err := c.catalog.Get(id)
	if err != nil {
		return err
	}
	if qty > product.Stock() {
		shortfall := Shortfall{
			ProductID: id,
			Name:      product.Name(),
			Requested: qty,
			Available: product.Stock(),
		}
		c.logger.Warn().
			Str("product", shortfall.Name).
			Int("requested", shortfall.Requested).
			Int("available", shortfall.Available).
			Msg("cart_add_rejected")
		msg := fmt.Sprintf("insufficient stock for %s: available %d, requested %d", shortfall.Name, shortfall.Available, shortfall.Requested)
		return common.NewAppError(CodeInsufficientStock, msg, ErrInsufficientStock).WithDetails(shortfall)
	}
	c.items = append(c.items, Item{ProductID: id, Quantity: qty})
	return nil
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// IsEmpty reports whether nothing has been added.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Len returns the number of lines in the cart.
func (c *Cart) Len() int {
	return len(c.items)
}

// ShortfallOf extracts the details of a rejected add.
func ShortfallOf(err error) (Shortfall, bool) {
	var appErr *common.AppError
	if !errors.As(err, &appErr) {
		return Shortfall{}, false
	}
	s, ok := appErr.Details.(Shortfall)
	return s, ok
}
