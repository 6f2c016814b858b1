package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/noah-isme/toko-checkout/internal/pricing"
)

// ErrStockUnderflow is returned when a stock reduction is out of range.
var ErrStockUnderflow = errors.New("stock reduction out of range")

// ID identifies a product inside a Catalog.
type ID = uuid.UUID

// Product is implemented by every sellable catalog item.
type Product interface {
	ID() ID
	Name() string
	Price() pricing.Money
	Stock() int
	// ReduceStock removes n units; n must satisfy 0 < n <= Stock().
	ReduceStock(n int) error
	IsExpired(ref YearMonth) bool
	IsShippable() bool
	// ShippingWeightGrams is the per-unit weight; zero means not shippable.
	ShippingWeightGrams() float64
}

type base struct {
	id    ID
	name  string
	price pricing.Money
	stock int
}

func newBase(name string, price pricing.Money, quantity int) base {
	return base{id: uuid.New(), name: name, price: price, stock: quantity}
}

func (b *base) ID() ID { return b.id }
func (b *base) Name() string { return b.name }
func (b *base) Price() pricing.Money { return b.price }
func (b *base) Stock() int { return b.stock }

func (b *base) ReduceStock(n int) error {
	if n <= 0 || n > b.stock {
		return fmt.Errorf("%s: reduce by %d with %d in stock: %w", b.name, n, b.stock, ErrStockUnderflow)
	}
	b.stock -= n
	return nil
}

// Plain is a product that never expires and is never shipped.
type Plain struct {
	base
}

// NewPlain validates the inputs and builds a Plain product.
func NewPlain(name string, price pricing.Money, quantity int) (*Plain, error) {
	if err := validateInput(productInput{Name: name, Price: price, Quantity: quantity}); err != nil {
		return nil, err
	}
	return &Plain{base: newBase(name, price, quantity)}, nil
}

func (p *Plain) IsExpired(YearMonth) bool { return false }
func (p *Plain) IsShippable() bool { return false }
func (p *Plain) ShippingWeightGrams() float64 { return 0 }

// Perishable expires after the month of its expiry date. A zero weight
// keeps it out of shipment.
type Perishable struct {
	base
	expiry Date
	weight float64
}

// NewPerishable validates the inputs and builds a Perishable product.
func NewPerishable(name string, price pricing.Money, quantity int, expiry Date, weightGrams float64) (*Perishable, error) {
	if err := validateInput(productInput{Name: name, Price: price, Quantity: quantity, WeightGrams: weightGrams}); err != nil {
		return nil, err
	}
	return &Perishable{base: newBase(name, price, quantity), expiry: expiry, weight: weightGrams}, nil
}

// Expiry returns the configured expiry date.
func (p *Perishable) Expiry() Date { return p.expiry }

// IsExpired compares year and month only.
func (p *Perishable) IsExpired(ref YearMonth) bool {
	return ref.After(p.expiry.YearMonth())
}

func (p *Perishable) IsShippable() bool { return p.weight > 0 }
func (p *Perishable) ShippingWeightGrams() float64 { return p.weight }

// Shippable never expires and always carries a positive weight.
type Shippable struct {
	base
	weight float64
}

// NewShippable validates the inputs and builds a Shippable product.
func NewShippable(name string, price pricing.Money, quantity int, weightGrams float64) (*Shippable, error) {
	if err := validateShippable(shippableInput{Name: name, Price: price, Quantity: quantity, WeightGrams: weightGrams}); err != nil {
		return nil, err
	}
	return &Shippable{base: newBase(name, price, quantity), weight: weightGrams}, nil
}

func (p *Shippable) IsExpired(YearMonth) bool { return false }
func (p *Shippable) IsShippable() bool { return p.weight > 0 }
func (p *Shippable) ShippingWeightGrams() float64 { return p.weight }

var (
	_ Product = (*Plain)(nil)
	_ Product = (*Perishable)(nil)
	_ Product = (*Shippable)(nil)
)
