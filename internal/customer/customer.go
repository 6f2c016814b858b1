package customer

import (
	"errors"
	"fmt"

	"github.com/noah-isme/toko-checkout/internal/pricing"
)

var (
	// ErrInsufficientBalance is returned when a payment exceeds the balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidAmount is returned for negative balances or payments.
	ErrInvalidAmount = errors.New("amount must not be negative")
)

// Customer pays for checkouts out of a cash balance that never goes negative.
type Customer struct {
	name    string
	balance pricing.Money
}

// New creates a customer with an opening balance.
func New(name string, balance pricing.Money) (*Customer, error) {
	if balance.IsNegative() {
		return nil, fmt.Errorf("opening balance %s: %w", balance, ErrInvalidAmount)
	}
	return &Customer{name: name, balance: balance}, nil
}

// Name returns the customer's display name.
func (c *Customer) Name() string { return c.name }

// Balance returns the current cash balance.
func (c *Customer) Balance() pricing.Money { return c.balance }

// Pay debits amount in full or not at all.
func (c *Customer) Pay(amount pricing.Money) error {
	if amount.IsNegative() {
		return fmt.Errorf("pay %s: %w", amount, ErrInvalidAmount)
	}
	if amount.GreaterThan(c.balance) {
		return fmt.Errorf("pay %s with balance %s: %w", amount, c.balance, ErrInsufficientBalance)
	}
	c.balance = c.balance.Sub(amount)
	return nil
}
