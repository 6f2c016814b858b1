// Package report renders checkout results as console text.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/noah-isme/toko-checkout/internal/cart"
	"github.com/noah-isme/toko-checkout/internal/checkout"
	"github.com/noah-isme/toko-checkout/internal/shipping"
)

const (
	Separator      = "=================================================="
	receiptDivider = "----------------------"
)

// printer keeps the first write error so callers can chain writes.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// WriteNotice renders the shipment manifest. Empty notices render nothing.
func WriteNotice(w io.Writer, n shipping.Notice) error {
	if n.Empty() {
		return nil
	}
	p := &printer{w: w}
	p.printf("\n** Shipment Notice **\n")
	for _, line := range n.Lines {
		p.printf("%dx %s    %dg\n", line.Quantity, line.Name, line.RoundedGrams())
	}
	p.printf("Total package weight: %.1fkg\n\n", n.TotalKilograms())
	return p.err
}

// WriteReceipt renders the shipment notice, when present, followed by the
// receipt.
func WriteReceipt(w io.Writer, r checkout.Receipt) error {
	if r.Notice != nil {
		if err := WriteNotice(w, *r.Notice); err != nil {
			return err
		}
	}
	p := &printer{w: w}
	p.printf("** Checkout Receipt **\n")
	for _, line := range r.Lines {
		p.printf("%dx %s    %s\n", line.Quantity, line.Name, line.Total.String())
	}
	p.printf("%s\n", receiptDivider)
	p.printf("Subtotal:     %s\n", r.Subtotal.String())
	p.printf("Shipping:     %s\n", r.Shipping.String())
	p.printf("Total Paid:   %s\n", r.Total.String())
	p.printf("Remaining Balance: %s\n\n", r.RemainingBalance.String())
	return p.err
}

// WriteRejection renders a failed add or checkout as a one-line message.
func WriteRejection(w io.Writer, err error) error {
	if err == nil {
		return nil
	}
	p := &printer{w: w}
	p.printf("%s\n", Message(err))
	return p.err
}

// Message returns the console text for a rejection.
func Message(err error) string {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		return "Cart is empty!"
	case errors.Is(err, checkout.ErrExpiredItem):
		if rej, ok := checkout.RejectionOf(err); ok {
			return "Item expired: " + rej.Product
		}
	case errors.Is(err, checkout.ErrInsufficientBalance):
		return "Insufficient balance!"
	case errors.Is(err, checkout.ErrStockChanged):
		if rej, ok := checkout.RejectionOf(err); ok {
			return "Insufficient stock for " + rej.Product + "!"
		}
	case errors.Is(err, cart.ErrInsufficientStock):
		if s, ok := cart.ShortfallOf(err); ok {
			return "Insufficient stock for " + s.Name + "!"
		}
	}
	return err.Error()
}
