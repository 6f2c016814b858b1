package checkout

import (
	"errors"

	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/common"
	"github.com/noah-isme/toko-checkout/internal/customer"
	"github.com/noah-isme/toko-checkout/internal/pricing"
)

// Rejection codes reported through common.AppError.
const (
	CodeEmptyCart           = "empty_cart"
	CodeExpiredItem         = "expired_item"
	CodeInsufficientBalance = "insufficient_balance"
	CodeStockChanged        = "stock_changed"
)

var (
	// ErrEmptyCart is returned when checking out a cart with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrExpiredItem is returned when any cart item has expired.
	ErrExpiredItem = errors.New("item expired")
	// ErrInsufficientBalance is returned when the customer cannot pay the total.
	ErrInsufficientBalance = customer.ErrInsufficientBalance
	// ErrStockChanged is returned when stock no longer covers the requested quantity.
	ErrStockChanged = errors.New("stock no longer covers cart")
)

// Rejection describes why a checkout stopped. Only the fields relevant to
// the code are set.
type Rejection struct {
	Stage     State
	Code      string
	ProductID catalog.ID
	Product   string
	Requested int
	InStock   int
	Required  pricing.Money
	Available pricing.Money
}

func reject(message string, sentinel error, details Rejection) *common.AppError {
	return common.NewAppError(details.Code, message, sentinel).WithDetails(details)
}

// RejectionOf extracts the rejection details from a checkout error.
func RejectionOf(err error) (Rejection, bool) {
	var appErr *common.AppError
	if !errors.As(err, &appErr) {
		return Rejection{}, false
	}
	r, ok := appErr.Details.(Rejection)
	return r, ok
}
