package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-checkout/internal/common"
	"github.com/noah-isme/toko-checkout/internal/pricing"
)

// CodeValidation tags construction failures.
const CodeValidation = "validation_failed"

// ErrValidation is wrapped by every product construction failure.
var ErrValidation = errors.New("price and quantity must be positive values")

// MaxWeightGrams caps the per-unit weight so shipment totals stay finite.
const MaxWeightGrams = 1_000_000_000

type productInput struct {
	Name        string
	Price       pricing.Money `validate:"gt=0"`
	Quantity    int           `validate:"gt=0"`
	WeightGrams float64       `validate:"gte=0,lte=1000000000"`
}

type shippableInput struct {
	Name        string
	Price       pricing.Money `validate:"gt=0"`
	Quantity    int           `validate:"gt=0"`
	WeightGrams float64       `validate:"gt=0,lte=1000000000"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Money fields validate as their sign.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return int64(d.Sign())
		}
		return nil
	}, decimal.Decimal{})
	return v
}

func validateInput(in productInput) error {
	return toValidationError(in.Name, validate.Struct(in))
}

func validateShippable(in shippableInput) error {
	return toValidationError(in.Name, validate.Struct(in))
}

func toValidationError(name string, err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate product %q: %w", name, err)
	}
	fields := make([]string, 0, len(fieldErrs))
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
		parts = append(parts, fmt.Sprintf("%s must be %s %s", fe.Field(), tagWord(fe.Tag()), fe.Param()))
	}
	msg := fmt.Sprintf("invalid product %q: %s", name, strings.Join(parts, ", "))
	return common.NewAppError(CodeValidation, msg, ErrValidation).WithDetails(fields)
}

func tagWord(tag string) string {
	switch tag {
	case "gt":
		return "greater than"
	case "gte":
		return "at least"
	case "lte":
		return "at most"
	default:
		return tag
	}
}
