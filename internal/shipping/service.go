package shipping

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-checkout/internal/pricing"
)

// DefaultRatePerKg is charged for every started kilogram.
const DefaultRatePerKg = 10

var gramsPerKg = decimal.NewFromInt(1000)

// ErrWeightOutOfRange is returned when a shipment weight is not a finite number.
var ErrWeightOutOfRange = errors.New("shipment weight out of range")

// Parcel is a shippable cart line.
type Parcel struct {
	Name            string
	Quantity        int
	UnitWeightGrams float64
}

// WeightGrams is the unit weight multiplied by the quantity.
func (p Parcel) WeightGrams() float64 {
	if p.Quantity <= 0 || p.UnitWeightGrams <= 0 {
		return 0
	}
	return p.UnitWeightGrams * float64(p.Quantity)
}

// NoticeLine is one manifest entry of a shipment notice.
type NoticeLine struct {
	Name        string
	Quantity    int
	WeightGrams float64
}

// RoundedGrams rounds the line weight to the nearest gram.
func (l NoticeLine) RoundedGrams() int64 {
	return int64(math.Round(l.WeightGrams))
}

// Notice is the shipment manifest handed to the carrier.
type Notice struct {
	Lines            []NoticeLine
	TotalWeightGrams float64
}

// NewNotice builds the manifest for the parcels, skipping weightless ones.
func NewNotice(parcels []Parcel) Notice {
	var n Notice
	for _, p := range parcels {
		w := p.WeightGrams()
		if w <= 0 {
			continue
		}
		n.Lines = append(n.Lines, NoticeLine{Name: p.Name, Quantity: p.Quantity, WeightGrams: w})
		n.TotalWeightGrams += w
	}
	return n
}

// Empty reports whether nothing needs shipping.
func (n Notice) Empty() bool {
	return len(n.Lines) == 0
}

// TotalKilograms converts the total weight to kilograms.
func (n Notice) TotalKilograms() float64 {
	return n.TotalWeightGrams / 1000
}

// Fee charges ratePerKg for every started kilogram of totalWeightGrams.
func Fee(totalWeightGrams float64, ratePerKg pricing.Money) (pricing.Money, error) {
	if math.IsNaN(totalWeightGrams) || math.IsInf(totalWeightGrams, 0) {
		return decimal.Zero, fmt.Errorf("fee for %v grams: %w", totalWeightGrams, ErrWeightOutOfRange)
	}
	if totalWeightGrams <= 0 {
		return decimal.Zero, nil
	}
	kg := decimal.NewFromFloat(totalWeightGrams).Div(gramsPerKg).Ceil()
	return kg.Mul(ratePerKg), nil
}

// Service prices shipments.
type Service struct {
	RatePerKg pricing.Money
}

func (s *Service) rate() pricing.Money {
	if s == nil || !s.RatePerKg.IsPositive() {
		return decimal.NewFromInt(DefaultRatePerKg)
	}
	return s.RatePerKg
}

// Quote builds the notice for the parcels and the fee charged for it.
func (s *Service) Quote(parcels []Parcel) (Notice, pricing.Money, error) {
	notice := NewNotice(parcels)
	fee, err := Fee(notice.TotalWeightGrams, s.rate())
	if err != nil {
		return Notice{}, decimal.Zero, err
	}
	return notice, fee, nil
}
