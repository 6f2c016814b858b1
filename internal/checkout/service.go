package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/toko-checkout/internal/cart"
	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/common"
	"github.com/noah-isme/toko-checkout/internal/customer"
	"github.com/noah-isme/toko-checkout/internal/events"
	"github.com/noah-isme/toko-checkout/internal/obs"
	"github.com/noah-isme/toko-checkout/internal/pricing"
	"github.com/noah-isme/toko-checkout/internal/shipping"
)

// Input is a single checkout attempt.
type Input struct {
	Customer *customer.Customer
	Cart     *cart.Cart
	// ReferenceDate overrides Service.ReferenceDate when set.
	ReferenceDate catalog.YearMonth
}

// Line is a receipt line.
type Line struct {
	ProductID catalog.ID
	Name      string
	Quantity  int
	UnitPrice pricing.Money
	Total     pricing.Money
}

// Receipt is the structured result of a successful checkout.
type Receipt struct {
	ID               uuid.UUID
	Customer         string
	Lines            []Line
	Notice           *shipping.Notice
	Subtotal         pricing.Money
	Shipping         pricing.Money
	Total            pricing.Money
	BalanceBefore    pricing.Money
	RemainingBalance pricing.Money
	States           []State
	CompletedAt      time.Time
}

// Service validates carts, charges customers and fulfils orders.
type Service struct {
	Shipping      *shipping.Service
	ReferenceDate catalog.YearMonth
	Logger        zerolog.Logger
	Events        *events.Bus
	Metrics       *obs.CheckoutMetrics
	Tracer        trace.Tracer
	Now           func() time.Time
}

type resolvedLine struct {
	product  catalog.Product
	quantity int
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) tracer() trace.Tracer {
	if s.Tracer != nil {
		return s.Tracer
	}
	return obs.Tracer()
}

func (s *Service) referenceDate(in Input) catalog.YearMonth {
	if !in.ReferenceDate.IsZero() {
		return in.ReferenceDate
	}
	if !s.ReferenceDate.IsZero() {
		return s.ReferenceDate
	}
	return catalog.YearMonthOf(s.now())
}

// Checkout runs the cart through validation, pricing, payment and
// fulfilment. Rejections leave the customer balance and all stock untouched.
func (s *Service) Checkout(ctx context.Context, in Input) (Receipt, error) {
	if s == nil {
		return Receipt{}, errors.New("checkout service not configured")
	}
	if in.Customer == nil || in.Cart == nil {
		return Receipt{}, errors.New("checkout requires a customer and a cart")
	}
	id := uuid.New()
	ref := s.referenceDate(in)

	ctx, span := s.tracer().Start(ctx, "checkout", trace.WithAttributes(
		attribute.String("checkout.id", id.String()),
		attribute.String("checkout.customer", in.Customer.Name()),
		attribute.String("checkout.reference_date", ref.String()),
	))
	defer span.End()

	logger := s.Logger.With().
		Str("checkout_id", id.String()).
		Str("customer", in.Customer.Name()).
		Logger()
	r := newRun(logger, span)

	lines, err := s.validate(in.Cart, ref)
	if err != nil {
		return Receipt{}, s.rejected(ctx, r, id, err)
	}

	if err := r.transition(StatePricing); err != nil {
		return Receipt{}, err
	}
	items := make([]pricing.Item, 0, len(lines))
	parcels := make([]shipping.Parcel, 0, len(lines))
	for _, l := range lines {
		items = append(items, pricing.Item{Qty: l.quantity, UnitPrice: l.product.Price()})
		if l.product.IsShippable() {
			parcels = append(parcels, shipping.Parcel{
				Name:            l.product.Name(),
				Quantity:        l.quantity,
				UnitWeightGrams: l.product.ShippingWeightGrams(),
			})
		}
	}
	notice, fee, err := s.Shipping.Quote(parcels)
	if err != nil {
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, err.Error())
		logger.Error().Err(err).Msg("checkout_pricing_failed")
		return Receipt{}, fmt.Errorf("checkout: quote shipping: %w", err)
	}
	summary := pricing.Compute(items, fee)

	if err := r.transition(StatePaying); err != nil {
		return Receipt{}, err
	}
	balanceBefore := in.Customer.Balance()
	if err := in.Customer.Pay(summary.Total); err != nil {
		if !errors.Is(err, customer.ErrInsufficientBalance) {
			return Receipt{}, fmt.Errorf("checkout: pay: %w", err)
		}
		rejection := reject("insufficient balance", ErrInsufficientBalance, Rejection{
			Stage:     StatePaying,
			Code:      CodeInsufficientBalance,
			Required:  summary.Total,
			Available: balanceBefore,
		})
		return Receipt{}, s.rejected(ctx, r, id, rejection)
	}

	if err := r.transition(StateFulfilling); err != nil {
		return Receipt{}, err
	}
	for _, l := range lines {
		if err := l.product.ReduceStock(l.quantity); err != nil {
			// validate guarantees coverage, so this only happens when the
			// catalog is shared with a concurrent checkout.
			logger.Error().Err(err).Str("product", l.product.Name()).Msg("checkout_fulfilment_failed")
			return Receipt{}, fmt.Errorf("checkout: reduce stock: %w", err)
		}
	}

	if err := r.transition(StateReporting); err != nil {
		return Receipt{}, err
	}
	receipt := Receipt{
		ID:               id,
		Customer:         in.Customer.Name(),
		Lines:            make([]Line, 0, len(lines)),
		Subtotal:         summary.Subtotal,
		Shipping:         summary.Shipping,
		Total:            summary.Total,
		BalanceBefore:    balanceBefore,
		RemainingBalance: in.Customer.Balance(),
		CompletedAt:      s.now(),
	}
	for i, l := range lines {
		receipt.Lines = append(receipt.Lines, Line{
			ProductID: l.product.ID(),
			Name:      l.product.Name(),
			Quantity:  l.quantity,
			UnitPrice: l.product.Price(),
			Total:     items[i].LineTotal(),
		})
	}
	if !notice.Empty() {
		receipt.Notice = &notice
		s.emit(ctx, logger, events.TopicShipmentRequested, id, map[string]any{
			"checkoutId":       id.String(),
			"lines":            len(notice.Lines),
			"totalWeightGrams": notice.TotalWeightGrams,
		})
	}

	if err := r.transition(StateDone); err != nil {
		return Receipt{}, err
	}
	receipt.States = r.states()

	s.Metrics.ObserveCompleted(summary.Total.InexactFloat64(), notice.TotalKilograms())
	span.SetAttributes(attribute.String("checkout.total", summary.Total.String()))
	s.emit(ctx, logger, events.TopicCheckoutCompleted, id, map[string]any{
		"checkoutId":       id.String(),
		"customer":         receipt.Customer,
		"subtotal":         receipt.Subtotal,
		"shipping":         receipt.Shipping,
		"total":            receipt.Total,
		"remainingBalance": receipt.RemainingBalance,
	})
	logger.Info().
		Str("subtotal", receipt.Subtotal.String()).
		Str("shipping", receipt.Shipping.String()).
		Str("total", receipt.Total.String()).
		Str("remaining_balance", receipt.RemainingBalance.String()).
		Msg("checkout_completed")
	return receipt, nil
}

// validate stops at the first expired item in cart order, then checks that
// current stock still covers the quantity requested per product.
func (s *Service) validate(c *cart.Cart, ref catalog.YearMonth) ([]resolvedLine, error) {
	if c.IsEmpty() {
		return nil, reject("cart is empty", ErrEmptyCart, Rejection{Stage: StateValidating, Code: CodeEmptyCart})
	}
	cat := c.Catalog()
	if cat == nil {
		return nil, errors.New("cart catalog not configured")
	}
	items := c.Items()
	lines := make([]resolvedLine, 0, len(items))
	for _, it := range items {
		product, err := cat.Get(it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("checkout: %w", err)
		}
		if product.IsExpired(ref) {
			return nil, reject("item expired: "+product.Name(), ErrExpiredItem, Rejection{
				Stage:     StateValidating,
				Code:      CodeExpiredItem,
				ProductID: product.ID(),
				Product:   product.Name(),
			})
		}
		lines = append(lines, resolvedLine{product: product, quantity: it.Quantity})
	}

	requested := make(map[catalog.ID]int, len(lines))
	for _, l := range lines {
		requested[l.product.ID()] += l.quantity
	}
	for _, l := range lines {
		want := requested[l.product.ID()]
		if want > l.product.Stock() {
			msg := fmt.Sprintf("insufficient stock for %s: available %d, requested %d", l.product.Name(), l.product.Stock(), want)
			return nil, reject(msg, ErrStockChanged, Rejection{
				Stage:     StateValidating,
				Code:      CodeStockChanged,
				ProductID: l.product.ID(),
				Product:   l.product.Name(),
				Requested: want,
				InStock:   l.product.Stock(),
			})
		}
	}
	return lines, nil
}

func (s *Service) rejected(ctx context.Context, r *run, id uuid.UUID, err error) error {
	if !common.IsAppError(err) {
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, err.Error())
		return err
	}
	if tErr := r.transition(StateRejected); tErr != nil {
		return errors.Join(err, tErr)
	}
	code := common.CodeOf(err)
	r.span.RecordError(err)
	r.span.SetStatus(codes.Error, code)
	s.Metrics.ObserveRejected(code)

	payload := map[string]any{"checkoutId": id.String(), "reason": code}
	evt := r.logger.Warn().Str("reason", code)
	if rej, ok := RejectionOf(err); ok {
		payload["stage"] = rej.Stage.String()
		evt = evt.Str("stage", rej.Stage.String())
		if rej.Product != "" {
			payload["product"] = rej.Product
			evt = evt.Str("product", rej.Product)
		}
	}
	evt.Msg("checkout_rejected")
	s.emit(ctx, r.logger, events.TopicCheckoutRejected, id, payload)
	return err
}

func (s *Service) emit(ctx context.Context, logger zerolog.Logger, topic string, id uuid.UUID, payload any) {
	if s.Events == nil {
		return
	}
	if _, err := s.Events.Emit(ctx, topic, id, payload); err != nil {
		logger.Warn().Err(err).Str("topic", topic).Msg("emit event")
	}
}
