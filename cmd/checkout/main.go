package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/toko-checkout/internal/cart"
	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/checkout"
	"github.com/noah-isme/toko-checkout/internal/common"
	"github.com/noah-isme/toko-checkout/internal/config"
	"github.com/noah-isme/toko-checkout/internal/customer"
	"github.com/noah-isme/toko-checkout/internal/events"
	"github.com/noah-isme/toko-checkout/internal/obs"
	"github.com/noah-isme/toko-checkout/internal/report"
	"github.com/noah-isme/toko-checkout/internal/shipping"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := obs.NewLogger(os.Stderr, cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	if cfg.TracingEnabled {
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "toko-checkout",
			Endpoint:      cfg.TracingEndpoint,
			Exporter:      cfg.TracingExporter,
			SamplingRatio: cfg.TracingSamplingRatio,
			Environment:   cfg.AppEnv,
			Attributes: []attribute.KeyValue{
				attribute.String("checkout.currency", cfg.Currency),
				attribute.String("checkout.reference_date", cfg.ReferenceDate.String()),
			},
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	svc := &checkout.Service{
		Shipping:      &shipping.Service{RatePerKg: cfg.RatePerKg},
		ReferenceDate: cfg.ReferenceDate,
		Logger:        logger,
		Events:        &events.Bus{Notifiers: []events.Notifier{obs.EventLogger{Logger: logger}}},
		Metrics:       obs.NewCheckoutMetrics(cfg.MetricsNamespace, nil, prometheus.NewRegistry()),
	}

	if err := run(context.Background(), os.Stdout, svc, logger); err != nil {
		logger.Error().Err(err).Msg("checkout demo failed")
		os.Exit(1)
	}
}

type demoCatalog struct {
	catalog     *catalog.Catalog
	cheese      catalog.Product
	biscuits    catalog.Product
	tv          catalog.Product
	scratchCard catalog.Product
}

func buildCatalog(out io.Writer) (*demoCatalog, error) {
	d := &demoCatalog{catalog: catalog.New()}

	cheese, err := catalog.NewPerishable("Cheese", decimal.NewFromInt(100), 10, catalog.NewDate(2025, time.July, 10), 400)
	if err != nil {
		return nil, err
	}
	biscuits, err := catalog.NewPerishable("Biscuits", decimal.NewFromInt(150), 5, catalog.NewDate(2026, time.January), 0)
	if err != nil {
		return nil, err
	}
	tv, err := catalog.NewShippable("TV", decimal.NewFromInt(600), 3, 7000)
	if err != nil {
		return nil, err
	}
	scratchCard, err := catalog.NewPlain("ScratchCard", decimal.NewFromInt(50), 20)
	if err != nil {
		return nil, err
	}
	d.cheese, d.biscuits, d.tv, d.scratchCard = cheese, biscuits, tv, scratchCard
	for _, p := range []catalog.Product{cheese, biscuits, tv, scratchCard} {
		d.catalog.Add(p)
	}

	// A zero price never makes it into the catalog.
	if _, err := catalog.NewPlain("Apples", decimal.Zero, 10); err != nil {
		if werr := report.WriteRejection(out, err); werr != nil {
			return nil, werr
		}
	}
	return d, nil
}

type line struct {
	product catalog.Product
	qty     int
}

type scenario struct {
	customer string
	balance  int64
	lines    []line
}

func run(ctx context.Context, out io.Writer, svc *checkout.Service, logger zerolog.Logger) error {
	d, err := buildCatalog(out)
	if err != nil {
		return err
	}
	chips, err := catalog.NewPerishable("Chips", decimal.NewFromInt(20), 5, catalog.NewDate(2025, time.January), 0)
	if err != nil {
		return err
	}
	d.catalog.Add(chips)

	scenarios := []scenario{
		{customer: "Ahmed", balance: 5000, lines: []line{{d.cheese, 2}, {d.tv, 3}, {d.scratchCard, 1}}},
		{customer: "Mohamed", balance: 10000},
		{customer: "Yasser", balance: 100, lines: []line{{d.biscuits, 2}}},
		{customer: "Anas", balance: 10000, lines: []line{{chips, 5}}},
		{customer: "Yassen", balance: 10000, lines: []line{{d.scratchCard, 1}, {d.tv, 1}}},
	}
	for _, sc := range scenarios {
		if err := runScenario(ctx, out, svc, d.catalog, logger, sc); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, report.Separator); err != nil {
			return err
		}
	}
	return nil
}

func runScenario(ctx context.Context, out io.Writer, svc *checkout.Service, cat *catalog.Catalog, logger zerolog.Logger, sc scenario) error {
	buyer, err := customer.New(sc.customer, decimal.NewFromInt(sc.balance))
	if err != nil {
		return err
	}
	c := cart.New(cat, logger)
	for _, l := range sc.lines {
		if err := c.Add(l.product.ID(), l.qty); err != nil {
			if werr := report.WriteRejection(out, err); werr != nil {
				return werr
			}
		}
	}

	receipt, err := svc.Checkout(ctx, checkout.Input{Customer: buyer, Cart: c})
	if err != nil {
		if !common.IsAppError(err) {
			return err
		}
		return report.WriteRejection(out, err)
	}
	return report.WriteReceipt(out, receipt)
}
