package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/checkout"
	"github.com/noah-isme/toko-checkout/internal/obs"
	"github.com/noah-isme/toko-checkout/internal/report"
	"github.com/noah-isme/toko-checkout/internal/shipping"
)

func TestRunDemoScenarios(t *testing.T) {
	svc := &checkout.Service{
		Shipping:      &shipping.Service{RatePerKg: decimal.NewFromInt(10)},
		ReferenceDate: catalog.YearMonth{Year: 2025, Month: time.July},
		Logger:        zerolog.Nop(),
		Metrics:       obs.NewCheckoutMetrics("toko", nil, prometheus.NewRegistry()),
	}

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, svc, zerolog.Nop()))

	text := out.String()
	require.Equal(t, 5, strings.Count(text, report.Separator))
	require.True(t, strings.HasPrefix(text, "invalid product \"Apples\""), text)

	sections := strings.Split(text, report.Separator+"\n")
	require.Len(t, sections, 6)
	require.Contains(t, sections[0], "Total package weight: 21.8kg")
	require.Contains(t, sections[0], "Total Paid:   2270\n")
	require.Contains(t, sections[0], "Remaining Balance: 2730\n")
	require.Equal(t, "Cart is empty!\n", sections[1])
	require.Equal(t, "Insufficient balance!\n", sections[2])
	require.Equal(t, "Item expired: Chips\n", sections[3])
	require.Contains(t, sections[4], "Insufficient stock for TV!\n")
	require.Contains(t, sections[4], "1x ScratchCard    50\n")
	require.NotContains(t, sections[4], "Shipment Notice")

	require.Equal(t, 2.0, testutil.ToFloat64(svc.Metrics.Attempts.WithLabelValues("completed")))
	require.Equal(t, 1.0, testutil.ToFloat64(svc.Metrics.Attempts.WithLabelValues(checkout.CodeExpiredItem)))
}
