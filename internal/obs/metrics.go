package obs

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics groups Prometheus collectors for checkout outcomes.
type CheckoutMetrics struct {
	Attempts       *prometheus.CounterVec
	PaidTotal      prometheus.Counter
	ShippingWeight prometheus.Histogram
}

// NewCheckoutMetrics registers and returns checkout metrics collectors.
func NewCheckoutMetrics(namespace string, buckets []float64, reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if len(buckets) == 0 {
		buckets = []float64{1, 5, 10, 25, 50, 100}
	} else {
		sort.Float64s(buckets)
	}
	m := &CheckoutMetrics{
		Attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_attempts_total",
			Help:      "Count of checkout attempts by outcome code.",
		}, []string{"result"}),
		PaidTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_paid_amount_total",
			Help:      "Sum of amounts charged by successful checkouts.",
		}),
		ShippingWeight: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "checkout_shipping_weight_kg",
			Help:      "Shipped package weight per checkout in kilograms.",
			Buckets:   buckets,
		}),
	}
	m.Attempts = registerOrExisting(reg, m.Attempts)
	m.PaidTotal = registerOrExisting(reg, m.PaidTotal)
	m.ShippingWeight = registerOrExisting(reg, m.ShippingWeight)
	return m
}

// ObserveCompleted records a successful checkout.
func (m *CheckoutMetrics) ObserveCompleted(paid float64, shippedKg float64) {
	if m == nil {
		return
	}
	m.Attempts.WithLabelValues("completed").Inc()
	if paid > 0 {
		m.PaidTotal.Add(paid)
	}
	if shippedKg > 0 {
		m.ShippingWeight.Observe(shippedKg)
	}
}

// ObserveRejected records a rejected checkout under its error code.
func (m *CheckoutMetrics) ObserveRejected(code string) {
	if m == nil {
		return
	}
	if strings.TrimSpace(code) == "" {
		code = "unknown"
	}
	m.Attempts.WithLabelValues(code).Inc()
}

// ParseBucketsCSV converts a comma-separated list of bucket boundaries into floats.
func ParseBucketsCSV(csv string) []float64 {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			continue
		}
		if v <= 0 {
			continue
		}
		out = append(out, v)
	}
	return out
}

func registerOrExisting[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(fmt.Errorf("register collector: %w", err))
	}
	return c
}
