package obs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestNewResourceCarriesCheckoutAttributes(t *testing.T) {
	res, err := newResource(context.Background(), TracingConfig{
		ServiceName: "toko-checkout",
		Environment: "test",
		Attributes:  []attribute.KeyValue{attribute.String("checkout.currency", "EGP")},
	})
	require.NoError(t, err)

	set := res.Set()
	name, ok := set.Value("service.name")
	require.True(t, ok)
	require.Equal(t, "toko-checkout", name.AsString())
	currency, ok := set.Value("checkout.currency")
	require.True(t, ok)
	require.Equal(t, "EGP", currency.AsString())
}
