package checkout

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestAllowedTransition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to State
		want     bool
	}{
		{StateValidating, StatePricing, true},
		{StateValidating, StateRejected, true},
		{StateValidating, StatePaying, false},
		{StatePricing, StatePaying, true},
		{StatePricing, StateRejected, false},
		{StatePaying, StateFulfilling, true},
		{StatePaying, StateRejected, true},
		{StateFulfilling, StateReporting, true},
		{StateFulfilling, StateRejected, false},
		{StateReporting, StateDone, true},
		{StateDone, StateValidating, false},
		{StateRejected, StatePricing, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, allowedTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestRunRecordsHistory(t *testing.T) {
	t.Parallel()

	_, span := noop.NewTracerProvider().Tracer("test").Start(t.Context(), "run")
	r := newRun(zerolog.Nop(), span)
	require.NoError(t, r.transition(StatePricing))
	require.ErrorIs(t, r.transition(StateDone), ErrInvalidTransition)
	require.Equal(t, StatePricing, r.state)

	history := r.states()
	require.Equal(t, []State{StateValidating, StatePricing}, history)
	history[0] = StateDone
	require.Equal(t, StateValidating, r.states()[0])
}
