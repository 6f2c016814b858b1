package checkout

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// ErrInvalidTransition signals a bug in the orchestrator's stage ordering.
var ErrInvalidTransition = errors.New("invalid checkout state transition")

// State is a stage of a checkout attempt.
type State string

const (
	StateValidating State = "VALIDATING"
	StatePricing    State = "PRICING"
	StatePaying     State = "PAYING"
	StateFulfilling State = "FULFILLING"
	StateReporting  State = "REPORTING"
	StateDone       State = "DONE"
	StateRejected   State = "REJECTED"
)

// IsTerminal reports whether no further transition is possible.
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateRejected
}

func (s State) String() string {
	return string(s)
}

func allowedTransition(current, next State) bool {
	switch current {
	case StateValidating:
		return next == StatePricing || next == StateRejected
	case StatePricing:
		return next == StatePaying
	case StatePaying:
		return next == StateFulfilling || next == StateRejected
	case StateFulfilling:
		return next == StateReporting
	case StateReporting:
		return next == StateDone
	default:
		return false
	}
}

// run tracks the stages of one checkout attempt.
type run struct {
	state   State
	history []State
	logger  zerolog.Logger
	span    trace.Span
}

func newRun(logger zerolog.Logger, span trace.Span) *run {
	return &run{
		state:   StateValidating,
		history: []State{StateValidating},
		logger:  logger,
		span:    span,
	}
}

func (r *run) transition(next State) error {
	if !allowedTransition(r.state, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.state, next)
	}
	r.logger.Debug().Str("from", r.state.String()).Str("to", next.String()).Msg("checkout_transition")
	r.span.AddEvent(next.String())
	r.state = next
	r.history = append(r.history, next)
	return nil
}

func (r *run) states() []State {
	out := make([]State, len(r.history))
	copy(out, r.history)
	return out
}
