package basket

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/five82/bookbasket/internal/state"
)

const instrumentationName = "github.com/five82/bookbasket/internal/basket"

// Kind classifies a rejected action.
type Kind string

const (
	KindItemNotFound      Kind = "item_not_found"
	KindInsufficientStock Kind = "insufficient_stock"
	KindMissingIdentity   Kind = "missing_identity"
	KindInvalidQuantity   Kind = "invalid_quantity"
	KindUnknown           Kind = "unknown"
)

// KindOf maps a transition error to its Kind.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrInsufficientStock):
		return KindInsufficientStock
	case errors.Is(err, ErrMissingIdentity):
		return KindMissingIdentity
	case errors.Is(err, ErrInvalidQuantity):
		return KindInvalidQuantity
	case errors.Is(err, ErrItemNotFound):
		return KindItemNotFound
	default:
		return KindUnknown
	}
}

// Diagnostic describes an action the reducer rejected. The state was left
// unchanged.
type Diagnostic struct {
	ID     uuid.UUID
	At     time.Time
	Action Action
	Err    error
}

// Kind returns the failure class of d.
func (d Diagnostic) Kind() Kind {
	return KindOf(d.Err)
}

// ReducerOption configures NewReducer.
type ReducerOption func(*reducerConfig)

type reducerConfig struct {
	logger       *slog.Logger
	onDiagnostic func(Diagnostic)
	tracer       trace.Tracer
	meter        metric.Meter
	now          func() time.Time
}

// WithLogger sets the logger used for dispatch and rejection records.
func WithLogger(logger *slog.Logger) ReducerOption {
	return func(c *reducerConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDiagnostics registers fn to receive every rejected action. fn runs
// synchronously inside the reducer call, before the store notifies its
// listeners.
func WithDiagnostics(fn func(Diagnostic)) ReducerOption {
	return func(c *reducerConfig) {
		c.onDiagnostic = fn
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(tracer trace.Tracer) ReducerOption {
	return func(c *reducerConfig) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithMeter overrides the meter taken from the global provider.
func WithMeter(meter metric.Meter) ReducerOption {
	return func(c *reducerConfig) {
		if meter != nil {
			c.meter = meter
		}
	}
}

// NewReducer wraps Apply for use by a state.Store. Rejected actions are logged,
// traced and passed to the diagnostics callback; the store always receives a
// valid state back.
func NewReducer(opts ...ReducerOption) state.Reducer[State, Action] {
	cfg := reducerConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer: otel.Tracer(instrumentationName),
		meter:  otel.Meter(instrumentationName),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	dispatches, err := cfg.meter.Int64Counter("basket.dispatches",
		metric.WithDescription("Actions processed by the basket reducer."),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		cfg.logger.Warn("dispatch counter unavailable", "error", err)
		dispatches = noop.Int64Counter{}
	}

	return func(s State, a Action) State {
		ctx, span := cfg.tracer.Start(context.Background(), "basket.dispatch",
			trace.WithAttributes(
				attribute.String("action.type", string(a.Type)),
				attribute.Int64("item.id", int64(a.Payload.ID)),
			),
		)
		defer span.End()

		next, err := Apply(s, a)
		outcome := outcomeOf(a, err)
		span.SetAttributes(attribute.String("outcome", outcome))
		dispatches.Add(ctx, 1, metric.WithAttributes(
			attribute.String("action.type", string(a.Type)),
			attribute.String("outcome", outcome),
		))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)

			d := Diagnostic{ID: uuid.New(), At: cfg.now(), Action: a, Err: err}
			cfg.logger.Warn("action rejected",
				"diagnostic_id", d.ID.String(),
				"kind", string(d.Kind()),
				"action", string(a.Type),
				"item_id", int64(a.Payload.ID),
				"error", err,
			)
			if cfg.onDiagnostic != nil {
				cfg.onDiagnostic(d)
			}
			return s
		}

		if outcome == outcomeIgnored {
			cfg.logger.Debug("action ignored", "action", string(a.Type))
			return next
		}

		sum := Summarize(next)
		cfg.logger.Debug("state changed",
			"action", string(a.Type),
			"item_id", int64(a.Payload.ID),
			"basket_titles", sum.Titles,
			"basket_units", sum.Units,
			"in_stock", sum.InStock,
		)
		return next
	}
}

const (
	outcomeApplied = "applied"
	outcomeIgnored = "ignored"
)

func outcomeOf(a Action, err error) string {
	switch {
	case err != nil:
		return string(KindOf(err))
	case !a.Type.Known():
		return outcomeIgnored
	default:
		return outcomeApplied
	}
}
