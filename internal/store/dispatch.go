package store

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/infrastructure/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Dispatch outcomes reported to the Recorder.
const (
	ResultFulfilled = "fulfilled"
	ResultRejected  = "rejected"
	ResultStale     = "stale"
)

// Operation describes one asynchronous action on a slice of state S that
// takes A and resolves to R.
type Operation[S, A, R any] struct {
	// Type names the action, e.g. "auth/login".
	Type string
	// Call performs the request.
	Call func(ctx context.Context, arg A) (R, error)
	// Fallback is the rejection message used when the failure carries none.
	Fallback string
	// Fulfilled computes the new data from the resolved value. It must be
	// pure. A nil Fulfilled leaves the data unchanged.
	Fulfilled func(data S, res R) S
	// After runs once the fulfilled transition is committed, and only while
	// the request is still current. It must not call back into the slice.
	// Its error is logged and does not turn the result into a rejection.
	After func(ctx context.Context, res R) error
}

// Result is the handle of one dispatched operation.
type Result[R any] struct {
	id      uint64
	done    chan struct{}
	value   R
	failure *Failure
	applied bool
}

// RequestID is the slice-wide monotonic id assigned at dispatch.
func (r *Result[R]) RequestID() uint64 {
	return r.id
}

// Done is closed once the operation resolved and its effects ran.
func (r *Result[R]) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the operation resolves or ctx ends. Giving up on the
// wait does not cancel the operation.
func (r *Result[R]) Wait(ctx context.Context) (R, error) {
	select {
	case <-r.done:
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
	if r.failure != nil {
		return r.value, r.failure
	}
	return r.value, nil
}

// Applied reports whether the resolution was committed to the slice. It is
// false for stale resolutions and only meaningful after Done.
func (r *Result[R]) Applied() bool {
	<-r.done
	return r.applied
}

// Dispatch applies pending to s synchronously and runs op in its own
// goroutine. Cancelling ctx after Dispatch returns has no effect on the call.
func Dispatch[S, A, R any](ctx context.Context, s *Slice[S], op Operation[S, A, R], arg A) *Result[R] {
	ctx = context.WithoutCancel(ctx)
	id := s.begin()
	res := &Result[R]{id: id, done: make(chan struct{})}

	ctx, span := s.opts.tracer.Start(ctx, op.Type,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("store.slice", s.name),
			attribute.Int64("store.request_id", int64(id)),
			attribute.String("store.fencing", s.opts.fencing.String()),
		),
	)
	s.opts.recorder.DispatchStarted(s.name)

	go func() {
		defer close(res.done)
		defer span.End()

		log := logger.Enrich(ctx, s.opts.logger).With(
			zap.String("slice", s.name),
			zap.String("action", op.Type),
			zap.Uint64("request_id", id),
		)

		value, err := op.Call(ctx, arg)
		outcome := ResultFulfilled
		if err != nil {
			failure := normalize(err, op.Fallback)
			res.failure = failure
			outcome = ResultRejected
			res.applied = s.resolve(id, func(st Snapshot[S]) Snapshot[S] {
				return rejectedTransition(st, failure)
			})
			span.RecordError(err)
			span.SetStatus(codes.Error, failure.Message)
		} else {
			res.value = value
			res.applied = s.resolve(id, func(st Snapshot[S]) Snapshot[S] {
				data := st.Data
				if op.Fulfilled != nil {
					data = op.Fulfilled(data, value)
				}
				return fulfilledTransition(st, data)
			})
			span.SetStatus(codes.Ok, "")
		}

		if !res.applied {
			outcome = ResultStale
			log.Debug("discarding stale resolution", zap.Bool("failed", err != nil))
		} else if err == nil && op.After != nil {
			ran := s.settle(id, func() {
				if afterErr := op.After(ctx, value); afterErr != nil {
					log.Warn("post-fulfillment effect failed", zap.Error(afterErr))
				}
			})
			if !ran {
				log.Debug("skipping post-fulfillment effect of a fenced request")
			}
		}

		span.SetAttributes(attribute.String("store.result", outcome))
		s.opts.recorder.DispatchFinished(s.name, op.Type, outcome)
		log.Debug("operation resolved", zap.String("result", outcome))
	}()

	return res
}
