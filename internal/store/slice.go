// Package store holds the client-side state containers. A slice owns one
// Snapshot and changes it only through pending, fulfilled and rejected
// transitions of dispatched operations, plus a few synchronous actions.
package store

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Snapshot is the observable state of one slice.
type Snapshot[S any] struct {
	Data    S        `json:"data"`
	Loading bool     `json:"loading"`
	Error   *Failure `json:"error"`
}

// Fencing decides which resolutions a slice applies.
type Fencing int

const (
	// LatestDispatch applies a resolution only when it belongs to the most
	// recently dispatched request of the slice. Older resolutions are stale.
	LatestDispatch Fencing = iota
	// LastResolved applies every resolution in the order it arrives, so a
	// slow early request can overwrite a fast later one. Reset still fences
	// requests dispatched before it.
	LastResolved
)

func (f Fencing) String() string {
	switch f {
	case LatestDispatch:
		return "latest_dispatch"
	case LastResolved:
		return "last_resolved"
	default:
		return "unknown"
	}
}

// Recorder observes dispatches. telemetry.Metrics implements it.
type Recorder interface {
	DispatchStarted(slice string)
	DispatchFinished(slice, action, result string)
}

type nopRecorder struct{}

func (nopRecorder) DispatchStarted(string)                 {}
func (nopRecorder) DispatchFinished(string, string, string) {}

type options struct {
	fencing  Fencing
	logger   *zap.Logger
	tracer   trace.Tracer
	recorder Recorder
}

// Option configures a slice.
type Option func(*options)

// WithFencing selects the fencing policy. The default is LatestDispatch.
func WithFencing(f Fencing) Option {
	return func(o *options) {
		o.fencing = f
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTracerProvider sets where dispatch spans go. The default is the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.tracer = tp.Tracer(tracerName)
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

const tracerName = "github.com/mhizterpaul/cartlink/internal/store"

func buildOptions(opts []Option) options {
	o := options{
		fencing:  LatestDispatch,
		logger:   zap.NewNop(),
		tracer:   otel.Tracer(tracerName),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Slice is a named, independently owned unit of state.
//
// Listeners run synchronously, in commit order, on the goroutine that
// committed. They may read State but must not dispatch or run actions on
// the same slice.
type Slice[S any] struct {
	name    string
	initial S
	opts    options

	// notifyMu serializes commit plus delivery so listeners see commits in order.
	notifyMu sync.Mutex
	mu       sync.RWMutex
	state    Snapshot[S]
	seq      uint64
	latest   uint64
	// fencedAt is the last sequence number taken by replace
	fencedAt uint64

	listeners  map[uint64]func(Snapshot[S])
	listenerID uint64
}

// NewSlice returns a slice named name whose data starts as initial.
func NewSlice[S any](name string, initial S, opts ...Option) *Slice[S] {
	return &Slice[S]{
		name:      name,
		initial:   initial,
		opts:      buildOptions(opts),
		state:     Snapshot[S]{Data: initial},
		listeners: make(map[uint64]func(Snapshot[S])),
	}
}

func (s *Slice[S]) Name() string {
	return s.name
}

func (s *Slice[S]) Fencing() Fencing {
	return s.opts.fencing
}

// State returns the current snapshot.
func (s *Slice[S]) State() Snapshot[S] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn for every committed snapshot and returns a function
// that removes it.
func (s *Slice[S]) Subscribe(fn func(Snapshot[S])) (unsubscribe func()) {
	s.mu.Lock()
	s.listenerID++
	id := s.listenerID
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// ClearError drops the stored failure.
func (s *Slice[S]) ClearError() {
	s.commit(func(st Snapshot[S]) (Snapshot[S], bool) {
		if st.Error == nil {
			return st, false
		}
		st.Error = nil
		return st, true
	})
}

// Reset restores the initial state. Requests still in flight become stale
// under both fencing policies.
func (s *Slice[S]) Reset() {
	s.replace(s.initial)
}

// replace sets data, clears loading and error, and fences off in-flight requests.
func (s *Slice[S]) replace(data S) {
	s.commit(func(Snapshot[S]) (Snapshot[S], bool) {
		s.seq++
		s.latest = s.seq
		s.fencedAt = s.seq
		return Snapshot[S]{Data: data}, true
	})
}

// commit applies fn under the lock and notifies listeners when fn reports a change.
func (s *Slice[S]) commit(fn func(Snapshot[S]) (Snapshot[S], bool)) (Snapshot[S], bool) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	next, changed := fn(s.state)
	if changed {
		s.state = next
	}
	var listeners []func(Snapshot[S])
	if changed {
		listeners = make([]func(Snapshot[S]), 0, len(s.listeners))
		for _, l := range s.listeners {
			listeners = append(listeners, l)
		}
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return next, changed
}

// begin applies pending and returns the new request id.
func (s *Slice[S]) begin() uint64 {
	var id uint64
	s.commit(func(st Snapshot[S]) (Snapshot[S], bool) {
		s.seq++
		id = s.seq
		s.latest = id
		return pendingTransition(st), true
	})
	return id
}

// resolve applies a resolution for request id unless fencing marks it stale.
func (s *Slice[S]) resolve(id uint64, transition func(Snapshot[S]) Snapshot[S]) bool {
	_, applied := s.commit(func(st Snapshot[S]) (Snapshot[S], bool) {
		if s.stale(id) {
			return st, false
		}
		return transition(st), true
	})
	return applied
}

// stale reports whether request id may no longer change the slice. Callers hold mu.
func (s *Slice[S]) stale(id uint64) bool {
	if id <= s.fencedAt {
		return true
	}
	return s.opts.fencing == LatestDispatch && id != s.latest
}

// settle runs effect for request id unless the slice was replaced after the
// request was dispatched. replace waits for a running effect, so an effect
// that has started always finishes before the slice is reset.
func (s *Slice[S]) settle(id uint64, effect func()) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.RLock()
	fenced := id <= s.fencedAt
	s.mu.RUnlock()
	if fenced {
		return false
	}
	effect()
	return true
}

func pendingTransition[S any](st Snapshot[S]) Snapshot[S] {
	st.Loading = true
	st.Error = nil
	return st
}

func fulfilledTransition[S any](st Snapshot[S], data S) Snapshot[S] {
	st.Loading = false
	st.Data = data
	return st
}

func rejectedTransition[S any](st Snapshot[S], f *Failure) Snapshot[S] {
	st.Loading = false
	st.Error = f
	return st
}
