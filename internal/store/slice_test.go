package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mhizterpaul/cartlink/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSliceInitialState(t *testing.T) {
	cart := NewCartSlice(newGatedCart())

	st := cart.State()
	assert.Nil(t, st.Data.Cart)
	assert.False(t, st.Loading)
	assert.Nil(t, st.Error)
	assert.Equal(t, "cart", cart.Name())
	assert.Equal(t, LatestDispatch, cart.Fencing())
}

func TestDispatchAppliesPendingSynchronously(t *testing.T) {
	fake := newGatedCart()
	cart := NewCartSlice(fake)

	first := cart.Fetch(context.Background())
	fake.get.awaitStarted(t, 1)
	fake.get.release(0, trade.Cart{}, errors.New("boom"))
	waitDone(t, first)
	require.NotNil(t, cart.State().Error)

	second := cart.Fetch(context.Background())
	st := cart.State()
	assert.True(t, st.Loading, "pending must be visible before the call resolves")
	assert.Nil(t, st.Error, "pending clears the previous error")

	fake.get.awaitStarted(t, 1)
	fake.get.release(1, trade.Cart{CartID: 3}, nil)
	_, err := second.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.False(t, cart.State().Loading)
	assert.Equal(t, int64(3), cart.State().Data.Cart.CartID)
}

func TestFulfilledReplacesWithoutMerging(t *testing.T) {
	calls := new(MockOrderCalls)
	calls.On("List", mock.Anything, trade.OrderFilter{}).Return([]trade.Order{{OrderID: 1}, {OrderID: 2}}, nil).Once()
	calls.On("List", mock.Anything, trade.OrderFilter{Status: trade.OrderShipped}).Return([]trade.Order{{OrderID: 3}}, nil).Once()
	orders := NewOrderSlice(calls)
	ctx := waitCtx(t)

	_, err := orders.Fetch(ctx, trade.OrderFilter{}).Wait(ctx)
	require.NoError(t, err)
	payload, err := orders.Fetch(ctx, trade.OrderFilter{Status: trade.OrderShipped}).Wait(ctx)
	require.NoError(t, err)

	assert.Equal(t, payload, orders.State().Data.Orders)
	assert.Equal(t, []trade.Order{{OrderID: 3}}, orders.State().Data.Orders)
	calls.AssertExpectations(t)
}

func TestIdenticalDispatchesAreNotDeduplicated(t *testing.T) {
	calls := new(MockOrderCalls)
	calls.On("List", mock.Anything, trade.OrderFilter{}).Return([]trade.Order{{OrderID: 1}}, nil).Twice()
	orders := NewOrderSlice(calls)
	ctx := waitCtx(t)

	a := orders.Fetch(ctx, trade.OrderFilter{})
	b := orders.Fetch(ctx, trade.OrderFilter{})
	_, errA := a.Wait(ctx)
	_, errB := b.Wait(ctx)

	require.NoError(t, errA)
	require.NoError(t, errB)
	calls.AssertNumberOfCalls(t, "List", 2)
	assert.Equal(t, a.RequestID()+1, b.RequestID(), "request ids are monotonic per slice")
}

// Two adds race and the second resolves first. This is the documented race:
// under LastResolved the first add's late failure still lands in the slice.
func TestConcurrentAddsResolvingOutOfOrder(t *testing.T) {
	tests := []struct {
		name             string
		fencing          Fencing
		wantFirstApplied bool
		wantError        bool
	}{
		{"last resolved reproduces the race", LastResolved, true, true},
		{"latest dispatch discards the stale resolution", LatestDispatch, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newGatedCart()
			cart := NewCartSlice(fake, WithFencing(tt.fencing))
			ctx := context.Background()

			var (
				mu      sync.Mutex
				loading []bool
			)
			unsubscribe := cart.Subscribe(func(s Snapshot[CartState]) {
				mu.Lock()
				loading = append(loading, s.Loading)
				mu.Unlock()
			})
			defer unsubscribe()

			first := cart.Add(ctx, trade.AddCartItem{ItemID: 5})
			fake.add.awaitStarted(t, 1)
			second := cart.Add(ctx, trade.AddCartItem{ItemID: 5})
			fake.add.awaitStarted(t, 1)

			fake.add.release(1, trade.Cart{}, nil)
			waitDone(t, second)
			assert.True(t, second.Applied())
			assert.False(t, cart.State().Loading, "loading is false once the second add resolves")
			assert.Nil(t, cart.State().Error)

			fake.add.release(0, trade.Cart{}, errors.New("item 5 out of stock"))
			waitDone(t, first)

			assert.Equal(t, tt.wantFirstApplied, first.Applied())
			assert.False(t, cart.State().Loading)
			if tt.wantError {
				require.NotNil(t, cart.State().Error)
				assert.Equal(t, "item 5 out of stock", cart.State().Error.Message)
			} else {
				assert.Nil(t, cart.State().Error)
			}

			mu.Lock()
			defer mu.Unlock()
			wantLoading := []bool{true, true, false}
			if tt.wantFirstApplied {
				wantLoading = append(wantLoading, false)
			}
			assert.Equal(t, wantLoading, loading)
		})
	}
}

func TestStaleFetchDoesNotOverwriteNewerData(t *testing.T) {
	tests := []struct {
		name     string
		fencing  Fencing
		wantCart int64
	}{
		{"last resolved keeps the slow response", LastResolved, 1},
		{"latest dispatch keeps the newest request", LatestDispatch, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newGatedCart()
			cart := NewCartSlice(fake, WithFencing(tt.fencing))

			older := cart.Fetch(context.Background())
			fake.get.awaitStarted(t, 1)
			newer := cart.Fetch(context.Background())
			fake.get.awaitStarted(t, 1)

			fake.get.release(1, trade.Cart{CartID: 2}, nil)
			waitDone(t, newer)
			fake.get.release(0, trade.Cart{CartID: 1}, nil)
			waitDone(t, older)

			assert.Equal(t, tt.wantCart, cart.State().Data.Cart.CartID)
		})
	}
}

func TestWaitDoesNotCancelTheOperation(t *testing.T) {
	fake := newGatedCart()
	cart := NewCartSlice(fake)

	ctx, cancel := context.WithCancel(context.Background())
	res := cart.Fetch(ctx)
	fake.get.awaitStarted(t, 1)

	impatient, stopWaiting := context.WithCancel(context.Background())
	stopWaiting()
	_, err := res.Wait(impatient)
	require.ErrorIs(t, err, context.Canceled)

	cancel()
	assert.NoError(t, fake.get.ctx(0).Err(), "the call context outlives the dispatcher's")

	fake.get.release(0, trade.Cart{CartID: 9}, nil)
	waitDone(t, res)
	assert.Equal(t, int64(9), cart.State().Data.Cart.CartID)
}

func TestSubscribe(t *testing.T) {
	calls := new(MockOrderCalls)
	calls.On("List", mock.Anything, mock.Anything).Return([]trade.Order{{OrderID: 1}}, nil)
	orders := NewOrderSlice(calls)
	ctx := waitCtx(t)

	var (
		mu   sync.Mutex
		seen []Snapshot[OrderState]
	)
	unsubscribe := orders.Subscribe(func(s Snapshot[OrderState]) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	_, err := orders.Fetch(ctx, trade.OrderFilter{}).Wait(ctx)
	require.NoError(t, err)

	mu.Lock()
	require.Len(t, seen, 2)
	assert.True(t, seen[0].Loading)
	assert.False(t, seen[1].Loading)
	assert.Len(t, seen[1].Data.Orders, 1)
	mu.Unlock()

	unsubscribe()
	unsubscribe()
	_, err = orders.Fetch(ctx, trade.OrderFilter{}).Wait(ctx)
	require.NoError(t, err)

	mu.Lock()
	assert.Len(t, seen, 2, "no deliveries after unsubscribe")
	mu.Unlock()
}

func TestClearErrorAndReset(t *testing.T) {
	calls := new(MockOrderCalls)
	calls.On("List", mock.Anything, trade.OrderFilter{}).Return([]trade.Order{{OrderID: 1}}, nil).Once()
	calls.On("List", mock.Anything, trade.OrderFilter{Status: trade.OrderPending}).Return(nil, errors.New("db down")).Once()
	orders := NewOrderSlice(calls)
	ctx := waitCtx(t)

	_, err := orders.Fetch(ctx, trade.OrderFilter{}).Wait(ctx)
	require.NoError(t, err)
	_, err = orders.Fetch(ctx, trade.OrderFilter{Status: trade.OrderPending}).Wait(ctx)
	require.Error(t, err)

	st := orders.State()
	require.NotNil(t, st.Error)
	assert.Len(t, st.Data.Orders, 1, "a rejection keeps the last good data")

	orders.ClearError()
	assert.Nil(t, orders.State().Error)
	assert.Len(t, orders.State().Data.Orders, 1)

	orders.Reset()
	assert.Equal(t, Snapshot[OrderState]{}, orders.State())
}

func TestResetFencesInFlightRequests(t *testing.T) {
	fake := newGatedCart()
	cart := NewCartSlice(fake)

	res := cart.Fetch(context.Background())
	fake.get.awaitStarted(t, 1)
	cart.Reset()
	fake.get.release(0, trade.Cart{CartID: 1}, nil)
	waitDone(t, res)

	assert.False(t, res.Applied())
	assert.Nil(t, cart.State().Data.Cart)
}

func TestRecorderSeesEveryOutcome(t *testing.T) {
	rec := new(MockRecorder)
	rec.On("DispatchStarted", "cart").Return().Times(3)
	rec.On("DispatchFinished", "cart", "cart/getCart", ResultFulfilled).Return().Once()
	rec.On("DispatchFinished", "cart", "cart/getCart", ResultStale).Return().Once()
	rec.On("DispatchFinished", "cart", "cart/addToCart", ResultRejected).Return().Once()

	fake := newGatedCart()
	cart := NewCartSlice(fake, WithRecorder(rec))

	stale := cart.Fetch(context.Background())
	fake.get.awaitStarted(t, 1)
	fresh := cart.Fetch(context.Background())
	fake.get.awaitStarted(t, 1)
	fake.get.release(1, trade.Cart{}, nil)
	waitDone(t, fresh)
	fake.get.release(0, trade.Cart{}, nil)
	waitDone(t, stale)

	failed := cart.Add(context.Background(), trade.AddCartItem{ItemID: 1})
	fake.add.awaitStarted(t, 1)
	fake.add.release(0, trade.Cart{}, errors.New("nope"))
	waitDone(t, failed)

	rec.AssertExpectations(t)
}

func TestDispatchSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	calls := new(MockOrderCalls)
	calls.On("List", mock.Anything, trade.OrderFilter{}).Return(nil, errors.New("db down"))
	orders := NewOrderSlice(calls, WithTracerProvider(tp))
	ctx := waitCtx(t)

	_, err := orders.Fetch(ctx, trade.OrderFilter{}).Wait(ctx)
	require.Error(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "order/getOrders", span.Name())
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Contains(t, span.Attributes(), attribute.String("store.slice", "order"))
	assert.Contains(t, span.Attributes(), attribute.String("store.result", ResultRejected))
}

func TestFencingString(t *testing.T) {
	assert.Equal(t, "latest_dispatch", LatestDispatch.String())
	assert.Equal(t, "last_resolved", LastResolved.String())
	assert.Equal(t, "unknown", Fencing(9).String())
}

func TestResetFencesInFlightRequestsUnderLastResolved(t *testing.T) {
	fake := newGatedCart()
	cart := NewCartSlice(fake, WithFencing(LastResolved))

	res := cart.Fetch(context.Background())
	fake.get.awaitStarted(t, 1)
	cart.Reset()
	fake.get.release(0, trade.Cart{CartID: 1}, nil)
	waitDone(t, res)

	assert.False(t, res.Applied())
	assert.Nil(t, cart.State().Data.Cart)
}

func TestEffectSkippedWhenReplacedAfterCommit(t *testing.T) {
	s := NewSlice("auth", 0)
	id := s.begin()
	require.True(t, s.resolve(id, func(st Snapshot[int]) Snapshot[int] {
		return fulfilledTransition(st, 1)
	}))

	s.Reset()

	ran := false
	assert.False(t, s.settle(id, func() { ran = true }))
	assert.False(t, ran)
}

func TestEffectRunsWhenOnlyANewerDispatchStarted(t *testing.T) {
	s := NewSlice("auth", 0)
	id := s.begin()
	require.True(t, s.resolve(id, func(st Snapshot[int]) Snapshot[int] {
		return fulfilledTransition(st, 1)
	}))
	s.begin()

	ran := false
	assert.True(t, s.settle(id, func() { ran = true }))
	assert.True(t, ran)
}
