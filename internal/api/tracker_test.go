package api

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/mhizterpaul/cartlink/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTracker(t *testing.T, b *testutil.Backend) (*Tracker, *observer.ObservedLogs, *fakeClock) {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	tr := NewTracker(b.Client(t), zap.New(core))
	tr.now = clock.Now
	return tr, logs, clock
}

func TestTrackerPageView(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		wantQuery string
	}{
		{"with source", "instagram", "source=instagram"},
		{"without source", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := testutil.NewBackend(t)
			backend.Respond(http.MethodPost, "/analytics/pageview/:linkId", http.StatusOK, nil)
			tr, logs, _ := newTracker(t, backend)

			tr.PageView(context.Background(), 42, tt.source)

			last := backend.Last(t)
			assert.Equal(t, "/api/analytics/pageview/42", last.Path)
			assert.Equal(t, tt.wantQuery, last.RawQuery)
			assert.Zero(t, logs.Len())
		})
	}
}

func TestTrackerVisit(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodPost, "/analytics/pageview/:linkId", http.StatusOK, nil)
	backend.Respond(http.MethodPost, "/analytics/timespent/:linkId", http.StatusOK, nil)
	tr, _, clock := newTracker(t, backend)
	ctx := context.Background()

	visit := tr.Begin(ctx, 7, "direct")
	clock.Advance(95*time.Second + 700*time.Millisecond)
	visit.End(ctx)
	visit.End(ctx)

	reqs := backend.Requests()
	require.Len(t, reqs, 2, "one page view and one time spent beacon")
	assert.Equal(t, "/api/analytics/pageview/7", reqs[0].Path)
	assert.Equal(t, "source=direct", reqs[0].RawQuery)
	assert.Equal(t, "/api/analytics/timespent/7", reqs[1].Path)
	assert.Equal(t, "timeSpentSeconds=95", reqs[1].RawQuery)
}

func TestTrackerSwallowsFailures(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodPost, "/analytics/pageview/:linkId", http.StatusInternalServerError, map[string]any{"message": "boom"})
	backend.Respond(http.MethodPost, "/analytics/timespent/:linkId", http.StatusServiceUnavailable, nil)
	tr, logs, _ := newTracker(t, backend)
	ctx := context.Background()

	assert.NotPanics(t, func() {
		tr.PageView(ctx, 3, "")
		tr.TimeSpent(ctx, 3, 10)
	})

	assert.Equal(t, 1, logs.FilterMessage("Error recording page view").Len())
	assert.Equal(t, 1, logs.FilterMessage("Error recording time spent").Len())
	entry := logs.FilterMessage("Error recording page view").All()[0]
	assert.Equal(t, int64(3), entry.ContextMap()["link_id"])
}
