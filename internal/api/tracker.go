package api

import (
	"context"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/mhizterpaul/cartlink/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Tracker sends product link visit beacons. Beacons are best effort: a
// failed beacon is logged and never reported to the caller.
type Tracker struct {
	doer   Doer
	logger *zap.Logger
	now    func() time.Time
}

func NewTracker(d Doer, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{doer: d, logger: log, now: time.Now}
}

// PageView records one view of linkID. An empty source is omitted.
func (t *Tracker) PageView(ctx context.Context, linkID int64, source string) {
	q := url.Values{}
	if source != "" {
		q.Set("source", source)
	}
	req := withQuery(post("/analytics/pageview/"+id(linkID), "/analytics/pageview/:linkId", nil), q)
	if err := exec(ctx, t.doer, req); err != nil {
		logger.Enrich(ctx, t.logger).Warn("Error recording page view", zap.Int64("link_id", linkID), zap.Error(err))
	}
}

// TimeSpent records how many whole seconds a visit to linkID lasted.
func (t *Tracker) TimeSpent(ctx context.Context, linkID int64, seconds int) {
	q := url.Values{"timeSpentSeconds": {strconv.Itoa(seconds)}}
	req := withQuery(post("/analytics/timespent/"+id(linkID), "/analytics/timespent/:linkId", nil), q)
	if err := exec(ctx, t.doer, req); err != nil {
		logger.Enrich(ctx, t.logger).Warn("Error recording time spent", zap.Int64("link_id", linkID), zap.Error(err))
	}
}

// Begin records the page view of a visit and returns the visit so its end can be recorded.
func (t *Tracker) Begin(ctx context.Context, linkID int64, source string) *Visit {
	v := &Visit{tracker: t, linkID: linkID, started: t.now()}
	t.PageView(ctx, linkID, source)
	return v
}

// Visit is one open page view.
type Visit struct {
	tracker *Tracker
	linkID  int64
	started time.Time
	once    sync.Once
}

// End records the time spent since Begin. Only the first call sends a beacon.
func (v *Visit) End(ctx context.Context) {
	v.once.Do(func() {
		seconds := int(v.tracker.now().Sub(v.started) / time.Second)
		v.tracker.TimeSpent(ctx, v.linkID, seconds)
	})
}
