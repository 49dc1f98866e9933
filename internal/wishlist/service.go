package wishlist

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"shelf/internal/logger"
	"shelf/internal/metrics"
)

var ErrRateLimited = errors.New("wishlist: too many toggles")

// limiterIdle is how long a bucket may go unused before it is swept.
const limiterIdle = 10 * time.Minute

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// Service applies toggles from the results page, one token bucket per owner.
// ToggleKeyed charges extra buckets on top of the owner's.
type Service struct {
	store Store
	limit rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	limiters  map[string]*bucket
	lastSweep time.Time
}

// NewService allows perSecond toggles per owner with the given burst.
// A non-positive perSecond disables limiting.
func NewService(store Store, perSecond float64, burst int) *Service {
	l := rate.Inf
	if perSecond > 0 {
		l = rate.Limit(perSecond)
	}
	if burst <= 0 {
		burst = 1
	}
	return &Service{store: store, limit: l, burst: burst, now: time.Now, limiters: make(map[string]*bucket)}
}

func (s *Service) allow(keys ...string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if now.Sub(s.lastSweep) >= limiterIdle {
		for k, b := range s.limiters {
			if now.Sub(b.seen) >= limiterIdle {
				delete(s.limiters, k)
			}
		}
		s.lastSweep = now
	}
	ok := true
	for _, key := range keys {
		b, found := s.limiters[key]
		if !found {
			b = &bucket{lim: rate.NewLimiter(s.limit, s.burst)}
			s.limiters[key] = b
		}
		b.seen = now
		if !b.lim.AllowN(now, 1) {
			ok = false
		}
	}
	return ok
}

// Limiters reports how many token buckets are held.
func (s *Service) Limiters() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// Toggle adds bookID when adding is true and removes it otherwise.
// Repeating the same toggle leaves the wishlist unchanged.
func (s *Service) Toggle(ctx context.Context, owner, bookID string, adding bool) error {
	return s.ToggleKeyed(ctx, owner, bookID, adding)
}

// ToggleKeyed is Toggle that also charges the buckets named by extra.
// Every bucket is charged; the toggle is refused if any of them is empty.
func (s *Service) ToggleKeyed(ctx context.Context, owner, bookID string, adding bool, extra ...string) error {
	op := "remove"
	if adding {
		op = "add"
	}
	if !s.allow(append([]string{owner}, extra...)...) {
		metrics.WishlistTogglesTotal.WithLabelValues(op, "limited").Inc()
		return ErrRateLimited
	}

	var err error
	if adding {
		err = s.store.Add(ctx, owner, bookID)
	} else {
		err = s.store.Remove(ctx, owner, bookID)
	}
	if err != nil {
		metrics.WishlistTogglesTotal.WithLabelValues(op, "error").Inc()
		return err
	}
	metrics.WishlistTogglesTotal.WithLabelValues(op, "ok").Inc()
	logger.For(ctx).WithField("book_id", bookID).WithField("op", op).Debug("wishlist.toggle")
	return nil
}

func (s *Service) Membership(ctx context.Context, owner string) (Membership, error) {
	if owner == "" {
		return NewMembership(), nil
	}
	return s.store.Membership(ctx, owner)
}
