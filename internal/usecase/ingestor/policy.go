package ingestor

import (
	"sync"
	"time"

	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
)

// DepthPolicy allows depth collection until a daily cutoff in a fixed location.
type DepthPolicy struct {
	cutoff   time.Duration
	location *time.Location
}

// NewDepthPolicy parses cutoff as HH:MM in the named timezone.
func NewDepthPolicy(cutoff, timezone string) (DepthPolicy, error) {
	at, err := time.Parse("15:04", cutoff)
	if err != nil {
		return DepthPolicy{}, errors.NewErrorDetails("depth cutoff must be HH:MM", string(errors.ConfigInvalidError), "depth_cutoff")
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return DepthPolicy{}, errors.NewErrorDetails("unknown timezone", string(errors.ConfigInvalidError), "timezone")
	}
	return DepthPolicy{
		cutoff:   time.Duration(at.Hour())*time.Hour + time.Duration(at.Minute())*time.Minute,
		location: location,
	}, nil
}

// Allows reports whether depth may be collected at t.
func (p DepthPolicy) Allows(t time.Time) bool {
	local := t.In(p.location)
	sinceMidnight := time.Duration(local.Hour())*time.Hour +
		time.Duration(local.Minute())*time.Minute +
		time.Duration(local.Second())*time.Second
	return sinceMidnight < p.cutoff
}

// throttle admits at most one event per key per interval. Rejected events are dropped.
type throttle struct {
	mu       sync.Mutex
	interval time.Duration
	last     map[string]time.Time
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{interval: interval, last: make(map[string]time.Time)}
}

func (t *throttle) allow(key string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if last, ok := t.last[key]; ok && now.Sub(last) < t.interval {
		return false
	}
	t.last[key] = now
	return true
}
