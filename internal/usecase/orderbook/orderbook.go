// Package orderbook is the in-process book backend. It keeps the same
// versioned snapshot and reservation semantics as the Redis backend for
// single-node deployments and tests.
package orderbook

import (
	"context"
	"sync"
	"time"

	bookv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/book/v1"
	"github.com/shopspring/decimal"
	"github.com/tidwall/btree"
)

type priceLevel struct {
	price  decimal.Decimal
	volume int64
	used   int64
}

func (l *priceLevel) available() int64 {
	return l.volume - l.used
}

type priceLevels = btree.BTreeG[*priceLevel]

type snapshot struct {
	version   int64
	expiresAt time.Time
	asks      *priceLevels
	bids      *priceLevels
}

func (s *snapshot) side(side bookv1.Side) *priceLevels {
	if side == bookv1.SideAsk {
		return s.asks
	}
	return s.bids
}

// Orderbook holds the live snapshot of every instrument behind one mutex,
// which makes each Reserve indivisible.
type Orderbook struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	versions  map[string]int64
	snapshots map[string]*snapshot
}

var _ bookv1.Backend = (*Orderbook)(nil)

// Option configures an Orderbook.
type Option func(*Orderbook)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *Orderbook) {
		o.now = now
	}
}

// NewOrderbook creates an empty in-memory backend.
func NewOrderbook(ttl time.Duration, opts ...Option) *Orderbook {
	ob := &Orderbook{
		ttl:       ttl,
		now:       time.Now,
		versions:  make(map[string]int64),
		snapshots: make(map[string]*snapshot),
	}
	for _, opt := range opts {
		opt(ob)
	}
	return ob
}

func newLevels(side bookv1.Side) *priceLevels {
	// best price first
	if side.Ascending() {
		return btree.NewBTreeG(func(a, b *priceLevel) bool {
			return a.price.LessThan(b.price)
		})
	}
	return btree.NewBTreeG(func(a, b *priceLevel) bool {
		return a.price.GreaterThan(b.price)
	})
}

func fill(levels *priceLevels, input []bookv1.Level) {
	for _, l := range bookv1.PositiveLevels(input) {
		if existing, ok := levels.GetMut(&priceLevel{price: l.Price}); ok {
			existing.volume += l.Volume
			continue
		}
		levels.Set(&priceLevel{price: l.Price, volume: l.Volume})
	}
}

// live returns the unexpired snapshot of instrument. Callers hold mu.
func (ob *Orderbook) live(instrument string) (*snapshot, bool) {
	snap, ok := ob.snapshots[instrument]
	if !ok {
		return nil, false
	}
	if !ob.now().Before(snap.expiresAt) {
		delete(ob.snapshots, instrument)
		return nil, false
	}
	return snap, true
}

// WriteSnapshot replaces the instrument's snapshot with a new version.
func (ob *Orderbook) WriteSnapshot(_ context.Context, instrument string, asks, bids []bookv1.Level) (int64, error) {
	snap := &snapshot{
		asks: newLevels(bookv1.SideAsk),
		bids: newLevels(bookv1.SideBid),
	}
	fill(snap.asks, asks)
	fill(snap.bids, bids)

	ob.mu.Lock()
	defer ob.mu.Unlock()

	ob.versions[instrument]++
	snap.version = ob.versions[instrument]
	snap.expiresAt = ob.now().Add(ob.ttl)
	ob.snapshots[instrument] = snap

	return snap.version, nil
}

// CurrentVersion returns the live version of instrument.
func (ob *Orderbook) CurrentVersion(_ context.Context, instrument string) (int64, bool, error) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	snap, ok := ob.live(instrument)
	if !ok {
		return 0, false, nil
	}
	return snap.version, true, nil
}

// ReadBook returns the available levels of the live version, best first.
func (ob *Orderbook) ReadBook(_ context.Context, instrument string, side bookv1.Side) (*bookv1.Book, error) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	book := &bookv1.Book{Instrument: instrument, Side: side, Levels: []bookv1.Level{}}
	snap, ok := ob.live(instrument)
	if !ok {
		return book, nil
	}

	book.Version = snap.version
	book.TTL = snap.expiresAt.Sub(ob.now())
	snap.side(side).Scan(func(l *priceLevel) bool {
		if l.available() > 0 {
			book.Levels = append(book.Levels, bookv1.Level{Price: l.price, Volume: l.available()})
		}
		return true
	})
	return book, nil
}

// Reserve walks side of the live snapshot from the best price up to limit.
func (ob *Orderbook) Reserve(_ context.Context, instrument string, side bookv1.Side, limit decimal.Decimal, need int64) bookv1.Reservation {
	reservation := bookv1.Reservation{Instrument: instrument, Side: side}
	if need <= 0 {
		return reservation
	}

	ob.mu.Lock()
	defer ob.mu.Unlock()

	snap, ok := ob.live(instrument)
	if !ok {
		return reservation
	}
	reservation.Version = snap.version

	snap.side(side).Scan(func(l *priceLevel) bool {
		if side.Ascending() && l.price.GreaterThan(limit) {
			return false
		}
		if !side.Ascending() && l.price.LessThan(limit) {
			return false
		}

		if take := min(l.available(), need); take > 0 {
			l.used += take
			need -= take
			reservation.Filled += take
			reservation.Fills = append(reservation.Fills, bookv1.Fill{Price: l.price, Volume: take})
		}
		return need > 0
	})

	return reservation
}

// Release returns reserved volume when its version is still live.
func (ob *Orderbook) Release(_ context.Context, reservation bookv1.Reservation) error {
	if reservation.Empty() {
		return nil
	}

	ob.mu.Lock()
	defer ob.mu.Unlock()

	snap, ok := ob.live(reservation.Instrument)
	if !ok || snap.version != reservation.Version {
		return nil
	}

	levels := snap.side(reservation.Side)
	for _, f := range reservation.Fills {
		if l, ok := levels.GetMut(&priceLevel{price: f.Price}); ok {
			l.used = max(0, l.used-f.Volume)
		}
	}
	return nil
}
