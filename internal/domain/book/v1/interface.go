package bookv1

import (
	"context"

	"github.com/shopspring/decimal"
)

// Store holds versioned, expiring order book snapshots.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=bookv1_mock
type Store interface {
	// WriteSnapshot stores both sides under a fresh version and returns it.
	WriteSnapshot(ctx context.Context, instrument string, asks, bids []Level) (int64, error)
	// CurrentVersion returns ok=false when no unexpired snapshot exists.
	CurrentVersion(ctx context.Context, instrument string) (int64, bool, error)
	// ReadBook returns one side of the current version net of reserved volume.
	ReadBook(ctx context.Context, instrument string, side Side) (*Book, error)
}

// Matcher reserves snapshot liquidity atomically.
type Matcher interface {
	// Reserve walks side up to limit for need units. Store failures yield an empty Reservation.
	Reserve(ctx context.Context, instrument string, side Side, limit decimal.Decimal, need int64) Reservation
	// Release returns a reservation to its snapshot version, if that version is still live.
	Release(ctx context.Context, reservation Reservation) error
}

// Backend is a book implementation usable by both the ingestor and the executor.
type Backend interface {
	Store
	Matcher
}
