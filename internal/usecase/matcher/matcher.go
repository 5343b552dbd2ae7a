package matcher

import (
	"context"
	"strconv"

	bookv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/book/v1"
	"github.com/muhammadchandra19/paper-exchange/internal/usecase/snapshot"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	"github.com/muhammadchandra19/paper-exchange/pkg/redis"
	"github.com/shopspring/decimal"
)

// Matcher reserves snapshot liquidity with Lua scripts, so each walk is
// atomic relative to every other reserve on the same Redis.
type Matcher struct {
	client redis.Client
	keys   snapshot.Keys
	logger logger.Interface
}

var _ bookv1.Matcher = (*Matcher)(nil)

// NewMatcher creates a Matcher over the snapshot layout of client.
func NewMatcher(client redis.Client, log logger.Interface) *Matcher {
	return &Matcher{
		client: client,
		keys:   snapshot.NewKeys(client),
		logger: log,
	}
}

// Reserve walks side of the live snapshot up to limit for need units.
// Any store failure is logged and yields an empty reservation.
func (m *Matcher) Reserve(ctx context.Context, instrument string, side bookv1.Side, limit decimal.Decimal, need int64) bookv1.Reservation {
	empty := bookv1.Reservation{Instrument: instrument, Side: side}
	if need <= 0 {
		return empty
	}

	ascending := "0"
	if side.Ascending() {
		ascending = "1"
	}

	raw, err := m.client.RunScript(ctx, reserveScript,
		[]string{m.keys.Current(instrument)},
		m.keys.Base(instrument), string(side), limit.String(), need, ascending,
	)
	if err != nil {
		m.logger.ErrorContext(ctx, err,
			logger.Field{Key: "instrument", Value: instrument},
			logger.Field{Key: "side", Value: side},
		)
		return empty
	}

	reservation, err := decodeReservation(instrument, side, raw)
	if err != nil {
		m.logger.ErrorContext(ctx, err, logger.Field{Key: "instrument", Value: instrument})
		return empty
	}
	return reservation
}

// Release gives a reservation back to its version. It is a no-op for empty
// reservations and for versions that already expired.
func (m *Matcher) Release(ctx context.Context, reservation bookv1.Reservation) error {
	if reservation.Empty() || reservation.Version == 0 {
		return nil
	}

	args := make([]any, 0, 2*len(reservation.Fills))
	for _, f := range reservation.Fills {
		args = append(args, f.Price.String(), f.Volume)
	}

	_, err := m.client.RunScript(ctx, releaseScript,
		[]string{m.keys.Used(reservation.Instrument, reservation.Side, reservation.Version)},
		args...,
	)
	return err
}

func decodeReservation(instrument string, side bookv1.Side, raw any) (bookv1.Reservation, error) {
	reservation := bookv1.Reservation{Instrument: instrument, Side: side}

	values, ok := raw.([]any)
	if !ok || len(values) < 2 || len(values)%2 != 0 {
		return reservation, errors.NewTracerf("unexpected reserve reply %v", raw)
	}

	version, vok := values[0].(int64)
	filled, fok := values[1].(int64)
	if !vok || !fok {
		return reservation, errors.NewTracerf("unexpected reserve header %v", values[:2])
	}

	fills := make([]bookv1.Fill, 0, (len(values)-2)/2)
	for i := 2; i < len(values); i += 2 {
		member, _ := values[i].(string)
		price, err := decimal.NewFromString(member)
		if err != nil {
			return reservation, errors.NewTracerf("unexpected fill price %q", member).Wrap(err)
		}
		volume, ok := values[i+1].(int64)
		if !ok {
			return reservation, errors.NewTracer("unexpected fill volume " + strconv.Quote(member))
		}
		fills = append(fills, bookv1.Fill{Price: price, Volume: volume})
	}

	reservation.Version = version
	reservation.Filled = filled
	reservation.Fills = fills
	return reservation, nil
}
