package resting

import (
	"context"
	"sort"

	orderv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/order/v1"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	"github.com/muhammadchandra19/paper-exchange/pkg/redis"
	v9 "github.com/redis/go-redis/v9"
)

// hashTag keeps every index key on one cluster slot so removeScript may touch
// the instrument set and both side sets together.
const hashTag = "{resting}"

// removeScript drops one order and forgets the instrument once both sides are empty.
//
// KEYS[1] side set of the order, KEYS[2] opposite side set, KEYS[3] instrument set
// ARGV[1] order id, ARGV[2] instrument
//
// Returns the number of removed orders (0 or 1).
var removeScript = v9.NewScript(`
local removed = redis.call('ZREM', KEYS[1], ARGV[1])
if redis.call('ZCARD', KEYS[1]) == 0 and redis.call('ZCARD', KEYS[2]) == 0 then
	redis.call('SREM', KEYS[3], ARGV[2])
end
return removed
`)

// Index is the Redis resting-order index: one sorted set per instrument and
// side, scored by creation time, plus the set of instruments with resting orders.
type Index struct {
	client redis.Client
	logger logger.Interface
}

var _ orderv1.RestingIndex = (*Index)(nil)

// NewIndex creates an Index.
func NewIndex(client redis.Client, log logger.Interface) *Index {
	return &Index{client: client, logger: log}
}

func (i *Index) instrumentsKey() string {
	return i.client.Key("resting", hashTag, "instruments")
}

func (i *Index) sideKey(instrument string, side orderv1.Side) string {
	return i.client.Key("resting", hashTag, instrument, string(side))
}

// Add indexes a resting order. Adding an indexed order again keeps its original position.
func (i *Index) Add(ctx context.Context, order *orderv1.Order) error {
	return i.client.TxPipelined(ctx, func(pipe v9.Pipeliner) error {
		pipe.ZAddNX(ctx, i.sideKey(order.Instrument, order.Side), v9.Z{
			Score:  float64(order.CreatedAt.UnixMilli()),
			Member: order.ID,
		})
		pipe.SAdd(ctx, i.instrumentsKey(), order.Instrument)
		return nil
	})
}

// Remove drops the order. Only the first call for an order reports true.
func (i *Index) Remove(ctx context.Context, instrument string, side orderv1.Side, orderID string) (bool, error) {
	opposite := orderv1.SideSell
	if side == orderv1.SideSell {
		opposite = orderv1.SideBuy
	}

	raw, err := i.client.RunScript(ctx, removeScript,
		[]string{i.sideKey(instrument, side), i.sideKey(instrument, opposite), i.instrumentsKey()},
		orderID, instrument,
	)
	if err != nil {
		return false, err
	}

	removed, _ := raw.(int64)
	if removed > 0 {
		i.logger.DebugContext(ctx, "order left resting index",
			logger.Field{Key: "order_id", Value: orderID},
			logger.Field{Key: "instrument", Value: instrument},
		)
	}
	return removed > 0, nil
}

// Instruments lists instruments with at least one resting order, sorted.
func (i *Index) Instruments(ctx context.Context) ([]string, error) {
	instruments, err := i.client.SMembers(ctx, i.instrumentsKey())
	if err != nil {
		return nil, err
	}
	sort.Strings(instruments)
	return instruments, nil
}

// OrderIDs lists resting order ids of one side, oldest first.
func (i *Index) OrderIDs(ctx context.Context, instrument string, side orderv1.Side) ([]string, error) {
	return i.client.ZRange(ctx, i.sideKey(instrument, side), 0, -1)
}
