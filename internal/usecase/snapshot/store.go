package snapshot

import (
	"context"
	"sort"
	"strconv"
	"time"

	bookv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/book/v1"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	"github.com/muhammadchandra19/paper-exchange/pkg/redis"
	v9 "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// DefaultTTL is how long a snapshot version stays readable.
const DefaultTTL = 10 * time.Second

// Store keeps versioned order book snapshots in Redis.
type Store struct {
	client redis.Client
	keys   Keys
	ttl    time.Duration
	logger logger.Interface
}

var _ bookv1.Store = (*Store)(nil)

// NewStore creates a snapshot store. A non-positive ttl falls back to DefaultTTL.
func NewStore(client redis.Client, ttl time.Duration, log logger.Interface) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		client: client,
		keys:   NewKeys(client),
		ttl:    ttl,
		logger: log,
	}
}

// Keys exposes the key layout.
func (s *Store) Keys() Keys {
	return s.keys
}

// WriteSnapshot allocates the next version and writes both sides in one MULTI/EXEC.
func (s *Store) WriteSnapshot(ctx context.Context, instrument string, asks, bids []bookv1.Level) (int64, error) {
	version, err := s.client.Incr(ctx, s.keys.Version(instrument))
	if err != nil {
		return 0, err
	}

	sides := []struct {
		side   bookv1.Side
		levels []bookv1.Level
	}{
		{side: bookv1.SideAsk, levels: aggregate(asks)},
		{side: bookv1.SideBid, levels: aggregate(bids)},
	}

	err = s.client.TxPipelined(ctx, func(pipe v9.Pipeliner) error {
		for _, sd := range sides {
			if len(sd.levels) == 0 {
				continue
			}

			volKey := s.keys.Volume(instrument, sd.side, version)
			idxKey := s.keys.Index(instrument, sd.side, version)

			fields := make([]any, 0, 2*len(sd.levels))
			members := make([]v9.Z, 0, len(sd.levels))
			for _, l := range sd.levels {
				price := l.Price.String()
				fields = append(fields, price, l.Volume)
				members = append(members, v9.Z{Score: l.Price.InexactFloat64(), Member: price})
			}

			pipe.HSet(ctx, volKey, fields...)
			pipe.ZAdd(ctx, idxKey, members...)
			pipe.PExpire(ctx, volKey, s.ttl)
			pipe.PExpire(ctx, idxKey, s.ttl)
		}
		pipe.Set(ctx, s.keys.Current(instrument), version, s.ttl)
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.Field{Key: "instrument", Value: instrument},
			logger.Field{Key: "version", Value: version},
		)
		return 0, err
	}

	return version, nil
}

// CurrentVersion returns the live version of instrument.
func (s *Store) CurrentVersion(ctx context.Context, instrument string) (int64, bool, error) {
	raw, err := s.client.Get(ctx, s.keys.Current(instrument))
	if err != nil {
		return 0, false, err
	}
	if raw == "" {
		return 0, false, nil
	}

	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, errors.NewTracerf("corrupt version for %s", instrument).Wrap(err)
	}
	return version, true, nil
}

// ReadBook returns the levels of the current version net of reserved volume,
// best price first. A missing snapshot yields an empty book with version 0.
func (s *Store) ReadBook(ctx context.Context, instrument string, side bookv1.Side) (*bookv1.Book, error) {
	book := &bookv1.Book{Instrument: instrument, Side: side, Levels: []bookv1.Level{}}

	version, ok, err := s.CurrentVersion(ctx, instrument)
	if err != nil || !ok {
		return book, err
	}
	book.Version = version

	if book.TTL, err = s.client.PTTL(ctx, s.keys.Current(instrument)); err != nil {
		return nil, err
	}

	index, err := s.client.ZRangeWithScores(ctx, s.keys.Index(instrument, side, version), 0, -1)
	if err != nil {
		return nil, err
	}
	volumes, err := s.client.HGetAll(ctx, s.keys.Volume(instrument, side, version))
	if err != nil {
		return nil, err
	}
	used, err := s.client.HGetAll(ctx, s.keys.Used(instrument, side, version))
	if err != nil {
		return nil, err
	}

	for _, z := range index {
		member, _ := z.Member.(string)
		price, err := decimal.NewFromString(member)
		if err != nil {
			return nil, errors.NewTracerf("corrupt price level %q", member).Wrap(err)
		}
		available := parseInt(volumes[member]) - parseInt(used[member])
		if available <= 0 {
			continue
		}
		book.Levels = append(book.Levels, bookv1.Level{Price: price, Volume: available})
	}

	if !side.Ascending() {
		sort.SliceStable(book.Levels, func(i, j int) bool {
			return book.Levels[i].Price.GreaterThan(book.Levels[j].Price)
		})
	}
	return book, nil
}

func parseInt(raw string) int64 {
	v, _ := strconv.ParseInt(raw, 10, 64)
	return v
}

// aggregate drops non-positive levels and merges repeated prices.
func aggregate(levels []bookv1.Level) []bookv1.Level {
	positive := bookv1.PositiveLevels(levels)
	merged := make([]bookv1.Level, 0, len(positive))
	seen := make(map[string]int, len(positive))
	for _, l := range positive {
		key := l.Price.String()
		if i, ok := seen[key]; ok {
			merged[i].Volume += l.Volume
			continue
		}
		seen[key] = len(merged)
		merged = append(merged, l)
	}
	return merged
}
