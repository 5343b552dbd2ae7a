package engine

import (
	"time"

	"github.com/muhammadchandra19/paper-exchange/internal/config"
	bookv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/book/v1"
	"github.com/muhammadchandra19/paper-exchange/internal/usecase/matcher"
	"github.com/muhammadchandra19/paper-exchange/internal/usecase/orderbook"
	"github.com/muhammadchandra19/paper-exchange/internal/usecase/snapshot"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	"github.com/muhammadchandra19/paper-exchange/pkg/redis"
)

// redisBackend pairs the snapshot writer with the Lua matcher over one Redis.
type redisBackend struct {
	*snapshot.Store
	*matcher.Matcher
}

// NewBookBackend returns the book implementation named by kind.
func NewBookBackend(kind string, client redis.Client, ttl time.Duration, log logger.Interface) (bookv1.Backend, error) {
	switch kind {
	case config.BookBackendRedis:
		if client == nil {
			return nil, errors.NewErrorDetails("redis backend needs a redis client", string(errors.ConfigInvalidError), "MATCHING_BOOK_BACKEND")
		}
		return &redisBackend{
			Store:   snapshot.NewStore(client, ttl, log),
			Matcher: matcher.NewMatcher(client, log),
		}, nil
	case config.BookBackendMemory:
		return orderbook.NewOrderbook(ttl), nil
	default:
		return nil, errors.NewErrorDetails("unknown book backend "+kind, string(errors.ConfigInvalidError), "MATCHING_BOOK_BACKEND")
	}
}
