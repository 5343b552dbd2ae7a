package snapshot

import (
	"strconv"

	bookv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/book/v1"
	"github.com/muhammadchandra19/paper-exchange/pkg/redis"
)

// Keys lays out the book keys of one instrument. The instrument is wrapped in
// a hash tag so every key of an instrument lands on the same cluster slot.
//
//	<prefix>book:{inst}:ver                  version counter
//	<prefix>book:{inst}:cur                  current version, expires with the snapshot
//	<prefix>book:{inst}:<side>:<ver>:vol     HASH price -> volume
//	<prefix>book:{inst}:<side>:<ver>:idx     ZSET price, scored by price
//	<prefix>book:{inst}:<side>:<ver>:used    HASH price -> reserved volume
type Keys struct {
	client redis.Client
}

// NewKeys returns the key layout for client's prefix.
func NewKeys(client redis.Client) Keys {
	return Keys{client: client}
}

// Base is the common prefix of every key of instrument.
func (k Keys) Base(instrument string) string {
	return k.client.Key("book", "{"+instrument+"}")
}

// Version is the per-instrument version counter.
func (k Keys) Version(instrument string) string {
	return k.Base(instrument) + ":ver"
}

// Current points at the live version.
func (k Keys) Current(instrument string) string {
	return k.Base(instrument) + ":cur"
}

func (k Keys) scoped(instrument string, side bookv1.Side, version int64, suffix string) string {
	return k.Base(instrument) + ":" + string(side) + ":" + strconv.FormatInt(version, 10) + ":" + suffix
}

// Volume is the price -> volume hash of one version.
func (k Keys) Volume(instrument string, side bookv1.Side, version int64) string {
	return k.scoped(instrument, side, version, "vol")
}

// Index is the sorted price index of one version.
func (k Keys) Index(instrument string, side bookv1.Side, version int64) string {
	return k.scoped(instrument, side, version, "idx")
}

// Used is the consumed ledger of one version.
func (k Keys) Used(instrument string, side bookv1.Side, version int64) string {
	return k.scoped(instrument, side, version, "used")
}
