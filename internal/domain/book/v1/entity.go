package bookv1

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is one side of an instrument's book.
type Side string

const (
	// SideAsk holds resting sell liquidity, consumed by BUY orders.
	SideAsk Side = "ask"
	// SideBid holds resting buy liquidity, consumed by SELL orders.
	SideBid Side = "bid"
)

// Ascending reports whether levels of this side are consumed from the lowest price up.
func (s Side) Ascending() bool {
	return s == SideAsk
}

// Level is one price level.
type Level struct {
	Price  decimal.Decimal `json:"price"`
	Volume int64           `json:"volume"`
}

// Book is the view of one side of one snapshot version.
type Book struct {
	Instrument string        `json:"instrument"`
	Side       Side          `json:"side"`
	Version    int64         `json:"version"`
	Levels     []Level       `json:"levels"`
	TTL        time.Duration `json:"ttl"`
}

// Fill is liquidity reserved at one price level.
type Fill struct {
	Price  decimal.Decimal `json:"price"`
	Volume int64           `json:"volume"`
}

// Reservation is the result of one Reserve call. Version is zero when no snapshot existed.
type Reservation struct {
	Instrument string `json:"instrument"`
	Side       Side   `json:"side"`
	Version    int64  `json:"version"`
	Filled     int64  `json:"filled"`
	Fills      []Fill `json:"fills"`
}

// Empty reports whether nothing was reserved.
func (r Reservation) Empty() bool {
	return r.Filled <= 0
}

// Value is the exact Σ price*volume of the fills.
func (r Reservation) Value() decimal.Decimal {
	total := decimal.Zero
	for _, f := range r.Fills {
		total = total.Add(f.Price.Mul(decimal.NewFromInt(f.Volume)))
	}
	return total
}

// PositiveLevels drops levels that carry no volume.
func PositiveLevels(levels []Level) []Level {
	out := make([]Level, 0, len(levels))
	for _, l := range levels {
		if l.Volume > 0 {
			out = append(out, l)
		}
	}
	return out
}
