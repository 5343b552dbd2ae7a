package marketdatav1

import (
	"time"

	bookv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/book/v1"
	"github.com/shopspring/decimal"
)

// Tick is one trade print.
type Tick struct {
	Instrument  string          `json:"instrument"`
	TradeTime   string          `json:"trade_time"`
	Price       decimal.Decimal `json:"price"`
	Sign        string          `json:"sign"`
	Change      decimal.Decimal `json:"change"`
	ChangeRate  decimal.Decimal `json:"change_rate"`
	WeightedAvg decimal.Decimal `json:"weighted_avg"`
	Open        decimal.Decimal `json:"open"`
	High        decimal.Decimal `json:"high"`
	Low         decimal.Decimal `json:"low"`
	Ask1        decimal.Decimal `json:"ask1"`
	Bid1        decimal.Decimal `json:"bid1"`
	Volume      int64           `json:"volume"`
	AccVolume   int64           `json:"acc_volume"`
	ReceivedAt  time.Time       `json:"received_at"`
}

// Depth is a ten-level order book update.
type Depth struct {
	Instrument     string         `json:"instrument"`
	Time           string         `json:"time"`
	HourCode       string         `json:"hour_code"`
	Asks           []bookv1.Level `json:"asks"`
	Bids           []bookv1.Level `json:"bids"`
	TotalAskVolume int64          `json:"total_ask_volume"`
	TotalBidVolume int64          `json:"total_bid_volume"`
	ReceivedAt     time.Time      `json:"received_at"`
}

// Stats is a point-in-time view of the ingestor.
type Stats struct {
	Connected             bool      `json:"connected"`
	ExpectedSubscriptions int       `json:"expected_subscriptions"`
	AcknowledgedSubs      int       `json:"acknowledged_subscriptions"`
	ReconnectAttempts     int       `json:"reconnect_attempts"`
	TicksReceived         int64     `json:"ticks_received"`
	DepthsWritten         int64     `json:"depths_written"`
	DepthsThrottled       int64     `json:"depths_throttled"`
	DroppedFrames         int64     `json:"dropped_frames"`
	LastMessageAt         time.Time `json:"last_message_at"`
}
