package marketdatav1

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	bookv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/book/v1"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/shopspring/decimal"
)

// Gateway transaction ids.
const (
	TrIDTick  = "H0STCNT0"
	TrIDDepth = "H0STASP0"
)

// Subscribe request kinds.
const (
	TrTypeSubscribe   = "1"
	TrTypeUnsubscribe = "2"
)

const (
	// SubscribeAck is carried by the gateway's JSON reply to a successful subscription.
	SubscribeAck = "SUBSCRIBE SUCCESS"
	// PingPong identifies keep-alive frames which must be echoed back.
	PingPong = "PINGPONG"

	// DepthLevels is the number of price levels per side in a depth frame.
	DepthLevels = 10

	minFrameFields = 4
	tickFields     = 14
	// ticker, time, hour code, 4 blocks of DepthLevels, two totals
	depthFields = 3 + 4*DepthLevels + 2
)

// Frame is one `|`-delimited data frame.
type Frame struct {
	Encrypted bool
	TrID      string
	Count     int
	Records   [][]string
}

// SubscribeRequest is the outbound subscribe/unsubscribe envelope.
type SubscribeRequest struct {
	Header SubscribeHeader `json:"header"`
	Body   SubscribeBody   `json:"body"`
}

// SubscribeHeader is the envelope header.
type SubscribeHeader struct {
	ApprovalKey string `json:"approval_key"`
	CustType    string `json:"custtype"`
	TrType      string `json:"tr_type"`
	ContentType string `json:"content-type"`
}

// SubscribeBody is the envelope body.
type SubscribeBody struct {
	Input SubscribeInput `json:"input"`
}

// SubscribeInput names the stream and instrument.
type SubscribeInput struct {
	TrID  string `json:"tr_id"`
	TrKey string `json:"tr_key"`
}

// NewSubscribeRequest builds an envelope for one (trID, instrument) stream.
func NewSubscribeRequest(approvalKey, trType, trID, instrument string) SubscribeRequest {
	return SubscribeRequest{
		Header: SubscribeHeader{
			ApprovalKey: approvalKey,
			CustType:    "P",
			TrType:      trType,
			ContentType: "utf-8",
		},
		Body: SubscribeBody{Input: SubscribeInput{TrID: trID, TrKey: instrument}},
	}
}

// Marshal encodes the envelope.
func (r SubscribeRequest) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// IsDataFrame reports whether raw is a `|`-delimited data frame rather than a JSON control message.
func IsDataFrame(raw []byte) bool {
	return len(raw) > 0 && (raw[0] == '0' || raw[0] == '1')
}

// ControlMessage is the JSON reply the gateway sends for subscriptions and keep-alives.
type ControlMessage struct {
	Header struct {
		TrID  string `json:"tr_id"`
		TrKey string `json:"tr_key"`
	} `json:"header"`
	Body struct {
		ReturnCode  string `json:"rt_cd"`
		MessageCode string `json:"msg_cd"`
		Message     string `json:"msg1"`
	} `json:"body"`
}

// IsAck reports whether the control message acknowledges a subscription.
func (c ControlMessage) IsAck() bool {
	return c.Body.Message == SubscribeAck
}

// IsPingPong reports whether the control message is a keep-alive.
func (c ControlMessage) IsPingPong() bool {
	return c.Header.TrID == PingPong
}

// ParseControl decodes a JSON control message.
func ParseControl(raw []byte) (ControlMessage, error) {
	var msg ControlMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return msg, errors.NewErrorDetails("invalid control message", string(errors.MalformedFrame), "json")
	}
	return msg, nil
}

// ParseFrame splits a data frame into its records. Count > 1 packs records back to back.
func ParseFrame(raw string) (*Frame, error) {
	parts := strings.SplitN(raw, "|", minFrameFields)
	if len(parts) < minFrameFields {
		return nil, errors.NewErrorDetails("frame has fewer than 4 fields", string(errors.MalformedFrame), "frame")
	}

	count, err := strconv.Atoi(parts[2])
	if err != nil || count <= 0 {
		return nil, errors.NewErrorDetails("invalid record count", string(errors.MalformedFrame), "count")
	}

	fields := strings.Split(parts[3], "^")
	if len(fields)%count != 0 {
		return nil, errors.NewErrorDetails("payload does not split into records", string(errors.MalformedFrame), "payload")
	}

	width := len(fields) / count
	records := make([][]string, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, fields[i*width:(i+1)*width])
	}

	return &Frame{
		Encrypted: parts[0] == "1",
		TrID:      parts[1],
		Count:     count,
		Records:   records,
	}, nil
}

type fieldReader struct {
	fields []string
	err    error
	field  string
}

func (r *fieldReader) decimal(i int, name string) decimal.Decimal {
	if r.err != nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(r.fields[i])
	if err != nil {
		r.err, r.field = err, name
		return decimal.Zero
	}
	return d
}

func (r *fieldReader) int(i int, name string) int64 {
	if r.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(r.fields[i], 10, 64)
	if err != nil {
		r.err, r.field = err, name
		return 0
	}
	return v
}

func (r *fieldReader) failed() error {
	if r.err == nil {
		return nil
	}
	return errors.NewErrorDetails("invalid numeric field", string(errors.MalformedFrame), r.field)
}

// DecodeTick decodes one H0STCNT0 record.
func DecodeTick(record []string, receivedAt time.Time) (*Tick, error) {
	if len(record) < tickFields {
		return nil, errors.NewErrorDetails("tick record too short", string(errors.MalformedFrame), "tick")
	}

	r := &fieldReader{fields: record}
	tick := &Tick{
		Instrument:  record[0],
		TradeTime:   record[1],
		Price:       r.decimal(2, "price"),
		Sign:        record[3],
		Change:      r.decimal(4, "change"),
		ChangeRate:  r.decimal(5, "change_rate"),
		WeightedAvg: r.decimal(6, "weighted_avg"),
		Open:        r.decimal(7, "open"),
		High:        r.decimal(8, "high"),
		Low:         r.decimal(9, "low"),
		Ask1:        r.decimal(10, "ask1"),
		Bid1:        r.decimal(11, "bid1"),
		Volume:      r.int(12, "volume"),
		AccVolume:   r.int(13, "acc_volume"),
		ReceivedAt:  receivedAt,
	}
	if err := r.failed(); err != nil {
		return nil, err
	}
	return tick, nil
}

// DecodeDepth decodes one H0STASP0 record. Levels with no volume are kept;
// the snapshot store drops them.
func DecodeDepth(record []string, receivedAt time.Time) (*Depth, error) {
	if len(record) < depthFields {
		return nil, errors.NewErrorDetails("depth record too short", string(errors.MalformedFrame), "depth")
	}

	const (
		askPrices = 3
		bidPrices = askPrices + DepthLevels
		askVols   = bidPrices + DepthLevels
		bidVols   = askVols + DepthLevels
		totals    = bidVols + DepthLevels
	)

	r := &fieldReader{fields: record}
	depth := &Depth{
		Instrument: record[0],
		Time:       record[1],
		HourCode:   record[2],
		Asks:       make([]bookv1.Level, 0, DepthLevels),
		Bids:       make([]bookv1.Level, 0, DepthLevels),
		ReceivedAt: receivedAt,
	}
	for i := 0; i < DepthLevels; i++ {
		depth.Asks = append(depth.Asks, bookv1.Level{
			Price:  r.decimal(askPrices+i, "ask_price"),
			Volume: r.int(askVols+i, "ask_volume"),
		})
		depth.Bids = append(depth.Bids, bookv1.Level{
			Price:  r.decimal(bidPrices+i, "bid_price"),
			Volume: r.int(bidVols+i, "bid_volume"),
		})
	}
	depth.TotalAskVolume = r.int(totals, "total_ask_volume")
	depth.TotalBidVolume = r.int(totals+1, "total_bid_volume")

	if err := r.failed(); err != nil {
		return nil, err
	}
	return depth, nil
}
