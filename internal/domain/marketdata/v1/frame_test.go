package marketdatav1

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var received = time.Date(2025, 3, 4, 9, 30, 0, 0, time.UTC)

func tickPayload(instrument string) string {
	return strings.Join([]string{
		instrument, "093354", "71900", "5", "-100", "-0.14", "72023.83",
		"72100", "72400", "71700", "71900", "71800", "12", "3052507",
	}, "^")
}

// depthPayload builds an H0STASP0 record with asks 100..109 and bids 99..90.
func depthPayload(instrument string) string {
	fields := []string{instrument, "093354", "0"}
	for i := 0; i < DepthLevels; i++ {
		fields = append(fields, decimal.NewFromInt(int64(100+i)).String())
	}
	for i := 0; i < DepthLevels; i++ {
		fields = append(fields, decimal.NewFromInt(int64(99-i)).String())
	}
	for i := 0; i < DepthLevels; i++ {
		fields = append(fields, "10")
	}
	for i := 0; i < DepthLevels; i++ {
		fields = append(fields, "5")
	}
	fields = append(fields, "100", "50")
	return strings.Join(fields, "^")
}

func TestParseFrame(t *testing.T) {
	testCases := []struct {
		name          string
		raw           string
		expectErr     bool
		expectedTrID  string
		expectedCount int
	}{
		{name: "tick", raw: "0|H0STCNT0|001|" + tickPayload("005930"), expectedTrID: TrIDTick, expectedCount: 1},
		{name: "two ticks", raw: "0|H0STCNT0|002|" + tickPayload("005930") + "^" + tickPayload("000660"), expectedTrID: TrIDTick, expectedCount: 2},
		{name: "too few fields", raw: "0|H0STCNT0|001", expectErr: true},
		{name: "empty", raw: "", expectErr: true},
		{name: "bad count", raw: "0|H0STCNT0|x|a^b", expectErr: true},
		{name: "uneven records", raw: "0|H0STCNT0|002|a^b^c", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			frame, err := ParseFrame(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.MalformedFrame))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedTrID, frame.TrID)
			assert.Len(t, frame.Records, tc.expectedCount)
		})
	}
}

func TestDecodeTick(t *testing.T) {
	frame, err := ParseFrame("0|H0STCNT0|002|" + tickPayload("005930") + "^" + tickPayload("000660"))
	require.NoError(t, err)

	tick, err := DecodeTick(frame.Records[1], received)
	require.NoError(t, err)

	assert.Equal(t, "000660", tick.Instrument)
	assert.True(t, tick.Price.Equal(decimal.NewFromInt(71900)))
	assert.True(t, tick.ChangeRate.Equal(decimal.RequireFromString("-0.14")))
	assert.Equal(t, int64(12), tick.Volume)
	assert.Equal(t, int64(3052507), tick.AccVolume)
	assert.Equal(t, received, tick.ReceivedAt)

	_, err = DecodeTick([]string{"005930", "093354"}, received)
	assert.True(t, errors.HasCode(err, errors.MalformedFrame))

	bad := strings.Split(tickPayload("005930"), "^")
	bad[2] = "n/a"
	_, err = DecodeTick(bad, received)
	require.Error(t, err)
	assert.Equal(t, "price", err.(*errors.ErrorDetails).Field)
}

func TestDecodeDepth(t *testing.T) {
	frame, err := ParseFrame("0|H0STASP0|001|" + depthPayload("005930"))
	require.NoError(t, err)

	depth, err := DecodeDepth(frame.Records[0], received)
	require.NoError(t, err)

	require.Len(t, depth.Asks, DepthLevels)
	require.Len(t, depth.Bids, DepthLevels)
	assert.True(t, depth.Asks[0].Price.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, int64(10), depth.Asks[0].Volume)
	assert.True(t, depth.Bids[9].Price.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, int64(5), depth.Bids[9].Volume)
	assert.Equal(t, int64(100), depth.TotalAskVolume)
	assert.Equal(t, int64(50), depth.TotalBidVolume)

	_, err = DecodeDepth(frame.Records[0][:20], received)
	assert.True(t, errors.HasCode(err, errors.MalformedFrame))
}

func TestSubscribeRequest_Marshal(t *testing.T) {
	raw, err := NewSubscribeRequest("key-1", TrTypeSubscribe, TrIDDepth, "005930").Marshal()
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "key-1", decoded["header"]["approval_key"])
	assert.Equal(t, "P", decoded["header"]["custtype"])
	assert.Equal(t, "1", decoded["header"]["tr_type"])
	assert.Equal(t, "utf-8", decoded["header"]["content-type"])
	assert.Equal(t, map[string]any{"tr_id": TrIDDepth, "tr_key": "005930"}, decoded["body"]["input"])
}

func TestParseControl(t *testing.T) {
	ack, err := ParseControl([]byte(`{"header":{"tr_id":"H0STCNT0","tr_key":"005930"},"body":{"rt_cd":"0","msg_cd":"OPSP0000","msg1":"SUBSCRIBE SUCCESS"}}`))
	require.NoError(t, err)
	assert.True(t, ack.IsAck())
	assert.False(t, ack.IsPingPong())

	ping, err := ParseControl([]byte(`{"header":{"tr_id":"PINGPONG","datetime":"20250304093000"}}`))
	require.NoError(t, err)
	assert.True(t, ping.IsPingPong())

	_, err = ParseControl([]byte("not json"))
	assert.True(t, errors.HasCode(err, errors.MalformedFrame))

	assert.True(t, IsDataFrame([]byte("0|H0STCNT0|001|x")))
	assert.False(t, IsDataFrame([]byte(`{"header":{}}`)))
}
