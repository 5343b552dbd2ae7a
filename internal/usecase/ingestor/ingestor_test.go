package ingestor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	bookv1_mock "github.com/muhammadchandra19/paper-exchange/internal/domain/book/v1/mock"
	marketdatav1 "github.com/muhammadchandra19/paper-exchange/internal/domain/marketdata/v1"
	marketdatav1_mock "github.com/muhammadchandra19/paper-exchange/internal/domain/marketdata/v1/mock"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 10:00 in Seoul, depth collection open.
var morning = time.Date(2025, 3, 4, 1, 0, 0, 0, time.UTC)

// 16:00 in Seoul, past the cutoff.
var evening = time.Date(2025, 3, 4, 7, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type fakeScheduler struct {
	mu     sync.Mutex
	delays []time.Duration
	fns    []func()
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	s.fns = append(s.fns, fn)
	return func() bool { return true }
}

func (s *fakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fns)
}

func (s *fakeScheduler) Fire() {
	s.mu.Lock()
	fn := s.fns[0]
	s.fns = s.fns[1:]
	s.mu.Unlock()
	fn()
}

type mocks struct {
	credentials *marketdatav1_mock.MockCredentialProvider
	dialer      *marketdatav1_mock.MockDialer
	conn        *marketdatav1_mock.MockConn
	book        *bookv1_mock.MockStore
	ticks       *marketdatav1_mock.MockTickCache
	publisher   *marketdatav1_mock.MockPublisher
	clock       *fakeClock
	scheduler   *fakeScheduler
}

func newTestIngestor(t *testing.T, instruments ...string) (*Ingestor, *mocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &mocks{
		credentials: marketdatav1_mock.NewMockCredentialProvider(ctrl),
		dialer:      marketdatav1_mock.NewMockDialer(ctrl),
		conn:        marketdatav1_mock.NewMockConn(ctrl),
		book:        bookv1_mock.NewMockStore(ctrl),
		ticks:       marketdatav1_mock.NewMockTickCache(ctrl),
		publisher:   marketdatav1_mock.NewMockPublisher(ctrl),
		clock:       &fakeClock{now: morning},
		scheduler:   &fakeScheduler{},
	}

	ing, err := NewIngestor(Config{
		Instruments:   instruments,
		BatchSize:     2,
		BatchDelay:    time.Millisecond,
		DepthCutoff:   "15:20",
		Timezone:      "Asia/Seoul",
		ReconnectBase: time.Second,
		ReconnectMax:  4 * time.Second,
		WriteThrottle: time.Second,
	}, m.credentials, m.dialer, m.book, m.ticks, m.publisher, logger.NewNopLogger(),
		WithClock(m.clock.Now),
		WithAfterFunc(m.scheduler.AfterFunc),
	)
	require.NoError(t, err)
	return ing, m
}

func tickFrame(instrument string) string {
	payload := strings.Join([]string{
		instrument, "093354", "71900", "5", "-100", "-0.14", "72023.83",
		"72100", "72400", "71700", "71900", "71800", "12", "3052507",
	}, "^")
	return "0|" + marketdatav1.TrIDTick + "|001|" + payload
}

func depthFrame(instrument string) string {
	fields := []string{instrument, "093354", "0"}
	for i := 0; i < marketdatav1.DepthLevels; i++ {
		fields = append(fields, fmt.Sprint(100+i))
	}
	for i := 0; i < marketdatav1.DepthLevels; i++ {
		fields = append(fields, fmt.Sprint(99-i))
	}
	for i := 0; i < 2*marketdatav1.DepthLevels; i++ {
		fields = append(fields, "10")
	}
	fields = append(fields, "100", "100")
	return "0|" + marketdatav1.TrIDDepth + "|001|" + strings.Join(fields, "^")
}

func TestNewIngestor_InvalidPolicy(t *testing.T) {
	_, err := NewIngestor(Config{DepthCutoff: "3pm", Timezone: "Asia/Seoul"}, nil, nil, nil, nil, nil, logger.NewNopLogger())
	assert.Error(t, err)

	_, err = NewIngestor(Config{DepthCutoff: "15:20", Timezone: "Mars/Olympus"}, nil, nil, nil, nil, nil, logger.NewNopLogger())
	assert.Error(t, err)
}

func TestIngestor_Connect(t *testing.T) {
	testCases := []struct {
		name           string
		now            time.Time
		expectedWrites int
	}{
		{name: "ticks and depth before cutoff", now: morning, expectedWrites: 6},
		{name: "ticks only after cutoff", now: evening, expectedWrites: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ing, m := newTestIngestor(t, "005930", "000660", "035420")
			m.clock.Set(tc.now)
			ctx := context.Background()

			var (
				mu      sync.Mutex
				written []marketdatav1.SubscribeRequest
			)
			m.credentials.EXPECT().RealtimeCredential(gomock.Any()).Return("approval", true)
			m.dialer.EXPECT().Dial(gomock.Any(), gomock.Any()).Return(m.conn, nil).Times(1)
			m.conn.EXPECT().WriteMessage(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, data []byte) error {
					var req marketdatav1.SubscribeRequest
					assert.NoError(t, json.Unmarshal(data, &req))
					mu.Lock()
					written = append(written, req)
					mu.Unlock()
					return nil
				}).Times(tc.expectedWrites)

			require.NoError(t, ing.Connect(ctx))
			// already connected
			require.NoError(t, ing.Connect(ctx))

			assert.Eventually(t, func() bool {
				return ing.Stats().ExpectedSubscriptions == tc.expectedWrites
			}, time.Second, 5*time.Millisecond)

			mu.Lock()
			assert.Equal(t, "approval", written[0].Header.ApprovalKey)
			assert.Equal(t, marketdatav1.TrTypeSubscribe, written[0].Header.TrType)
			assert.Equal(t, "005930", written[0].Body.Input.TrKey)
			assert.Equal(t, "035420", written[len(written)-1].Body.Input.TrKey)
			mu.Unlock()

			stats := ing.Stats()
			assert.True(t, stats.Connected)
			assert.Zero(t, stats.ReconnectAttempts)

			m.conn.EXPECT().Close(gomock.Any()).Return(nil)
			require.NoError(t, ing.Disconnect(ctx))
		})
	}
}

func TestIngestor_ConnectWithoutCredential(t *testing.T) {
	ing, m := newTestIngestor(t, "005930")

	m.credentials.EXPECT().RealtimeCredential(gomock.Any()).Return("", false)

	require.NoError(t, ing.Connect(context.Background()))
	assert.False(t, ing.Stats().Connected)
	assert.Equal(t, 1, m.scheduler.Pending())
}

func TestIngestor_Reconnect(t *testing.T) {
	ing, m := newTestIngestor(t)
	ctx := context.Background()

	m.credentials.EXPECT().RealtimeCredential(gomock.Any()).Return("approval", true).Times(2)
	m.dialer.EXPECT().Dial(gomock.Any(), gomock.Any()).Return(m.conn, nil).Times(2)
	require.NoError(t, ing.Connect(ctx))

	// overlapping failure callbacks schedule one reconnect
	ing.OnError(fmt.Errorf("read: connection reset"))
	ing.OnClose(1006, "abnormal closure")

	assert.Equal(t, 1, m.scheduler.Pending())
	assert.Equal(t, []time.Duration{time.Second}, m.scheduler.delays)
	stats := ing.Stats()
	assert.False(t, stats.Connected)
	assert.Equal(t, 1, stats.ReconnectAttempts)

	m.scheduler.Fire()

	stats = ing.Stats()
	assert.True(t, stats.Connected)
	assert.Zero(t, stats.ReconnectAttempts)
}

func TestIngestor_ReconnectBackoff(t *testing.T) {
	ing, m := newTestIngestor(t)
	ctx := context.Background()

	m.credentials.EXPECT().RealtimeCredential(gomock.Any()).Return("approval", true).AnyTimes()
	m.dialer.EXPECT().Dial(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("dial tcp: refused")).Times(4)

	assert.Error(t, ing.Connect(ctx))
	for range 3 {
		m.scheduler.Fire()
	}

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 4 * time.Second}, m.scheduler.delays)
	assert.Equal(t, 4, ing.Stats().ReconnectAttempts)
}

func TestIngestor_ReconnectBackoffResetsAfterConnect(t *testing.T) {
	ing, m := newTestIngestor(t)
	ctx := context.Background()

	m.credentials.EXPECT().RealtimeCredential(gomock.Any()).Return("approval", true).AnyTimes()
	gomock.InOrder(
		m.dialer.EXPECT().Dial(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("dial tcp: refused")).Times(2),
		m.dialer.EXPECT().Dial(gomock.Any(), gomock.Any()).Return(m.conn, nil),
	)

	assert.Error(t, ing.Connect(ctx))
	m.scheduler.Fire()
	m.scheduler.Fire()
	require.True(t, ing.Stats().Connected)

	ing.OnClose(1006, "abnormal closure")

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, time.Second}, m.scheduler.delays)
}

func TestNewReconnectBackoff_Defaults(t *testing.T) {
	testCases := []struct {
		name     string
		base     time.Duration
		max      time.Duration
		expected []time.Duration
	}{
		{name: "configured", base: time.Second, max: 3 * time.Second, expected: []time.Duration{time.Second, 2 * time.Second, 3 * time.Second, 3 * time.Second}},
		{name: "defaults", expected: []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}},
		{name: "max below base", base: 5 * time.Second, max: time.Second, expected: []time.Duration{5 * time.Second, 5 * time.Second}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := newReconnectBackoff(tc.base, tc.max)
			for n, want := range tc.expected {
				assert.Equal(t, want, b.NextBackOff(), "attempt %d", n)
			}
		})
	}
}

func TestIngestor_Disconnect(t *testing.T) {
	ing, m := newTestIngestor(t)
	ctx := context.Background()

	m.credentials.EXPECT().RealtimeCredential(gomock.Any()).Return("approval", true)
	m.dialer.EXPECT().Dial(gomock.Any(), gomock.Any()).Return(m.conn, nil)
	require.NoError(t, ing.Connect(ctx))

	m.conn.EXPECT().Close(gomock.Any()).Return(fmt.Errorf("write: broken pipe"))
	require.NoError(t, ing.Disconnect(ctx))
	assert.False(t, ing.Stats().Connected)

	// the close callback of a stopped ingestor does not reconnect
	ing.OnClose(1000, "bye")
	assert.Zero(t, m.scheduler.Pending())
}

func TestIngestor_StaleSessionIgnored(t *testing.T) {
	ing, m := newTestIngestor(t)
	ctx := context.Background()

	var listener marketdatav1.Listener
	m.credentials.EXPECT().RealtimeCredential(gomock.Any()).Return("approval", true)
	m.dialer.EXPECT().Dial(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l marketdatav1.Listener) (marketdatav1.Conn, error) {
			listener = l
			return m.conn, nil
		})
	require.NoError(t, ing.Connect(ctx))

	listener.OnClose(1006, "gone")
	assert.Equal(t, 1, m.scheduler.Pending())

	// a second callback from the same dead socket is ignored
	listener.OnError(fmt.Errorf("late error"))
	assert.Equal(t, 1, m.scheduler.Pending())
	assert.Equal(t, 1, ing.Stats().ReconnectAttempts)
}

func TestIngestor_OnMessageTick(t *testing.T) {
	ing, m := newTestIngestor(t)
	frame := tickFrame("005930")

	m.ticks.EXPECT().SaveTick(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tick *marketdatav1.Tick) error {
			assert.Equal(t, "005930", tick.Instrument)
			assert.Equal(t, "71900", tick.Price.String())
			assert.Equal(t, morning, tick.ReceivedAt)
			return nil
		})
	m.publisher.EXPECT().PublishTick(gomock.Any(), gomock.Any()).Return(nil)

	// fragments are buffered until the final one
	ing.OnMessage([]byte(frame[:10]), false)
	ing.OnMessage([]byte(frame[10:]), true)

	stats := ing.Stats()
	assert.Equal(t, int64(1), stats.TicksReceived)
	assert.Equal(t, morning, stats.LastMessageAt)
}

func TestIngestor_OnMessageMalformed(t *testing.T) {
	testCases := []struct {
		name    string
		message string
	}{
		{name: "too few fields", message: "0|H0STCNT0|001"},
		{name: "bad count", message: "0|H0STCNT0|x|a^b"},
		{name: "short tick record", message: "0|H0STCNT0|001|005930^093354"},
		{name: "non numeric price", message: strings.Replace(tickFrame("005930"), "71900", "n/a", 1)},
		{name: "unknown stream", message: "0|H0STXXX0|001|a^b"},
		{name: "broken json", message: `{"header":`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ing, _ := newTestIngestor(t)

			assert.NotPanics(t, func() {
				ing.OnMessage([]byte(tc.message), true)
			})
			assert.Equal(t, int64(1), ing.Stats().DroppedFrames)
			assert.Zero(t, ing.Stats().TicksReceived)
		})
	}
}

func TestIngestor_OnMessageRecoversPanic(t *testing.T) {
	ing, m := newTestIngestor(t)

	m.ticks.EXPECT().SaveTick(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *marketdatav1.Tick) error {
			panic("cache exploded")
		})

	assert.NotPanics(t, func() {
		ing.OnMessage([]byte(tickFrame("005930")), true)
	})
	assert.Equal(t, int64(1), ing.Stats().DroppedFrames)
}

func TestIngestor_OnMessageDepth(t *testing.T) {
	ing, m := newTestIngestor(t)

	m.book.EXPECT().WriteSnapshot(gomock.Any(), "005930", gomock.Len(marketdatav1.DepthLevels), gomock.Len(marketdatav1.DepthLevels)).
		Return(int64(1), nil).Times(2)
	m.publisher.EXPECT().PublishDepth(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	frame := []byte(depthFrame("005930"))
	ing.OnMessage(frame, true)
	// within the throttle window
	m.clock.Set(morning.Add(500 * time.Millisecond))
	ing.OnMessage(frame, true)
	m.clock.Set(morning.Add(time.Second))
	ing.OnMessage(frame, true)
	// past the cutoff
	m.clock.Set(evening)
	ing.OnMessage(frame, true)

	stats := ing.Stats()
	assert.Equal(t, int64(2), stats.DepthsWritten)
	assert.Equal(t, int64(1), stats.DepthsThrottled)
}

func TestIngestor_OnMessageControl(t *testing.T) {
	ing, m := newTestIngestor(t)
	ctx := context.Background()

	m.credentials.EXPECT().RealtimeCredential(gomock.Any()).Return("approval", true)
	m.dialer.EXPECT().Dial(gomock.Any(), gomock.Any()).Return(m.conn, nil)
	require.NoError(t, ing.Connect(ctx))

	ack := `{"header":{"tr_id":"H0STCNT0","tr_key":"005930"},"body":{"rt_cd":"0","msg_cd":"OPSP0000","msg1":"SUBSCRIBE SUCCESS"}}`
	ping := `{"header":{"tr_id":"PINGPONG","datetime":"20250304100000"}}`

	m.conn.EXPECT().WriteMessage(gomock.Any(), []byte(ping)).Return(nil)

	ing.OnMessage([]byte(ack), true)
	ing.OnMessage([]byte(ping), true)

	assert.Equal(t, 1, ing.Stats().AcknowledgedSubs)
	assert.Zero(t, ing.Stats().DroppedFrames)
}

func TestDepthPolicy_Allows(t *testing.T) {
	policy, err := NewDepthPolicy("15:20", "Asia/Seoul")
	require.NoError(t, err)

	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	testCases := []struct {
		name     string
		at       time.Time
		expected bool
	}{
		{name: "market open", at: time.Date(2025, 3, 4, 9, 0, 0, 0, seoul), expected: true},
		{name: "one second before cutoff", at: time.Date(2025, 3, 4, 15, 19, 59, 0, seoul), expected: true},
		{name: "at cutoff", at: time.Date(2025, 3, 4, 15, 20, 0, 0, seoul), expected: false},
		{name: "evening", at: time.Date(2025, 3, 4, 18, 0, 0, 0, seoul), expected: false},
		{name: "utc input", at: morning, expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, policy.Allows(tc.at))
		})
	}
}

func TestBatches(t *testing.T) {
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, batches([]string{"a", "b", "c"}, 2))
	assert.Empty(t, batches(nil, 2))
}
