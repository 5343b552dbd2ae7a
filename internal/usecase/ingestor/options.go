package ingestor

import "time"

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(i *Ingestor) {
		i.now = now
	}
}

// WithAfterFunc replaces time.AfterFunc for reconnect scheduling. The returned
// func cancels the pending call.
func WithAfterFunc(afterFunc func(d time.Duration, fn func()) (stop func() bool)) Option {
	return func(i *Ingestor) {
		i.afterFunc = afterFunc
	}
}

func defaultAfterFunc(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}
