package engine

import "time"

// Options represents configuration options for the Engine.
type Options struct {
	// DisconnectTimeout bounds closing the gateway socket on shutdown.
	DisconnectTimeout time.Duration
	// ConnectOnStart opens the gateway socket when the engine starts.
	ConnectOnStart bool
}

// Option mutates Options.
type Option func(*Options)

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		DisconnectTimeout: 5 * time.Second,
		ConnectOnStart:    true,
	}
}

// WithDisconnectTimeout overrides DisconnectTimeout.
func WithDisconnectTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.DisconnectTimeout = d
	}
}

// WithoutConnect keeps the gateway closed; only matching runs.
func WithoutConnect() Option {
	return func(o *Options) {
		o.ConnectOnStart = false
	}
}
