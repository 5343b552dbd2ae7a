package util

import (
	"context"
)

type key string

const (
	requestIDKey  = key("x-request-id")
	instrumentKey = key("instrument")
	orderIDKey    = key("order-id")
)

// WithRequestID returns a context with request id.
// A new id is generated when the provided id is empty.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = NewRequestID()
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// WithInstrument returns a context carrying the instrument being processed.
func WithInstrument(ctx context.Context, instrument string) context.Context {
	return context.WithValue(ctx, instrumentKey, instrument)
}

// WithOrderID returns a context carrying the order being processed.
func WithOrderID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, orderIDKey, id)
}

// GetRequestID returns request id from context, empty when not present.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// GetInstrument returns the instrument from context, empty when not present.
func GetInstrument(ctx context.Context) string {
	instrument, _ := ctx.Value(instrumentKey).(string)
	return instrument
}

// GetOrderID returns the order id from context, empty when not present.
func GetOrderID(ctx context.Context) string {
	id, _ := ctx.Value(orderIDKey).(string)
	return id
}

// Fields returns the key-value pairs this package has set into ctx.
func Fields(ctx context.Context) map[string]string {
	fields := make(map[string]string, 3)
	if id := GetRequestID(ctx); id != "" {
		fields["request_id"] = id
	}
	if instrument := GetInstrument(ctx); instrument != "" {
		fields["instrument"] = instrument
	}
	if id := GetOrderID(ctx); id != "" {
		fields["order_id"] = id
	}
	return fields
}
