package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
)

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralRepositoryError represents a generic repository error.
	GeneralRepositoryError ErrorCode = "general_repository_error"
	// ConfigInvalidError represents an invalid configuration value.
	ConfigInvalidError ErrorCode = "config_invalid_error"

	// OrderInvalid is returned when order attributes fail validation.
	OrderInvalid ErrorCode = "order_invalid"
	// OrderNotFound is returned when an order id does not resolve to a stored order.
	OrderNotFound ErrorCode = "order_not_found"
	// OrderNotResting is returned when an order is already terminal and can no longer be matched.
	OrderNotResting ErrorCode = "order_not_resting"
	// OrderOverfilled is returned when a reservation exceeds the order's remaining amount.
	OrderOverfilled ErrorCode = "order_overfilled"
	// OrderInvalidTransition is returned when a status change is not allowed from the current status.
	OrderInvalidTransition ErrorCode = "order_invalid_transition"

	// ReservedCashMissing is returned when a fully executed BUY order has no reserved cash row.
	ReservedCashMissing ErrorCode = "reserved_cash_missing"
	// ReservedCashAlreadyRefunded is returned when a refund is attempted twice.
	ReservedCashAlreadyRefunded ErrorCode = "reserved_cash_already_refunded"
	// PositionInsufficient is returned when a position cannot cover a decrease.
	PositionInsufficient ErrorCode = "position_insufficient"

	// CredentialUnavailable is returned when no realtime gateway credential can be obtained.
	CredentialUnavailable ErrorCode = "credential_unavailable"
	// GatewayNotConnected is returned when writing to a gateway that has no live socket.
	GatewayNotConnected ErrorCode = "gateway_not_connected"
	// MalformedFrame is returned when a gateway frame cannot be decoded.
	MalformedFrame ErrorCode = "malformed_frame"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"

	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisIncrError represents an error when incrementing a counter in Redis.
	RedisIncrError ErrorCode = "redis_incr_error"
	// RedisTTLError represents an error when reading a key's time to live.
	RedisTTLError ErrorCode = "redis_ttl_error"

	// RedisHashError represents an error when reading or writing a hash in Redis.
	RedisHashError ErrorCode = "redis_hash_error"
	// RedisSortedSetError represents an error when reading or writing a sorted set in Redis.
	RedisSortedSetError ErrorCode = "redis_sorted_set_error"
	// RedisTxError represents an error when executing a MULTI/EXEC pipeline.
	RedisTxError ErrorCode = "redis_tx_error"
	// RedisScriptError represents an error when running a Lua script.
	RedisScriptError ErrorCode = "redis_script_error"
	// RedisPublishError represents an error when publishing messages to channels in Redis.
	RedisPublishError ErrorCode = "redis_publish_error"
)

// BaseError is an `error` type containing an array of ErrorDetails.
type BaseError struct {
	details []*ErrorDetails
}

// NewBaseError create BaseError with ErrorDetails
func NewBaseError(details ...*ErrorDetails) *BaseError {
	return &BaseError{details: details}
}

// AddErrorDetails add more ErrorDetails to BaseError
func (b *BaseError) AddErrorDetails(errors ...*ErrorDetails) {
	b.details = append(b.details, errors...)
}

// GetDetails get array ErrorDetails on BaseError
func (b *BaseError) GetDetails() []*ErrorDetails {
	return b.details
}

// HasDetails reports whether any detail has been collected.
func (b *BaseError) HasDetails() bool {
	return len(b.details) > 0
}

// Error implement error interface
func (b *BaseError) Error() string {
	buff := bytes.NewBufferString("")

	for _, err := range b.details {
		buff.WriteString("code: ")
		buff.WriteString(err.Code)
		buff.WriteString("; error: ")
		buff.WriteString(err.Error())
		if err.Field != "" {
			buff.WriteString("; field: ")
			buff.WriteString(err.Field)
		}
		buff.WriteString("\n")
	}

	return strings.TrimSpace(buff.String())
}

// IsAnyCodeEqual check if any ErrorDetails code is equal with given code
func (b *BaseError) IsAnyCodeEqual(code string) bool {
	for _, d := range b.GetDetails() {
		if d.Code == code {
			return true
		}
	}
	return false
}

// HasCode walks the wrap chain of err looking for ErrorDetails with the given code.
func HasCode(err error, code ErrorCode) bool {
	var details *ErrorDetails
	if stderrors.As(err, &details) {
		return details.Code == string(code)
	}

	var base *BaseError
	if stderrors.As(err, &base) {
		return base.IsAnyCodeEqual(string(code))
	}

	return false
}
