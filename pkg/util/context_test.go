package util

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	id := GetRequestID(ctx)

	_, err := uuid.Parse(id)
	require.NoError(t, err)

	ctx = WithRequestID(ctx, "cycle-1")
	assert.Equal(t, "cycle-1", GetRequestID(ctx))
}

func TestFields(t *testing.T) {
	assert.Empty(t, Fields(context.Background()))

	ctx := WithRequestID(context.Background(), "cycle-1")
	ctx = WithInstrument(ctx, "005930")
	ctx = WithOrderID(ctx, "01J0ORDER")

	assert.Equal(t, map[string]string{
		"request_id": "cycle-1",
		"instrument": "005930",
		"order_id":   "01J0ORDER",
	}, Fields(ctx))
}
