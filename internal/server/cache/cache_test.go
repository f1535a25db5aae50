package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c Cache = Noop{}

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestNewRedis_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedis(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}

// Интеграционный тест, запускается только при заданном TEST_REDIS_ADDR
func TestRedis_GetSet(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}

	ctx := context.Background()
	c, err := NewRedis(ctx, RedisConfig{Addr: addr})
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	key := "filmvault-test:" + uuid.New().String()

	_, err = c.Get(ctx, key)
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, key, []byte(`{"page":1}`), time.Minute))

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":1}`, string(got))
	assert.NoError(t, c.Ping(ctx))
}
