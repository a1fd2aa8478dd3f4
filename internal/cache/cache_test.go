package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Height float64 `json:"height"`
	Type   string  `json:"type"`
}

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)

	var got payload
	assert.ErrorIs(t, m.Get(ctx, "tide", &got), ErrMiss)

	require.NoError(t, m.Set(ctx, "tide", payload{Height: 9.8, Type: "H"}))
	require.NoError(t, m.Get(ctx, "tide", &got))
	assert.Equal(t, payload{Height: 9.8, Type: "H"}, got)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory(time.Hour)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", 1))
	var v int
	require.NoError(t, m.Get(ctx, "k", &v))

	now = now.Add(2 * time.Hour)
	assert.ErrorIs(t, m.Get(ctx, "k", &v), ErrMiss)
}

func TestMemory_UnencodableValue(t *testing.T) {
	err := NewMemory(0).Set(context.Background(), "k", make(chan int))
	assert.Error(t, err)
}

func TestRedis_Get(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	store := NewRedis(db, "tw:", time.Hour)

	mock.ExpectGet("tw:weather").SetVal(`{"height":1.5,"type":"L"}`)
	var got payload
	require.NoError(t, store.Get(ctx, "weather", &got))
	assert.Equal(t, payload{Height: 1.5, Type: "L"}, got)

	mock.ExpectGet("tw:missing").RedisNil()
	assert.ErrorIs(t, store.Get(ctx, "missing", &got), ErrMiss)

	mock.ExpectGet("tw:broken").SetErr(errors.New("connection reset"))
	err := store.Get(ctx, "broken", &got)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_Set(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	store := NewRedis(db, "tw:", 24*time.Hour)

	mock.ExpectSet("tw:tide", []byte(`{"height":2,"type":"H"}`), 24*time.Hour).SetVal("OK")
	require.NoError(t, store.Set(ctx, "tide", payload{Height: 2, Type: "H"}))

	mock.ExpectSet("tw:tide", []byte(`{"height":3,"type":"H"}`), 24*time.Hour).SetErr(errors.New("READONLY"))
	assert.Error(t, store.Set(ctx, "tide", payload{Height: 3, Type: "H"}))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_MemoryWhenNoAddress(t *testing.T) {
	store, closeFn, err := Open(context.Background(), Options{TTL: time.Minute})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, store)
	assert.NoError(t, closeFn())
}
