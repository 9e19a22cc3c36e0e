package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
)

func newTestLog(t *testing.T, opts ...Option) (*RedisLog, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewRedisLog(client, opts...)
	require.NoError(t, err)
	return store, mr
}

func interaction(userID string, n int) contractx.Interaction {
	return contractx.Interaction{
		ID:          fmt.Sprintf("i-%d", n),
		UserID:      userID,
		AgentName:   "Personal Tutor",
		AgentType:   contractx.AgentTypeTutor,
		Query:       fmt.Sprintf("question %d", n),
		Response:    "answer",
		Confidence:  0.85,
		Suggestions: []string{"Related exercises"},
		CreatedAt:   time.Date(2026, 3, 1, 10, n, 0, 0, time.UTC),
	}
}

func TestNewRedisLogValidation(t *testing.T) {
	t.Parallel()

	_, err := NewRedisLog(nil)
	require.ErrorIs(t, err, ErrNilClient)

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })

	_, err = NewRedisLog(client, WithTTL(-time.Second))
	require.Error(t, err)

	_, err = NewRedisLog(client, WithMaxItems(0))
	require.Error(t, err)
}

func TestRedisKey(t *testing.T) {
	t.Parallel()

	store, _ := newTestLog(t, WithKeyPrefix("  test:  "))
	got, err := store.redisKey("u1")
	require.NoError(t, err)
	assert.Equal(t, "test:u1", got)

	_, err = store.redisKey("  ")
	require.ErrorIs(t, err, contractx.ErrInvalidUser)
}

func TestRecordAndHistoryNewestFirst(t *testing.T) {
	t.Parallel()

	store, _ := newTestLog(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, store.Record(ctx, interaction("u1", i)))
	}
	require.NoError(t, store.Record(ctx, interaction("u2", 9)))

	got, err := store.History(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "i-3", got[0].ID)
	assert.Equal(t, "i-2", got[1].ID)
	assert.Equal(t, contractx.AgentTypeTutor, got[0].AgentType)
	assert.Equal(t, []string{"Related exercises"}, got[0].Suggestions)
	assert.True(t, got[0].CreatedAt.Equal(interaction("u1", 3).CreatedAt))
}

func TestRecordTrimsAndExpires(t *testing.T) {
	t.Parallel()

	store, mr := newTestLog(t, WithMaxItems(2), WithTTL(time.Hour))
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, store.Record(ctx, interaction("u1", i)))
	}

	items, err := mr.List(defaultKeyPrefix + "u1")
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, time.Hour, mr.TTL(defaultKeyPrefix+"u1"))

	got, err := store.History(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRecordWithoutTTL(t *testing.T) {
	t.Parallel()

	store, mr := newTestLog(t, WithTTL(0))
	require.NoError(t, store.Record(context.Background(), interaction("u1", 1)))
	assert.Zero(t, mr.TTL(defaultKeyPrefix+"u1"))
}

func TestHistoryEmptyUser(t *testing.T) {
	t.Parallel()

	store, _ := newTestLog(t)

	got, err := store.History(context.Background(), "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHistoryRejectsCorruptEntry(t *testing.T) {
	t.Parallel()

	store, mr := newTestLog(t)
	_, err := mr.Lpush(defaultKeyPrefix+"u1", "{not json")
	require.NoError(t, err)

	_, err = store.History(context.Background(), "u1", 10)
	require.Error(t, err)
}

func TestClear(t *testing.T) {
	t.Parallel()

	store, mr := newTestLog(t)
	ctx := context.Background()
	require.NoError(t, store.Record(ctx, interaction("u1", 1)))
	require.NoError(t, store.Clear(ctx, "u1"))
	assert.False(t, mr.Exists(defaultKeyPrefix+"u1"))
}

func TestRecordFailsWhenRedisDown(t *testing.T) {
	t.Parallel()

	store, mr := newTestLog(t)
	mr.Close()

	err := store.Record(context.Background(), interaction("u1", 1))
	require.Error(t, err)
}

type failingLog struct{ err error }

func (f failingLog) Record(context.Context, contractx.Interaction) error { return f.err }

func TestFanOut(t *testing.T) {
	t.Parallel()

	store, _ := newTestLog(t)
	boom := errors.New("db down")
	fan := NewFanOut(failingLog{err: boom}, nil, store)

	err := fan.Record(context.Background(), interaction("u1", 1))
	require.ErrorIs(t, err, boom)

	got, err := fan.History(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "i-1", got[0].ID)

	empty := NewFanOut(failingLog{})
	got, err = empty.History(context.Background(), "u1", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
