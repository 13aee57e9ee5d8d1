package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type report struct {
	Total int      `json:"total"`
	Names []string `json:"names"`
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("store down")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("store down")
}

func counter(calls *int) func(context.Context) (report, error) {
	return func(context.Context) (report, error) {
		*calls++
		return report{Total: *calls, Names: []string{"a"}}, nil
	}
}

func TestFetch_MemoizesWithinTTL(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	c := New(store, 5*time.Minute, zap.NewNop())
	ctx := context.Background()

	calls := 0
	first, hit, err := Fetch(ctx, c, "k", counter(&calls))
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := Fetch(ctx, c, "k", counter(&calls))
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	now = now.Add(5 * time.Minute)
	third, hit, err := Fetch(ctx, c, "k", counter(&calls))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, third.Total)
}

func TestFetch_StoreFailureRecomputes(t *testing.T) {
	c := New(failingStore{}, time.Minute, zap.NewNop())

	calls := 0
	for i := 0; i < 2; i++ {
		v, hit, err := Fetch(context.Background(), c, "k", counter(&calls))
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Equal(t, i+1, v.Total)
	}
}

func TestFetch_UnreachableRedisRecomputes(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	c := New(NewRedisStore(client), time.Minute, zap.NewNop())

	calls := 0
	v, hit, err := Fetch(context.Background(), c, "k", counter(&calls))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 1, v.Total)
}

func TestFetch_ComputeErrorIsNotCached(t *testing.T) {
	store := NewMemoryStore()
	c := New(store, time.Minute, zap.NewNop())
	boom := errors.New("boom")

	_, _, err := Fetch(context.Background(), c, "k", func(context.Context) (report, error) {
		return report{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.Len())
}

func TestFetch_Disabled(t *testing.T) {
	calls := 0
	var nilCache *Cache
	for _, c := range []*Cache{nilCache, New(NewMemoryStore(), 0, nil), New(nil, time.Minute, nil)} {
		_, hit, err := Fetch(context.Background(), c, "k", counter(&calls))
		require.NoError(t, err)
		assert.False(t, hit)
	}
	assert.Equal(t, 3, calls)
}

func TestFetch_UndecodableEntry(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "k", []byte("{not json"), time.Minute))
	c := New(store, time.Minute, zap.NewNop())

	calls := 0
	v, hit, err := Fetch(context.Background(), c, "k", counter(&calls))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 1, v.Total)
}

func TestKey(t *testing.T) {
	a := Key("deadstock", map[string]string{"category": "Home", "minValue": "10"}, "abc")
	b := Key("deadstock", map[string]string{"minValue": "10", "category": "Home"}, "abc")

	assert.Equal(t, a, b)
	assert.Equal(t, "flowpilot:report:deadstock:category=Home:minValue=10:abc", a)
	assert.NotEqual(t, a, Key("deadstock", map[string]string{"category": "Home"}, "abc"))
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]report{{Total: 1}}, "x")
	assert.Equal(t, a, Fingerprint([]report{{Total: 1}}, "x"))
	assert.NotEqual(t, a, Fingerprint([]report{{Total: 2}}, "x"))
	assert.NotEqual(t, a, Fingerprint([]report{{Total: 1}}, "y"))
}
