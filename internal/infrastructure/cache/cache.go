package cache

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// Cache memoizes report results for a fixed staleness window.
// Store failures are logged and the result is recomputed.
type Cache struct {
	store Store
	ttl   time.Duration
	log   *zap.Logger
}

// New creates a cache; a nil store or non-positive ttl disables caching
func New(store Store, ttl time.Duration, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{store: store, ttl: ttl, log: log}
}

// Enabled reports whether results are stored at all
func (c *Cache) Enabled() bool {
	return c != nil && c.store != nil && c.ttl > 0
}

// Fetch returns the cached value under key, or computes and stores it.
// hit reports whether the value came from the store.
func Fetch[T any](ctx context.Context, c *Cache, key string, compute func(ctx context.Context) (T, error)) (value T, hit bool, err error) {
	if !c.Enabled() {
		value, err = compute(ctx)
		return value, false, err
	}

	raw, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn("Cache read failed, recomputing", zap.String("key", key), zap.Error(err))
	} else if found {
		if err := json.Unmarshal(raw, &value); err == nil {
			return value, true, nil
		}
		c.log.Warn("Cache entry undecodable, recomputing", zap.String("key", key))
	}

	value, err = compute(ctx)
	if err != nil {
		return value, false, err
	}

	raw, err = json.Marshal(value)
	if err != nil {
		c.log.Warn("Cache encode failed", zap.String("key", key), zap.Error(err))
		return value, false, nil
	}
	if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
		c.log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, false, nil
}

// Fingerprint hashes the JSON encoding of the given values
func Fingerprint(values ...interface{}) string {
	d := xxhash.New()
	enc := json.NewEncoder(d)
	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			_, _ = d.WriteString(err.Error())
		}
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

// Key builds a report key from the endpoint, its parameters and a content token.
// Parameters are sorted so that the key does not depend on map order.
func Key(endpoint string, params map[string]string, token string) string {
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(KeyPrefix)
	b.WriteString(endpoint)
	for _, k := range names {
		b.WriteByte(':')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	b.WriteByte(':')
	b.WriteString(token)
	return b.String()
}
