// Package cache caches ranked search results in Redis, collapsing
// concurrent identical queries with singleflight.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/ase77/searchserver/internal/engine/ranker"
	"github.com/ase77/searchserver/internal/engine/tokenizer"
	"github.com/ase77/searchserver/pkg/config"
	pkgredis "github.com/ase77/searchserver/pkg/redis"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "search:"

// QueryCache stores ranked results keyed by a normalised (query, status)
// pair. Every successful index operation invalidates the whole prefix,
// since any new document can change IDF for every cached query.
type QueryCache struct {
	client *pkgredis.Client
	cfg    config.RedisConfig
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

func New(client *pkgredis.Client, cfg config.RedisConfig) *QueryCache {
	return &QueryCache{
		client: client,
		cfg:    cfg,
		logger: slog.Default().With("component", "query-cache"),
	}
}

// Get returns the cached results for (query, status), if present.
func (c *QueryCache) Get(ctx context.Context, query string, status string) ([]ranker.Document, bool) {
	key := c.buildKey(query, status)
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.misses.Add(1)
		return nil, false
	}
	var results []ranker.Document
	if err := json.Unmarshal([]byte(data), &results); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	c.logger.Debug("cache hit", "query", query, "key", key)
	return results, true
}

// Set stores results for (query, status) with the configured TTL.
func (c *QueryCache) Set(ctx context.Context, query string, status string, results []ranker.Document) {
	key := c.buildKey(query, status)
	data, err := json.Marshal(results)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.cfg.CacheTTL); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached results or computes and caches them,
// ensuring only one computation runs per key at a time. The second return
// value reports whether the result came from the cache.
func (c *QueryCache) GetOrCompute(
	ctx context.Context,
	query string,
	status string,
	computeFn func() ([]ranker.Document, error),
) ([]ranker.Document, bool, error) {
	if results, ok := c.Get(ctx, query, status); ok {
		return results, true, nil
	}
	key := c.buildKey(query, status)
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if results, ok := c.Get(ctx, query, status); ok {
			return results, nil
		}
		results, err := computeFn()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, query, status, results)
		return results, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.([]ranker.Document), false, nil
}

// Invalidate removes every cached query result.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	deleted, err := c.client.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating query cache: %w", err)
	}
	c.logger.Debug("cache invalidated", "keys_deleted", deleted)
	return nil
}

// Stats returns the hit and miss counters.
func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *QueryCache) buildKey(query string, status string) string {
	raw := fmt.Sprintf("%s:status=%s", NormalizeQuery(query), status)
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}

// NormalizeQuery produces a canonical form of a raw query so that word
// order and duplicates do not fragment the cache. Word case is preserved
// because the engine matches terms case-sensitively.
func NormalizeQuery(query string) string {
	plusSet := make(map[string]struct{})
	minusSet := make(map[string]struct{})
	for _, word := range tokenizer.SplitIntoWords(query) {
		if strings.HasPrefix(word, "-") {
			minusSet[word[1:]] = struct{}{}
		} else {
			plusSet[word] = struct{}{}
		}
	}
	plus := make([]string, 0, len(plusSet))
	for word := range plusSet {
		plus = append(plus, word)
	}
	minus := make([]string, 0, len(minusSet))
	for word := range minusSet {
		minus = append(minus, word)
	}
	sort.Strings(plus)
	sort.Strings(minus)
	parts := []string{strings.Join(plus, ",")}
	if len(minus) > 0 {
		parts = append(parts, "minus:"+strings.Join(minus, ","))
	}
	return strings.Join(parts, "|")
}
