package framework

import (
	"encoding/binary"
	"math"
	"slices"
	"sync/atomic"

	"github.com/patrickmn/go-cache"
)

// CachedEvaluator memoizes an Evaluator. Two decision vectors share a cache
// entry only when they are bit-for-bit identical. Failed evaluations are not
// cached.
type CachedEvaluator struct {
	ev     Evaluator
	cache  *cache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

func NewCachedEvaluator(ev Evaluator) *CachedEvaluator {
	return &CachedEvaluator{
		ev:    ev,
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (c *CachedEvaluator) Evaluate(x []float64) (ObjectiveSpacePoint, error) {
	key := cacheKey(x)
	if v, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return slices.Clone(v.(ObjectiveSpacePoint)), nil
	}

	f, err := c.ev.Evaluate(x)
	if err != nil {
		return nil, err
	}
	c.misses.Add(1)
	c.cache.Set(key, slices.Clone(f), cache.NoExpiration)
	return f, nil
}

// Hits returns the number of evaluations answered from the cache.
func (c *CachedEvaluator) Hits() int64 { return c.hits.Load() }

// Misses returns the number of evaluations forwarded to the wrapped evaluator.
func (c *CachedEvaluator) Misses() int64 { return c.misses.Load() }

// Len returns the number of cached decision vectors.
func (c *CachedEvaluator) Len() int { return c.cache.ItemCount() }

func cacheKey(x []float64) string {
	data := make([]byte, len(x)*8)
	for i, v := range x {
		binary.BigEndian.PutUint64(data[i*8:], math.Float64bits(v))
	}
	return string(data)
}
