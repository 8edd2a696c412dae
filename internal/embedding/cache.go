package embedding

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/PauloHFS/bizbloom/internal/metrics"
	"github.com/PauloHFS/bizbloom/internal/vector"
)

// Cached memoizes embeddings by exact input text. Callers always receive a
// private copy.
type Cached struct {
	next  Embedder
	cache *lru.Cache[string, vector.Vector]
}

func NewCached(next Embedder, size int) (*Cached, error) {
	cache, err := lru.New[string, vector.Vector](size)
	if err != nil {
		return nil, fmt.Errorf("create embedding cache: %w", err)
	}
	return &Cached{next: next, cache: cache}, nil
}

func (c *Cached) Dimension() int {
	return c.next.Dimension()
}

func (c *Cached) ModelID() string {
	return c.next.ModelID()
}

func (c *Cached) Embed(ctx context.Context, text string) (vector.Vector, error) {
	if v, ok := c.cache.Get(text); ok {
		metrics.EmbeddingCache.WithLabelValues("hit").Inc()
		return v.Clone(), nil
	}
	metrics.EmbeddingCache.WithLabelValues("miss").Inc()

	v, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Add(text, v.Clone())
	return v, nil
}

func (c *Cached) Unwrap() Embedder {
	return c.next
}

func (c *Cached) Close() error {
	c.cache.Purge()
	return Close(c.next)
}
