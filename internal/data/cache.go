package data

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// CacheName prefixes every cache key, giving keys of the form BOOKS::<id>.
const CacheName = "BOOKS"

// CacheClient is the subset of the Redis command set the cache needs.
// *redis.Client satisfies it.
type CacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CachedBookModel is a read-through cache in front of another BookStore.
// Cache faults are logged and never fail the call.
type CachedBookModel struct {
	next   BookStore
	client CacheClient
	ttl    time.Duration
	logger *slog.Logger
}

// CacheOption configures a CachedBookModel.
type CacheOption func(*CachedBookModel)

// WithCacheLogger sets the logger cache faults are reported to.
func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *CachedBookModel) {
		c.logger = logger
	}
}

// NewCachedBookModel wraps next. A ttl of zero keeps entries until evicted.
func NewCachedBookModel(next BookStore, client CacheClient, ttl time.Duration, opts ...CacheOption) *CachedBookModel {
	c := &CachedBookModel{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func cacheKey(id string) string {
	return CacheName + "::" + id
}

// FindAll is never cached.
func (c *CachedBookModel) FindAll(ctx context.Context) iter.Seq2[*Book, error] {
	return c.next.FindAll(ctx)
}

func (c *CachedBookModel) FindByID(ctx context.Context, id string) (*Book, error) {
	raw, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	switch {
	case err == nil:
		book, decodeErr := decodeBook(id, raw)
		if decodeErr == nil {
			return book, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable cache entry", "id", id, "error", decodeErr)
	case errors.Is(err, redis.Nil):
	default:
		c.logger.WarnContext(ctx, "cache read failed", "id", id, "error", err)
	}

	book, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.put(ctx, book)
	return book, nil
}

func (c *CachedBookModel) Save(ctx context.Context, book *Book) (*Book, error) {
	saved, err := c.next.Save(ctx, book)
	if err != nil {
		return nil, err
	}
	c.put(ctx, saved)
	return saved, nil
}

func (c *CachedBookModel) Delete(ctx context.Context, book *Book) error {
	if err := c.next.Delete(ctx, book); err != nil {
		return err
	}
	if book == nil {
		return nil
	}
	if err := c.client.Del(ctx, cacheKey(book.ID)).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache eviction failed", "id", book.ID, "error", err)
	}
	return nil
}

func (c *CachedBookModel) put(ctx context.Context, book *Book) {
	raw, err := encodeBook(book)
	if err != nil {
		c.logger.WarnContext(ctx, "cache encode failed", "id", book.ID, "error", err)
		return
	}
	if err := c.client.Set(ctx, cacheKey(book.ID), raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache write failed", "id", book.ID, "error", err)
	}
}
