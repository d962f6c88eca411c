// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"notes_backend/internal/feature/notes/domain/entity"
	"notes_backend/internal/feature/notes/usecase"
)

const (
	defaultTTL       = 5 * time.Minute
	defaultNamespace = "notes"
)

// CachingNoteRepository decorates a NoteRepository with a per-user Redis cache of
// the note list. Writes go to the inner repository first, then bump the owner's
// generation counter and drop the cached list. A list read from the inner
// repository is only cached if the generation did not move while it was read,
// so a concurrent write can never be overwritten by an older snapshot.
// Cache failures never fail a request.
type CachingNoteRepository struct {
	inner     usecase.NoteRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.NoteRepository = (*CachingNoteRepository)(nil)

// NewCachingNoteRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "notes".
// A nil rdb turns the decorator into a pass-through.
func NewCachingNoteRepository(rdb *redis.Client, ttl time.Duration, inner usecase.NoteRepository, namespace string) *CachingNoteRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingNoteRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// ListByUser serves the user's list from cache, falling back to the inner repository.
func (c *CachingNoteRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Note, error) {
	if c.rdb == nil {
		return c.inner.ListByUser(ctx, userID)
	}

	key := c.cacheKey(userID)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Note
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// corrupted entry
		_ = c.rdb.Del(ctx, key).Err()
	} else if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("note cache read failed", "error", err, "key", key)
	}

	genKey := c.generationKey(userID)
	gen, err := c.rdb.Get(ctx, genKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("note cache generation read failed", "error", err, "key", genKey)
		return c.inner.ListByUser(ctx, userID)
	}

	out, err := c.inner.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, userID, gen, out)
	return out, nil
}

// store writes notes under the user's key unless a write bumped the
// generation after gen was read.
func (c *CachingNoteRepository) store(ctx context.Context, userID uint, gen int64, notes []entity.Note) {
	b, err := json.Marshal(notes)
	if err != nil {
		return
	}
	key, genKey := c.cacheKey(userID), c.generationKey(userID)

	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			// stale snapshot
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, c.ttl)
			return nil
		})
		return err
	}, genKey)
	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		slog.Warn("note cache write failed", "error", err, "key", key)
	}
}

// Create stores the note and invalidates the owner's cached list.
func (c *CachingNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	if err := c.inner.Create(ctx, note); err != nil {
		return err
	}
	c.invalidate(ctx, note.UserID)
	return nil
}

// DeleteOwned deletes the note and invalidates the owner's cached list.
func (c *CachingNoteRepository) DeleteOwned(ctx context.Context, userID, noteID uint) error {
	if err := c.inner.DeleteOwned(ctx, userID, noteID); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

func (c *CachingNoteRepository) invalidate(ctx context.Context, userID uint) {
	if c.rdb == nil {
		return
	}
	key := c.cacheKey(userID)
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.generationKey(userID))
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		slog.Warn("note cache invalidation failed", "error", err, "key", key)
	}
}

// cacheKey returns "<namespace>:user:<id>".
func (c *CachingNoteRepository) cacheKey(userID uint) string {
	return c.namespace + ":user:" + strconv.FormatUint(uint64(userID), 10)
}

// generationKey returns "<namespace>:user:<id>:gen".
func (c *CachingNoteRepository) generationKey(userID uint) string {
	return c.cacheKey(userID) + ":gen"
}
