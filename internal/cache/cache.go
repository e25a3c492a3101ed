package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/evgeniy-krivenko/syncnote/internal/entity"
	"github.com/evgeniy-krivenko/syncnote/pkg/logger/slogx"
)

// Cache keeps one key per note, holding the full serialized note with no
// expiry. Entries live until an explicit delete or an external flush.
type Cache struct {
	rdb    *redis.Client
	prefix string
}

func New(rdb *redis.Client, prefix string) *Cache {
	return &Cache{rdb: rdb, prefix: prefix}
}

func (c *Cache) key(noteID string) string {
	return c.prefix + noteID
}

func (c *Cache) FindNote(ctx context.Context, noteID string) (entity.Note, error) {
	raw, err := c.rdb.Get(ctx, c.key(noteID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entity.Note{}, entity.ErrNoteNotCached
		}
		return entity.Note{}, fmt.Errorf("cache get note: %v", err)
	}

	var note entity.Note
	if err := json.Unmarshal([]byte(raw), &note); err != nil {
		return entity.Note{}, fmt.Errorf("cache decode note: %v", err)
	}

	return note, nil
}

// FindAllNotes scans the note key namespace. An empty result means the cache
// holds no notes at all, which callers treat as a signal to fall back to the
// persistent store.
func (c *Cache) FindAllNotes(ctx context.Context) ([]entity.Note, error) {
	var keys []string
	it := c.rdb.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	for it.Next(ctx) {
		keys = append(keys, it.Val())
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("cache scan notes: %v", err)
	}

	if len(keys) == 0 {
		return nil, nil
	}

	raws, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("cache mget notes: %v", err)
	}

	notes := make([]entity.Note, 0, len(raws))
	for i, raw := range raws {
		s, ok := raw.(string)
		if !ok {
			// Key deleted between SCAN and MGET.
			continue
		}

		var note entity.Note
		if err := json.Unmarshal([]byte(s), &note); err != nil {
			slogx.Warn(ctx, "skip undecodable cache entry",
				slog.String("key", keys[i]), slogx.Err(err))
			continue
		}

		notes = append(notes, note)
	}

	return notes, nil
}

func (c *Cache) SaveNote(ctx context.Context, note entity.Note) error {
	raw, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("cache encode note: %v", err)
	}

	if err := c.rdb.Set(ctx, c.key(note.ID), raw, 0).Err(); err != nil {
		return fmt.Errorf("cache set note: %v", err)
	}

	return nil
}

func (c *Cache) DeleteNote(ctx context.Context, noteID string) error {
	if err := c.rdb.Del(ctx, c.key(noteID)).Err(); err != nil {
		return fmt.Errorf("cache del note: %v", err)
	}

	return nil
}
