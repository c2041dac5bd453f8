// Package localcache is the in-process cache tier. Tiered puts it in front
// of a shared cache such as Redis.
package localcache

import (
	"context"
	"encoding/json"
	"reflect"
	"time"

	"github.com/karlseguin/ccache/v3"
	"github.com/rs/zerolog/log"

	"rental_site/internal/adapters/observability"
	"rental_site/internal/domain"
)

// Cache stores JSON so callers decode into their own types, as with Redis.
type Cache struct {
	c *ccache.Cache[[]byte]
}

func New(maxSize int64) *Cache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &Cache{c: ccache.New(ccache.Configure[[]byte]().MaxSize(maxSize))}
}

func (l *Cache) Get(_ context.Context, key string, dst any) (bool, error) {
	item := l.c.Get(key)
	if item == nil || item.Expired() {
		observability.ObserveCache("local", "miss")
		return false, nil
	}
	observability.ObserveCache("local", "hit")
	return true, json.Unmarshal(item.Value(), dst)
}

func (l *Cache) Set(_ context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("local", "set")
	l.c.Set(key, b, time.Duration(ttlSec)*time.Second)
	return nil
}

func (l *Cache) Del(_ context.Context, key string) error {
	observability.ObserveCache("local", "del")
	l.c.Delete(key)
	return nil
}

func (l *Cache) Stop() { l.c.Stop() }

// Tiered reads the local tier first, then the shared tier, backfilling the
// local tier on a shared hit. Shared-tier failures degrade to a miss.
type Tiered struct {
	l1    *Cache
	l2    domain.Cache
	l1TTL int
}

// NewTiered keeps L1 entries for at most l1TTL seconds. l2 may be nil.
func NewTiered(l1 *Cache, l2 domain.Cache, l1TTL int) *Tiered {
	if l1TTL <= 0 {
		l1TTL = 60
	}
	return &Tiered{l1: l1, l2: l2, l1TTL: l1TTL}
}

func (t *Tiered) Get(ctx context.Context, key string, dst any) (bool, error) {
	ok, err := t.l1.Get(ctx, key, dst)
	switch {
	case ok && err == nil:
		return true, nil
	case ok:
		// undecodable local entry: drop it and start the shared read from zero
		log.Warn().Err(err).Str("key", key).Msg("local cache entry unreadable")
		_ = t.l1.Del(ctx, key)
		resetValue(dst)
	}
	if t.l2 == nil {
		return false, nil
	}
	ok, err = t.l2.Get(ctx, key, dst)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("shared cache read failed")
		return false, nil
	}
	if ok {
		_ = t.l1.Set(ctx, key, dst, t.l1TTL)
	}
	return ok, nil
}

// resetValue zeroes what dst points to.
func resetValue(dst any) {
	if v := reflect.ValueOf(dst); v.Kind() == reflect.Pointer && !v.IsNil() {
		v.Elem().Set(reflect.Zero(v.Elem().Type()))
	}
}

func (t *Tiered) Set(ctx context.Context, key string, v any, ttlSec int) error {
	l1 := ttlSec
	if l1 > t.l1TTL {
		l1 = t.l1TTL
	}
	if err := t.l1.Set(ctx, key, v, l1); err != nil {
		return err
	}
	if t.l2 == nil {
		return nil
	}
	if err := t.l2.Set(ctx, key, v, ttlSec); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("shared cache write failed")
	}
	return nil
}

func (t *Tiered) Del(ctx context.Context, key string) error {
	_ = t.l1.Del(ctx, key)
	if t.l2 == nil {
		return nil
	}
	return t.l2.Del(ctx, key)
}
