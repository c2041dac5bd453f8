package localcache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"rental_site/internal/adapters/localcache"
	redisad "rental_site/internal/adapters/redis"
)

type payload struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

func TestCache_RoundTrip(t *testing.T) {
	c := localcache.New(10)
	defer c.Stop()
	ctx := context.Background()

	var got payload
	if ok, _ := c.Get(ctx, "a", &got); ok {
		t.Fatal("expected miss")
	}
	_ = c.Set(ctx, "a", payload{ID: 1, Label: "one"}, 60)
	if ok, err := c.Get(ctx, "a", &got); !ok || err != nil || got.Label != "one" {
		t.Fatalf("expected hit, got ok=%v err=%v %+v", ok, err, got)
	}
	_ = c.Del(ctx, "a")
	if ok, _ := c.Get(ctx, "a", &got); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestTiered_BackfillsLocalFromShared(t *testing.T) {
	mr := miniredis.RunT(t)
	shared := redisad.New(mr.Addr(), "", 0)
	defer shared.Close()
	ctx := context.Background()

	_ = shared.Set(ctx, "calendar:1:2026-06-01", payload{ID: 1, Label: "from redis"}, 300)

	l1 := localcache.New(10)
	defer l1.Stop()
	tc := localcache.NewTiered(l1, shared, 30)

	var got payload
	ok, err := tc.Get(ctx, "calendar:1:2026-06-01", &got)
	if !ok || err != nil || got.Label != "from redis" {
		t.Fatalf("expected shared hit, got ok=%v err=%v %+v", ok, err, got)
	}

	// the local tier answers once redis has dropped the key
	mr.Del("rental:calendar:1:2026-06-01")
	got = payload{}
	ok, err = tc.Get(ctx, "calendar:1:2026-06-01", &got)
	if !ok || err != nil || got.ID != 1 {
		t.Fatalf("expected local hit, got ok=%v err=%v %+v", ok, err, got)
	}
}

type failingCache struct{}

func (failingCache) Get(context.Context, string, any) (bool, error) { return false, errors.New("down") }
func (failingCache) Set(context.Context, string, any, int) error    { return errors.New("down") }
func (failingCache) Del(context.Context, string) error              { return errors.New("down") }

func TestTiered_SharedFailureDegradesToMiss(t *testing.T) {
	l1 := localcache.New(10)
	defer l1.Stop()
	tc := localcache.NewTiered(l1, failingCache{}, 30)
	ctx := context.Background()

	var got payload
	if ok, err := tc.Get(ctx, "k", &got); ok || err != nil {
		t.Fatalf("expected silent miss, got ok=%v err=%v", ok, err)
	}
	if err := tc.Set(ctx, "k", payload{ID: 2}, 300); err != nil {
		t.Fatalf("set should not fail on shared tier error: %v", err)
	}
	if ok, _ := tc.Get(ctx, "k", &got); !ok || got.ID != 2 {
		t.Fatalf("expected local hit, got %+v", got)
	}
}

func TestTiered_NilShared(t *testing.T) {
	l1 := localcache.New(10)
	defer l1.Stop()
	tc := localcache.NewTiered(l1, nil, 0)
	ctx := context.Background()
	_ = tc.Set(ctx, "k", payload{ID: 3}, 300)
	var got payload
	if ok, _ := tc.Get(ctx, "k", &got); !ok || got.ID != 3 {
		t.Fatalf("expected hit, got %+v", got)
	}
	if err := tc.Del(ctx, "k"); err != nil {
		t.Fatal(err)
	}
}

func TestTiered_UnreadableLocalEntryDoesNotLeak(t *testing.T) {
	mr := miniredis.RunT(t)
	shared := redisad.New(mr.Addr(), "", 0)
	defer shared.Close()
	ctx := context.Background()

	l1 := localcache.New(10)
	defer l1.Stop()
	// label decodes, id does not
	_ = l1.Set(ctx, "calendar:2:2026-06-01", map[string]any{"label": "stale", "id": "not a number"}, 30)
	_ = shared.Set(ctx, "calendar:2:2026-06-01", map[string]any{"id": 2}, 300)

	tc := localcache.NewTiered(l1, shared, 30)
	var got payload
	ok, err := tc.Get(ctx, "calendar:2:2026-06-01", &got)
	if !ok || err != nil {
		t.Fatalf("expected shared hit, got ok=%v err=%v", ok, err)
	}
	if got != (payload{ID: 2}) {
		t.Fatalf("local leftovers merged into shared value: %+v", got)
	}

	// the local tier was refilled from the shared value
	var again payload
	if ok, err := l1.Get(ctx, "calendar:2:2026-06-01", &again); !ok || err != nil || again.ID != 2 || again.Label != "" {
		t.Fatalf("local tier not repaired: ok=%v err=%v %+v", ok, err, again)
	}
}
