package cache

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func newTestCache(maxItems int, ttl time.Duration) *Cache[string] {
	return New[string](Config{MaxItems: maxItems, TTL: ttl})
}

func TestCache_SetGet(t *testing.T) {
	c := newTestCache(10, time.Minute)
	defer c.Close()

	c.Set("a", "alpha")

	got, ok := c.Get("a")
	if !ok || got != "alpha" {
		t.Errorf("Get(a) = %q, %v; want alpha, true", got, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Stats = %+v, want 1 hit and 1 miss", stats)
	}
	if stats.HitRate != 50 {
		t.Errorf("HitRate = %v, want 50", stats.HitRate)
	}
}

func TestCache_Expiration(t *testing.T) {
	c := newTestCache(10, time.Minute)
	defer c.Close()

	c.SetWithTTL("short", "value", 10*time.Millisecond)
	c.SetWithTTL("forever", "value", 0)

	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expired entry should not be returned")
	}
	if _, ok := c.Get("forever"); !ok {
		t.Error("entry without TTL should not expire")
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
}

func TestCache_EvictsOldest(t *testing.T) {
	c := newTestCache(3, time.Minute)
	defer c.Close()

	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), "v")
		time.Sleep(time.Millisecond)
	}
	c.Set("k3", "v")

	if c.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", c.Size())
	}
	if _, ok := c.Get("k0"); ok {
		t.Error("oldest entry k0 should have been evicted")
	}
	if _, ok := c.Get("k3"); !ok {
		t.Error("newest entry k3 should be present")
	}
}

func TestCache_OverwriteDoesNotEvict(t *testing.T) {
	c := newTestCache(2, time.Minute)
	defer c.Close()

	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("a", "3")

	if got, _ := c.Get("a"); got != "3" {
		t.Errorf("Get(a) = %q, want 3", got)
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("b should survive an overwrite of a")
	}
}

func TestCache_DeleteClear(t *testing.T) {
	c := newTestCache(10, time.Minute)
	defer c.Close()

	c.Set("a", "1")
	c.Set("b", "2")
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted entry should miss")
	}

	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size() after Clear = %d, want 0", c.Size())
	}
}

func TestCache_GetOrSet(t *testing.T) {
	c := newTestCache(10, time.Minute)
	defer c.Close()

	calls := 0
	compute := func() (string, error) {
		calls++
		return "computed", nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.GetOrSet("k", compute)
		if err != nil || got != "computed" {
			t.Fatalf("GetOrSet() = %q, %v", got, err)
		}
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}

	wantErr := errors.New("boom")
	if _, err := c.GetOrSet("fail", func() (string, error) { return "", wantErr }); !errors.Is(err, wantErr) {
		t.Errorf("GetOrSet() error = %v, want %v", err, wantErr)
	}
	if _, ok := c.Get("fail"); ok {
		t.Error("failed computation should not be cached")
	}
}

func TestCache_CloseTwice(t *testing.T) {
	c := newTestCache(1, time.Minute)
	c.Close()
	c.Close()
}

func TestSourceKey(t *testing.T) {
	a := SourceKey("parse", "program", "a;")
	b := SourceKey("parse", "program", "b;")
	c := SourceKey("parse", "expression", "a;")

	if a == b || a == c {
		t.Errorf("keys should differ: %s %s %s", a, b, c)
	}
	if a != SourceKey("parse", "program", "a;") {
		t.Error("SourceKey should be deterministic")
	}
	if !strings.HasPrefix(a, "parse:program:") {
		t.Errorf("SourceKey = %s, want prefix parse:program:", a)
	}

	long := SourceKey("parse", "program", strings.Repeat("x", 1<<16))
	if len(long) != len("parse:program:")+32 {
		t.Errorf("len(SourceKey) = %d, want fixed length", len(long))
	}
}
