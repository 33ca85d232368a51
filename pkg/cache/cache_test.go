package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

// backends returns a fresh instance of every storing backend.
func backends(t *testing.T) map[string]Cache {
	t.Helper()
	fc, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	all := map[string]Cache{
		"file":   fc,
		"memory": NewMemoryCache(0),
	}

	// Redis joins the set when a server is available, e.g.
	// TREESEARCH_REDIS_URL=redis://localhost:6379/15.
	if url := os.Getenv("TREESEARCH_REDIS_URL"); url != "" {
		client, err := DialRedis(context.Background(), url)
		if err != nil {
			t.Fatalf("DialRedis: %v", err)
		}
		prefix := fmt.Sprintf("test:%s:%d:", t.Name(), time.Now().UnixNano())
		rc := NewRedisCache(client, prefix)
		t.Cleanup(func() { rc.Close() })
		all["redis"] = rc
	}
	return all
}

func TestCacheGetSetDelete(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
				t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
			}

			if err := c.Set(ctx, "k", []byte("v1"), 0); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := c.Set(ctx, "k", []byte("v2"), 0); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			data, hit, err := c.Get(ctx, "k")
			if err != nil || !hit || string(data) != "v2" {
				t.Fatalf("Get(k) = %q, %v, %v; want v2", data, hit, err)
			}

			if err := c.Delete(ctx, "k"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if err := c.Delete(ctx, "k"); err != nil {
				t.Fatalf("Delete twice: %v", err)
			}
			if _, hit, _ := c.Get(ctx, "k"); hit {
				t.Error("entry survived Delete")
			}
		})
	}
}

func TestCacheExpiry(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := c.Set(ctx, "short", []byte("x"), time.Millisecond); err != nil {
				t.Fatalf("Set: %v", err)
			}
			time.Sleep(20 * time.Millisecond)
			if _, hit, err := c.Get(ctx, "short"); hit || err != nil {
				t.Errorf("expired entry: hit %v, err %v", hit, err)
			}
		})
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)

	type result struct {
		Kind  string   `json:"kind"`
		Paths []string `json:"paths"`
	}
	want := result{Kind: "success", Paths: []string{"dir1", "dir3"}}
	if err := SetJSON(ctx, c, "r", want, 0); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	var got result
	hit, err := GetJSON(ctx, c, "r", &got)
	if err != nil || !hit {
		t.Fatalf("GetJSON = %v, %v", hit, err)
	}
	if got.Kind != want.Kind || len(got.Paths) != 2 {
		t.Errorf("GetJSON decoded %+v, want %+v", got, want)
	}

	// Undecodable entries count as misses and are dropped.
	_ = c.Set(ctx, "bad", []byte("{"), 0)
	if hit, err := GetJSON(ctx, c, "bad", &got); hit || err != nil {
		t.Errorf("GetJSON(bad) = %v, %v; want miss", hit, err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d after dropping bad entry, want 1", c.Len())
	}
}

func TestMemoryCacheEvictsOldest(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	_ = c.Set(ctx, "a", []byte("3"), 0) // rewrite moves a behind b
	_ = c.Set(ctx, "c", []byte("4"), 0)

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("b should have been evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, hit, _ := c.Get(ctx, k); !hit {
			t.Errorf("%s should still be cached", k)
		}
	}
}

func TestMemoryCacheCopiesData(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	buf := []byte("abc")
	_ = c.Set(ctx, "k", buf, 0)
	buf[0] = 'X'

	data, _, _ := c.Get(ctx, "k")
	if string(data) != "abc" {
		t.Errorf("Get = %q, want the bytes at Set time", data)
	}

	data[1] = 'Y'
	again, _, _ := c.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("Get after editing a returned slice = %q, want %q", again, "abc")
	}
}

func TestFileCacheLayoutAndClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}

	path := c.path("a")
	if !strings.HasPrefix(path, dir) || filepath.Ext(path) != ".json" {
		t.Errorf("path(a) = %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("entry file missing: %v", err)
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestFileCacheCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "k", []byte("v"), 0)
	if err := os.WriteFile(c.path("k"), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(corrupt) = hit %v, err %v; want miss", hit, err)
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := SearchKeyOpts{Kind: "tree", Goal: "file7", Algorithm: "ids", Limit: 10}

	key := k.SearchKey("h1", base)
	if !strings.HasPrefix(key, "search:") || len(key) != len("search:")+64 {
		t.Errorf("SearchKey = %q", key)
	}
	if key != k.SearchKey("h1", base) {
		t.Error("SearchKey should be deterministic")
	}

	variants := map[string]SearchKeyOpts{
		"goal":          {Kind: "tree", Goal: "file6", Algorithm: "ids", Limit: 10},
		"suffix":        {Kind: "tree", Suffix: "file7", Algorithm: "ids", Limit: 10},
		"algorithm":     {Kind: "tree", Goal: "file7", Algorithm: "dls", Limit: 10},
		"limit":         {Kind: "tree", Goal: "file7", Algorithm: "ids", Limit: 3},
		"all":           {Kind: "tree", Goal: "file7", Algorithm: "ids", Limit: 10, All: true},
		"kind":          {Kind: "graph", Goal: "file7", Algorithm: "ids", Limit: 10},
		"stop on match": {Kind: "tree", Goal: "file7", Algorithm: "ids", Limit: 10, All: true, StopOnMatch: true},
	}
	for name, opts := range variants {
		if k.SearchKey("h1", opts) == key {
			t.Errorf("changing %s should change the key", name)
		}
	}
	if k.SearchKey("h2", base) == key {
		t.Error("a different input hash should change the key")
	}
}

func TestScopedKeyer(t *testing.T) {
	opts := SearchKeyOpts{Kind: "graph", Start: "a", Goal: "b", Algorithm: "ids"}
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "serve:")

	if got, want := scoped.SearchKey("h", opts), "serve:"+inner.SearchKey("h", opts); got != want {
		t.Errorf("ScopedKeyer SearchKey = %q, want %q", got, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.SearchKey("h", SearchKeyOpts{})
	if !strings.HasPrefix(key, "prefix:search:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestDialRedisBadURL(t *testing.T) {
	if _, err := DialRedis(context.Background(), "http://localhost"); err == nil {
		t.Error("DialRedis should reject a non-redis URL")
	}
}
