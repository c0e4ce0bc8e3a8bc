package clipcache_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"audioheal/internal/clipcache"
)

func openCache(t *testing.T) *clipcache.Cache {
	t.Helper()
	cache, err := clipcache.Open(filepath.Join(t.TempDir(), "clips"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() {
		if err := cache.Close(); err != nil {
			t.Errorf("close cache: %v", err)
		}
	})
	return cache
}

func TestLookupMissThenHit(t *testing.T) {
	cache := openCache(t)
	ctx := context.Background()

	if _, ok, err := cache.Lookup(ctx, "<speak>hi</speak>", "Amy", "neural", 16000); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	pcm := []byte{1, 0, 2, 0, 3, 0}
	if err := cache.Store(ctx, "<speak>hi</speak>", "Amy", "neural", 16000, pcm); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, ok, err := cache.Lookup(ctx, "<speak>hi</speak>", "Amy", "neural", 16000)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(got) != string(pcm) {
		t.Fatalf("payload mismatch: %v", got)
	}

	// Same markup under a different voice is a distinct key.
	if _, ok, err := cache.Lookup(ctx, "<speak>hi</speak>", "Brian", "neural", 16000); err != nil || ok {
		t.Fatalf("expected miss for other voice, got ok=%v err=%v", ok, err)
	}
}

func TestStoreReplacesExistingEntry(t *testing.T) {
	cache := openCache(t)
	ctx := context.Background()

	if err := cache.Store(ctx, "<speak>x</speak>", "Amy", "neural", 16000, []byte{1, 1}); err != nil {
		t.Fatal(err)
	}
	if err := cache.Store(ctx, "<speak>x</speak>", "Amy", "neural", 16000, []byte{2, 2, 2, 2}); err != nil {
		t.Fatal(err)
	}

	got, ok, err := cache.Lookup(ctx, "<speak>x</speak>", "Amy", "neural", 16000)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(got) != 4 {
		t.Fatalf("expected replacement payload, got %v", got)
	}

	stats, err := cache.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 1 || stats.TotalBytes != 4 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestStatsAndClear(t *testing.T) {
	cache := openCache(t)
	ctx := context.Background()

	if err := cache.Store(ctx, "<speak>a</speak>", "Amy", "neural", 16000, []byte{0, 0}); err != nil {
		t.Fatal(err)
	}
	if err := cache.Store(ctx, "<speak>b</speak>", "Amy", "neural", 16000, []byte{0, 0, 0, 0}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := cache.Lookup(ctx, "<speak>a</speak>", "Amy", "neural", 16000); err != nil {
		t.Fatal(err)
	}

	stats, err := cache.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 2 || stats.TotalBytes != 6 || stats.TotalHits != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	dropped, err := cache.Clear(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if dropped != 2 {
		t.Fatalf("expected 2 entries dropped, got %d", dropped)
	}
	stats, err = cache.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 0 || stats.TotalBytes != 0 {
		t.Fatalf("cache not empty after clear: %+v", stats)
	}
}

func TestLookupDropsRowWhenPayloadMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "clips")
	cache, err := clipcache.Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()
	ctx := context.Background()

	if err := cache.Store(ctx, "<speak>gone</speak>", "Amy", "neural", 16000, []byte{9, 9}); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".pcm") {
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				t.Fatal(err)
			}
		}
	}

	if _, ok, err := cache.Lookup(ctx, "<speak>gone</speak>", "Amy", "neural", 16000); err != nil || ok {
		t.Fatalf("expected miss after payload removal, got ok=%v err=%v", ok, err)
	}
	stats, err := cache.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 0 {
		t.Fatalf("stale row survived: %+v", stats)
	}
}
