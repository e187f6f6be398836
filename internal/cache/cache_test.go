package cache

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestKey_StableAndFilenameSafe(t *testing.T) {
	a := Key("https://example.com/article?id=1")
	b := Key("https://example.com/article?id=1")
	if a != b {
		t.Error("same input must produce the same key")
	}
	if a == Key("https://example.com/article?id=2") {
		t.Error("distinct inputs must not collide")
	}
	if strings.ContainsAny(a, "/:\\?") {
		t.Errorf("key %q is not filename safe", a)
	}
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("unexpected hit for missing key")
	}

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, found := c.Get("k")
	if !found || !bytes.Equal(value, []byte("v")) {
		t.Errorf("Get = %q %v, want v true", value, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("key survived Delete")
	}
}

func TestDiskCache_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	first := NewDiskCache(dir, time.Hour)
	if err := first.Set(Key("doc"), []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	second := NewDiskCache(dir, time.Hour)
	value, found := second.Get(Key("doc"))
	if !found || string(value) != "payload" {
		t.Errorf("Get after reopen = %q %v", value, found)
	}
}

func TestDiskCache_ExpiredEntryIsAMiss(t *testing.T) {
	// A cache whose default TTL lies in the past writes entries that are
	// already expired.
	expired := NewDiskCache(t.TempDir(), -time.Second)
	if err := expired.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found := expired.Get("k"); found {
		t.Error("expired entry must miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed the disk layer directly.
	disk := NewDiskCache(dir, time.Hour)
	if err := disk.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Hour)
	value, found := layered.Get("k")
	if !found || string(value) != "v" {
		t.Fatalf("layered Get = %q %v", value, found)
	}

	// After promotion the entry must hit even with the disk file gone.
	if err := disk.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := layered.Get("k"); !found {
		t.Error("disk hit was not promoted to memory")
	}
}

func TestLayeredCache_ClearEmptiesBothLayers(t *testing.T) {
	layered := NewLayeredCache(time.Minute, t.TempDir(), time.Hour)

	if err := layered.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := layered.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, found := layered.Get("k"); found {
		t.Error("entry survived Clear")
	}
}
