package cache

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New()
	c.Set("key", "value", time.Minute)

	got, ok := c.Get("key")
	if !ok {
		t.Fatal("Get missed a fresh entry")
	}
	if got != "value" {
		t.Errorf("Get = %v, want %q", got, "value")
	}
}

func TestCacheMiss(t *testing.T) {
	c := New()
	if _, ok := c.Get("absent"); ok {
		t.Error("Get hit on an absent key")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New()
	c.Set("key", "value", -time.Second)

	if _, ok := c.Get("key"); ok {
		t.Error("Get returned an expired entry")
	}
	// expired entry must be evicted, not just hidden
	c.mu.Lock()
	_, lingering := c.items["key"]
	c.mu.Unlock()
	if lingering {
		t.Error("expired entry not evicted on read")
	}
}

func TestCacheOverwrite(t *testing.T) {
	c := New()
	c.Set("key", "old", time.Minute)
	c.Set("key", "new", time.Minute)

	got, _ := c.Get("key")
	if got != "new" {
		t.Errorf("Get after overwrite = %v, want %q", got, "new")
	}
}

func TestCacheClear(t *testing.T) {
	c := New()
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Error("Get hit after Clear")
	}
}
