package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestCache_PutAndGetFresh(t *testing.T) {
	c := New[string]()
	c.Put("k", "v", time.Minute)

	got, ok := c.GetFresh("k")
	if !ok || got != "v" {
		t.Errorf("GetFresh() = (%q, %v), want (v, true)", got, ok)
	}

	if _, ok := c.GetFresh("absent"); ok {
		t.Error("GetFresh() on absent key returned ok")
	}
}

func TestCache_Freshness(t *testing.T) {
	c := New[string]()
	c.Put("k", "v", 200*time.Millisecond)

	if _, ok := c.GetFresh("k"); !ok {
		t.Fatal("GetFresh() missed immediately after Put")
	}

	time.Sleep(250 * time.Millisecond)

	if _, ok := c.GetFresh("k"); ok {
		t.Error("GetFresh() returned an expired entry")
	}

	// Expired entries stay readable in stale mode until overwritten.
	got, fresh, ok := c.GetAny("k")
	if !ok {
		t.Fatal("GetAny() missed an expired entry")
	}
	if fresh {
		t.Error("GetAny() reported an expired entry as fresh")
	}
	if got != "v" {
		t.Errorf("GetAny() = %q, want v", got)
	}
}

func TestCache_GetAnyFresh(t *testing.T) {
	c := New[int]()
	c.Put("k", 7, time.Minute)

	got, fresh, ok := c.GetAny("k")
	if !ok || !fresh || got != 7 {
		t.Errorf("GetAny() = (%d, %v, %v), want (7, true, true)", got, fresh, ok)
	}

	if _, _, ok := c.GetAny("absent"); ok {
		t.Error("GetAny() on absent key returned ok")
	}
}

func TestCache_OverwriteWins(t *testing.T) {
	c := New[string]()
	c.Put("k", "old", time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	c.Put("k", "new", time.Minute)

	got, ok := c.GetFresh("k")
	if !ok || got != "new" {
		t.Errorf("GetFresh() after overwrite = (%q, %v), want (new, true)", got, ok)
	}
}

func TestCache_LenAndClear(t *testing.T) {
	c := New[int]()
	for i := 0; i < 100; i++ {
		c.Put(fmt.Sprintf("k%d", i), i, time.Nanosecond)
	}

	// Expiry never removes entries on its own.
	time.Sleep(time.Millisecond)
	if got := c.Len(); got != 100 {
		t.Errorf("Len() = %d, want 100", got)
	}

	c.Clear()
	if got := c.Len(); got != 0 {
		t.Errorf("Len() after Clear = %d, want 0", got)
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[int]()
	var wg sync.WaitGroup

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", i%20)
				c.Put(key, g*1000+i, time.Minute)
				c.GetFresh(key)
				c.GetAny(key)
			}
		}(g)
	}
	wg.Wait()

	if got := c.Len(); got != 20 {
		t.Errorf("Len() = %d, want 20", got)
	}
}

func TestKeys(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{ListKey("top"), "list:top"},
		{StoryKey(12345), "story:12345"},
		{CommentKey(67890), "comment:67890"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("key = %q, want %q", tt.got, tt.want)
		}
	}
}
