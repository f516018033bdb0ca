package suggest

import "testing"

func TestHotCacheSearchRanking(t *testing.T) {
	hc := NewHotCache(100)
	hc.Touch("apple", 50)
	hc.Touch("append", 80)
	hc.Touch("apt", 80)
	hc.Touch("banana", 999)

	got := hc.Search("ap", 0)
	want := []string{"apt", "append", "apple"}
	if len(got) != len(want) {
		t.Fatalf("Search(ap) returned %d results, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Word != w {
			t.Errorf("Search(ap)[%d] = %q, want %q", i, got[i].Word, w)
		}
	}
}

func TestHotCacheLimit(t *testing.T) {
	hc := NewHotCache(100)
	hc.Touch("aa", 1)
	hc.Touch("ab", 2)
	hc.Touch("ac", 3)
	if got := hc.Search("a", 2); len(got) != 2 {
		t.Errorf("Search(a, 2) returned %d results, want 2", len(got))
	}
}

func TestHotCacheEvictsLRU(t *testing.T) {
	hc := NewHotCache(2)
	hc.Touch("old", 10)
	hc.Touch("warm", 10)
	// refresh "old" so "warm" becomes the eviction candidate
	hc.Touch("old", 0)
	hc.Touch("new", 10)

	if hc.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", hc.Len())
	}
	if got := hc.Search("warm", 0); len(got) != 0 {
		t.Errorf("evicted word still served: %v", got)
	}
	if got := hc.Search("old", 0); len(got) != 1 {
		t.Errorf("refreshed word was evicted")
	}
}

func TestHotCacheStats(t *testing.T) {
	hc := NewHotCache(10)
	hc.Touch("alpha", 5)
	hc.Touch("beta", 3)
	hc.Touch("alpha", 0)

	stats := hc.Stats()
	if stats["hotCacheWords"] != 2 {
		t.Errorf("hotCacheWords = %d, want 2", stats["hotCacheWords"])
	}
	if stats["maxHotWords"] != 10 {
		t.Errorf("maxHotWords = %d, want 10", stats["maxHotWords"])
	}
	// the clock counts every recorded access, not distinct words
	if stats["hotCacheAccesses"] != 3 {
		t.Errorf("hotCacheAccesses = %d, want 3", stats["hotCacheAccesses"])
	}
}

func TestHotCacheTouchUnknownZeroFreq(t *testing.T) {
	hc := NewHotCache(10)
	hc.Touch("ghost", 0)
	if hc.Len() != 0 {
		t.Errorf("zero-frequency touch of unknown word must not cache it")
	}
}
