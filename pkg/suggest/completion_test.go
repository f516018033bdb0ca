package suggest

import (
	"fmt"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/trie"
)

func newTestCompleter(t *testing.T) *Completer {
	t.Helper()
	c := NewCompleter()
	words := map[string]int{
		"the":     2000,
		"thou":    900,
		"thee":    850,
		"theatre": 40,
		"cat":     5,
		"car":     3,
		"cart":    3,
		"dog":     1,
	}
	for w, n := range words {
		if err := c.AddWord(w, n); err != nil {
			t.Fatalf("AddWord(%q, %d): %v", w, n, err)
		}
	}
	return c
}

func TestCompleteRanking(t *testing.T) {
	c := newTestCompleter(t)

	got := c.Complete("th", 3)
	want := []string{"the", "thou", "thee"}
	if len(got) != len(want) {
		t.Fatalf("Complete(th, 3) returned %d suggestions, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Word != w {
			t.Errorf("Complete(th, 3)[%d] = %q, want %q", i, got[i].Word, w)
		}
	}
}

func TestCompleteNarrowPrefixDoesNotShadowWide(t *testing.T) {
	c := NewCompleter()
	if err := c.AddWord("the", 2000); err != nil {
		t.Fatalf("AddWord: %v", err)
	}
	if err := c.AddWord("thou", 900); err != nil {
		t.Fatalf("AddWord: %v", err)
	}

	// serving the narrow prefix caches "thou" only
	if got := c.Complete("tho", 1); len(got) != 1 || got[0].Word != "thou" {
		t.Fatalf("Complete(tho, 1) = %v, want [thou]", got)
	}

	// the wide prefix must still rank from the full tree, not the cache
	got := c.Complete("th", 1)
	if len(got) != 1 || got[0].Word != "the" || got[0].Frequency != 2000 {
		t.Errorf("Complete(th, 1) = %v, want [{the 2000}]", got)
	}
}

func TestCompleteReflectsUpdatedFrequency(t *testing.T) {
	c := NewCompleter()
	if err := c.AddWord("thou", 900); err != nil {
		t.Fatalf("AddWord: %v", err)
	}
	if got := c.Complete("tho", 1); len(got) != 1 || got[0].Frequency != 900 {
		t.Fatalf("Complete(tho, 1) = %v, want [{thou 900}]", got)
	}

	// repeat inserts accumulate; a cached entry must not serve the old count
	if err := c.AddWord("thou", 1200); err != nil {
		t.Fatalf("AddWord: %v", err)
	}
	if got := c.Complete("tho", 1); len(got) != 1 || got[0].Frequency != 2100 {
		t.Errorf("Complete(tho, 1) after update = %v, want [{thou 2100}]", got)
	}
}

func TestCompleteNoMatch(t *testing.T) {
	c := newTestCompleter(t)
	if got := c.Complete("xyz", 10); len(got) != 0 {
		t.Errorf("Complete(xyz, 10) = %v, want empty", got)
	}
}

func TestCompleteAppliesCapitalization(t *testing.T) {
	c := newTestCompleter(t)

	testCases := []struct {
		prefix      string
		firstWord   string
		description string
	}{
		{"Th", "The", "Leading capital"},
		{"TH", "THe", "Two capitals"},
		{"th", "the", "No capitals untouched"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := c.Complete(tc.prefix, 1)
			if len(got) != 1 || got[0].Word != tc.firstWord {
				t.Errorf("Complete(%q, 1) = %v, want first word %q", tc.prefix, got, tc.firstWord)
			}
		})
	}
}

func TestBest(t *testing.T) {
	c := newTestCompleter(t)

	testCases := []struct {
		prefix      string
		expected    string
		found       bool
		description string
	}{
		{"th", "the", true, "Highest frequency"},
		{"ca", "cat", true, "Highest frequency beats tie pair"},
		{"car", "car", true, "Tie broken by shorter word"},
		{"Do", "Dog", true, "Capitalization re-applied"},
		{"zebra", "", false, "Absent prefix"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got, found := c.Best(tc.prefix)
			if got != tc.expected || found != tc.found {
				t.Errorf("Best(%q) = (%q, %v), want (%q, %v)",
					tc.prefix, got, found, tc.expected, tc.found)
			}
		})
	}
}

func TestBestCachesCurrentFrequency(t *testing.T) {
	c := NewCompleter()
	if err := c.AddWord("the", 2000); err != nil {
		t.Fatalf("AddWord: %v", err)
	}

	if _, found := c.Best("th"); !found {
		t.Fatal("Best(th) should find the")
	}
	if got := c.hot.Search("the", 1); len(got) != 1 || got[0].Frequency != 2000 {
		t.Fatalf("cached entry = %v, want {the 2000}", got)
	}

	if err := c.AddWord("the", 500); err != nil {
		t.Fatalf("AddWord: %v", err)
	}
	if _, found := c.Best("th"); !found {
		t.Fatal("Best(th) should find the")
	}
	if got := c.hot.Search("the", 1); len(got) != 1 || got[0].Frequency != 2500 {
		t.Errorf("cached entry = %v, want {the 2500}", got)
	}
}

func TestAddWordInvalidInput(t *testing.T) {
	c := NewCompleter()
	if err := c.AddWord("", 1); err != trie.ErrEmptyWord {
		t.Errorf("AddWord(\"\", 1) = %v, want ErrEmptyWord", err)
	}
	if err := c.AddWord("word", 0); err != trie.ErrBadFrequency {
		t.Errorf("AddWord(word, 0) = %v, want ErrBadFrequency", err)
	}
}

func TestTopKAndWords(t *testing.T) {
	c := newTestCompleter(t)

	top := c.TopK(2)
	if len(top) != 2 || top[0].Word != "the" || top[1].Word != "thou" {
		t.Errorf("TopK(2) = %v, want [the thou]", top)
	}

	words := c.Words()
	if len(words) != c.Len() {
		t.Errorf("Words() has %d entries, Len() = %d", len(words), c.Len())
	}
	for i := 1; i < len(words); i++ {
		if words[i-1] >= words[i] {
			t.Errorf("Words() not strictly increasing at %d: %q >= %q", i, words[i-1], words[i])
		}
	}
}

func TestStats(t *testing.T) {
	c := newTestCompleter(t)
	stats := c.Stats()
	if stats["totalWords"] != 8 {
		t.Errorf("totalWords = %d, want 8", stats["totalWords"])
	}
	if stats["maxFrequency"] != 2000 {
		t.Errorf("maxFrequency = %d, want 2000", stats["maxFrequency"])
	}
	if _, ok := stats["hotCacheWords"]; !ok {
		t.Error("stats missing hotCacheWords")
	}
}

func BenchmarkComplete(b *testing.B) {
	c := NewCompleter()
	for i := 0; i < 10000; i++ {
		_ = c.AddWord(fmt.Sprintf("word%d", i), i%500+1)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Complete("word1", 24)
	}
}
