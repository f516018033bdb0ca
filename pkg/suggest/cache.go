package suggest

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// HotCache keeps recently served words in a patricia trie so short, busy
// prefixes can be answered without scanning the full tree. Eviction is LRU
// by a logical access clock.
type HotCache struct {
	hotTrie     *patricia.Trie
	accessTime  map[string]int64
	accessCount int64
	maxWords    int
	mu          sync.RWMutex
}

// NewHotCache returns a cache holding at most maxWords words.
func NewHotCache(maxWords int) *HotCache {
	return &HotCache{
		hotTrie:    patricia.NewTrie(),
		accessTime: make(map[string]int64, maxWords),
		maxWords:   maxWords,
	}
}

// Search returns the cached words under lowerPrefix ranked by frequency,
// then shorter word, then lexicographic order, capped at limit.
func (hc *HotCache) Search(lowerPrefix string, limit int) []Suggestion {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	var results []Suggestion
	err := hc.hotTrie.VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		freq, ok := item.(int)
		if !ok {
			log.Errorf("Unknown item type: %T for word %s", item, p)
			return nil
		}
		hc.accessTime[word] = hc.nextAccess()
		results = append(results, Suggestion{Word: word, Frequency: freq})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting hot cache subtree: %v", err)
		return nil
	}

	rankSuggestions(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// rankSuggestions orders by frequency descending, then shorter word, then
// lexicographic.
func rankSuggestions(suggestions []Suggestion) {
	sort.Slice(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		if len(a.Word) != len(b.Word) {
			return len(a.Word) < len(b.Word)
		}
		return a.Word < b.Word
	})
}

// Touch records that word was just served. A non-positive frequency only
// refreshes the access time of an already cached word.
func (hc *HotCache) Touch(word string, frequency int) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	prefix := patricia.Prefix(word)
	if item := hc.hotTrie.Get(prefix); item != nil {
		if frequency > 0 {
			hc.hotTrie.Set(prefix, frequency)
		}
		hc.accessTime[word] = hc.nextAccess()
		return
	}
	if frequency <= 0 {
		return
	}
	if len(hc.accessTime) >= hc.maxWords {
		hc.evictLRU()
	}
	hc.hotTrie.Insert(prefix, frequency)
	hc.accessTime[word] = hc.nextAccess()
}

// Len returns the number of cached words.
func (hc *HotCache) Len() int {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return len(hc.accessTime)
}

// Stats reports cache occupancy and the logical access clock.
func (hc *HotCache) Stats() map[string]int {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return map[string]int{
		"hotCacheWords":    len(hc.accessTime),
		"maxHotWords":      hc.maxWords,
		"hotCacheAccesses": int(hc.accessCount),
	}
}

// nextAccess advances the logical clock. Caller holds the write lock.
func (hc *HotCache) nextAccess() int64 {
	hc.accessCount++
	return hc.accessCount
}

// evictLRU drops the least recently accessed word. Caller holds the write lock.
func (hc *HotCache) evictLRU() {
	var oldest string
	var oldestTime int64 = -1
	for word, at := range hc.accessTime {
		if oldestTime < 0 || at < oldestTime {
			oldest = word
			oldestTime = at
		}
	}
	if oldestTime < 0 {
		return
	}
	hc.hotTrie.Delete(patricia.Prefix(oldest))
	delete(hc.accessTime, oldest)
}
