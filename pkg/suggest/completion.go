package suggest

import (
	"strings"

	"github.com/bastiangx/wordtrie/pkg/trie"
)

// Suggestion is one ranked completion result.
type Suggestion struct {
	Word      string
	Frequency int
}

// Completer serves completions from the core trie. The trie scan is always
// authoritative; the hot cache of recently served words only tops up a scan
// that came back short of the limit.
type Completer struct {
	trie *trie.Trie
	hot  *HotCache
}

const defaultHotWords = 20000

// NewCompleter returns an empty completer with a default sized hot cache.
func NewCompleter() *Completer {
	return &Completer{
		trie: trie.New(),
		hot:  NewHotCache(defaultHotWords),
	}
}

// AddWord inserts a word with its frequency. Empty words and non-positive
// frequencies surface the trie's InvalidInput errors unchanged.
func (c *Completer) AddWord(word string, frequency int) error {
	return c.trie.InsertN(word, frequency)
}

// Lookup reports whether word is stored.
func (c *Completer) Lookup(word string) bool {
	return c.trie.Lookup(word)
}

// Words returns every stored word in alphabetical order.
func (c *Completer) Words() []string {
	return c.trie.Words()
}

// TopK returns the k most common words with their frequencies.
func (c *Completer) TopK(k int) []Suggestion {
	return fromEntries(c.trie.TopKEntries(k))
}

// Len returns the number of distinct words stored.
func (c *Completer) Len() int {
	return c.trie.Len()
}

// Best returns the single most common word with the given prefix, with the
// caller's capitalization pattern re-applied. Always answered from the
// trie, never the cache: absence must be exact.
func (c *Completer) Best(prefix string) (string, bool) {
	entries := c.trie.Suggest(strings.ToLower(prefix), 1)
	if len(entries) == 0 {
		return "", false
	}
	c.hot.Touch(entries[0].Word, entries[0].Frequency)
	return ApplyCapitalization(entries[0].Word, capitalPositions(prefix)), true
}

// Complete returns up to limit suggestions for prefix, highest frequency
// first. The trie scan always runs and its results win; hot-cache entries
// only fill out a result that came back short of the limit.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	lower := strings.ToLower(prefix)
	caps := capitalPositions(prefix)

	entries := c.trie.Suggest(lower, limit)
	suggestions := make([]Suggestion, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		c.hot.Touch(e.Word, e.Frequency)
		seen[e.Word] = true
		suggestions = append(suggestions, Suggestion{Word: e.Word, Frequency: e.Frequency})
	}

	if limit > 0 && len(suggestions) < limit {
		for _, h := range c.hot.Search(lower, limit) {
			if seen[h.Word] {
				continue
			}
			suggestions = append(suggestions, h)
			if len(suggestions) >= limit {
				break
			}
		}
		rankSuggestions(suggestions)
	}
	return capitalize(suggestions, caps)
}

// Stats returns statistics about the loaded dictionary and the hot cache.
func (c *Completer) Stats() map[string]int {
	stats := map[string]int{
		"totalWords":   c.trie.Len(),
		"maxFrequency": c.trie.MaxFrequency(),
	}
	for k, v := range c.hot.Stats() {
		stats[k] = v
	}
	return stats
}

func fromEntries(entries []trie.Entry) []Suggestion {
	suggestions := make([]Suggestion, len(entries))
	for i, e := range entries {
		suggestions[i] = Suggestion{Word: e.Word, Frequency: e.Frequency}
	}
	return suggestions
}

func capitalize(suggestions []Suggestion, caps []bool) []Suggestion {
	if len(caps) == 0 {
		return suggestions
	}
	out := make([]Suggestion, len(suggestions))
	for i, s := range suggestions {
		out[i] = Suggestion{Word: ApplyCapitalization(s.Word, caps), Frequency: s.Frequency}
	}
	return out
}

// capitalPositions records which rune positions of the typed prefix were
// uppercase, so results can mirror the caller's casing.
func capitalPositions(prefix string) []bool {
	positions := make([]bool, 0, len(prefix))
	hasAny := false
	for _, r := range prefix {
		upper := r >= 'A' && r <= 'Z'
		hasAny = hasAny || upper
		positions = append(positions, upper)
	}
	if !hasAny {
		return nil
	}
	return positions
}

// ApplyCapitalization uppercases the positions of word that were uppercase
// in the original prefix.
func ApplyCapitalization(word string, capitalPositions []bool) string {
	if len(capitalPositions) == 0 {
		return word
	}
	wordRunes := []rune(word)
	for i := 0; i < len(wordRunes) && i < len(capitalPositions); i++ {
		if capitalPositions[i] && wordRunes[i] >= 'a' && wordRunes[i] <= 'z' {
			wordRunes[i] = wordRunes[i] - 'a' + 'A'
		}
	}
	return string(wordRunes)
}
