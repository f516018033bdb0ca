// Package trie implements the frequency counting prefix tree that backs
// wordtrie. Words are stored one rune per edge, lowercased on entry, and
// every repeated insert bumps the terminal node's counter. Retrieval covers
// exact membership, the full sorted word list, the k most common words and
// the single best completion for a prefix.
//
// A Trie is safe for one writer and many readers at a time; an internal
// RWMutex guards the whole tree, so all operations can be called from
// concurrent goroutines.
package trie

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrEmptyWord is returned when inserting the empty string.
	// The root must never become terminal.
	ErrEmptyWord = errors.New("trie: empty word")

	// ErrBadFrequency is returned for a non-positive insert frequency.
	ErrBadFrequency = errors.New("trie: frequency must be positive")
)

// Trie owns the whole node graph rooted at root.
type Trie struct {
	mu      sync.RWMutex
	root    *Node
	size    int
	maxFreq int
}

// New returns an empty Trie.
func New() *Trie {
	return &Trie{root: &Node{}}
}

// Insert adds word with a frequency of 1. Re-inserting an existing word
// increments its counter instead of creating duplicate structure.
func (t *Trie) Insert(word string) error {
	return t.InsertN(word, 1)
}

// InsertN adds word with the given frequency. The word is lowercased so
// inserts, lookups and completions all match case-insensitively.
func (t *Trie) InsertN(word string, frequency int) error {
	if word == "" {
		return ErrEmptyWord
	}
	if frequency <= 0 {
		return ErrBadFrequency
	}
	word = strings.ToLower(word)

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for _, r := range word {
		node = node.ensureChild(r)
	}
	if !node.terminal {
		node.terminal = true
		node.word = word
		t.size++
	}
	node.frequency += frequency
	if node.frequency > t.maxFreq {
		t.maxFreq = node.frequency
	}
	return nil
}

// Lookup reports whether word was inserted. A string that is only a prefix
// of longer words reports false.
func (t *Trie) Lookup(word string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.descend(strings.ToLower(word))
	return node != nil && node.terminal
}

// Len returns the number of distinct words stored.
func (t *Trie) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// MaxFrequency returns the highest counter of any stored word.
func (t *Trie) MaxFrequency() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.maxFreq
}

// Words returns every stored word in lexicographic order.
//
// Map iteration order is never relied on: child keys are sorted at each
// node. The walk is an explicit stack rather than recursion so very long
// words cannot blow the call stack. Pre-order with ascending children is
// already lexicographic, since a terminal node's word is a proper prefix of
// everything below it.
func (t *Trie) Words() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	words := make([]string, 0, t.size)
	stack := []*Node{t.root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.terminal {
			words = append(words, node.word)
		}
		keys := sortedKeys(node.children)
		// pushed in reverse so the smallest key pops first
		for i := len(keys) - 1; i >= 0; i-- {
			stack = append(stack, node.children[keys[i]])
		}
	}
	return words
}

// TopKEntries returns up to k stored words with their counters, ordered by
// frequency descending with ties broken lexicographically. Fewer than k
// words yields all of them; k <= 0 yields none.
func (t *Trie) TopKEntries(k int) []Entry {
	if k <= 0 {
		return nil
	}

	t.mu.RLock()
	entries := collect(t.root, t.size)
	t.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Frequency != entries[j].Frequency {
			return entries[i].Frequency > entries[j].Frequency
		}
		return entries[i].Word < entries[j].Word
	})
	if len(entries) > k {
		entries = entries[:k]
	}
	return entries
}

// TopK is TopKEntries projected to the words alone.
func (t *Trie) TopK(k int) []string {
	entries := t.TopKEntries(k)
	words := make([]string, len(entries))
	for i, e := range entries {
		words[i] = e.Word
	}
	return words
}

// Autocomplete returns the most common word starting with prefix. Ties go
// to the shorter word, then lexicographic order. The empty prefix matches
// everything, so it yields the most common word overall. The second return
// is false when no stored word has the prefix; absence is a normal result,
// not an error.
func (t *Trie) Autocomplete(prefix string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	start := t.descend(strings.ToLower(prefix))
	if start == nil {
		return "", false
	}

	var best *Node
	stack := []*Node{start}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.terminal && node.better(best) {
			best = node
		}
		for _, child := range node.children {
			stack = append(stack, child)
		}
	}
	if best == nil {
		return "", false
	}
	return best.word, true
}

// Suggest returns every stored word starting with prefix, ranked like
// Autocomplete (frequency desc, then shorter, then lexicographic), capped
// at limit. limit <= 0 means no cap.
func (t *Trie) Suggest(prefix string, limit int) []Entry {
	var entries []Entry
	t.WalkPrefix(prefix, func(word string, frequency int) bool {
		entries = append(entries, Entry{Word: word, Frequency: frequency})
		return true
	})
	if len(entries) == 0 {
		return nil
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		if len(a.Word) != len(b.Word) {
			return len(a.Word) < len(b.Word)
		}
		return a.Word < b.Word
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// WalkPrefix calls fn for every stored word under prefix, in no particular
// order. Returning false from fn stops the walk early.
func (t *Trie) WalkPrefix(prefix string, fn func(word string, frequency int) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	start := t.descend(strings.ToLower(prefix))
	if start == nil {
		return
	}
	stack := []*Node{start}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.terminal && !fn(node.word, node.frequency) {
			return
		}
		for _, child := range node.children {
			stack = append(stack, child)
		}
	}
}

// descend walks s from the root and returns the node it lands on, or nil
// when a required child is missing. Caller holds at least a read lock.
func (t *Trie) descend(s string) *Node {
	node := t.root
	for _, r := range s {
		node = node.child(r)
		if node == nil {
			return nil
		}
	}
	return node
}

// collect gathers the entries of every terminal node under start.
func collect(start *Node, sizeHint int) []Entry {
	entries := make([]Entry, 0, sizeHint)
	stack := []*Node{start}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.terminal {
			entries = append(entries, Entry{Word: node.word, Frequency: node.frequency})
		}
		for _, child := range node.children {
			stack = append(stack, child)
		}
	}
	return entries
}

func sortedKeys(m map[rune]*Node) []rune {
	if len(m) == 0 {
		return nil
	}
	keys := make([]rune, 0, len(m))
	for r := range m {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
