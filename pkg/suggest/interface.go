// Package suggest wraps the core trie with the service level concerns:
// ranked retrieval with limits, re-applying the caller's capitalization to
// results, and a hot cache of recently served words for short prefixes.
package suggest

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Complete returns ranked suggestions for a prefix, capped at limit
	Complete(prefix string, limit int) []Suggestion

	// Best returns the single most common word with the prefix;
	// the bool is false when nothing matches
	Best(prefix string) (string, bool)

	// AddWord adds a word with its frequency
	AddWord(word string, frequency int) error

	// Lookup reports exact membership
	Lookup(word string) bool

	// Words returns every stored word in alphabetical order
	Words() []string

	// TopK returns the k most common words with their frequencies
	TopK(k int) []Suggestion

	// Len returns the number of distinct words loaded
	Len() int

	// Stats returns statistics about the loaded dictionary
	Stats() map[string]int
}
