package trie

// Node is a single character position in the tree. Each child edge is one
// rune; a terminal node marks the end of a stored word and caches the full
// word so retrieval never has to rebuild it from the path.
type Node struct {
	children  map[rune]*Node
	terminal  bool
	frequency int
	word      string
}

// Entry pairs a stored word with its insertion count.
type Entry struct {
	Word      string
	Frequency int
}

func (n *Node) child(r rune) *Node {
	return n.children[r]
}

// ensureChild returns the child for r, creating it on first use.
// The children map itself is allocated lazily; leaf nodes carry no map.
func (n *Node) ensureChild(r rune) *Node {
	if c := n.children[r]; c != nil {
		return c
	}
	if n.children == nil {
		n.children = make(map[rune]*Node)
	}
	c := &Node{}
	n.children[r] = c
	return c
}

// better reports whether n should outrank current when picking the best
// completion: higher frequency first, then the shorter word, then
// lexicographic order. current may be nil.
func (n *Node) better(current *Node) bool {
	if current == nil {
		return true
	}
	if n.frequency != current.frequency {
		return n.frequency > current.frequency
	}
	if len(n.word) != len(current.word) {
		return len(n.word) < len(current.word)
	}
	return n.word < current.word
}
