// Package dictionary feeds (word, frequency) pairs from word list files
// into a completion engine. Two formats are supported: plain text lists and
// lazily loaded binary chunks.
package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// AddFunc is the sink loaders feed words into.
type AddFunc func(word string, frequency int) error

// ReadWordList reads a plain text word list: one word per line, optionally
// followed by a count (default 1). Blank lines and '#' comments are
// skipped. Malformed lines are logged and skipped, they never abort the
// load. Returns the number of words added.
func ReadWordList(path string, add AddFunc) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer file.Close()

	added := 0
	lineNo := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		word := fields[0]
		count := 1
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n <= 0 {
				log.Warnf("Skipping line %d of %s: bad count %q", lineNo, path, fields[1])
				continue
			}
			count = n
		}

		if err := add(word, count); err != nil {
			log.Warnf("Skipping line %d of %s: %v", lineNo, path, err)
			continue
		}
		added++
	}
	if err := scanner.Err(); err != nil {
		return added, fmt.Errorf("failed to read word list %s: %w", path, err)
	}

	log.Debugf("Loaded %d words from %s", added, path)
	return added, nil
}
