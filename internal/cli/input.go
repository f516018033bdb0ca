// Package cli handles cmd line input for testing the engine interactively
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
)

// InputHandler processes user input from stdin. Bare input completes the
// typed prefix; slash commands reach the rest of the engine:
//
//	/best <prefix>     single most common word with the prefix
//	/lookup <word>     exact membership
//	/add <word> [n]    insert a word with an optional frequency
//	/top <k>           k most common words
//	/words             full alphabetical list
//	/stats             dictionary statistics
type InputHandler struct {
	completer       suggest.ICompleter
	log             *log.Logger
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	noFilter        bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		completer:       completer,
		log:             logger.New("cli"),
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
	}
}

// Start begins the interface loop. It continuously prompts for input,
// reads a line from stdin and hands it to handleInput. The loop ends when
// stdin does.
func (h *InputHandler) Start() error {
	h.log.Print("wordtrie CLI")
	reader := bufio.NewReader(os.Stdin)
	h.log.Print("type a prefix and press Enter for suggestions; /help lists commands (Ctrl+C to exit):")

	for {
		h.log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			h.handleCommand(line)
			continue
		}
		h.handlePrefix(line)
	}
}

// handlePrefix completes a typed prefix and prints the ranked results.
func (h *InputHandler) handlePrefix(prefix string) {
	if len(prefix) < h.minPrefixLength {
		h.log.Errorf("Prefix too short: %s", prefix)
		return
	}
	if len(prefix) > h.maxPrefixLength {
		h.log.Errorf("Prefix too long: %s", prefix)
		return
	}
	if !h.noFilter && !utils.IsValidInput(prefix) {
		h.log.Infof("No results for prefix: '%s'", prefix)
		return
	}

	start := time.Now()
	suggestions := h.completer.Complete(prefix, h.suggestLimit)
	elapsed := time.Since(start)
	h.log.Debugf("Took [ %v ] for prefix '%s'", elapsed, prefix)

	if len(suggestions) == 0 {
		h.log.Warnf("No suggestions found for prefix: '%s'", prefix)
		return
	}
	h.printSuggestions(prefix, suggestions)
}

// handleCommand dispatches one slash command.
func (h *InputHandler) handleCommand(line string) {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "/help":
		h.log.Print("/best <prefix> | /lookup <word> | /add <word> [n] | /top <k> | /words | /stats")
	case "/best":
		prefix := ""
		if len(args) > 0 {
			prefix = args[0]
		}
		word, found := h.completer.Best(prefix)
		if !found {
			h.log.Warnf("No word with prefix '%s'", prefix)
			return
		}
		h.log.Printf("%s", word)
	case "/lookup":
		if len(args) < 1 {
			h.log.Error("usage: /lookup <word>")
			return
		}
		h.log.Printf("%s: %v", args[0], h.completer.Lookup(args[0]))
	case "/add":
		if len(args) < 1 {
			h.log.Error("usage: /add <word> [n]")
			return
		}
		frequency := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				h.log.Errorf("Bad frequency %q", args[1])
				return
			}
			frequency = n
		}
		if err := h.completer.AddWord(args[0], frequency); err != nil {
			h.log.Errorf("Add failed: %v", err)
			return
		}
		h.log.Printf("added '%s'", args[0])
	case "/top":
		k := 10
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				h.log.Errorf("Bad k %q", args[0])
				return
			}
			k = n
		}
		h.printSuggestions("", h.completer.TopK(k))
	case "/words":
		words := h.completer.Words()
		for _, w := range words {
			h.log.Print(w)
		}
		h.log.Printf("%d words", len(words))
	case "/stats":
		for k, v := range h.completer.Stats() {
			h.log.Printf("%-16s %s", k, utils.FormatWithCommas(v))
		}
	default:
		h.log.Errorf("Unknown command %s, try /help", cmd)
	}
}

func (h *InputHandler) printSuggestions(prefix string, suggestions []suggest.Suggestion) {
	if prefix != "" {
		h.log.Printf("Found %d suggestions for prefix '%s':", len(suggestions), prefix)
	}
	for i, s := range suggestions {
		fmtFreq := utils.FormatWithCommas(s.Frequency)
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", s.Word)
		h.log.Printf("%2d. %-40s (freq: %8s)", i+1, clWord, fmtFreq)
	}
}
