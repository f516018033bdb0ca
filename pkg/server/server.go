package server

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the msgpack IPC for the wordtrie engine. The loader is
// optional; without one the dictionary commands answer 503.
type Server struct {
	completer suggest.ICompleter
	loader    *dictionary.Loader
	cfg       *config.Config
	dec       *msgpack.Decoder
	enc       *msgpack.Encoder
}

// NewServer creates a completion server using stdin/stdout for IPC
func NewServer(completer suggest.ICompleter, loader *dictionary.Loader, cfg *config.Config) *Server {
	return NewServerWith(completer, loader, cfg, os.Stdin, os.Stdout)
}

// NewServerWith creates a server on explicit streams
func NewServerWith(completer suggest.ICompleter, loader *dictionary.Loader, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		completer: completer,
		loader:    loader,
		cfg:       cfg,
		dec:       msgpack.NewDecoder(r),
		enc:       msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests. It returns nil when the client
// closes the stream.
func (s *Server) Start() error {
	log.Debug("Starting server")
	s.send(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.dec.Decode(&request); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches one decoded request
func (s *Server) handleRequest(request Request) {
	switch request.Cmd {
	case "complete":
		s.handleComplete(request)
	case "best":
		s.handleBest(request)
	case "lookup":
		s.send(LookupResponse{ID: request.ID, Found: s.completer.Lookup(request.Word)})
	case "insert":
		s.handleInsert(request)
	case "words":
		words := s.completer.Words()
		s.send(WordsResponse{ID: request.ID, Words: words, Count: len(words)})
	case "top":
		s.handleTop(request)
	case "count":
		s.send(CountResponse{ID: request.ID, Count: s.completer.Len(), Stats: s.completer.Stats()})
	case "more":
		s.handleMore(request)
	case "health":
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown command: %s", request.Cmd), 400)
	}
}

// handleComplete validates the prefix, queries the completer and sends the
// ranked suggestions with timing info.
func (s *Server) handleComplete(request Request) {
	prefix := request.Prefix
	if len(prefix) < s.cfg.Server.MinPrefix {
		s.sendError(request.ID, fmt.Sprintf("Prefix must be at least %d characters", s.cfg.Server.MinPrefix), 400)
		log.Debug("Prefix too short in request")
		return
	}
	if len(prefix) > s.cfg.Server.MaxPrefix {
		s.sendError(request.ID, fmt.Sprintf("Prefix exceeds maximum length of %d characters", s.cfg.Server.MaxPrefix), 400)
		log.Debug("Prefix too long in request")
		return
	}

	if s.cfg.Server.EnableFilter && !utils.IsValidInput(prefix) {
		// Filtered input is a normal empty result, not a failure
		s.send(CompletionResponse{ID: request.ID, Suggestions: []ResponseSuggestion{}})
		return
	}

	limit := request.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	start := time.Now()
	suggestions := s.completer.Complete(prefix, limit)
	elapsed := time.Since(start)

	s.send(CompletionResponse{
		ID:          request.ID,
		Suggestions: toResponseSuggestions(suggestions),
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// handleBest answers the single best completion. The empty prefix is
// allowed and yields the most common word overall; no match is found=false.
func (s *Server) handleBest(request Request) {
	if len(request.Prefix) > s.cfg.Server.MaxPrefix {
		s.sendError(request.ID, fmt.Sprintf("Prefix exceeds maximum length of %d characters", s.cfg.Server.MaxPrefix), 400)
		return
	}

	start := time.Now()
	word, found := s.completer.Best(request.Prefix)
	elapsed := time.Since(start)

	s.send(BestResponse{
		ID:        request.ID,
		Word:      word,
		Found:     found,
		TimeTaken: elapsed.Microseconds(),
	})
}

// handleInsert adds a word; InvalidInput from the engine becomes a 400.
func (s *Server) handleInsert(request Request) {
	frequency := request.Frequency
	if frequency == 0 {
		frequency = 1
	}
	if err := s.completer.AddWord(request.Word, frequency); err != nil {
		s.sendError(request.ID, err.Error(), 400)
		return
	}
	s.send(StatusResponse{ID: request.ID, Status: "ok"})
}

// handleTop returns the k most common words with frequencies.
func (s *Server) handleTop(request Request) {
	if request.K < 0 {
		s.sendError(request.ID, "k must be non-negative", 400)
		return
	}
	start := time.Now()
	suggestions := s.completer.TopK(request.K)
	elapsed := time.Since(start)

	s.send(CompletionResponse{
		ID:          request.ID,
		Suggestions: toResponseSuggestions(suggestions),
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// handleMore queues additional dictionary chunks for background loading.
// K is the number of extra words wanted; zero falls back to one chunk.
func (s *Server) handleMore(request Request) {
	if s.loader == nil {
		s.sendError(request.ID, "no dictionary loader attached", 503)
		return
	}
	words := request.K
	if words < 1 {
		words = s.cfg.Dict.ChunkSize
	}
	if err := s.loader.RequestMore(words); err != nil {
		s.sendError(request.ID, err.Error(), 500)
		return
	}
	s.send(StatusResponse{ID: request.ID, Status: "ok"})
}

// send marshals a response onto the stream.
func (s *Server) send(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends a structured error response
func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}

// toResponseSuggestions attaches 1-based ranks to already sorted results.
func toResponseSuggestions(suggestions []suggest.Suggestion) []ResponseSuggestion {
	result := make([]ResponseSuggestion, len(suggestions))
	for i, sg := range suggestions {
		result[i] = ResponseSuggestion{
			Word:      sg.Word,
			Frequency: sg.Frequency,
			Rank:      uint16(i + 1),
		}
	}
	return result
}
