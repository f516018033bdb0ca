package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Loader lazily loads binary dictionary chunks (dict_0001.bin, ...) from a
// directory and feeds every record into its sink. Chunks are queued and
// loaded by a background goroutine so startup stays fast with large
// dictionaries.
type Loader struct {
	dirPath      string
	chunkSize    int
	maxWords     int
	add          AddFunc
	loadedChunks map[int]bool
	totalWords   int
	maxFrequency int
	mu           sync.RWMutex
	loadingCh    chan int
	done         chan struct{}
	errorCount   map[int]int
	maxRetries   int
}

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ID        int
	Filename  string
	WordCount int
}

// LoaderStats provides statistics about the loading process
type LoaderStats struct {
	TotalWords      int
	LoadedChunks    int
	AvailableChunks int
	MaxFrequency    int
	IsLoading       bool
}

// NewLoader creates a lazy chunk loader feeding add.
func NewLoader(dirPath string, chunkSize, maxWords int, add AddFunc) *Loader {
	return &Loader{
		dirPath:      dirPath,
		chunkSize:    chunkSize,
		maxWords:     maxWords,
		add:          add,
		loadedChunks: make(map[int]bool),
		loadingCh:    make(chan int, 10),
		done:         make(chan struct{}),
		errorCount:   make(map[int]int),
		maxRetries:   3,
	}
}

// GetAvailable scans the directory for chunk files, sorted by ID.
func (l *Loader) GetAvailable() ([]ChunkInfo, error) {
	pattern := filepath.Join(l.dirPath, "dict_*.bin")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		basename := filepath.Base(file)
		idStr := strings.TrimSuffix(strings.TrimPrefix(basename, "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		wordCount, err := readChunkHeader(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
			wordCount = 0
		}
		chunks = append(chunks, ChunkInfo{
			ID:        chunkID,
			Filename:  file,
			WordCount: wordCount,
		})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ID < chunks[j].ID
	})
	return chunks, nil
}

// readChunkHeader reads the word count from a chunk file's header
func readChunkHeader(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

// Start queues the initial chunks and spawns the background loader.
// Chunks are queued up to maxWords words; 0 means everything available.
func (l *Loader) Start() error {
	chunks, err := l.GetAvailable()
	if err != nil {
		return fmt.Errorf("failed to get available chunks: %w", err)
	}
	if len(chunks) == 0 {
		return fmt.Errorf("no chunk files found in %s", l.dirPath)
	}
	log.Debugf("Found %d chunk files", len(chunks))

	go l.backgroundLoader()

	wordsToLoad := l.maxWords
	if wordsToLoad == 0 {
		for _, chunk := range chunks {
			wordsToLoad += chunk.WordCount
		}
	}

	queuedWords := 0
	for _, chunk := range chunks {
		if queuedWords >= wordsToLoad {
			break
		}
		select {
		case l.loadingCh <- chunk.ID:
			log.Debugf("Queued chunk %d for loading", chunk.ID)
		case <-time.After(100 * time.Millisecond):
			log.Warnf("Loading queue full, chunk %d will be loaded later", chunk.ID)
		}
		queuedWords += chunk.WordCount
	}
	return nil
}

// backgroundLoader drains the queue, retrying failed chunks with backoff.
func (l *Loader) backgroundLoader() {
	for {
		select {
		case chunkID := <-l.loadingCh:
			if err := l.loadChunk(chunkID); err != nil {
				log.Errorf("Failed to load chunk %d: %v", chunkID, err)

				l.mu.Lock()
				l.errorCount[chunkID]++
				errorCount := l.errorCount[chunkID]
				l.mu.Unlock()

				if errorCount < l.maxRetries {
					log.Debugf("Retrying chunk %d (attempt %d/%d)", chunkID, errorCount+1, l.maxRetries)
					go func(id, backoff int) {
						time.Sleep(time.Duration(backoff) * time.Second)
						select {
						case l.loadingCh <- id:
						case <-l.done:
						}
					}(chunkID, errorCount)
				} else {
					log.Errorf("Chunk %d failed %d times, giving up", chunkID, l.maxRetries)
				}
			} else {
				log.Debugf("Successfully loaded chunk %d", chunkID)
			}
		case <-l.done:
			return
		}
	}
}

// loadChunk reads one chunk file and feeds its records into the sink.
// Record layout after the int32 LE count header: uint16 word length, word
// bytes, uint16 rank. Rank 1 is the most frequent word, so it converts to
// the highest score.
func (l *Loader) loadChunk(chunkID int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loadedChunks[chunkID] {
		return nil
	}

	filename := filepath.Join(l.dirPath, fmt.Sprintf("dict_%04d.bin", chunkID))
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	var totalEntries int32
	if err := binary.Read(reader, binary.LittleEndian, &totalEntries); err != nil {
		return fmt.Errorf("failed to read chunk header: %w", err)
	}
	log.Debugf("Loading chunk %d with %d words", chunkID, totalEntries)

	count := 0
	for count < int(totalEntries) {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint16
		if err := binary.Read(reader, binary.LittleEndian, &rank); err != nil {
			return fmt.Errorf("failed to read rank: %w", err)
		}
		score := 65536 - int(rank)

		if err := l.add(string(wordBytes), score); err != nil {
			log.Warnf("Skipping record %d of chunk %d: %v", count, chunkID, err)
			count++
			continue
		}

		l.totalWords++
		if score > l.maxFrequency {
			l.maxFrequency = score
		}
		count++
	}

	l.loadedChunks[chunkID] = true
	log.Debugf("Chunk %d loaded: %d words", chunkID, count)
	return nil
}

// RequestMore queues additional unloaded chunks covering at least
// additionalWords more words.
func (l *Loader) RequestMore(additionalWords int) error {
	chunks, err := l.GetAvailable()
	if err != nil {
		return err
	}

	queued := 0
	for _, chunk := range chunks {
		l.mu.RLock()
		alreadyLoaded := l.loadedChunks[chunk.ID]
		l.mu.RUnlock()
		if alreadyLoaded {
			continue
		}

		select {
		case l.loadingCh <- chunk.ID:
			log.Debugf("Queued additional chunk %d for loading", chunk.ID)
			queued += chunk.WordCount
			if queued >= additionalWords {
				return nil
			}
		default:
			log.Warnf("Loading queue full, cannot queue chunk %d", chunk.ID)
		}
	}
	return nil
}

// LoadChunk synchronously loads a specific chunk by ID.
func (l *Loader) LoadChunk(chunkID int) error {
	l.mu.RLock()
	alreadyLoaded := l.loadedChunks[chunkID]
	l.mu.RUnlock()
	if alreadyLoaded {
		return nil
	}
	return l.loadChunk(chunkID)
}

// GetStats returns current loading statistics.
func (l *Loader) GetStats() LoaderStats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	chunks, _ := l.GetAvailable()
	return LoaderStats{
		TotalWords:      l.totalWords,
		LoadedChunks:    len(l.loadedChunks),
		AvailableChunks: len(chunks),
		MaxFrequency:    l.maxFrequency,
		IsLoading:       len(l.loadingCh) > 0,
	}
}

// Stop stops the background loading process.
func (l *Loader) Stop() {
	close(l.done)
}
