package dictionary

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the supported dictionary file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatChunk              // Chunked binary format (dict_NNNN.bin)
	FormatText               // Plain text format
)

// sanity bound on the chunk header word count
const maxChunkWordCount = 1000000

// ValidateChunkFile checks that a file is a plausible binary chunk: right
// extension, readable header, non-negative and sane word count.
func ValidateChunkFile(filename string) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.Size() < 4 {
		return fmt.Errorf("file %s is too small (%d bytes) for a chunk header", filename, fileInfo.Size())
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".bin" {
		return fmt.Errorf("file %s has invalid extension %s for a binary chunk", filename, ext)
	}

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if wordCount < 0 {
		return fmt.Errorf("invalid word count in %s: %d (negative)", filename, wordCount)
	}
	if wordCount > maxChunkWordCount {
		return fmt.Errorf("suspicious word count in %s: %d (too large)", filename, wordCount)
	}

	log.Debugf("Binary chunk %s validated: %d words", filename, wordCount)
	return nil
}

// ValidateTextFile checks that a text word list is readable.
func ValidateTextFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	buffer := make([]byte, 1024)
	if _, err := file.Read(buffer); err != nil {
		return fmt.Errorf("failed to read from text file %s: %w", filename, err)
	}
	return nil
}

// DetectFormat classifies a dictionary file by name and content.
func DetectFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	basename := strings.ToLower(filepath.Base(filename))

	if strings.HasPrefix(basename, "dict_") && ext == ".bin" {
		if err := ValidateChunkFile(filename); err == nil {
			return FormatChunk, nil
		}
	}
	if ext == ".txt" {
		if err := ValidateTextFile(filename); err == nil {
			return FormatText, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}
