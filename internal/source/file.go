package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dbsmedya/goschema/internal/document"
)

// maxLineBytes caps the size of one newline-delimited document.
const maxLineBytes = 16 * 1024 * 1024

// FileSource yields documents from a newline-delimited JSON file, one document
// per line. Sampling takes the first sampleSize documents; offline files carry
// no ordering the caller could bias, so a prefix is as good as a random draw.
type FileSource struct {
	file    *os.File
	scanner *bufio.Scanner
	limit   int
	yielded int
}

// NewFile opens a newline-delimited JSON file. A sampleSize of zero or less
// reads the whole file.
func NewFile(path string, sampleSize int) (*FileSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	return &FileSource{
		file:    file,
		scanner: scanner,
		limit:   sampleSize,
	}, nil
}

// Next returns the next document, or io.EOF at the sample limit or end of file.
// Blank lines are skipped.
func (s *FileSource) Next(ctx context.Context) (*document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.limit > 0 && s.yielded >= s.limit {
		return nil, io.EOF
	}

	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}
		doc, err := FromExtJSON([]byte(line))
		if err != nil {
			// Count the malformed line against the sample so a bad document
			// is reported as a per-document failure, not silently skipped.
			s.yielded++
			return nil, err
		}
		s.yielded++
		return doc, nil
	}

	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", s.file.Name(), err)
	}
	return nil, io.EOF
}

// Close closes the underlying file.
func (s *FileSource) Close() error {
	return s.file.Close()
}
