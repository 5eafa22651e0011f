// Package pkg provides utilities shared by the morph commands.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// FileSpill is an append-only sequence of items of type T kept on disk, so
// long mutation runs do not hold every report in memory.
type FileSpill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Get(index uint64) (T, error)
	Range(f func(index uint64, item T) error) error
	Close() error
	// Remove closes the spill and deletes its backing file.
	Remove() error
}

// DefaultSpillDir is the directory NewFileSpill creates its files in.
var DefaultSpillDir = filepath.Join(os.TempDir(), "morph-spill")

var errStopDecoding = errors.New("stop decoding")

type gobSpill[T any] struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	encoder *gob.Encoder
	length  uint64
}

// NewFileSpill creates a FileSpill in DefaultSpillDir.
func NewFileSpill[T any]() (FileSpill[T], error) {
	return NewFileSpillIn[T](DefaultSpillDir)
}

// NewFileSpillIn creates a FileSpill backed by a new gob file in dir.
func NewFileSpillIn[T any](dir string) (FileSpill[T], error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		slog.Error("failed to create spill directory", "path", dir, "error", err)
		return nil, fmt.Errorf("create spill directory: %w", err)
	}

	file, err := os.CreateTemp(dir, "spill-*.gob")
	if err != nil {
		slog.Error("failed to create spill file", "path", dir, "error", err)
		return nil, fmt.Errorf("create spill file: %w", err)
	}

	slog.Debug("created filespill", "path", file.Name())

	return &gobSpill[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// Path implements FileSpill.
func (s *gobSpill[T]) Path() string {
	return s.path
}

// Len implements FileSpill.
func (s *gobSpill[T]) Len() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.length
}

// Append implements FileSpill.
func (s *gobSpill[T]) Append(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return fmt.Errorf("append to closed spill %s", s.path)
	}

	if err := s.encoder.Encode(item); err != nil {
		slog.Error("failed to encode item", "path", s.path, "index", s.length, "error", err)
		return fmt.Errorf("encode item %d: %w", s.length, err)
	}

	s.length++

	return nil
}

// AppendBatch implements FileSpill.
func (s *gobSpill[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := s.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Get implements FileSpill. It decodes from the start of the file.
func (s *gobSpill[T]) Get(index uint64) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found T

	if index >= s.length {
		return found, fmt.Errorf("index %d out of bounds (length %d)", index, s.length)
	}

	err := s.decode(index+1, func(i uint64, item T) error {
		if i == index {
			found = item
			return errStopDecoding
		}

		return nil
	})
	if err != nil && !errors.Is(err, errStopDecoding) {
		var zero T
		return zero, err
	}

	return found, nil
}

// Range implements FileSpill. Items are visited in append order and the
// first error returned by fn stops the iteration.
func (s *gobSpill[T]) Range(fn func(index uint64, item T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.decode(s.length, fn)
}

// decode reads the first n items of the file. Callers hold s.mu.
func (s *gobSpill[T]) decode(n uint64, fn func(index uint64, item T) error) error {
	file, err := os.Open(s.path)
	if err != nil {
		slog.Error("failed to open spill", "path", s.path, "error", err)
		return fmt.Errorf("open spill: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close spill reader", "path", s.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := range n {
		// gob leaves zero-valued fields untouched, so decode into a fresh value.
		var item T

		if err := decoder.Decode(&item); err != nil {
			slog.Error("failed to decode item", "path", s.path, "index", i, "error", err)
			return fmt.Errorf("decode item %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

// Close implements FileSpill. Items stay readable after Close.
func (s *gobSpill[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}

	if err := s.file.Close(); err != nil {
		slog.Error("failed to close spill", "path", s.path, "error", err)
		return err
	}

	s.file = nil
	slog.Debug("closed filespill", "path", s.path, "length", s.length)

	return nil
}

// Remove implements FileSpill.
func (s *gobSpill[T]) Remove() error {
	if err := s.Close(); err != nil {
		return err
	}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		slog.Error("failed to remove spill", "path", s.path, "error", err)
		return fmt.Errorf("remove spill: %w", err)
	}

	return nil
}
