// Package reader maps source text files into memory and validates them as
// UTF-8 before handoff to the sentence detector.
package reader

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/edsrzf/mmap-go"
)

// ErrNotFound, ErrPermissionDenied and ErrInvalidUTF8 classify the failure
// modes a caller needs to distinguish: a missing file is usually a race
// with another process, a permission error is operator-fixable, and an
// invalid encoding means the corpus itself is malformed.
var (
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidUTF8      = errors.New("file is not valid UTF-8")
)

// File is a memory-mapped source file. Close unmaps it; until then Bytes
// returns a slice backed directly by the OS page cache, never copied.
// When opened with useMmap false, mapping instead holds a plain buffer
// from a regular read, and Close is a no-op: there's nothing to unmap.
type File struct {
	mapping mmap.MMap
	mapped  bool
	path    string
}

// Open mmaps path read-only and validates its contents as UTF-8.
// UseMmap false falls back to a plain read, useful on filesystems where
// mmap is unsupported or undesirable (network mounts, very small files).
func Open(path string, useMmap bool) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, classifyOpenErr(path, err)
	}
	defer f.Close()

	if !useMmap {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, classifyOpenErr(path, err)
		}
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("%s: %w", path, ErrInvalidUTF8)
		}
		return &File{mapping: mmap.MMap(data), mapped: false, path: path}, nil
	}

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return &File{mapping: mmap.MMap{}, mapped: false, path: path}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	if !utf8.Valid(m) {
		m.Unmap()
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidUTF8)
	}
	return &File{mapping: m, mapped: true, path: path}, nil
}

// Bytes returns the file's contents. The slice is only valid until Close.
func (f *File) Bytes() []byte {
	return f.mapping
}

// Path returns the path the file was opened from.
func (f *File) Path() string {
	return f.path
}

// Close unmaps the file. Safe to call on a zero-length File or one that
// was never actually mmap'd (the --use-mmap=false fallback).
func (f *File) Close() error {
	if !f.mapped || len(f.mapping) == 0 {
		return nil
	}
	return f.mapping.Unmap()
}

func classifyOpenErr(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	case os.IsPermission(err):
		return fmt.Errorf("%s: %w", path, ErrPermissionDenied)
	default:
		return fmt.Errorf("opening %s: %w", path, err)
	}
}
