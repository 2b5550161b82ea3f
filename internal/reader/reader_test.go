package reader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenReadsContentWithoutMmap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book-0.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Open(path, false)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if string(f.Bytes()) != "hello world" {
		t.Fatalf("got %q", f.Bytes())
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing-0.txt"), false)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestOpenRejectsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad-0.txt")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0xfd}, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path, false)
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("got %v, want ErrInvalidUTF8", err)
	}
}

func TestCloseWithoutMmapDoesNotError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book-0.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Open(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close on a non-mmap'd file returned %v, want nil", err)
	}
}

func TestOpenEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty-0.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Open(path, true)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if len(f.Bytes()) != 0 {
		t.Fatalf("expected empty contents, got %d bytes", len(f.Bytes()))
	}
}
