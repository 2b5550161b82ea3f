package auxwriter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sjsteiner/seams/internal/sentence"
)

func TestAuxPath(t *testing.T) {
	got := AuxPath("/corpus/book-0.txt")
	want := "/corpus/book-0_seams.txt"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteProducesExpectedRecords(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "book-0.txt")
	buf := []byte("Hello there. General Kenobi.")

	d, err := sentence.NewDetector()
	if err != nil {
		t.Fatal(err)
	}
	sents, err := d.Detect(buf)
	if err != nil {
		t.Fatal(err)
	}

	path, err := Write(source, buf, sents)
	if err != nil {
		t.Fatal(err)
	}
	if path != AuxPath(source) {
		t.Fatalf("got path %q, want %q", path, AuxPath(source))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != len(sents) {
		t.Fatalf("got %d lines, want %d", len(lines), len(sents))
	}
	for i, line := range lines {
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			t.Fatalf("line %d: got %d fields, want 3: %q", i, len(fields), line)
		}
		if fields[0] != itoa(i) {
			t.Fatalf("line %d: index field %q, want %q", i, fields[0], itoa(i))
		}
		if !strings.HasPrefix(fields[2], "(") || !strings.HasSuffix(fields[2], ")") {
			t.Fatalf("line %d: position field %q not parenthesized", i, fields[2])
		}
	}
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := ""
	for i > 0 {
		digits = string(rune('0'+i%10)) + digits
		i /= 10
	}
	return digits
}
