// Package auxwriter writes the sibling auxiliary file of detected
// sentences next to each processed source file.
package auxwriter

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sjsteiner/seams/internal/sentence"
)

// AuxPath returns the auxiliary file path for a source file: the source's
// stem with "_seams.txt" appended in place of its original extension.
func AuxPath(sourcePath string) string {
	ext := sourceExt(sourcePath)
	stem := strings.TrimSuffix(sourcePath, ext)
	return stem + "_seams.txt"
}

func sourceExt(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i:]
		}
		if path[i] == '/' {
			break
		}
	}
	return ""
}

// Write truncates (or creates) the auxiliary file at AuxPath(sourcePath)
// and writes one record per sentence, formatted as
// "<index>\t<normalized text>\t(<startLine>,<startCol>,<endLine>,<endCol>)".
// Tabs and newlines inside the normalized text are replaced with a single
// space, since Normalize already collapses whitespace runs and should
// never produce either, but the substitution keeps the TSV-like format
// from silently corrupting if that invariant is ever broken upstream.
func Write(sourcePath string, buf []byte, sentences []sentence.Sentence) (string, error) {
	path := AuxPath(sourcePath)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating aux file %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, s := range sentences {
		text := sanitize(s.Normalized(buf))
		line := strconv.Itoa(s.Index) + "\t" + text + "\t(" +
			strconv.Itoa(s.StartLine) + "," + strconv.Itoa(s.StartCol) + "," +
			strconv.Itoa(s.EndLine) + "," + strconv.Itoa(s.EndCol) + ")\n"
		if _, err := w.WriteString(line); err != nil {
			return "", fmt.Errorf("writing aux file %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("flushing aux file %s: %w", path, err)
	}
	return path, nil
}

func sanitize(text string) string {
	r := strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")
	return r.Replace(text)
}
