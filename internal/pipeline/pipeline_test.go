package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sjsteiner/seams/internal/auxwriter"
	"github.com/sjsteiner/seams/internal/restartlog"
	"github.com/sjsteiner/seams/internal/sentence"
)

func TestRunProcessesCorpus(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "book1-0.txt"), "Hello there. General Kenobi.")
	mustWrite(t, filepath.Join(root, "book2-0.txt"), "A single sentence here.")
	mustWrite(t, filepath.Join(root, "ignored.txt"), "not part of the corpus")

	det, err := sentence.NewDetector()
	require.NoError(t, err)
	log, err := restartlog.Load(restartlog.Path(root))
	require.NoError(t, err)

	summary, err := Run(Options{Root: root, Concurrency: 2, UseMmap: false}, det, log, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, 2, summary.FilesProcessed)
	require.Equal(t, 0, summary.FilesFailed)

	_, err = os.Stat(auxwriter.AuxPath(filepath.Join(root, "book1-0.txt")))
	require.NoError(t, err, "expected aux file for book1")
}

func TestRunSkipsCompletedFiles(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "book-0.txt")
	mustWrite(t, path, "Already done before.")
	mustWrite(t, auxwriter.AuxPath(path), "0\tAlready done before.\t(1,1,1,21)\n")

	det, err := sentence.NewDetector()
	require.NoError(t, err)
	log, err := restartlog.Load(restartlog.Path(root))
	require.NoError(t, err)
	log.MarkCompleted(path)

	summary, err := Run(Options{Root: root, Concurrency: 1}, det, log, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, 1, summary.FilesSkipped)
	require.Equal(t, 0, summary.FilesProcessed)
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
