// Package pipeline orchestrates discovery, detection and aux-file writing
// across a bounded worker pool, overlapping directory discovery with
// per-file processing the way the underlying tree walker overlaps
// directory reads with file visits: a producer goroutine feeds a channel,
// a pool of consumers drains it, and a mutex-guarded first-error latch
// implements --fail-fast.
package pipeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sjsteiner/seams/internal/auxwriter"
	"github.com/sjsteiner/seams/internal/discovery"
	"github.com/sjsteiner/seams/internal/reader"
	"github.com/sjsteiner/seams/internal/restartlog"
	"github.com/sjsteiner/seams/internal/sentence"
	"github.com/sjsteiner/seams/internal/stats"
)

// Options configures one pipeline run.
type Options struct {
	Root                        string
	Concurrency                 int
	OverwriteAll                bool
	OverwriteUseCachedLocations bool
	FailFast                    bool
	UseMmap                     bool
}

// FileResult is what one worker produces for one file.
type FileResult struct {
	Path          string
	Skipped       bool
	Err           error
	SentenceCount int
	Chars         int
	Lengths       []int
	Duration      time.Duration
}

// state is a mutex-guarded first-error latch shared by every worker,
// checked before starting new work so a --fail-fast run stops promptly
// instead of draining the whole corpus.
type state struct {
	lock sync.RWMutex
	err  error
}

func (s *state) terminated() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.err != nil
}

func (s *state) setTerminated(err error) {
	s.lock.Lock()
	if s.err == nil {
		s.err = err
	}
	s.lock.Unlock()
}

// Run walks Root, detects sentences in every matching file not already
// completed, writes each file's auxiliary file, updates the restart log,
// and returns an aggregate Summary. log is mutated in place and should be
// saved by the caller after Run returns (and periodically is not needed:
// a single save at the end is sufficient since a crash mid-run simply
// reprocesses whatever wasn't marked completed).
func Run(opts Options, det *sentence.Detector, log *restartlog.Log, logger zerolog.Logger) (stats.Summary, error) {
	discovered := make(chan discovery.Result, 4096)
	go func() {
		if err := discovery.Walk(opts.Root, discovery.Config{FailFast: opts.FailFast}, discovered); err != nil {
			logger.Error().Err(err).Msg("discovery failed")
		}
	}()

	results := make(chan FileResult, opts.Concurrency)
	st := &state{}

	var workers sync.WaitGroup
	workers.Add(opts.Concurrency)
	for i := 0; i < opts.Concurrency; i++ {
		go func() {
			defer workers.Done()
			for d := range discovered {
				if st.terminated() {
					continue
				}
				if d.Err != nil {
					if opts.FailFast {
						st.setTerminated(d.Err)
					}
					results <- FileResult{Path: d.Path, Err: d.Err}
					continue
				}
				r := processOne(opts, det, log, d.Path)
				if r.Err != nil && opts.FailFast {
					st.setTerminated(r.Err)
				}
				results <- r
			}
		}()
	}

	go func() {
		workers.Wait()
		close(results)
	}()

	summary := stats.Summary{RunStart: time.Now()}
	var perFileLengths [][]int

	for r := range results {
		entry := stats.FileStats{
			Path:              r.Path,
			SentencesDetected: r.SentenceCount,
			CharsProcessed:    r.Chars,
			ProcessingTimeMs:  r.Duration.Milliseconds(),
			CharsPerSec:       stats.CharsPerSecond(r.Chars, r.Duration.Milliseconds()),
		}
		switch {
		case r.Skipped:
			entry.Status = "skipped"
			summary.FilesSkipped++
		case r.Err != nil:
			entry.Status = "failed"
			entry.Error = r.Err.Error()
			summary.FilesFailed++
			logger.Warn().Err(r.Err).Str("path", r.Path).Msg("file processing failed")
		default:
			entry.Status = "success"
			summary.FilesProcessed++
			summary.TotalSentencesDetected += r.SentenceCount
			summary.TotalCharsProcessed += r.Chars
			if ls, ok := stats.CalculateLengthStats(r.Lengths); ok {
				entry.SentenceLength = &ls
				perFileLengths = append(perFileLengths, r.Lengths)
			}
			logger.Info().Str("path", r.Path).Int("sentences", r.SentenceCount).
				Int("chars", r.Chars).Int64("ms", r.Duration.Milliseconds()).Msg("file processed")
		}
		summary.TotalProcessingTimeMs += r.Duration.Milliseconds()
		summary.Files = append(summary.Files, entry)
	}

	if agg, ok := stats.Aggregate(perFileLengths); ok {
		summary.SentenceLengthStats = &agg
	}
	summary.OverallCharsPerSec = stats.CharsPerSecond(summary.TotalCharsProcessed, summary.TotalProcessingTimeMs)

	logger.Info().Int("files_processed", summary.FilesProcessed).
		Int("files_skipped", summary.FilesSkipped).
		Int("files_failed", summary.FilesFailed).
		Int("total_sentences", summary.TotalSentencesDetected).
		Msg("run complete")

	if st.terminated() {
		return summary, st.err
	}
	return summary, nil
}

func processOne(opts Options, det *sentence.Detector, log *restartlog.Log, path string) FileResult {
	if !restartlog.ShouldProcess(path, log, opts.OverwriteAll, opts.OverwriteUseCachedLocations) {
		return FileResult{Path: path, Skipped: true}
	}

	start := time.Now()

	f, err := reader.Open(path, opts.UseMmap)
	if err != nil {
		return FileResult{Path: path, Err: fmt.Errorf("opening %s: %w", path, err)}
	}
	defer f.Close()

	buf := f.Bytes()
	sentences, err := det.Detect(buf)
	if err != nil {
		return FileResult{Path: path, Err: fmt.Errorf("detecting sentences in %s: %w", path, err)}
	}

	if _, err := auxwriter.Write(path, buf, sentences); err != nil {
		return FileResult{Path: path, Err: fmt.Errorf("writing aux file for %s: %w", path, err)}
	}

	log.MarkCompleted(path)

	lengths := make([]int, len(sentences))
	for i, s := range sentences {
		lengths[i] = len(s.Normalized(buf))
	}

	return FileResult{
		Path:          path,
		SentenceCount: len(sentences),
		Chars:         len(buf),
		Lengths:       lengths,
		Duration:      time.Since(start),
	}
}
