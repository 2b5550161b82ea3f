// Package stats computes per-file and aggregate sentence length
// distributions and the run summary written alongside a completed pass.
package stats

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"time"
)

// LengthStats is a distributional summary of normalized sentence character
// counts.
type LengthStats struct {
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`
	StdDev float64 `json:"stddev"`
}

// CalculateLengthStats computes LengthStats over a set of sentence
// character lengths. Returns false if lengths is empty (no stats to
// report, e.g. a file with no detected sentences).
func CalculateLengthStats(lengths []int) (LengthStats, bool) {
	if len(lengths) == 0 {
		return LengthStats{}, false
	}

	sorted := append([]int(nil), lengths...)
	sort.Ints(sorted)

	var sum float64
	for _, l := range sorted {
		sum += float64(l)
	}
	mean := sum / float64(len(sorted))

	var variance float64
	for _, l := range sorted {
		d := float64(l) - mean
		variance += d * d
	}
	variance /= float64(len(sorted))

	return LengthStats{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   mean,
		Median: percentile(sorted, 50),
		P25:    percentile(sorted, 25),
		P75:    percentile(sorted, 75),
		P90:    percentile(sorted, 90),
		StdDev: math.Sqrt(variance),
	}, true
}

// percentile uses linear interpolation between closest ranks, operating on
// an already-sorted slice.
func percentile(sorted []int, p float64) float64 {
	if len(sorted) == 1 {
		return float64(sorted[0])
	}
	rank := (p / 100) * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return float64(sorted[lo])
	}
	frac := rank - float64(lo)
	return float64(sorted[lo])*(1-frac) + float64(sorted[hi])*frac
}

// FileStats is the per-file record written into a run summary.
type FileStats struct {
	Path              string       `json:"path"`
	SentencesDetected int          `json:"sentences_detected"`
	CharsProcessed    int          `json:"chars_processed"`
	ProcessingTimeMs  int64        `json:"processing_time_ms"`
	CharsPerSec       float64      `json:"chars_per_sec"`
	Status            string       `json:"status"`
	Error             string       `json:"error,omitempty"`
	SentenceLength    *LengthStats `json:"sentence_length_stats,omitempty"`
}

// Summary is the aggregate run statistics document written to the
// --stats-out path.
type Summary struct {
	RunStart               time.Time    `json:"run_start"`
	FilesProcessed         int          `json:"files_processed"`
	FilesSkipped           int          `json:"files_skipped"`
	FilesFailed            int          `json:"files_failed"`
	TotalSentencesDetected int          `json:"total_sentences_detected"`
	TotalCharsProcessed    int          `json:"total_chars_processed"`
	TotalProcessingTimeMs  int64        `json:"total_processing_time_ms"`
	OverallCharsPerSec     float64      `json:"overall_chars_per_sec"`
	SentenceLengthStats    *LengthStats `json:"sentence_length_stats,omitempty"`
	Files                  []FileStats  `json:"file_stats"`
}

// CharsPerSecond computes a chars-per-second rate, guarding the
// zero-duration case (e.g. an empty file processed in under a
// millisecond) rather than dividing by zero.
func CharsPerSecond(chars int, ms int64) float64 {
	if ms <= 0 {
		return 0
	}
	return float64(chars) / (float64(ms) / 1000.0)
}

// Aggregate folds a set of file-level sentence lengths into one overall
// LengthStats, computed over the concatenation of all files' lengths
// rather than an average of per-file stats (so it weights by sentence,
// not by file).
func Aggregate(perFileLengths [][]int) (LengthStats, bool) {
	var all []int
	for _, fl := range perFileLengths {
		all = append(all, fl...)
	}
	return CalculateLengthStats(all)
}

// WriteSummary marshals summary as indented JSON to path.
func WriteSummary(path string, summary Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run summary %s: %w", path, err)
	}
	return nil
}
