// Command seams walks a corpus of plain-text books, detects sentence
// boundaries with a dialog-aware state machine, and writes a sibling
// auxiliary file of results for each one processed.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sjsteiner/seams/internal/config"
	"github.com/sjsteiner/seams/internal/logging"
	"github.com/sjsteiner/seams/internal/pipeline"
	"github.com/sjsteiner/seams/internal/restartlog"
	"github.com/sjsteiner/seams/internal/sentence"
	"github.com/sjsteiner/seams/internal/stats"
)

var (
	flagConcurrency int
	flagOverwriteAll bool
	flagOverwriteUseCached bool
	flagFailFast bool
	flagUseMmap bool
	flagNoProgress bool
	flagStatsOut string

	flagsSet = map[string]bool{}
)

var rootCmd = &cobra.Command{
	Use:          "seams <root>",
	Short:        "seams",
	Long:         "Detects dialog-aware sentence boundaries across a corpus of plain-text books.",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func Execute() error {
	flags := rootCmd.Flags()
	flags.IntVar(&flagConcurrency, "concurrency", runtime.NumCPU(), "number of files processed concurrently")
	flags.BoolVar(&flagOverwriteAll, "overwrite-all", false, "reprocess every file, ignoring the restart log")
	flags.BoolVar(&flagOverwriteUseCached, "overwrite-use-cached-locations", false, "reprocess every file, ignoring the restart log (same effect as --overwrite-all)")
	flags.BoolVar(&flagFailFast, "fail-fast", false, "stop at the first file error instead of continuing")
	flags.BoolVar(&flagUseMmap, "use-mmap", true, "memory-map source files instead of reading them into a buffer")
	flags.BoolVar(&flagNoProgress, "no-progress", false, "emit plain JSON log lines instead of a console-friendly format")
	flags.StringVar(&flagStatsOut, "stats-out", "run_stats.json", "path to write the aggregate run statistics")

	rootCmd.PreRun = func(cmd *cobra.Command, args []string) {
		cmd.Flags().Visit(func(f *pflag.Flag) {
			flagsSet[f.Name] = true
		})
	}

	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	root := args[0]

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", root)
	}

	fileDefaults, err := config.Load(root)
	if err != nil {
		return err
	}
	resolved := config.Resolve(config.Run{
		Root:                        root,
		Concurrency:                 flagConcurrency,
		OverwriteAll:                flagOverwriteAll,
		OverwriteUseCachedLocations: flagOverwriteUseCached,
		FailFast:                    flagFailFast,
		UseMmap:                     flagUseMmap,
		NoProgress:                  flagNoProgress,
		StatsOut:                    flagStatsOut,
	}, fileDefaults, flagsSet)

	logger := logging.New(resolved.NoProgress)

	det, err := sentence.NewDetector()
	if err != nil {
		return fmt.Errorf("building sentence detector: %w", err)
	}

	logPath := restartlog.Path(root)
	log, err := restartlog.Load(logPath)
	if err != nil {
		return fmt.Errorf("loading restart log: %w", err)
	}
	log.VerifyCompletedFiles()

	summary, runErr := pipeline.Run(pipeline.Options{
		Root:                        resolved.Root,
		Concurrency:                 resolved.Concurrency,
		OverwriteAll:                resolved.OverwriteAll,
		OverwriteUseCachedLocations: resolved.OverwriteUseCachedLocations,
		FailFast:                    resolved.FailFast,
		UseMmap:                     resolved.UseMmap,
	}, det, log, logger)

	if err := log.Save(time.Now()); err != nil {
		logger.Error().Err(err).Msg("failed to save restart log")
	}

	if err := stats.WriteSummary(resolved.StatsOut, summary); err != nil {
		logger.Error().Err(err).Msg("failed to write run summary")
	}

	if runErr != nil {
		return runErr
	}
	if summary.FilesFailed > 0 {
		os.Exit(1)
	}
	return nil
}

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
