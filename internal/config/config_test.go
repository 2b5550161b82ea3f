package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileIsZeroValue(t *testing.T) {
	got, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if got != (FileDefaults{}) {
		t.Fatalf("got %+v, want zero value", got)
	}
}

func TestLoadParsesFile(t *testing.T) {
	root := t.TempDir()
	content := "concurrency: 8\nfail_fast: true\nstats_out: run_stats.json\n"
	if err := os.WriteFile(filepath.Join(root, ".seams.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	want := FileDefaults{Concurrency: 8, FailFast: true, StatsOut: "run_stats.json"}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	flags := Run{Concurrency: 4, FailFast: false, StatsOut: "explicit.json"}
	file := FileDefaults{Concurrency: 8, FailFast: true, StatsOut: "from-file.json"}
	flagsSet := map[string]bool{"concurrency": true, "stats-out": true}

	got := Resolve(flags, file, flagsSet)
	if got.Concurrency != 4 {
		t.Fatalf("expected explicit flag to win, got %d", got.Concurrency)
	}
	if got.StatsOut != "explicit.json" {
		t.Fatalf("expected explicit flag to win, got %q", got.StatsOut)
	}
	if got.FailFast != true {
		t.Fatalf("expected unset flag to fall back to file default, got %v", got.FailFast)
	}
}
