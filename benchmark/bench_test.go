package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kdduha/plantdoc/internal/ui"
)

func TestAggregate_SkipsFailures(t *testing.T) {
	agg := aggregate([]BenchResult{
		{Format: "png", Duration: time.Second, Size: 1024},
		{Format: "png", Duration: 3 * time.Second, Size: 3072},
		{Format: "jpg", Err: errors.New("boom")},
	})

	if len(agg) != 1 {
		t.Fatalf("expected only png, got %v", agg)
	}
	if a := agg["png"]; a.Count != 2 || a.Total != 4*time.Second || a.TotalBytes != 4096 {
		t.Fatalf("png = %+v", a)
	}
}

func TestPrintMarkdown(t *testing.T) {
	var buf bytes.Buffer
	printMarkdown(&buf, []BenchResult{
		{Format: "png", Duration: time.Second, Size: 1024},
		{Format: "jpg", Duration: 2 * time.Second, Size: 2048},
		{Format: "gif", Err: errors.New("boom")},
	})
	out := buf.String()

	for _, want := range []string{
		"| jpg | 1 | 2s | 2s | 2 KB |",
		"| png | 1 | 1s | 1s | 1 KB |",
		"| **ALL** | 2 | 1.5s | 3s | 1.5 KB |",
		"1 of 3 images failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "| jpg") > strings.Index(out, "| png") {
		t.Error("formats are not sorted")
	}
}

func TestRunBench_WalksFormatDirs(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{"png/a.png", "png/b.png", "jpg/c.jpg", "bmp/skipped.bmp"} {
		path := filepath.Join(dir, p)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var seen []string
	results := runBench(context.Background(), dir, func(ctx context.Context, path string) (*ui.Controller, error) {
		seen = append(seen, filepath.Base(path))
		return nil, nil
	})

	if len(results) != 3 || len(seen) != 3 {
		t.Fatalf("results = %+v", results)
	}
	for _, r := range results {
		if r.Size != 3 {
			t.Errorf("%s size = %d", r.File, r.Size)
		}
	}
}
