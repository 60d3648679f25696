package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/kdduha/plantdoc/internal/intake"
	"github.com/kdduha/plantdoc/internal/ui"
)

var formatFiles = []string{"jpg", "jpeg", "png", "gif"}

type diagnoseFunc func(ctx context.Context, path string) (*ui.Controller, error)

func runBench(ctx context.Context, dataDir string, diagnose diagnoseFunc) []BenchResult {
	var results []BenchResult
	for _, formatFile := range formatFiles {
		dataPath := filepath.Join(dataDir, formatFile)

		images, _ := os.ReadDir(dataPath)

		for _, image := range images {
			if image.IsDir() {
				continue
			}
			res := benchmarkImage(ctx, filepath.Join(dataPath, image.Name()), formatFile, diagnose)

			if res.Err != nil {
				log.Println("ERR:", res.File, res.Err)
			} else {
				log.Printf("OK %s %v", res.File, res.Duration)
			}

			results = append(results, res)
		}
	}
	return results
}

func benchmarkImage(ctx context.Context, filePath, format string, diagnose diagnoseFunc) BenchResult {
	res := BenchResult{File: filepath.Base(filePath), Format: format}
	if info, err := os.Stat(filePath); err == nil {
		res.Size = info.Size()
	}

	start := time.Now()
	ctl, err := diagnose(ctx, filePath)
	res.Duration = time.Since(start)
	res.Err = err

	if ctl != nil {
		if r := ctl.Snapshot().Result; r != nil {
			res.Disease = r.Disease
			res.Percent = r.Percent
		}
	}
	return res
}

func aggregate(results []BenchResult) map[string]Agg {
	m := map[string]Agg{}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		a := m[r.Format]
		a.Count++
		a.TotalBytes += r.Size
		a.Total += r.Duration
		m[r.Format] = a
	}
	return m
}

func printMarkdown(w io.Writer, results []BenchResult) {
	fmt.Fprint(w, "\n## Benchmark Results\n\n")
	fmt.Fprintln(w, "| Format | Requests | Avg Time | Total Time | Avg File Size |")
	fmt.Fprintln(w, "|--------|----------|----------|------------|---------------|")

	agg := aggregate(results)

	var (
		totalCount    int
		totalDuration time.Duration
		totalBytes    int64
	)

	for _, format := range slices.Sorted(maps.Keys(agg)) {
		a := agg[format]
		avg := a.Total / time.Duration(a.Count)
		avgSize := a.TotalBytes / int64(a.Count)
		fmt.Fprintf(w, "| %s | %d | %v | %v | %s |\n",
			format,
			a.Count,
			avg.Round(time.Millisecond),
			a.Total.Round(time.Millisecond),
			intake.FormatFileSize(avgSize),
		)
		totalCount += a.Count
		totalDuration += a.Total
		totalBytes += a.TotalBytes
	}

	if totalCount > 0 {
		mean := totalDuration / time.Duration(totalCount)
		avgSize := totalBytes / int64(totalCount)
		fmt.Fprintf(w, "| **ALL** | %d | %v | %v | %s |\n",
			totalCount,
			mean.Round(time.Millisecond),
			totalDuration.Round(time.Millisecond),
			intake.FormatFileSize(avgSize),
		)
	}

	if failed := len(results) - totalCount; failed > 0 {
		fmt.Fprintf(w, "\n%d of %d images failed\n", failed, len(results))
	}
}
