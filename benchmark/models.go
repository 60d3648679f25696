package main

import "time"

type BenchResult struct {
	File     string
	Format   string
	Duration time.Duration
	Disease  string
	Percent  int
	Err      error
	Size     int64
}

type Agg struct {
	Count      int
	Total      time.Duration
	TotalBytes int64
}
