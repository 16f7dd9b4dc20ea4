package main

import (
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ImQQiaoO/DES-Lab/cripta"
)

var printer = message.NewPrinter(language.English)

type fileReport struct {
	input     string
	output    string
	direction cripta.Direction
	workers   int
	size      int64
	elapsed   time.Duration
}

func newFileReport(input, output string, dir cripta.Direction, workers int, size int64, elapsed time.Duration) fileReport {
	return fileReport{
		input:     input,
		output:    output,
		direction: dir,
		workers:   workers,
		size:      size,
		elapsed:   elapsed,
	}
}

func (r fileReport) print(w io.Writer) {
	printer.Fprintf(w, "%s -> %s\n", r.input, r.output)
	printer.Fprintf(w, "  operation: %s\n", r.direction)
	printer.Fprintf(w, "  workers:   %d\n", r.workers)
	printer.Fprintf(w, "  size:      %d bytes\n", r.size)
	printer.Fprintf(w, "  elapsed:   %v\n", r.elapsed.Round(time.Microsecond))
}

type benchResult struct {
	workers int
	elapsed time.Duration
}

// throughput returns MiB per second, 0 for a zero duration.
func throughput(size int64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(size) / (1 << 20) / elapsed.Seconds()
}

func printBench(w io.Writer, size int64, results []benchResult) {
	printer.Fprintf(w, "encrypted %d bytes\n", size)
	for _, r := range results {
		printer.Fprintf(w, "  %3d workers: %12v  %8.2f MiB/s\n",
			r.workers, r.elapsed.Round(time.Microsecond), throughput(size, r.elapsed))
	}
	if len(results) > 1 && results[len(results)-1].elapsed > 0 {
		printer.Fprintf(w, "  speedup: %.2fx\n",
			float64(results[0].elapsed)/float64(results[len(results)-1].elapsed))
	}
}
