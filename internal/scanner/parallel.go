package scanner

import (
	"context"
	"sync"

	"photo-mapper/internal/logging"
	"photo-mapper/internal/metadata"
	"photo-mapper/internal/metrics"
	"photo-mapper/internal/workers"
)

// runParallel fans the work list out to a pool of extraction workers and
// folds the results back in on this goroutine, which keeps the database
// insert path single-writer. Cancellation drains in-flight work without
// consuming it.
func (s *Scanner) runParallel(ctx context.Context, files []string, sum *Summary) {
	numWorkers := s.config.Workers
	if numWorkers <= 0 {
		numWorkers = workers.ForIO(maxWorkers)
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}
	metrics.ScanWorkers.Set(float64(numWorkers))
	logging.Info("Processing %d new files with %d workers", len(files), numWorkers)

	jobs := make(chan string)
	results := make(chan result, numWorkers)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				out, err := metadata.ExtractFile(path)
				select {
				case results <- result{path: path, outcome: out, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range files {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		if ctx.Err() != nil {
			sum.Stopped = true
			logging.Info("Scan stopped by user, waiting for workers to finish...")
			break
		}
		s.consume(res, sum)
		s.reportProgress(sum, len(files))
	}

	if sum.Stopped {
		// Unblock any worker still sending so the pool can exit.
		for range results {
		}
	}
}
