package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"photo-mapper/internal/database"
	"photo-mapper/internal/logging"
	"photo-mapper/internal/mediatypes"
	"photo-mapper/internal/metadata"
	"photo-mapper/internal/metrics"
)

const (
	// Hard cap on extraction workers regardless of CPU count.
	maxWorkers = 16

	// Files between periodic progress log lines.
	progressLogInterval = 500
)

// Config controls one scan run.
type Config struct {
	// Workers is the parallel worker count (0 = auto from CPU count).
	Workers int
	// Sequential disables the worker pool and processes files in order.
	Sequential bool
	// Extensions restricts the scan to an allow-list (nil = all supported).
	Extensions []string
	// OnProgress, if set, is invoked after every consumed file.
	OnProgress func(done, total int)
}

// Summary reports the aggregate outcome of a scan run.
type Summary struct {
	FoundOnDisk  int  // supported media files discovered under the roots
	Known        int  // paths already present in the store
	New          int  // files queued for extraction
	Processed    int  // records persisted
	NoMeta       int  // persisted records without embedded metadata
	Errors       int  // extraction or persistence failures
	SkippedRoots int  // invalid root directories
	Stopped      bool // run ended early through cancellation
}

// Scanner ingests new media files into the store. It is the sole consumer
// of extraction results and the sole writer to the database during a run.
type Scanner struct {
	db     *database.Database
	config Config
}

// New creates a Scanner writing into db.
func New(db *database.Database, config Config) *Scanner {
	return &Scanner{db: db, config: config}
}

// Scan enumerates all supported files under the given roots, skips paths the
// store already knows, extracts metadata from the remainder, and persists
// the records. Cancelling the context stops the run gracefully; everything
// buffered so far is still flushed and no error is returned.
func (s *Scanner) Scan(ctx context.Context, roots []string) (Summary, error) {
	start := time.Now()
	metrics.ScanRunsTotal.Inc()
	defer func() {
		metrics.ScanLastRunDuration.Set(time.Since(start).Seconds())
		metrics.ScanLastRunTimestamp.Set(float64(time.Now().Unix()))
	}()

	var sum Summary

	valid := s.validRoots(roots, &sum)
	if len(valid) == 0 {
		logging.Warn("No valid directories to scan")
		return sum, nil
	}
	logging.Info("Scanning directories: %s", strings.Join(valid, ", "))

	files := s.enumerate(valid)
	sum.FoundOnDisk = len(files)

	known, err := s.db.AllPaths()
	if err != nil {
		return sum, fmt.Errorf("failed to load known paths: %w", err)
	}
	sum.Known = len(known)

	work := make([]string, 0, len(files))
	for _, f := range files {
		if _, ok := known[f]; !ok {
			work = append(work, f)
		}
	}
	sum.New = len(work)

	logging.Info("Found %d media files on disk, %d records in the database, %d new",
		sum.FoundOnDisk, sum.Known, sum.New)

	if len(work) == 0 {
		logging.Info("No new media to add to the database")
		return sum, nil
	}

	if s.config.Sequential {
		s.runSequential(ctx, work, &sum)
	} else {
		s.runParallel(ctx, work, &sum)
	}

	// Partial progress survives cancellation.
	if err := s.db.Flush(); err != nil {
		return sum, fmt.Errorf("final flush failed: %w", err)
	}

	s.logSummary(&sum, time.Since(start))
	return sum, nil
}

// validRoots resolves roots to absolute paths and drops entries that do not
// exist or are not directories. Invalid roots are reported, not fatal.
func (s *Scanner) validRoots(roots []string, sum *Summary) []string {
	var valid []string
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			logging.Warn("Skipping %q: %v", root, err)
			sum.SkippedRoots++
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			logging.Warn("Skipping %q: not a valid directory", root)
			sum.SkippedRoots++
			continue
		}
		valid = append(valid, abs)
	}
	return valid
}

// enumerate walks every root and collects supported files, sorted for a
// deterministic processing order. Access errors skip the entry, never the
// walk.
func (s *Scanner) enumerate(roots []string) []string {
	allow := s.allowSet()

	var files []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logging.Warn("Error accessing path %s: %v", path, err)
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if allow[strings.ToLower(filepath.Ext(path))] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			logging.Warn("Walk of %s aborted: %v", root, err)
		}
	}

	sort.Strings(files)
	return files
}

func (s *Scanner) allowSet() map[string]bool {
	allow := make(map[string]bool)
	if len(s.config.Extensions) == 0 {
		for _, ext := range mediatypes.SupportedExtensions() {
			allow[ext] = true
		}
		return allow
	}
	for _, ext := range s.config.Extensions {
		if mediatypes.IsSupported(ext) {
			allow[ext] = true
		}
	}
	return allow
}

// result is one per-file extraction outcome, either a record or a failure
// reason. The orchestrator pattern-matches on it to update counters.
type result struct {
	path    string
	outcome metadata.Outcome
	err     error
}

// consume folds one result into the summary and hands records to the
// store's insert buffer. Only the orchestrator goroutine calls this.
func (s *Scanner) consume(res result, sum *Summary) {
	if res.err != nil {
		sum.Errors++
		metrics.ScanErrorsTotal.Inc()
		logging.Debug("Extraction error for %s: %v", res.path, res.err)
		return
	}

	if err := s.db.Insert(res.outcome.Record); err != nil {
		sum.Errors++
		metrics.ScanErrorsTotal.Inc()
		logging.Error("Failed to persist %s: %v", res.path, err)
		return
	}

	sum.Processed++
	metrics.ScanFilesProcessedTotal.Inc()
	if res.outcome.NoMeta {
		sum.NoMeta++
		metrics.ScanNoMetadataTotal.Inc()
	}
}

func (s *Scanner) reportProgress(sum *Summary, total int) {
	done := sum.Processed + sum.Errors
	if s.config.OnProgress != nil {
		s.config.OnProgress(done, total)
	}
	if done%progressLogInterval == 0 && done > 0 {
		logging.Info("Processed %d/%d new files...", done, total)
	}
}

// runSequential processes the work list one file at a time, checking for
// cancellation before each file.
func (s *Scanner) runSequential(ctx context.Context, files []string, sum *Summary) {
	logging.Info("Processing %d new files sequentially", len(files))
	metrics.ScanWorkers.Set(1)

	for _, path := range files {
		if ctx.Err() != nil {
			sum.Stopped = true
			logging.Info("Scan stopped by user")
			return
		}
		out, err := metadata.ExtractFile(path)
		s.consume(result{path: path, outcome: out, err: err}, sum)
		s.reportProgress(sum, len(files))
	}
}

func (s *Scanner) logSummary(sum *Summary, elapsed time.Duration) {
	logging.Info("--- Processing summary (%v) ---", elapsed.Round(time.Millisecond))
	logging.Info("New media files processed and saved: %d", sum.Processed)
	logging.Info("New files without embedded metadata (using modification time): %d", sum.NoMeta)
	logging.Info("New files with processing errors: %d", sum.Errors)
	if sum.Stopped {
		logging.Info("Scan was stopped before completion; partial progress has been saved")
	}
}
