package filesystem

import (
	"errors"
	"os"
	"syscall"
	"time"

	"photo-mapper/internal/logging"
	"photo-mapper/internal/metrics"
)

// RetryConfig configures retry behavior for filesystem operations.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryConfig returns sensible defaults for NFS retry behavior.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: 50 * time.Millisecond,
		MaxBackoff:     500 * time.Millisecond,
	}
}

// isStaleError checks if an error is an NFS stale file handle error.
func isStaleError(err error) bool {
	if err == nil {
		return false
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.ESTALE
	}

	return false
}

// StatWithRetry performs os.Stat with retry logic for NFS stale file handle
// errors. Photo libraries frequently live on NAS mounts; a transient ESTALE
// must not be mistaken for a deleted file during cleanup.
func StatWithRetry(path string, config RetryConfig) (os.FileInfo, error) {
	var info os.FileInfo
	err := withRetry("stat", path, config, func() error {
		var statErr error
		info, statErr = os.Stat(path)
		return statErr
	})
	return info, err
}

// OpenWithRetry performs os.Open with retry logic for NFS stale file handle
// errors.
func OpenWithRetry(path string, config RetryConfig) (*os.File, error) {
	var file *os.File
	err := withRetry("open", path, config, func() error {
		var openErr error
		file, openErr = os.Open(path)
		return openErr
	})
	return file, err
}

// withRetry runs op, retrying with exponential backoff while the failure is
// an NFS stale file handle. Any other error is returned immediately.
func withRetry(name, path string, config RetryConfig, op func() error) error {
	var lastErr error
	backoff := config.InitialBackoff

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		err := op()
		if err == nil {
			if attempt > 0 {
				logging.Info("%s succeeded on retry %d for %s", name, attempt, path)
				metrics.FilesystemRetrySuccess.WithLabelValues(name).Inc()
			}
			return nil
		}

		lastErr = err

		if !isStaleError(err) {
			return err
		}

		metrics.FilesystemStaleErrors.WithLabelValues(name).Inc()

		if attempt < config.MaxRetries {
			metrics.FilesystemRetryAttempts.WithLabelValues(name).Inc()
			logging.Debug("%s stale file handle for %s, retrying in %v (attempt %d/%d)",
				name, path, backoff, attempt+1, config.MaxRetries)
			time.Sleep(backoff)

			backoff *= 2
			if backoff > config.MaxBackoff {
				backoff = config.MaxBackoff
			}
		}
	}

	logging.Warn("%s failed after %d retries for %s: %v", name, config.MaxRetries, path, lastErr)
	metrics.FilesystemRetryFailures.WithLabelValues(name).Inc()
	return lastErr
}
