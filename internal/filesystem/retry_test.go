package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"
)

func testConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     2,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
	}
}

func TestStatWithRetrySuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.jpg")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := StatWithRetry(path, testConfig())
	if err != nil {
		t.Fatalf("StatWithRetry: %v", err)
	}
	if info.Size() != 1 {
		t.Errorf("Size = %d, want 1", info.Size())
	}
}

func TestStatWithRetryNotExist(t *testing.T) {
	_, err := StatWithRetry(filepath.Join(t.TempDir(), "missing.jpg"), testConfig())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestOpenWithRetry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.jpg")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := OpenWithRetry(path, testConfig())
	if err != nil {
		t.Fatalf("OpenWithRetry: %v", err)
	}
	defer f.Close()
}

func TestIsStaleError(t *testing.T) {
	if isStaleError(nil) {
		t.Error("isStaleError(nil) = true")
	}
	if isStaleError(os.ErrNotExist) {
		t.Error("isStaleError(ErrNotExist) = true")
	}
	if !isStaleError(syscall.ESTALE) {
		t.Error("isStaleError(ESTALE) = false")
	}
	wrapped := fmt.Errorf("stat: %w", &os.PathError{Op: "stat", Path: "x", Err: syscall.ESTALE})
	if !isStaleError(wrapped) {
		t.Error("isStaleError(wrapped ESTALE) = false")
	}
}

func TestWithRetryRetriesStale(t *testing.T) {
	attempts := 0
	err := withRetry("stat", "x", testConfig(), func() error {
		attempts++
		if attempts < 3 {
			return syscall.ESTALE
		}
		return nil
	})
	if err != nil {
		t.Fatalf("withRetry: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestWithRetryNoRetryOnOtherError(t *testing.T) {
	attempts := 0
	sentinel := errors.New("boom")
	err := withRetry("open", "x", testConfig(), func() error {
		attempts++
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}
