package workers

import (
	"runtime"
	"testing"
)

func TestCountMinimumOne(t *testing.T) {
	if got := Count(0.1, 0); got < 1 {
		t.Errorf("Count(0.1, 0) = %d, want >= 1", got)
	}
}

func TestCountLimit(t *testing.T) {
	if got := Count(2.0, 2); got > 2 {
		t.Errorf("Count(2.0, 2) = %d, want <= 2", got)
	}
}

func TestCountOverride(t *testing.T) {
	t.Setenv("SCAN_WORKERS", "7")

	if got := Count(1.0, 0); got != 7 {
		t.Errorf("Count with SCAN_WORKERS=7 = %d, want 7", got)
	}

	// Limit still applies to the override
	if got := Count(1.0, 3); got != 3 {
		t.Errorf("Count with SCAN_WORKERS=7 and limit 3 = %d, want 3", got)
	}
}

func TestCountInvalidOverride(t *testing.T) {
	t.Setenv("SCAN_WORKERS", "not-a-number")

	want := runtime.GOMAXPROCS(0)
	if got := ForCPU(0); got != want {
		t.Errorf("ForCPU(0) with invalid override = %d, want %d", got, want)
	}
}

func TestForIO(t *testing.T) {
	cpu := ForCPU(0)
	io := ForIO(0)
	if io < cpu {
		t.Errorf("ForIO(0) = %d, want >= ForCPU(0) = %d", io, cpu)
	}
}
