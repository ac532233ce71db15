package metadata

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDMSToDegrees(t *testing.T) {
	tests := []struct {
		name string
		dms  [3]rational
		want float64
		ok   bool
	}{
		{
			name: "whole degrees",
			dms:  [3]rational{{40, 1}, {26, 1}, {46, 1}},
			want: 40 + 26.0/60 + 46.0/3600,
			ok:   true,
		},
		{
			name: "fractional seconds",
			dms:  [3]rational{{25, 1}, {7, 1}, {4199, 100}},
			want: 25 + 7.0/60 + 41.99/3600,
			ok:   true,
		},
		{
			name: "zero denominator degrees",
			dms:  [3]rational{{40, 0}, {26, 1}, {46, 1}},
			ok:   false,
		},
		{
			name: "zero denominator seconds",
			dms:  [3]rational{{40, 1}, {26, 1}, {46, 0}},
			ok:   false,
		},
		{
			name: "zero values",
			dms:  [3]rational{{0, 1}, {0, 1}, {0, 1}},
			want: 0,
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dmsToDegrees(tt.dms)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatShutter(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0.5, "1/2s"},
		{2.0, "2s"},
		{1.0, "1s"},
		{0.004, "1/250s"},
		{1.0 / 3.0, "1/3s"},
		{0, "0s"},
		{30, "30s"},
	}

	for _, tt := range tests {
		if got := formatShutter(tt.value); got != tt.want {
			t.Errorf("formatShutter(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFloatString(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{2, "2.0"},
		{1.8, "1.8"},
		{50, "50.0"},
		{4.5, "4.5"},
		{0, "0.0"},
	}

	for _, tt := range tests {
		if got := floatString(tt.value); got != tt.want {
			t.Errorf("floatString(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestExtractImageWithoutTags(t *testing.T) {
	// A .jpg that is not a valid JPEG: opening succeeds, EXIF decoding
	// fails, and the record falls back to the modification time.
	path := filepath.Join(t.TempDir(), "plain.jpg")
	if err := os.WriteFile(path, []byte("not a real jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2023, 6, 15, 10, 30, 0, 0, time.Local)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	out, err := ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}

	if !out.NoMeta {
		t.Error("expected NoMeta for tagless image")
	}
	if out.Record.DateTaken == nil {
		t.Fatal("DateTaken is nil, want mtime fallback")
	}
	if got, want := *out.Record.DateTaken, "2023:06:15 10:30:00"; got != want {
		t.Errorf("DateTaken = %q, want %q", got, want)
	}
	if out.Record.CameraModel != nil {
		t.Errorf("CameraModel = %v, want nil", *out.Record.CameraModel)
	}
	if out.Record.GPSLatitude != nil || out.Record.GPSLongitude != nil {
		t.Error("expected nil GPS pair")
	}
	if out.Record.HasMetadata() {
		t.Error("HasMetadata() = true for tagless record")
	}
}

func TestExtractVideo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, []byte("video bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2024, 1, 2, 20, 15, 45, 0, time.Local)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	out, err := ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}

	if out.NoMeta {
		t.Error("video records are classified, not NoMeta")
	}
	if out.Record.CameraModel == nil || *out.Record.CameraModel != VideoCameraModel {
		t.Errorf("CameraModel = %v, want %q", out.Record.CameraModel, VideoCameraModel)
	}
	if out.Record.DateTaken == nil || *out.Record.DateTaken != "2024:01:02 20:15:45" {
		t.Errorf("DateTaken = %v, want 2024:01:02 20:15:45", out.Record.DateTaken)
	}
	if out.Record.GPSLatitude != nil || out.Record.ISO != nil {
		t.Error("video records carry no EXIF fields")
	}
}

func TestExtractFileUnsupported(t *testing.T) {
	if _, err := ExtractFile("/tmp/readme.txt"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestExtractImageOpenFailure(t *testing.T) {
	if _, err := ExtractFile(filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExtractVideoStatFailure(t *testing.T) {
	if _, err := ExtractFile(filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Error("expected error for missing video")
	}
}
