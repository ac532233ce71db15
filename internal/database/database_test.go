package database

import (
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T, bufferSize int) *Database {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"), bufferSize)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return db
}

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }
func i64Ptr(v int64) *int64     { return &v }

func testRecord(path, date, camera string) MediaRecord {
	rec := MediaRecord{FilePath: path}
	if date != "" {
		rec.DateTaken = strPtr(date)
	}
	if camera != "" {
		rec.CameraModel = strPtr(camera)
	}
	return rec
}

func mustInsert(t *testing.T, db *Database, recs ...MediaRecord) {
	t.Helper()
	for _, rec := range recs {
		if err := db.Insert(rec); err != nil {
			t.Fatalf("Insert(%s): %v", rec.FilePath, err)
		}
	}
	if err := db.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func TestInsertAndReadBack(t *testing.T) {
	db := newTestDB(t, 10)

	rec := MediaRecord{
		DateTaken:    strPtr("2023:06:15 10:30:00"),
		FilePath:     "/photos/IMG_0001.jpg",
		CameraModel:  strPtr("Canon EOS R5"),
		GPSLatitude:  f64Ptr(40.446195),
		GPSLongitude: f64Ptr(-79.982195),
		GPSAltitude:  i64Ptr(300),
		ISO:          i64Ptr(200),
		Aperture:     strPtr("f/2.8"),
		ShutterSpeed: strPtr("1/250s"),
		FocalLength:  strPtr("50.0mm"),
	}
	mustInsert(t, db, rec)

	got, err := db.Photos(Filter{})
	if err != nil {
		t.Fatalf("Photos: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}

	r := got[0]
	if r.FilePath != rec.FilePath {
		t.Errorf("FilePath = %q, want %q", r.FilePath, rec.FilePath)
	}
	if r.DateTaken == nil || *r.DateTaken != *rec.DateTaken {
		t.Errorf("DateTaken = %v, want %v", r.DateTaken, *rec.DateTaken)
	}
	if r.GPSLatitude == nil || *r.GPSLatitude != *rec.GPSLatitude {
		t.Errorf("GPSLatitude = %v, want %v", r.GPSLatitude, *rec.GPSLatitude)
	}
	if r.GPSAltitude == nil || *r.GPSAltitude != 300 {
		t.Errorf("GPSAltitude = %v, want 300", r.GPSAltitude)
	}
	if r.ShutterSpeed == nil || *r.ShutterSpeed != "1/250s" {
		t.Errorf("ShutterSpeed = %v, want 1/250s", r.ShutterSpeed)
	}
}

func TestNullFieldsRoundTrip(t *testing.T) {
	db := newTestDB(t, 10)
	mustInsert(t, db, MediaRecord{FilePath: "/photos/bare.jpg"})

	got, err := db.Photos(Filter{})
	if err != nil {
		t.Fatalf("Photos: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	r := got[0]
	if r.DateTaken != nil || r.CameraModel != nil || r.GPSLatitude != nil ||
		r.GPSAltitude != nil || r.ISO != nil || r.Aperture != nil {
		t.Errorf("expected all optional fields nil, got %+v", r)
	}
	if r.HasMetadata() {
		t.Error("HasMetadata() = true for bare record")
	}
}

func TestDuplicatePathIgnored(t *testing.T) {
	db := newTestDB(t, 10)

	first := testRecord("/photos/dup.jpg", "2023:01:01 00:00:00", "CameraA")
	second := testRecord("/photos/dup.jpg", "2024:05:05 12:00:00", "CameraB")
	mustInsert(t, db, first, second)

	got, err := db.Photos(Filter{})
	if err != nil {
		t.Fatalf("Photos: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1 after duplicate insert", len(got))
	}
	if *got[0].CameraModel != "CameraA" {
		t.Errorf("CameraModel = %q, want the first insert to win", *got[0].CameraModel)
	}

	// A second flush cycle with the same path must also be a no-op.
	mustInsert(t, db, second)
	count, err := db.CountPhotos(Filter{})
	if err != nil {
		t.Fatalf("CountPhotos: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestAutoFlushAtThreshold(t *testing.T) {
	db := newTestDB(t, 3)

	for i, path := range []string{"/a.jpg", "/b.jpg", "/c.jpg"} {
		if err := db.Insert(testRecord(path, "", "")); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
	}
	if db.Buffered() != 0 {
		t.Errorf("Buffered() = %d after hitting threshold, want 0", db.Buffered())
	}

	count, err := db.CountPhotos(Filter{})
	if err != nil {
		t.Fatalf("CountPhotos: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestFlushEmptyBufferIsNoop(t *testing.T) {
	db := newTestDB(t, 10)
	if err := db.Flush(); err != nil {
		t.Errorf("Flush on empty buffer: %v", err)
	}
}

func TestOrderedByDateTaken(t *testing.T) {
	db := newTestDB(t, 10)
	mustInsert(t, db,
		testRecord("/z.jpg", "2024:01:01 00:00:00", ""),
		testRecord("/a.jpg", "2022:01:01 00:00:00", ""),
		testRecord("/m.jpg", "2023:01:01 00:00:00", ""),
	)

	got, err := db.Photos(Filter{})
	if err != nil {
		t.Fatalf("Photos: %v", err)
	}
	want := []string{"/a.jpg", "/m.jpg", "/z.jpg"}
	for i, rec := range got {
		if rec.FilePath != want[i] {
			t.Errorf("record %d path = %q, want %q", i, rec.FilePath, want[i])
		}
	}
}
