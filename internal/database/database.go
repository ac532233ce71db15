package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"photo-mapper/internal/logging"
	"photo-mapper/internal/metrics"
)

// DefaultBufferSize is the number of records buffered before an automatic
// flush during ingestion.
const DefaultBufferSize = 100

// Database owns the photos table. Every public operation opens its own
// connection and closes it before returning, so independent operations never
// share state; the insert buffer belongs to a single ingestion run and must
// only be touched by its orchestrator.
type Database struct {
	path       string
	bufferSize int
	buffer     []MediaRecord
}

// New creates a Database for the SQLite file at path and ensures the schema
// exists. A schema failure is returned as an error; ingestion cannot proceed
// without a writable store.
func New(path string, bufferSize int) (*Database, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	d := &Database{
		path:       path,
		bufferSize: bufferSize,
		buffer:     make([]MediaRecord, 0, bufferSize),
	}

	if err := d.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	return d, nil
}

// Path returns the database file path.
func (d *Database) Path() string {
	return d.path
}

// open returns a fresh connection. busy_timeout guards against transient
// "database is locked" errors; WAL keeps readers unblocked during flushes.
func (d *Database) open() (*sql.DB, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", d.path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", d.path, err)
	}
	return db, nil
}

func (d *Database) createSchema() error {
	start := time.Now()
	var err error
	defer func() { recordQuery("create_schema", start, err) }()

	db, err := d.open()
	if err != nil {
		return err
	}
	defer closeQuietly(db)

	schema := `
	CREATE TABLE IF NOT EXISTS photos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date_taken TEXT,
		file_path TEXT NOT NULL UNIQUE,
		camera_model TEXT,
		gps_latitude REAL,
		gps_longitude REAL,
		gps_altitude INTEGER,
		iso INTEGER,
		aperture TEXT,
		shutter_speed TEXT,
		focal_length TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_photos_date_taken ON photos(date_taken);
	CREATE INDEX IF NOT EXISTS idx_photos_camera_model ON photos(camera_model);
	`

	_, err = db.Exec(schema)
	return err
}

// Insert buffers a record and flushes once the buffer threshold is reached.
// Duplicate paths are silently dropped at flush time, making ingestion
// idempotent.
func (d *Database) Insert(rec MediaRecord) error {
	d.buffer = append(d.buffer, rec)
	if len(d.buffer) >= d.bufferSize {
		return d.Flush()
	}
	return nil
}

// Buffered returns the number of records awaiting flush.
func (d *Database) Buffered() int {
	return len(d.buffer)
}

// Flush writes all buffered records in one transaction using INSERT OR
// IGNORE. On success the buffer is cleared; on failure it is kept so a later
// flush can retry.
func (d *Database) Flush() error {
	if len(d.buffer) == 0 {
		return nil
	}

	start := time.Now()
	var err error
	defer func() { recordQuery("flush", start, err) }()

	db, err := d.open()
	if err != nil {
		return err
	}
	defer closeQuietly(db)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin flush transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO photos
			(date_taken, file_path, camera_model, gps_latitude, gps_longitude,
			 gps_altitude, iso, aperture, shutter_speed, focal_length)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		rollback(tx)
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for i := range d.buffer {
		rec := &d.buffer[i]
		res, execErr := stmt.Exec(
			rec.DateTaken,
			rec.FilePath,
			rec.CameraModel,
			rec.GPSLatitude,
			rec.GPSLongitude,
			rec.GPSAltitude,
			rec.ISO,
			rec.Aperture,
			rec.ShutterSpeed,
			rec.FocalLength,
		)
		if execErr != nil {
			rollback(tx)
			err = fmt.Errorf("failed to insert %s: %w", rec.FilePath, execErr)
			return err
		}
		if rows, raErr := res.RowsAffected(); raErr == nil {
			inserted += rows
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit flush: %w", err)
	}

	metrics.DBFlushSize.Observe(float64(len(d.buffer)))
	metrics.DBRowsInserted.Add(float64(inserted))
	logging.Debug("Flushed %d records (%d new rows)", len(d.buffer), inserted)

	d.buffer = d.buffer[:0]
	return nil
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		logging.Error("rollback failed: %v", err)
	}
}

func closeQuietly(db *sql.DB) {
	if err := db.Close(); err != nil {
		logging.Error("failed to close database: %v", err)
	}
}

// recordQuery records database operation metrics.
func recordQuery(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.DBQueriesTotal.WithLabelValues(operation, status).Inc()
	metrics.DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
