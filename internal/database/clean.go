package database

import (
	"errors"
	"fmt"
	"os"
	"time"

	"photo-mapper/internal/filesystem"
	"photo-mapper/internal/logging"
	"photo-mapper/internal/metrics"
)

// Clean checks every stored path against the filesystem. Rows whose file no
// longer exists are deleted only when confirm is true; otherwise the pass is
// read-only and reports candidates. The progress callback, if non-nil, is
// invoked after each row with (checked, total).
//
// This walks the entire table and stats every file, so it can be slow on
// large collections or network mounts.
func (d *Database) Clean(confirm bool, progress func(checked, total int)) (CleanResult, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("clean", start, err) }()

	db, err := d.open()
	if err != nil {
		return CleanResult{}, err
	}
	defer closeQuietly(db)

	rows, err := db.Query("SELECT id, file_path FROM photos")
	if err != nil {
		return CleanResult{}, fmt.Errorf("clean query failed: %w", err)
	}

	type record struct {
		id   int64
		path string
	}
	var records []record
	for rows.Next() {
		var rec record
		if err = rows.Scan(&rec.id, &rec.path); err != nil {
			rows.Close()
			return CleanResult{}, fmt.Errorf("clean scan failed: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return CleanResult{}, err
	}
	rows.Close()

	logging.Info("Checking %d records against the filesystem...", len(records))

	retryCfg := filesystem.DefaultRetryConfig()
	var missing []int64
	result := CleanResult{Checked: len(records)}

	for i, rec := range records {
		_, statErr := filesystem.StatWithRetry(rec.path, retryCfg)
		if statErr != nil && errors.Is(statErr, os.ErrNotExist) {
			missing = append(missing, rec.id)
		}
		metrics.CleanCheckedTotal.Inc()
		if progress != nil {
			progress(i+1, len(records))
		}
	}
	result.Candidates = len(missing)

	if len(missing) == 0 {
		logging.Info("Database is clean, no orphaned records found")
		return result, nil
	}

	if !confirm {
		logging.Info("Found %d orphaned records; run with confirmation to delete", len(missing))
		return result, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return result, fmt.Errorf("failed to begin delete transaction: %w", err)
	}

	stmt, err := tx.Prepare("DELETE FROM photos WHERE id = ?")
	if err != nil {
		rollback(tx)
		return result, fmt.Errorf("failed to prepare delete: %w", err)
	}
	defer stmt.Close()

	for _, id := range missing {
		if _, err = stmt.Exec(id); err != nil {
			rollback(tx)
			return result, fmt.Errorf("failed to delete record %d: %w", id, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return result, fmt.Errorf("failed to commit delete: %w", err)
	}

	result.Deleted = len(missing)
	metrics.CleanDeletedTotal.Add(float64(len(missing)))
	logging.Info("Deleted %d orphaned records", len(missing))
	return result, nil
}
