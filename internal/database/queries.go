package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// whereClause builds the WHERE fragment and arguments for a Filter. Photos
// and CountPhotos share it so read and count always agree on cardinality.
func (f *Filter) whereClause() (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.StartDate != "" && f.EndDate != "" {
		conds = append(conds, "date_taken BETWEEN ? AND ?")
		args = append(args, f.StartDate, f.EndDate)
	}

	if f.CameraModel != "" {
		conds = append(conds, "camera_model = ?")
		args = append(args, f.CameraModel)
	}

	if len(f.Extensions) > 0 {
		likes := make([]string, len(f.Extensions))
		for i, ext := range f.Extensions {
			likes[i] = "file_path LIKE ?"
			args = append(args, "%"+ext)
		}
		conds = append(conds, "("+strings.Join(likes, " OR ")+")")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Photos returns all records matching the filter, ordered by date_taken
// ascending.
func (d *Database) Photos(filter Filter) ([]MediaRecord, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("photos", start, err) }()

	db, err := d.open()
	if err != nil {
		return nil, err
	}
	defer closeQuietly(db)

	where, args := filter.whereClause()
	query := `
		SELECT id, date_taken, file_path, camera_model, gps_latitude,
		       gps_longitude, gps_altitude, iso, aperture, shutter_speed,
		       focal_length
		FROM photos` + where + ` ORDER BY date_taken`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("photos query failed: %w", err)
	}
	defer rows.Close()

	var records []MediaRecord
	for rows.Next() {
		var rec MediaRecord
		if err = rows.Scan(
			&rec.ID,
			&rec.DateTaken,
			&rec.FilePath,
			&rec.CameraModel,
			&rec.GPSLatitude,
			&rec.GPSLongitude,
			&rec.GPSAltitude,
			&rec.ISO,
			&rec.Aperture,
			&rec.ShutterSpeed,
			&rec.FocalLength,
		); err != nil {
			return nil, fmt.Errorf("photos scan failed: %w", err)
		}
		records = append(records, rec)
	}
	err = rows.Err()
	return records, err
}

// CountPhotos returns the number of records matching the filter.
func (d *Database) CountPhotos(filter Filter) (int, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("count_photos", start, err) }()

	db, err := d.open()
	if err != nil {
		return 0, err
	}
	defer closeQuietly(db)

	where, args := filter.whereClause()

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM photos"+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return count, nil
}

// CameraModels returns the sorted distinct non-null camera models.
func (d *Database) CameraModels() ([]string, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("camera_models", start, err) }()

	db, err := d.open()
	if err != nil {
		return nil, err
	}
	defer closeQuietly(db)

	rows, err := db.Query(
		"SELECT DISTINCT camera_model FROM photos WHERE camera_model IS NOT NULL ORDER BY camera_model")
	if err != nil {
		return nil, fmt.Errorf("camera models query failed: %w", err)
	}
	defer rows.Close()

	return collectStrings(rows)
}

// AllPaths returns every stored file path as a set. The scan pipeline diffs
// the on-disk enumeration against it once per scan.
func (d *Database) AllPaths() (map[string]struct{}, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("all_paths", start, err) }()

	db, err := d.open()
	if err != nil {
		return nil, err
	}
	defer closeQuietly(db)

	rows, err := db.Query("SELECT file_path FROM photos")
	if err != nil {
		return nil, fmt.Errorf("paths query failed: %w", err)
	}
	defer rows.Close()

	paths := make(map[string]struct{})
	for rows.Next() {
		var p string
		if err = rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("paths scan failed: %w", err)
		}
		paths[p] = struct{}{}
	}
	err = rows.Err()
	return paths, err
}

// AllDates returns every non-null date_taken value across the whole store,
// unfiltered. The heatmap is computed over the entire collection.
func (d *Database) AllDates() ([]string, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("all_dates", start, err) }()

	db, err := d.open()
	if err != nil {
		return nil, err
	}
	defer closeQuietly(db)

	rows, err := db.Query("SELECT date_taken FROM photos WHERE date_taken IS NOT NULL")
	if err != nil {
		return nil, fmt.Errorf("dates query failed: %w", err)
	}
	defer rows.Close()

	return collectStrings(rows)
}

func collectStrings(rows *sql.Rows) ([]string, error) {
	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// DayBounds translates a user-facing YYYY-MM-DD date pair into inclusive
// storage-format bounds covering the whole days. Both dates must be given
// together; empty input means no date restriction.
func DayBounds(startDay, endDay string) (lower, upper string, err error) {
	if startDay == "" && endDay == "" {
		return "", "", nil
	}
	if startDay == "" || endDay == "" {
		return "", "", fmt.Errorf("start and end date must be given together")
	}

	for _, day := range []string{startDay, endDay} {
		if _, parseErr := time.Parse("2006-01-02", day); parseErr != nil {
			return "", "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", day)
		}
	}

	lower = strings.ReplaceAll(startDay, "-", ":") + " 00:00:00"
	upper = strings.ReplaceAll(endDay, "-", ":") + " 23:59:59"
	return lower, upper, nil
}
