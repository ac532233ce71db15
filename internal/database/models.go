package database

// TimeLayout is the storage format for date_taken, matching the EXIF
// DateTimeOriginal convention.
const TimeLayout = "2006:01:02 15:04:05"

// MediaRecord is one indexed media file. Nil pointer fields persist as NULL.
type MediaRecord struct {
	ID           int64
	DateTaken    *string // TimeLayout format; capture tag or mtime fallback
	FilePath     string  // absolute path, unique key
	CameraModel  *string // "Video" for video files
	GPSLatitude  *float64
	GPSLongitude *float64
	GPSAltitude  *int64 // meters, rounded
	ISO          *int64
	Aperture     *string // "f/2.8"
	ShutterSpeed *string // "1/250s" or "2s"
	FocalLength  *string // "50.0mm"
}

// HasMetadata reports whether the record carries anything beyond path and
// date, i.e. whether extraction found embedded tags.
func (r *MediaRecord) HasMetadata() bool {
	return r.CameraModel != nil ||
		r.GPSLatitude != nil ||
		r.GPSLongitude != nil ||
		r.GPSAltitude != nil ||
		r.ISO != nil ||
		r.Aperture != nil ||
		r.ShutterSpeed != nil ||
		r.FocalLength != nil
}

// Filter restricts read and count operations. Zero values mean "no
// restriction"; all set fields combine with AND.
type Filter struct {
	StartDate   string   // inclusive lower bound, TimeLayout format
	EndDate     string   // inclusive upper bound, TimeLayout format
	CameraModel string   // exact match
	Extensions  []string // path suffix allow-list, lowercase with dot
}

// CleanResult summarizes an orphan cleanup pass.
type CleanResult struct {
	Checked    int // rows examined
	Candidates int // rows whose file no longer exists
	Deleted    int // rows actually removed (0 without confirmation)
}
