package metadata

import (
	"fmt"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"

	"photo-mapper/internal/database"
	"photo-mapper/internal/filesystem"
	"photo-mapper/internal/logging"
	"photo-mapper/internal/mediatypes"
)

// VideoCameraModel is the fixed camera_model literal for video files.
const VideoCameraModel = "Video"

// Outcome is the result of extracting one file. NoMeta marks records that
// carry nothing beyond path and mtime date; the scan pipeline counts these
// separately but still persists them.
type Outcome struct {
	Record database.MediaRecord
	NoMeta bool
}

// ExtractFile extracts a MediaRecord from the file at path. The path must
// already be classified as a supported media type; unsupported extensions
// are filtered upstream and rejected here.
func ExtractFile(path string) (Outcome, error) {
	switch mediatypes.TypeOf(path) {
	case mediatypes.FileTypeImage:
		return extractImage(path)
	case mediatypes.FileTypeVideo:
		return extractVideo(path)
	default:
		return Outcome{}, fmt.Errorf("unsupported file type: %s", path)
	}
}

// extractImage decodes the EXIF block of an image. A failure to open the
// file is an extraction error; a failure to decode (no EXIF marker, or a
// container goexif cannot parse, such as PNG or HEIC) degrades to a
// tagless record with the mtime fallback date.
func extractImage(path string) (Outcome, error) {
	f, err := filesystem.OpenWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	x, decErr := exif.Decode(f)
	if decErr != nil {
		logging.Debug("No decodable EXIF in %s: %v", path, decErr)
		x = nil
	}

	rec := database.MediaRecord{FilePath: path}
	rec.DateTaken = captureDate(x, path)

	if x != nil {
		rec.CameraModel = stringTag(x, exif.Model)

		lat, latRef := gpsAxis(x, exif.GPSLatitude, exif.GPSLatitudeRef)
		lon, lonRef := gpsAxis(x, exif.GPSLongitude, exif.GPSLongitudeRef)
		if lat != nil && lon != nil && latRef != "" && lonRef != "" {
			la, lo := *lat, *lon
			if latRef == "S" {
				la = -la
			}
			if lonRef == "W" {
				lo = -lo
			}
			// (0,0) is the common sentinel for "no fix"; expose as absent.
			if la != 0 || lo != 0 {
				rec.GPSLatitude = &la
				rec.GPSLongitude = &lo
			}
		}

		if alt, ok := rationalTag(x, exif.GPSAltitude); ok {
			meters := roundToInt(alt.value())
			rec.GPSAltitude = &meters
		}

		if isoTag, err := x.Get(exif.ISOSpeedRatings); err == nil {
			if iso, intErr := isoTag.Int(0); intErr == nil {
				v := int64(iso)
				rec.ISO = &v
			}
		}

		if ap, ok := rationalTag(x, exif.FNumber); ok {
			s := "f/" + floatString(ap.value())
			rec.Aperture = &s
		}

		if expo, ok := rationalTag(x, exif.ExposureTime); ok {
			s := formatShutter(expo.value())
			rec.ShutterSpeed = &s
		}

		if fl, ok := rationalTag(x, exif.FocalLength); ok {
			s := floatString(fl.value()) + "mm"
			rec.FocalLength = &s
		}
	}

	return Outcome{Record: rec, NoMeta: !rec.HasMetadata()}, nil
}

// extractVideo builds a record from filesystem metadata only. A stat
// failure is an extraction error because nothing remains to index.
func extractVideo(path string) (Outcome, error) {
	info, err := filesystem.StatWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	date := info.ModTime().Format(database.TimeLayout)
	model := VideoCameraModel
	return Outcome{
		Record: database.MediaRecord{
			FilePath:    path,
			DateTaken:   &date,
			CameraModel: &model,
		},
	}, nil
}

// captureDate reads the original-capture tag, falling back to the file's
// modification time. If the stat itself fails too, the date is nil.
func captureDate(x *exif.Exif, path string) *string {
	if x != nil {
		if s := stringTag(x, exif.DateTimeOriginal); s != nil {
			return s
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		logging.Warn("No capture date and stat failed for %s: %v", path, err)
		return nil
	}
	date := info.ModTime().Format(database.TimeLayout)
	return &date
}

// stringTag returns the trimmed text of a tag, or nil when the tag is
// absent, unreadable, or empty.
func stringTag(x *exif.Exif, name exif.FieldName) *string {
	tag, err := x.Get(name)
	if err != nil {
		return nil
	}
	s, err := tag.StringVal()
	if err != nil {
		return nil
	}
	s = strings.Trim(s, " \t\r\n\x00")
	if s == "" {
		return nil
	}
	return &s
}

// rationalTag reads the first rational of a tag. Absent tags, malformed
// values, and zero denominators all report !ok; none of them are errors.
func rationalTag(x *exif.Exif, name exif.FieldName) (rational, bool) {
	tag, err := x.Get(name)
	if err != nil {
		return rational{}, false
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return rational{}, false
	}
	return rational{num: num, den: den}, true
}

// gpsAxis reads one GPS coordinate: a DMS triplet plus its hemisphere
// reference. Both must be present and the triplet convertible, else the
// axis is absent.
func gpsAxis(x *exif.Exif, valName, refName exif.FieldName) (*float64, string) {
	valTag, err := x.Get(valName)
	if err != nil {
		return nil, ""
	}
	refTag, err := x.Get(refName)
	if err != nil {
		return nil, ""
	}
	ref, err := refTag.StringVal()
	if err != nil {
		return nil, ""
	}
	ref = strings.Trim(ref, " \x00")
	if ref == "" {
		return nil, ""
	}

	var dms [3]rational
	for i := range dms {
		num, den, ratErr := valTag.Rat2(i)
		if ratErr != nil {
			return nil, ""
		}
		dms[i] = rational{num: num, den: den}
	}

	deg, ok := dmsToDegrees(dms)
	if !ok {
		return nil, ""
	}
	return &deg, ref
}
