// Package metadata extracts a normalized MediaRecord from a single media
// file: embedded EXIF tags for images (capture date, camera model, GPS
// position converted from DMS rationals, exposure parameters) and
// filesystem metadata for videos. Numeric edge cases such as zero
// denominators and partial GPS data yield absent fields, never errors.
package metadata
