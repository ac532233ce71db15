package mediatypes

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// FileType represents the type of a media file.
type FileType string

const (
	// FileTypeImage represents an image file carrying embedded EXIF tags
	// (including RAW formats).
	FileTypeImage FileType = "image"
	// FileTypeVideo represents a video file.
	FileTypeVideo FileType = "video"
	// FileTypeOther represents an unknown or unsupported file type.
	FileTypeOther FileType = "other"
)

// ImageExtensions maps file extensions to whether they are supported image
// formats. RAW variants are included; their EXIF blocks are TIFF-based.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".heic": true,
	".tiff": true,

	// RAW
	".arw": true,
	".cr2": true,
	".cr3": true,
	".dng": true,
	".nef": true,
	".orf": true,
	".raf": true,
	".rw2": true,
	".pef": true,
}

// VideoExtensions maps file extensions to whether they are supported video
// formats. Video files contribute only a modification time.
var VideoExtensions = map[string]bool{
	".mp4": true,
	".mov": true,
}

// GetFileType returns the FileType for a given file extension.
// The extension should be lowercase and include the leading dot (e.g., ".jpg").
// Returns FileTypeOther if the extension is not recognized.
func GetFileType(ext string) FileType {
	if ImageExtensions[ext] {
		return FileTypeImage
	}
	if VideoExtensions[ext] {
		return FileTypeVideo
	}
	return FileTypeOther
}

// TypeOf classifies a path by its extension, case-insensitively.
func TypeOf(path string) FileType {
	return GetFileType(strings.ToLower(filepath.Ext(path)))
}

// IsSupported returns true if the extension represents a supported media file.
func IsSupported(ext string) bool {
	return GetFileType(ext) != FileTypeOther
}

// SupportedExtensions returns the full supported extension set, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(ImageExtensions)+len(VideoExtensions))
	for ext := range ImageExtensions {
		exts = append(exts, ext)
	}
	for ext := range VideoExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ParseExtensionList parses a comma-separated extension allow-list
// (".jpg,.mp4"; the leading dot is optional) into normalized, lowercase
// extensions. Every entry must be a supported extension, and the resulting
// list must not be empty.
func ParseExtensionList(list string) ([]string, error) {
	var exts []string
	seen := make(map[string]bool)

	for _, entry := range strings.Split(list, ",") {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		if !strings.HasPrefix(entry, ".") {
			entry = "." + entry
		}
		if !IsSupported(entry) {
			return nil, fmt.Errorf("unsupported extension %q", entry)
		}
		if !seen[entry] {
			seen[entry] = true
			exts = append(exts, entry)
		}
	}

	if len(exts) == 0 {
		return nil, fmt.Errorf("empty extension list")
	}

	sort.Strings(exts)
	return exts, nil
}
