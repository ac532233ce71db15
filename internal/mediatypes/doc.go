// Package mediatypes defines the supported media extension set and
// classifies files into images (EXIF-bearing, including RAW) and videos.
package mediatypes
