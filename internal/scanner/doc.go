// Package scanner walks directory trees for supported media files,
// extracts metadata from the ones the store does not know yet, and
// persists the resulting records. Extraction runs on a worker pool by
// default; all database writes happen on the orchestrating goroutine.
package scanner
