// Package mapgen turns stored media records into the map HTML document:
// a columnar location payload with a compact camera-model index, plus
// per-day photo counts and per-year containers for the calendar heatmap.
// All data blocks replace named placeholder tokens in an external template.
package mapgen
