package mapgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"photo-mapper/internal/database"
	"photo-mapper/internal/logging"
	"photo-mapper/internal/metrics"
)

// ErrNoPhotos signals that the filter matched nothing; no output file is
// written in that case.
var ErrNoPhotos = errors.New("no photos match the given filters")

// payloadKeys names the columns of the location tuples, in tuple order. The
// template decodes rows positionally against this array.
var payloadKeys = []string{
	"date_taken",
	"gps_latitude",
	"gps_longitude",
	"camera_model",
	"file_path_web",
}

// Template placeholder tokens.
const (
	tokenKeys        = "__KEYS_JSON__"
	tokenCameras     = "__CAMERAS_JSON__"
	tokenLocations   = "__LOCATIONS_JSON__"
	tokenHeatmaps    = "__HEATMAPS__"
	tokenPhotoCounts = "__PHOTO_COUNTS_JSON__"
	tokenYears       = "__YEARS_JSON__"
)

// Generator renders the map HTML document by substituting serialized data
// blocks into an externally supplied template.
type Generator struct {
	db           *database.Database
	TemplatePath string
	OutputPath   string
}

// New creates a Generator reading rows from db.
func New(db *database.Database, templatePath, outputPath string) *Generator {
	return &Generator{db: db, TemplatePath: templatePath, OutputPath: outputPath}
}

// Generate queries the store with the given filter and writes the rendered
// document. Returns ErrNoPhotos without touching the output file when the
// filter matches nothing; a missing template aborts the generation.
func (g *Generator) Generate(filter database.Filter) error {
	err := g.generate(filter)
	switch {
	case errors.Is(err, ErrNoPhotos):
		metrics.MapGenerationsTotal.WithLabelValues("empty").Inc()
	case err != nil:
		metrics.MapGenerationsTotal.WithLabelValues("error").Inc()
	default:
		metrics.MapGenerationsTotal.WithLabelValues("success").Inc()
	}
	return err
}

func (g *Generator) generate(filter database.Filter) error {
	count, err := g.db.CountPhotos(filter)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNoPhotos
	}

	rows, err := g.db.Photos(filter)
	if err != nil {
		return err
	}
	logging.Info("Found %d records, generating HTML map file...", len(rows))

	template, err := os.ReadFile(g.TemplatePath)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", g.TemplatePath, err)
	}

	cameras := cameraIndex(rows)
	tuples := locationTuples(rows, cameras)

	// The heatmap always covers the whole collection, not the filtered set.
	dates, err := g.db.AllDates()
	if err != nil {
		return err
	}
	counts, years := dailyCounts(dates)

	blocks := map[string]string{
		tokenKeys:        mustJSON(payloadKeys),
		tokenCameras:     mustJSON(cameras),
		tokenLocations:   mustJSON(tuples),
		tokenHeatmaps:    heatmapContainers(years),
		tokenPhotoCounts: mustJSON(counts),
		tokenYears:       mustJSON(years),
	}

	html := string(template)
	for token, value := range blocks {
		html = strings.ReplaceAll(html, token, value)
	}

	if err := os.WriteFile(g.OutputPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", g.OutputPath, err)
	}

	metrics.MapRowsEmitted.Set(float64(len(tuples)))
	logging.Info("Successfully generated file: %s", g.OutputPath)
	return nil
}

// cameraIndex returns the sorted, deduplicated camera models present in the
// row set. Tuple encoding replaces each model string with its position here.
func cameraIndex(rows []database.MediaRecord) []string {
	seen := make(map[string]struct{})
	models := []string{}
	for i := range rows {
		m := rows[i].CameraModel
		if m == nil || *m == "" {
			continue
		}
		if _, ok := seen[*m]; ok {
			continue
		}
		seen[*m] = struct{}{}
		models = append(models, *m)
	}
	sort.Strings(models)
	return models
}

// locationTuples encodes each row as [date, lat, lon, camera-index, web-path].
// Absent values encode as JSON null.
func locationTuples(rows []database.MediaRecord, cameras []string) [][]interface{} {
	index := make(map[string]int, len(cameras))
	for i, m := range cameras {
		index[m] = i
	}

	tuples := make([][]interface{}, 0, len(rows))
	for i := range rows {
		rec := &rows[i]

		var date interface{}
		if rec.DateTaken != nil {
			date = displayDate(*rec.DateTaken)
		}

		var lat, lon interface{}
		if rec.GPSLatitude != nil && rec.GPSLongitude != nil {
			la := roundCoord(*rec.GPSLatitude)
			lo := roundCoord(*rec.GPSLongitude)
			// Final safeguard against the "no fix" origin sentinel.
			if la != 0 || lo != 0 {
				lat, lon = la, lo
			}
		}

		var cameraIdx interface{}
		if rec.CameraModel != nil {
			if pos, ok := index[*rec.CameraModel]; ok {
				cameraIdx = pos
			}
		}

		webPath := strings.ReplaceAll(rec.FilePath, `\`, "/")

		tuples = append(tuples, []interface{}{date, lat, lon, cameraIdx, webPath})
	}
	return tuples
}

// displayDate rewrites the date portion of a storage timestamp to dashed
// form, leaving the time of day untouched.
func displayDate(s string) string {
	if len(s) < 10 {
		return strings.ReplaceAll(s, ":", "-")
	}
	return strings.ReplaceAll(s[:10], ":", "-") + s[10:]
}

func roundCoord(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// mustJSON serializes values whose types cannot fail to marshal.
func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		logging.Error("JSON encoding failed: %v", err)
		return "null"
	}
	return string(b)
}
