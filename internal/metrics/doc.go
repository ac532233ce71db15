// Package metrics defines Prometheus collectors for the scan pipeline, the
// database layer, cleanup, and map generation. Collectors register on the
// default registry via promauto; photo-mapper runs no exposition endpoint,
// so they are consumed by embedding processes or tests via the registry.
package metrics
