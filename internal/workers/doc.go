// Package workers provides worker pool sizing heuristics based on available
// CPU resources, with an environment variable override for manual tuning.
package workers
