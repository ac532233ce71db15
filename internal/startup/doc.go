// Package startup loads application configuration from defaults, an
// optional YAML config file, and PHOTO_MAPPER_* environment variables,
// and prepares the directories the application writes into.
package startup
