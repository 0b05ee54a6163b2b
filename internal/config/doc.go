// Package config loads and validates lamina.yaml, the project-level
// configuration for the preview server, patch stream, and logging.
// A missing file is not an error; every field has a default.
package config
