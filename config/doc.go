// Package config loads and validates settings for the SSE bridge.
//
// Load layers defaults, a YAML config file, a .env file, and
// STREAMKIT_* environment variables, then validates the merged result
// with struct tags. It keeps no global state, so callers can load as
// many independent Settings as they need.
package config
