// Package config handles configuration loading for the sync engine.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable
// expansion. The package provides validation and sensible defaults; every
// section is optional.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	logging:
//	  level: "${STITCH_LOG_LEVEL}"
//
// Syntax: ${VAR_NAME}
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	pipeline:
//	  settle_delay: "1s"
//
// # Configuration Sections
//
// Pipeline tuning:
//
//	pipeline:
//	  settle_delay: "1s"   # wait between join and fetch; zero keeps the default
//
// Event streams:
//
//	events:
//	  subscriber_buffer: 64
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// Metrics (collection still requires a registerer from the host):
//
//	metrics:
//	  enabled: true
package config
