// Package config loads runtime configuration for the NutriTrack CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-t string   spreadsheet title on Drive
//	-d string   local SQLite database path
//	-z string   IANA timezone name
//	-k string   Gemini API key
//	-m string   Gemini model name
//	-s string   service-account key file
//	-i int      backend request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "15s" or integer nanoseconds:
//
//	{
//	  "spreadsheet_title": "NutriTrack AI Data",
//	  "database_dsn": "nutritrack.db",
//	  "timezone": "Asia/Singapore",
//	  "gemini_api_key": "...",
//	  "request_timeout": "15s",
//	  "log_level": "info"
//	}
//
// Primary API
//
//   - type Config                     — holds the CLI runtime settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
