package config

import "time"

// Config holds runtime settings for the NutriTrack CLI.
//
// Fields:
//   - SpreadsheetTitle: exact title of the backing spreadsheet on Drive.
//   - DatabaseDSN: path of the local SQLite database.
//   - Timezone: IANA zone name the user's calendar days are pinned to.
//   - GeminiAPIKey / GeminiModel: nutrition-estimator credentials and model.
//   - ServiceAccountFile: optional Google service-account key file; when set,
//     login skips the pasted-token flow.
//   - RequestTimeout: per-request timeout for backend calls.
//   - LogLevel: zap level name (debug, info, warn, error).
type Config struct {
	SpreadsheetTitle   string
	DatabaseDSN        string
	Timezone           string
	GeminiAPIKey       string
	GeminiModel        string
	ServiceAccountFile string
	RequestTimeout     time.Duration
	LogLevel           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.SpreadsheetTitle = "NutriTrack AI Data"
	c.DatabaseDSN = "nutritrack.db"
	c.Timezone = "Local"
	c.GeminiModel = "gemini-2.5-flash"
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
