// Package config holds runtime settings for the ResumeRoast client and the
// layered loading that fills them: defaults, then environment variables, then
// an optional JSON file, then command-line flags, later sources winning.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - DatabaseDSN: path/DSN of the local sqlite database.
//   - RequestTimeout: overall per-request HTTP timeout.
//   - URLSyncDebounce: how long the feed controller coalesces location writes.
//   - LogLevel: slog level name (debug, info, warn, error).
//   - AnnouncementID: id of the announcement banner currently running; an
//     empty id disables the banner.
type Config struct {
	APIBaseURL      string        `env:"API_BASE_URL"`
	DatabaseDSN     string        `env:"DATABASE_DSN"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"`
	URLSyncDebounce time.Duration `env:"URL_SYNC_DEBOUNCE"`
	LogLevel        string        `env:"LOG_LEVEL"`
	AnnouncementID  string        `env:"ANNOUNCEMENT_ID"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.DatabaseDSN = "resumeroast.db"
	c.RequestTimeout = 20 * time.Second
	c.URLSyncDebounce = 150 * time.Millisecond
	c.LogLevel = "info"
	c.AnnouncementID = "welcome"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, a JSON file (if given) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
