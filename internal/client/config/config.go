package config

import "time"

// Config holds runtime settings for the emprende CLI.
//
// Fields:
//   - ServerURL: base URL of the backend REST API.
//   - RequestTimeout: per-request timeout applied by the HTTP gateway.
//   - DatabasePath: SQLite file holding the session.
//   - LogLevel, LogFormat: slog level name and "text" or "json".
//   - DocumentsDir: where downloaded PDFs are written.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	DatabasePath   string
	LogLevel       string
	LogFormat      string
	DocumentsDir   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://34.10.172.54:8080"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "session.db"
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.DocumentsDir = "documents"
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
