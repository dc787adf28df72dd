package config

import "time"

// Config holds runtime settings for the shopkeeper CLI.
//
// Fields:
//   - ServerURL: base URL of the HTTP API.
//   - Token: bearer token sent by product commands.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	ServerURL      string
	Token          string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
