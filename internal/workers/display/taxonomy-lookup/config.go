// internal/workers/display/taxonomy-lookup/config.go
package taxonomylookup

import "time"

type Config struct {
	Timeout        time.Duration
	ServiceName    string
	ServiceVersion string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:        5 * time.Second,
		ServiceName:    "window-display-workers",
		ServiceVersion: "1.0.0",
	}
}
