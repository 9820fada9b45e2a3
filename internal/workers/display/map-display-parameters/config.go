// internal/workers/display/map-display-parameters/config.go
package mapdisplayparameters

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
