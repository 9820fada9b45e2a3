// internal/workers/dynamics/compute-state-distance/config.go
package computestatedistance

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
