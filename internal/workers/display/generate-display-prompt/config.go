// internal/workers/display/generate-display-prompt/config.go
package generatedisplayprompt

import "time"

type Config struct {
	Timeout time.Duration
	// DefaultStyle applies when a job carries no styleModifier.
	DefaultStyle string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
