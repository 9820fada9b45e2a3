// internal/workers/dynamics/generate-attractor-prompt/config.go
package generateattractorprompt

import "time"

type Config struct {
	Timeout              time.Duration
	DefaultKeyframeCount int
	DefaultStrength      float64
	DefaultStyle         string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:              10 * time.Second,
		DefaultKeyframeCount: 4,
		DefaultStrength:      1.0,
	}
}
