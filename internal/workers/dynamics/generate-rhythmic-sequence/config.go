// internal/workers/dynamics/generate-rhythmic-sequence/config.go
package generaterhythmicsequence

import (
	"time"

	"window-display-workers/internal/display/rhythm"
)

type Config struct {
	Timeout              time.Duration
	DefaultPattern       rhythm.Pattern
	DefaultCycles        int
	DefaultStepsPerCycle int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:              10 * time.Second,
		DefaultPattern:       rhythm.Sinusoidal,
		DefaultCycles:        3,
		DefaultStepsPerCycle: 20,
	}
}
