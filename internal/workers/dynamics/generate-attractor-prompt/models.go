// internal/workers/dynamics/generate-attractor-prompt/models.go
package generateattractorprompt

import "window-display-workers/internal/display/vocabulary"

// Input selects a state source. customState wins over presetName, which
// may name a canonical state or a rhythmic preset. Sequence mode needs a
// preset.
type Input struct {
	Mode          string             `json:"mode,omitempty"`
	PresetName    string             `json:"presetName,omitempty"`
	CustomState   map[string]float64 `json:"customState,omitempty"`
	StyleModifier string             `json:"styleModifier,omitempty"`
	KeyframeCount int                `json:"keyframeCount,omitempty"`
	Strength      *float64           `json:"strength,omitempty"`
}

type Output struct {
	PromptID    string                `json:"promptId"`
	Attractor   *vocabulary.Attractor `json:"attractor"`
	VisualTypes []string              `json:"visualTypes"`
	GeneratedAt string                `json:"generatedAt"`
}
