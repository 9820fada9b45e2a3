// internal/workers/display/generate-display-prompt/models.go
package generatedisplayprompt

import "window-display-workers/internal/display/mapper"

type Input struct {
	WindowWidthFt      float64 `json:"windowWidthFt"`
	WindowHeightFt     float64 `json:"windowHeightFt"`
	CompositionType    string  `json:"compositionType"`
	DepthStaging       string  `json:"depthStaging"`
	LightingFramework  string  `json:"lightingFramework"`
	ViewerContext      string  `json:"viewerContext"`
	SubjectDescription string  `json:"subjectDescription"`
	StyleModifier      string  `json:"styleModifier,omitempty"`
}

type Output struct {
	PromptID       string                `json:"promptId"`
	Prompt         string                `json:"prompt"`
	PromptSections []string              `json:"promptSections"`
	Parameters     *mapper.GeometricSpec `json:"parameters"`
	GeneratedAt    string                `json:"generatedAt"`
}
