// internal/workers/dynamics/generate-rhythmic-sequence/models.go
package generaterhythmicsequence

import "window-display-workers/internal/display/rhythm"

// Input either names a preset or spells out both states. A preset fixes
// the states, pattern, cycles and period; phaseOffset still applies.
type Input struct {
	PresetName    string  `json:"presetName,omitempty"`
	StateA        string  `json:"stateA,omitempty"`
	StateB        string  `json:"stateB,omitempty"`
	Pattern       string  `json:"pattern,omitempty"`
	NumCycles     int     `json:"numCycles,omitempty"`
	StepsPerCycle int     `json:"stepsPerCycle,omitempty"`
	PhaseOffset   float64 `json:"phaseOffset,omitempty"`
}

type Output struct {
	Sequence    *rhythm.Sequence `json:"sequence"`
	TotalSteps  int              `json:"totalSteps"`
	Preset      string           `json:"preset,omitempty"`
	Description string           `json:"description,omitempty"`
}
