package rhythm

import "fmt"

// Preset is a curated oscillation between two canonical states.
type Preset struct {
	Name          string  `json:"name"`
	StateA        string  `json:"stateA"`
	StateB        string  `json:"stateB"`
	Pattern       Pattern `json:"pattern"`
	Cycles        int     `json:"numCycles"`
	StepsPerCycle int     `json:"period"`
	Description   string  `json:"description"`
}

var presets = []Preset{
	{
		Name:          "seasonal_transition",
		StateA:        "editorial_minimal",
		StateB:        "theatrical_drama",
		Pattern:       Sinusoidal,
		Cycles:        3,
		StepsPerCycle: 24,
		Description:   "Smooth seasonal arc from restrained editorial to theatrical grandeur and back",
	},
	{
		Name:          "day_night_cycle",
		StateA:        "curated_collection",
		StateB:        "immersive_spectacle",
		Pattern:       Sinusoidal,
		Cycles:        4,
		StepsPerCycle: 20,
		Description:   "Daylight curation dissolving into night-time spectacle lighting",
	},
	{
		Name:          "intimacy_sweep",
		StateA:        "abundance_wall",
		StateB:        "luxury_isolation",
		Pattern:       Triangular,
		Cycles:        2,
		StepsPerCycle: 30,
		Description:   "Linear ramp from packed abundance to solitary luxury focus",
	},
	{
		Name:          "drama_pulse",
		StateA:        "curated_collection",
		StateB:        "immersive_spectacle",
		Pattern:       Sinusoidal,
		Cycles:        5,
		StepsPerCycle: 16,
		Description:   "Rapid rhythmic pulse between restrained curation and full spectacle",
	},
	{
		Name:          "narrative_shift",
		StateA:        "editorial_minimal",
		StateB:        "narrative_journey",
		Pattern:       Square,
		Cycles:        4,
		StepsPerCycle: 12,
		Description:   "Hard cuts between minimal editorial and storytelling progression",
	},
}

// Presets returns every preset in a stable order.
func Presets() []Preset {
	return append([]Preset(nil), presets...)
}

// LookupPreset returns the preset called name.
func LookupPreset(name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
}

// IsPreset reports whether name is a known preset.
func IsPreset(name string) bool {
	_, err := LookupPreset(name)
	return err == nil
}

// IsState reports whether name is a canonical state.
func IsState(name string) bool {
	_, ok := canonicalStates[name]
	return ok
}

// PresetSequence is a preset rendered without phase offset.
type PresetSequence struct {
	Preset
	TotalSteps int     `json:"totalSteps"`
	Trajectory []State `json:"trajectory"`
}

// ApplyPreset renders the preset called name.
func ApplyPreset(name string) (*PresetSequence, error) {
	p, err := LookupPreset(name)
	if err != nil {
		return nil, err
	}
	traj, err := trajectory(p)
	if err != nil {
		return nil, err
	}
	return &PresetSequence{Preset: p, TotalSteps: len(traj), Trajectory: traj}, nil
}

// Trajectory returns the states of the preset called name.
func Trajectory(name string) ([]State, error) {
	p, err := LookupPreset(name)
	if err != nil {
		return nil, err
	}
	return trajectory(p)
}

func trajectory(p Preset) ([]State, error) {
	seq, err := Generate(SequenceRequest{
		StateA:        p.StateA,
		StateB:        p.StateB,
		Pattern:       p.Pattern,
		Cycles:        p.Cycles,
		StepsPerCycle: p.StepsPerCycle,
	})
	if err != nil {
		return nil, err
	}
	states := make([]State, len(seq.Steps))
	for i, s := range seq.Steps {
		states[i] = s.State
	}
	return states, nil
}
