package vocabulary

import (
	"errors"
	"fmt"
	"strings"

	"window-display-workers/internal/display/rhythm"
)

// Mode selects between a single prompt, a keyframe series and a bare
// vocabulary extraction.
type Mode string

const (
	ModeComposite  Mode = "composite"
	ModeSequence   Mode = "sequence"
	ModeVocabulary Mode = "vocabulary"

	promptLead = "Shop window display photograph:"

	// MaxKeyframes bounds a sequence request. Counts above the trajectory
	// length are clamped to it.
	MaxKeyframes = 100
)

var (
	ErrNoSource         = errors.New("custom state, canonical state or preset name required")
	ErrUnknownSource    = errors.New("unknown state or preset")
	ErrUnknownMode      = errors.New("unknown attractor mode")
	ErrInvalidKeyframes = errors.New("keyframe count out of range")
)

// Request describes an attractor prompt. An empty Mode means composite.
type Request struct {
	Mode          Mode
	PresetName    string
	CustomState   map[string]float64
	StyleModifier string
	KeyframeCount int
	Strength      float64
}

// Keyframe is one sampled step of a preset trajectory and its prompt.
type Keyframe struct {
	Step       int          `json:"step"`
	State      rhythm.State `json:"state"`
	Vocabulary Vocabulary   `json:"vocabulary"`
	Prompt     string       `json:"prompt"`
}

// Attractor is the rendered result. Composite fills Source, Prompt and
// Vocabulary; vocabulary mode leaves Prompt empty; sequence fills the preset
// fields and Keyframes.
type Attractor struct {
	Mode        Mode        `json:"mode"`
	Source      string      `json:"source,omitempty"`
	Prompt      string      `json:"prompt,omitempty"`
	Vocabulary  *Vocabulary `json:"vocabulary,omitempty"`
	Preset      string      `json:"preset,omitempty"`
	Description string      `json:"description,omitempty"`
	Period      int         `json:"period,omitempty"`
	Keyframes   []Keyframe  `json:"keyframes,omitempty"`
}

// Generate renders req.
func Generate(req Request) (*Attractor, error) {
	switch req.Mode {
	case "", ModeComposite:
		return composite(req)
	case ModeSequence:
		return sequence(req)
	case ModeVocabulary:
		return extract(req)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMode, req.Mode)
}

// Prompt joins the optional style, the lead and the keywords.
func Prompt(style string, keywords []string) string {
	parts := make([]string, 0, len(keywords)+2)
	if style = strings.TrimSpace(style); style != "" {
		parts = append(parts, style)
	}
	parts = append(parts, promptLead)
	parts = append(parts, keywords...)
	return strings.Join(parts, ", ")
}

func composite(req Request) (*Attractor, error) {
	state, source, err := resolveSource(req)
	if err != nil {
		return nil, err
	}
	vocab := Extract(state, req.Strength)
	return &Attractor{
		Mode:       ModeComposite,
		Source:     source,
		Prompt:     Prompt(req.StyleModifier, vocab.Keywords),
		Vocabulary: &vocab,
	}, nil
}

func extract(req Request) (*Attractor, error) {
	state, source, err := resolveSource(req)
	if err != nil {
		return nil, err
	}
	vocab := Extract(state, req.Strength)
	return &Attractor{Mode: ModeVocabulary, Source: source, Vocabulary: &vocab}, nil
}

// resolveSource picks a custom state first, then a canonical state, then
// the midpoint of a preset trajectory.
func resolveSource(req Request) (rhythm.State, string, error) {
	if len(req.CustomState) > 0 {
		return rhythm.StateFromMap(req.CustomState), "custom_state", nil
	}
	name := req.PresetName
	if name == "" {
		return rhythm.State{}, "", ErrNoSource
	}
	if state, err := rhythm.LookupState(name); err == nil {
		return state, "canonical_state:" + name, nil
	}
	if rhythm.IsPreset(name) {
		traj, err := rhythm.Trajectory(name)
		if err != nil {
			return rhythm.State{}, "", err
		}
		return traj[len(traj)/2], "preset_midpoint:" + name, nil
	}
	return rhythm.State{}, "", fmt.Errorf("%w: %s", ErrUnknownSource, name)
}

func sequence(req Request) (*Attractor, error) {
	if req.KeyframeCount <= 0 || req.KeyframeCount > MaxKeyframes {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKeyframes, req.KeyframeCount)
	}
	preset, err := rhythm.LookupPreset(req.PresetName)
	if err != nil {
		return nil, err
	}
	traj, err := rhythm.Trajectory(preset.Name)
	if err != nil {
		return nil, err
	}

	total := len(traj)
	count := req.KeyframeCount
	if count > total {
		count = total
	}
	stride := total / count

	frames := make([]Keyframe, 0, count)
	for i := 0; i < count; i++ {
		idx := i * stride
		vocab := Extract(traj[idx], req.Strength)
		frames = append(frames, Keyframe{
			Step:       idx,
			State:      traj[idx],
			Vocabulary: vocab,
			Prompt:     Prompt(req.StyleModifier, vocab.Keywords),
		})
	}

	return &Attractor{
		Mode:        ModeSequence,
		Preset:      preset.Name,
		Description: preset.Description,
		Period:      preset.StepsPerCycle,
		Keyframes:   frames,
	}, nil
}
