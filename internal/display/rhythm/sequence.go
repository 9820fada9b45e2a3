package rhythm

import (
	"fmt"
	"math"
)

// Pattern is an oscillation waveform mapping phase to a blend factor in [0, 1].
type Pattern string

const (
	Sinusoidal Pattern = "sinusoidal"
	Triangular Pattern = "triangular"
	Square     Pattern = "square"
)

// Patterns lists the supported waveforms.
var Patterns = []Pattern{Sinusoidal, Triangular, Square}

// Bounds on a rendered sequence.
const (
	MaxCycles        = 100
	MaxStepsPerCycle = 1000
	MaxTotalSteps    = 10000
)

// Oscillate samples pattern at steps points spread over cycles full periods.
func Oscillate(steps int, cycles float64, pattern Pattern) ([]float64, error) {
	if steps <= 0 || steps > MaxTotalSteps {
		return nil, fmt.Errorf("%w: %d steps", ErrInvalidShape, steps)
	}
	wave, err := waveform(pattern)
	if err != nil {
		return nil, err
	}
	out := make([]float64, steps)
	for i := range out {
		t := 2 * math.Pi * cycles * float64(i) / float64(steps)
		out[i] = wave(t)
	}
	return out, nil
}

func waveform(pattern Pattern) (func(t float64) float64, error) {
	switch pattern {
	case Sinusoidal:
		return func(t float64) float64 { return 0.5 * (1 + math.Sin(t)) }, nil
	case Triangular:
		return func(t float64) float64 {
			n := unitPhase(t)
			if n < 0.5 {
				return 2 * n
			}
			return 2 * (1 - n)
		}, nil
	case Square:
		return func(t float64) float64 {
			if unitPhase(t) < 0.5 {
				return 0
			}
			return 1
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownPattern, pattern)
}

func unitPhase(t float64) float64 {
	n := math.Mod(t/(2*math.Pi), 1)
	if n < 0 {
		n++
	}
	return n
}

// SequenceRequest describes an oscillation between two canonical states.
type SequenceRequest struct {
	StateA        string
	StateB        string
	Pattern       Pattern
	Cycles        int
	StepsPerCycle int
	PhaseOffset   float64
}

// Step is one sample of a sequence.
type Step struct {
	Step  int     `json:"step"`
	Phase float64 `json:"phase"`
	State State   `json:"state"`
}

// Sequence is a rendered oscillation.
type Sequence struct {
	StateA        string  `json:"stateA"`
	StateB        string  `json:"stateB"`
	Pattern       Pattern `json:"pattern"`
	Cycles        int     `json:"numCycles"`
	StepsPerCycle int     `json:"stepsPerCycle"`
	TotalSteps    int     `json:"totalSteps"`
	PhaseOffset   float64 `json:"phaseOffset"`
	Steps         []Step  `json:"sequence"`
}

// Generate renders req. A positive phase offset rotates the blend factors
// left by offset*StepsPerCycle samples.
func Generate(req SequenceRequest) (*Sequence, error) {
	a, err := LookupState(req.StateA)
	if err != nil {
		return nil, err
	}
	b, err := LookupState(req.StateB)
	if err != nil {
		return nil, err
	}
	if req.Cycles <= 0 || req.StepsPerCycle <= 0 ||
		req.Cycles > MaxCycles || req.StepsPerCycle > MaxStepsPerCycle {
		return nil, fmt.Errorf("%w: %d cycles of %d steps", ErrInvalidShape, req.Cycles, req.StepsPerCycle)
	}

	total := req.Cycles * req.StepsPerCycle
	if total > MaxTotalSteps {
		return nil, fmt.Errorf("%w: %d steps exceeds %d", ErrInvalidShape, total, MaxTotalSteps)
	}
	alphas, err := Oscillate(total, float64(req.Cycles), req.Pattern)
	if err != nil {
		return nil, err
	}
	if req.PhaseOffset > 0 {
		shift := int(math.Mod(math.Floor(req.PhaseOffset*float64(req.StepsPerCycle)), float64(total)))
		rotated := make([]float64, 0, total)
		rotated = append(rotated, alphas[shift:]...)
		alphas = append(rotated, alphas[:shift]...)
	}

	steps := make([]Step, total)
	for i, alpha := range alphas {
		steps[i] = Step{Step: i, Phase: round4(alpha), State: a.Blend(b, alpha)}
	}

	return &Sequence{
		StateA:        req.StateA,
		StateB:        req.StateB,
		Pattern:       req.Pattern,
		Cycles:        req.Cycles,
		StepsPerCycle: req.StepsPerCycle,
		TotalSteps:    total,
		PhaseOffset:   req.PhaseOffset,
		Steps:         steps,
	}, nil
}
