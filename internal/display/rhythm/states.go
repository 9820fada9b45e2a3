// Package rhythm models a window display as a point in a five-dimensional
// normalized parameter space and produces periodic trajectories between
// canonical display states.
package rhythm

import (
	"errors"
	"fmt"
	"math"
)

const (
	CompositionalTension = "compositional_tension"
	DepthComplexity      = "depth_complexity"
	LightingDrama        = "lighting_drama"
	ViewingIntimacy      = "viewing_intimacy"
	NegativeSpaceRatio   = "negative_space_ratio"
)

// Parameters lists the dimensions in vector order.
var Parameters = []string{
	CompositionalTension,
	DepthComplexity,
	LightingDrama,
	ViewingIntimacy,
	NegativeSpaceRatio,
}

// ParameterSemantics describes the two ends of each dimension.
var ParameterSemantics = map[string]string{
	CompositionalTension: "0.0 = sparse isolation, 1.0 = dense dynamic",
	DepthComplexity:      "0.0 = flat 2D plane, 1.0 = deep theatrical staging",
	LightingDrama:        "0.0 = soft ambient even, 1.0 = harsh theatrical accent",
	ViewingIntimacy:      "0.0 = distant/passing, 1.0 = close/detailed",
	NegativeSpaceRatio:   "0.0 = packed/filled, 1.0 = open/breathable",
}

var (
	ErrUnknownState   = errors.New("unknown display state")
	ErrUnknownPreset  = errors.New("unknown rhythmic preset")
	ErrUnknownPattern = errors.New("unknown oscillation pattern")
	ErrInvalidShape   = errors.New("cycles and steps per cycle out of range")
)

// State is a point in parameter space. Every coordinate lies in [0, 1].
type State struct {
	CompositionalTension float64 `json:"compositional_tension"`
	DepthComplexity      float64 `json:"depth_complexity"`
	LightingDrama        float64 `json:"lighting_drama"`
	ViewingIntimacy      float64 `json:"viewing_intimacy"`
	NegativeSpaceRatio   float64 `json:"negative_space_ratio"`
}

func (s State) Vector() [5]float64 {
	return [5]float64{
		s.CompositionalTension,
		s.DepthComplexity,
		s.LightingDrama,
		s.ViewingIntimacy,
		s.NegativeSpaceRatio,
	}
}

func fromVector(v [5]float64) State {
	return State{
		CompositionalTension: v[0],
		DepthComplexity:      v[1],
		LightingDrama:        v[2],
		ViewingIntimacy:      v[3],
		NegativeSpaceRatio:   v[4],
	}
}

// StateFromMap builds a State from named coordinates. Missing parameters
// default to the midpoint 0.5 and unknown keys are ignored.
func StateFromMap(m map[string]float64) State {
	var v [5]float64
	for i, name := range Parameters {
		if val, ok := m[name]; ok {
			v[i] = val
		} else {
			v[i] = 0.5
		}
	}
	return fromVector(v)
}

// Blend interpolates linearly from s toward other and rounds each
// coordinate to four decimals.
func (s State) Blend(other State, alpha float64) State {
	a, b := s.Vector(), other.Vector()
	var out [5]float64
	for i := range out {
		out[i] = round4(a[i]*(1-alpha) + b[i]*alpha)
	}
	return fromVector(out)
}

// Distance is the Euclidean distance between two states.
func (s State) Distance(other State) float64 {
	a, b := s.Vector(), other.Vector()
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

var stateOrder = []string{
	"luxury_isolation",
	"theatrical_drama",
	"abundance_wall",
	"editorial_minimal",
	"immersive_spectacle",
	"curated_collection",
	"narrative_journey",
}

var canonicalStates = map[string]State{
	"luxury_isolation":    {0.10, 0.40, 0.35, 0.85, 0.90},
	"theatrical_drama":    {0.55, 0.85, 0.90, 0.50, 0.40},
	"abundance_wall":      {0.95, 0.10, 0.15, 0.20, 0.10},
	"editorial_minimal":   {0.15, 0.15, 0.50, 0.80, 0.85},
	"immersive_spectacle": {0.75, 0.95, 0.95, 0.45, 0.25},
	"curated_collection":  {0.45, 0.60, 0.35, 0.55, 0.55},
	"narrative_journey":   {0.60, 0.70, 0.65, 0.50, 0.35},
}

// StateNames returns the canonical state names in a stable order.
func StateNames() []string {
	return append([]string(nil), stateOrder...)
}

// LookupState returns the canonical state called name.
func LookupState(name string) (State, error) {
	s, ok := canonicalStates[name]
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrUnknownState, name)
	}
	return s, nil
}

// StateDistance is the distance between two canonical states with the
// signed per-parameter difference b - a.
type StateDistance struct {
	StateA      string             `json:"stateA"`
	StateB      string             `json:"stateB"`
	Distance    float64            `json:"euclideanDistance"`
	Differences map[string]float64 `json:"parameterDifferences"`
}

// Distance compares two canonical states by name.
func Distance(nameA, nameB string) (*StateDistance, error) {
	a, err := LookupState(nameA)
	if err != nil {
		return nil, err
	}
	b, err := LookupState(nameB)
	if err != nil {
		return nil, err
	}

	va, vb := a.Vector(), b.Vector()
	diffs := make(map[string]float64, len(Parameters))
	for i, name := range Parameters {
		diffs[name] = round4(vb[i] - va[i])
	}
	return &StateDistance{
		StateA:      nameA,
		StateB:      nameB,
		Distance:    round4(a.Distance(b)),
		Differences: diffs,
	}, nil
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
