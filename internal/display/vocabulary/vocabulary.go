// Package vocabulary maps a point in display parameter space onto the nearest
// canonical visual type and turns its keywords into image prompts.
package vocabulary

import (
	"math"

	"window-display-workers/internal/display/rhythm"
)

// VisualType is a canonical visual archetype anchored in parameter space.
type VisualType struct {
	Name     string       `json:"name"`
	Coords   rhythm.State `json:"coords"`
	Keywords []string     `json:"keywords"`
}

var visualTypes = []VisualType{
	{
		Name:   "luxury_restraint",
		Coords: rhythm.State{CompositionalTension: 0.10, DepthComplexity: 0.30, LightingDrama: 0.35, ViewingIntimacy: 0.85, NegativeSpaceRatio: 0.90},
		Keywords: []string{
			"single hero product in vast negative space",
			"soft directional key light with graduated shadows",
			"neutral matte backdrop",
			"precise golden-ratio placement",
			"intimate close-inspection viewing distance",
			"museum-quality isolation pedestal",
			"restrained monochromatic palette",
		},
	},
	{
		Name:   "theatrical_grandeur",
		Coords: rhythm.State{CompositionalTension: 0.60, DepthComplexity: 0.85, LightingDrama: 0.90, ViewingIntimacy: 0.50, NegativeSpaceRatio: 0.35},
		Keywords: []string{
			"dramatic three-zone depth staging foreground midground background",
			"high-contrast accent spotlights with hard-edged shadows",
			"sculptural uplighting from below at 25 degrees",
			"rich warm color temperature 3200K tungsten glow",
			"pyramidal composition rising to apex focal point",
			"theatrical curtain framing at window edges",
			"street-level pedestrian viewing geometry",
		},
	},
	{
		Name:   "abundance_energy",
		Coords: rhythm.State{CompositionalTension: 0.95, DepthComplexity: 0.10, LightingDrama: 0.15, ViewingIntimacy: 0.20, NegativeSpaceRatio: 0.10},
		Keywords: []string{
			"dense repetitive product grid filling entire window plane",
			"flat compressed 2D graphic composition",
			"bright even shadowless ambient illumination",
			"rhythmic scanning eye movement pattern",
			"maximum visual density minimal negative space",
			"bold pop-art color saturation",
			"passing-vehicle scale legibility",
		},
	},
	{
		Name:   "editorial_cool",
		Coords: rhythm.State{CompositionalTension: 0.15, DepthComplexity: 0.15, LightingDrama: 0.50, ViewingIntimacy: 0.80, NegativeSpaceRatio: 0.85},
		Keywords: []string{
			"minimal editorial composition with deliberate asymmetry",
			"crisp daylight-balanced cross-lighting at 5600K",
			"clean white or pale grey backdrop",
			"precise typographic-scale spatial intervals",
			"shallow depth single focal plane",
			"gallery-like negative space surrounding subject",
			"close-inspection detail-revealing perspective",
		},
	},
	{
		Name:   "spectacle_immersion",
		Coords: rhythm.State{CompositionalTension: 0.75, DepthComplexity: 0.95, LightingDrama: 0.95, ViewingIntimacy: 0.45, NegativeSpaceRatio: 0.25},
		Keywords: []string{
			"radial composition emanating from luminous center",
			"forced-perspective exaggerated depth staging",
			"theatrical uplighting creating monumental scale",
			"warm-to-cool color temperature gradient",
			"immersive wraparound environmental staging",
			"dynamic outward-from-center eye movement",
			"multiple overlapping depth planes",
		},
	},
}

// VisualTypes returns the archetypes in a stable order.
func VisualTypes() []VisualType {
	out := make([]VisualType, len(visualTypes))
	for i, vt := range visualTypes {
		vt.Keywords = append([]string(nil), vt.Keywords...)
		out[i] = vt
	}
	return out
}

// Vocabulary is the result of matching a state to its nearest archetype.
type Vocabulary struct {
	NearestType string       `json:"nearestType"`
	Distance    float64      `json:"distance"`
	Keywords    []string     `json:"keywords"`
	Strength    float64      `json:"strength"`
	State       rhythm.State `json:"state"`
}

// Extract finds the nearest visual type to state. Strength thins the
// keyword list: below 0.2 keeps three, below 0.5 keeps five.
func Extract(state rhythm.State, strength float64) Vocabulary {
	best := 0
	bestDist := math.Inf(1)
	for i, vt := range visualTypes {
		if d := state.Distance(vt.Coords); d < bestDist {
			best, bestDist = i, d
		}
	}

	keywords := visualTypes[best].Keywords
	switch {
	case strength < 0.2:
		keywords = keywords[:3]
	case strength < 0.5:
		keywords = keywords[:5]
	}

	return Vocabulary{
		NearestType: visualTypes[best].Name,
		Distance:    math.Round(bestDist*1e4) / 1e4,
		Keywords:    append([]string(nil), keywords...),
		Strength:    strength,
		State:       state,
	}
}
