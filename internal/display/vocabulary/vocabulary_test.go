package vocabulary

import (
	"strings"
	"testing"

	"window-display-workers/internal/display/rhythm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func canonical(t *testing.T, name string) rhythm.State {
	t.Helper()
	s, err := rhythm.LookupState(name)
	require.NoError(t, err)
	return s
}

// ==========================
// Extraction Tests
// ==========================

func TestExtract_NearestType(t *testing.T) {
	tests := []struct {
		state    string
		wantType string
		wantDist float64
	}{
		{"abundance_wall", "abundance_energy", 0},
		{"luxury_isolation", "luxury_restraint", 0.1},
		{"editorial_minimal", "editorial_cool", 0},
		{"immersive_spectacle", "spectacle_immersion", 0},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			v := Extract(canonical(t, tt.state), 1.0)
			assert.Equal(t, tt.wantType, v.NearestType)
			assert.InDelta(t, tt.wantDist, v.Distance, 1e-9)
			assert.Len(t, v.Keywords, 7)
		})
	}
}

func TestExtract_StrengthThinsKeywords(t *testing.T) {
	state := canonical(t, "theatrical_drama")

	tests := []struct {
		strength float64
		want     int
	}{
		{0.0, 3},
		{0.19, 3},
		{0.2, 5},
		{0.49, 5},
		{0.5, 7},
		{1.0, 7},
	}

	for _, tt := range tests {
		v := Extract(state, tt.strength)
		assert.Len(t, v.Keywords, tt.want, "strength %v", tt.strength)
		assert.Equal(t, "theatrical_grandeur", v.NearestType)
	}
}

func TestExtract_KeywordsAreCopied(t *testing.T) {
	v := Extract(canonical(t, "abundance_wall"), 1.0)
	v.Keywords[0] = "mutated"

	again := Extract(canonical(t, "abundance_wall"), 1.0)
	assert.Equal(t, "dense repetitive product grid filling entire window plane", again.Keywords[0])
}

func TestVisualTypes(t *testing.T) {
	types := VisualTypes()
	require.Len(t, types, 5)
	for _, vt := range types {
		assert.Len(t, vt.Keywords, 7, vt.Name)
	}
}

// ==========================
// Composite Prompt Tests
// ==========================

func TestGenerate_CompositeSources(t *testing.T) {
	midpoint, err := rhythm.Trajectory("seasonal_transition")
	require.NoError(t, err)

	tests := []struct {
		name       string
		req        Request
		wantSource string
		wantState  rhythm.State
	}{
		{
			name:       "custom state wins",
			req:        Request{PresetName: "drama_pulse", CustomState: map[string]float64{"lighting_drama": 0.1}, Strength: 1},
			wantSource: "custom_state",
			wantState:  rhythm.StateFromMap(map[string]float64{"lighting_drama": 0.1}),
		},
		{
			name:       "canonical state",
			req:        Request{PresetName: "luxury_isolation", Strength: 1},
			wantSource: "canonical_state:luxury_isolation",
			wantState:  canonical(t, "luxury_isolation"),
		},
		{
			name:       "preset midpoint",
			req:        Request{Mode: ModeComposite, PresetName: "seasonal_transition", Strength: 1},
			wantSource: "preset_midpoint:seasonal_transition",
			wantState:  midpoint[len(midpoint)/2],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.req)
			require.NoError(t, err)
			assert.Equal(t, ModeComposite, got.Mode)
			assert.Equal(t, tt.wantSource, got.Source)
			require.NotNil(t, got.Vocabulary)
			assert.Equal(t, tt.wantState, got.Vocabulary.State)
			assert.True(t, strings.HasPrefix(got.Prompt, "Shop window display photograph:, "), got.Prompt)
			assert.Empty(t, got.Keyframes)
		})
	}
}

func TestGenerate_CompositeStyle(t *testing.T) {
	got, err := Generate(Request{PresetName: "abundance_wall", StyleModifier: "photorealistic", Strength: 0.1})
	require.NoError(t, err)

	assert.Equal(t, "photorealistic, Shop window display photograph:, "+
		"dense repetitive product grid filling entire window plane, "+
		"flat compressed 2D graphic composition, "+
		"bright even shadowless ambient illumination", got.Prompt)
}

func TestGenerate_CompositeErrors(t *testing.T) {
	_, err := Generate(Request{})
	assert.ErrorIs(t, err, ErrNoSource)

	_, err = Generate(Request{PresetName: "baroque_opulence"})
	assert.ErrorIs(t, err, ErrUnknownSource)
	assert.Contains(t, err.Error(), "baroque_opulence")

	_, err = Generate(Request{Mode: "loop", PresetName: "drama_pulse"})
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestGenerate_VocabularyMode(t *testing.T) {
	got, err := Generate(Request{
		Mode:          ModeVocabulary,
		CustomState:   map[string]float64{rhythm.CompositionalTension: 0.95, rhythm.DepthComplexity: 0.1},
		StyleModifier: "ignored",
		Strength:      0.3,
	})
	require.NoError(t, err)

	assert.Equal(t, ModeVocabulary, got.Mode)
	assert.Equal(t, "custom_state", got.Source)
	assert.Empty(t, got.Prompt)
	assert.Empty(t, got.Keyframes)
	require.NotNil(t, got.Vocabulary)
	assert.Equal(t, "abundance_energy", got.Vocabulary.NearestType)
	assert.Len(t, got.Vocabulary.Keywords, 5)
	assert.Equal(t, 0.5, got.Vocabulary.State.LightingDrama)

	_, err = Generate(Request{Mode: ModeVocabulary})
	assert.ErrorIs(t, err, ErrNoSource)
}

// ==========================
// Sequence Prompt Tests
// ==========================

func TestGenerate_SequenceKeyframes(t *testing.T) {
	got, err := Generate(Request{Mode: ModeSequence, PresetName: "seasonal_transition", KeyframeCount: 4, StyleModifier: "fashion editorial", Strength: 1})
	require.NoError(t, err)

	assert.Equal(t, ModeSequence, got.Mode)
	assert.Equal(t, "seasonal_transition", got.Preset)
	assert.Equal(t, 24, got.Period)
	require.Len(t, got.Keyframes, 4)

	traj, err := rhythm.Trajectory("seasonal_transition")
	require.NoError(t, err)
	for i, kf := range got.Keyframes {
		assert.Equal(t, i*18, kf.Step)
		assert.Equal(t, traj[kf.Step], kf.State)
		assert.True(t, strings.HasPrefix(kf.Prompt, "fashion editorial, Shop window display photograph:, "))
	}
}

func TestGenerate_SequenceMoreKeyframesThanSteps(t *testing.T) {
	got, err := Generate(Request{Mode: ModeSequence, PresetName: "narrative_shift", KeyframeCount: 60, Strength: 1})
	require.NoError(t, err)

	// 48 steps: the count clamps to the trajectory, one keyframe per step
	require.Len(t, got.Keyframes, 48)
	for i, kf := range got.Keyframes {
		assert.Equal(t, i, kf.Step)
	}
}

func TestGenerate_SequenceErrors(t *testing.T) {
	_, err := Generate(Request{Mode: ModeSequence, PresetName: "luxury_isolation", KeyframeCount: 4})
	assert.ErrorIs(t, err, rhythm.ErrUnknownPreset)

	for _, count := range []int{0, -3, MaxKeyframes + 1, 1 << 60} {
		got, err := Generate(Request{Mode: ModeSequence, PresetName: "drama_pulse", KeyframeCount: count, Strength: 1})
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrInvalidKeyframes, "count %d", count)
	}
}

func TestGenerate_SequenceAtKeyframeLimit(t *testing.T) {
	got, err := Generate(Request{Mode: ModeSequence, PresetName: "drama_pulse", KeyframeCount: MaxKeyframes, Strength: 1})
	require.NoError(t, err)

	// drama_pulse has 80 steps
	assert.Len(t, got.Keyframes, 80)
	assert.Equal(t, 79, got.Keyframes[79].Step)
}
