// internal/workers/dynamics/generate-rhythmic-sequence/handler_test.go
package generaterhythmicsequence

import (
	"context"
	"testing"
	"time"

	"window-display-workers/internal/common/errors"
	"window-display-workers/internal/common/logger"
	"window-display-workers/internal/common/validation"
	"window-display-workers/internal/display/rhythm"
	"window-display-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	cfg := LoadConfig()
	cfg.Timeout = 5 * time.Second
	return cfg
}

func newTestHandler(t *testing.T, validator *validation.Validator) *Handler {
	return NewHandler(createTestConfig(), validator, logger.NewTestLogger(t))
}

func jobWith(vars string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 7, Type: TaskType, Variables: vars, Retries: 1}}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_ExplicitPairUsesDefaults(t *testing.T) {
	handler := newTestHandler(t, nil)

	output, err := handler.Execute(context.Background(), &Input{
		StateA: "luxury_isolation",
		StateB: "abundance_wall",
	})
	require.NoError(t, err)

	seq := output.Sequence
	assert.Equal(t, rhythm.Sinusoidal, seq.Pattern)
	assert.Equal(t, 3, seq.Cycles)
	assert.Equal(t, 20, seq.StepsPerCycle)
	assert.Equal(t, 60, output.TotalSteps)
	assert.Len(t, seq.Steps, 60)
	assert.Empty(t, output.Preset)

	for i, step := range seq.Steps {
		assert.Equal(t, i, step.Step)
		assert.GreaterOrEqual(t, step.Phase, 0.0)
		assert.LessOrEqual(t, step.Phase, 1.0)
	}
}

func TestHandler_Execute_Preset(t *testing.T) {
	handler := newTestHandler(t, nil)

	output, err := handler.Execute(context.Background(), &Input{PresetName: "drama_pulse"})
	require.NoError(t, err)

	assert.Equal(t, "drama_pulse", output.Preset)
	assert.NotEmpty(t, output.Description)
	assert.Equal(t, "curated_collection", output.Sequence.StateA)
	assert.Equal(t, "immersive_spectacle", output.Sequence.StateB)
	assert.Equal(t, 80, output.TotalSteps)
}

func TestHandler_Execute_PresetIgnoresExplicitShape(t *testing.T) {
	handler := newTestHandler(t, nil)

	output, err := handler.Execute(context.Background(), &Input{
		PresetName: "narrative_shift",
		StateA:     "luxury_isolation",
		NumCycles:  9,
	})
	require.NoError(t, err)

	assert.Equal(t, "editorial_minimal", output.Sequence.StateA)
	assert.Equal(t, rhythm.Square, output.Sequence.Pattern)
	assert.Equal(t, 4, output.Sequence.Cycles)
}

func TestHandler_Execute_PhaseOffsetRotates(t *testing.T) {
	handler := newTestHandler(t, nil)
	ctx := context.Background()

	base, err := handler.Execute(ctx, &Input{PresetName: "seasonal_transition"})
	require.NoError(t, err)

	shifted, err := handler.Execute(ctx, &Input{PresetName: "seasonal_transition", PhaseOffset: 0.5})
	require.NoError(t, err)

	// half of a 24-step period
	assert.Equal(t, base.Sequence.Steps[12].Phase, shifted.Sequence.Steps[0].Phase)
	assert.Equal(t, base.Sequence.Steps[12].State, shifted.Sequence.Steps[0].State)
	assert.Equal(t, 0, shifted.Sequence.Steps[0].Step)
	assert.Equal(t, 0.5, shifted.Sequence.PhaseOffset)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     *Input
		wantCode  errors.ErrorCode
		wantField string
	}{
		{
			name:     "unknown state",
			input:    &Input{StateA: "luxury_isolation", StateB: "pop_up"},
			wantCode: errors.ErrCodeUnknownDisplayState,
		},
		{
			name:     "unknown preset",
			input:    &Input{PresetName: "lunar_cycle"},
			wantCode: errors.ErrCodeUnknownPreset,
		},
		{
			name:      "unknown pattern",
			input:     &Input{StateA: "luxury_isolation", StateB: "abundance_wall", Pattern: "sawtooth"},
			wantCode:  errors.ErrCodeInvalidParameter,
			wantField: "pattern",
		},
		{
			name:      "negative cycles",
			input:     &Input{StateA: "luxury_isolation", StateB: "abundance_wall", NumCycles: -1},
			wantCode:  errors.ErrCodeInvalidParameter,
			wantField: "numCycles",
		},
		{
			name:      "overflowing shape",
			input:     &Input{StateA: "luxury_isolation", StateB: "abundance_wall", NumCycles: 1 << 32, StepsPerCycle: 1 << 32, PhaseOffset: 0.5},
			wantCode:  errors.ErrCodeInvalidParameter,
			wantField: "stepsPerCycle",
		},
		{
			name:      "huge steps per cycle",
			input:     &Input{StateA: "luxury_isolation", StateB: "abundance_wall", NumCycles: 3, StepsPerCycle: 1 << 62},
			wantCode:  errors.ErrCodeInvalidParameter,
			wantField: "stepsPerCycle",
		},
		{
			name:      "too many total steps",
			input:     &Input{StateA: "luxury_isolation", StateB: "abundance_wall", NumCycles: 50, StepsPerCycle: 1000},
			wantCode:  errors.ErrCodeInvalidParameter,
			wantField: "numCycles",
		},
	}

	handler := newTestHandler(t, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), tt.input)
			assert.Nil(t, output)

			stdErr, ok := err.(*errors.StandardError)
			require.True(t, ok, "expected StandardError, got %T", err)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.False(t, stdErr.Retryable)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, stdErr.Metadata["field"])
			}
		})
	}
}

func TestHandler_Execute_ExpiredContext(t *testing.T) {
	handler := newTestHandler(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := handler.Execute(ctx, &Input{PresetName: "drama_pulse"})
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeTimeout, stdErr.Code)
}

func TestHandler_ParseInput(t *testing.T) {
	validator, err := validation.NewValidator(registry.Default())
	require.NoError(t, err)
	handler := newTestHandler(t, validator)

	_, err = handler.parseInput(jobWith(`{"stateA":"luxury_isolation","stateB":"abundance_wall","pattern":"sawtooth"}`))
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeSchemaValidationFailed, stdErr.Code)
	assert.Equal(t, []string{"pattern"}, stdErr.Metadata["fields"])

	_, err = handler.parseInput(jobWith(`{"stateA":"luxury_isolation","stateB":"abundance_wall","numCycles":4294967296,"stepsPerCycle":4294967296,"phaseOffset":0.5}`))
	stdErr, ok = err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeSchemaValidationFailed, stdErr.Code)
	assert.Equal(t, []string{"numCycles", "stepsPerCycle"}, stdErr.Metadata["fields"])

	_, err = handler.parseInput(jobWith(`{"presetName":`))
	stdErr, ok = err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeParseError, stdErr.Code)

	input, err := handler.parseInput(jobWith(`{"presetName":"intimacy_sweep","phaseOffset":0.25,"campaignId":"c-9"}`))
	require.NoError(t, err)
	assert.Equal(t, "intimacy_sweep", input.PresetName)
	assert.Equal(t, 0.25, input.PhaseOffset)
}
