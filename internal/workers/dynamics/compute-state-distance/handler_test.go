// internal/workers/dynamics/compute-state-distance/handler_test.go
package computestatedistance

import (
	"context"
	"encoding/json"
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
	return &Config{
		Timeout: 5 * time.Second,
	}
}

func jobWith(vars string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 11, Type: TaskType, Variables: vars, Retries: 1}}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Distance(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		StateA: "luxury_isolation",
		StateB: "abundance_wall",
	})
	require.NoError(t, err)

	assert.Equal(t, 1.3838, output.EuclideanDistance)
	assert.Equal(t, 0.85, output.Differences[rhythm.CompositionalTension])
	assert.Equal(t, -0.8, output.Differences[rhythm.NegativeSpaceRatio])
	assert.Len(t, output.Differences, len(rhythm.Parameters))
	assert.Len(t, output.Semantics, len(rhythm.Parameters))
}

func TestHandler_Execute_SameStateIsZero(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		StateA: "narrative_journey",
		StateB: "narrative_journey",
	})
	require.NoError(t, err)
	assert.Zero(t, output.EuclideanDistance)
	for _, d := range output.Differences {
		assert.Zero(t, d)
	}
}

func TestHandler_Execute_OutputVariables(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		StateA: "editorial_minimal",
		StateB: "theatrical_drama",
	})
	require.NoError(t, err)

	data, err := json.Marshal(output)
	require.NoError(t, err)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &vars))
	assert.Contains(t, vars, "euclideanDistance")
	assert.Contains(t, vars, "differences")
	assert.Equal(t, "editorial_minimal", vars["stateA"])
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_UnknownState(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		StateA: "luxury_isolation",
		StateB: "baroque",
	})
	assert.Nil(t, output)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok, "expected StandardError, got %T", err)
	assert.Equal(t, errors.ErrCodeUnknownDisplayState, stdErr.Code)
	assert.Contains(t, stdErr.Details, "baroque")
}

func TestHandler_ParseInput(t *testing.T) {
	validator, err := validation.NewValidator(registry.Default())
	require.NoError(t, err)
	handler := NewHandler(createTestConfig(), validator, logger.NewTestLogger(t))

	_, err = handler.parseInput(jobWith(`{"stateA":"luxury_isolation"}`))
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeSchemaValidationFailed, stdErr.Code)
	assert.Equal(t, []string{"stateB"}, stdErr.Metadata["fields"])

	input, err := handler.parseInput(jobWith(`{"stateA":"luxury_isolation","stateB":"curated_collection"}`))
	require.NoError(t, err)
	assert.Equal(t, "curated_collection", input.StateB)
}
