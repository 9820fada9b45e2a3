// internal/workers/display/map-display-parameters/handler_test.go
package mapdisplayparameters

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"window-display-workers/internal/common/database"
	"window-display-workers/internal/common/errors"
	"window-display-workers/internal/common/logger"
	"window-display-workers/internal/common/validation"
	"window-display-workers/pkg/registry"

	"github.com/alicebob/miniredis/v2"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/redis/go-redis/v9"
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

func setupSpecCache(t *testing.T) (*miniredis.Miniredis, *database.SpecCache) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, database.NewSpecCache(client, "display:spec:", time.Hour)
}

func newTestValidator(t *testing.T) *validation.Validator {
	v, err := validation.NewValidator(registry.Default())
	require.NoError(t, err)
	return v
}

func createTestInput() *Input {
	return &Input{
		WindowWidthFt:     10,
		WindowHeightFt:    8,
		CompositionType:   "pyramidal",
		DepthStaging:      "theatrical_depth",
		LightingFramework: "accent_dramatic",
		ViewerContext:     "street_pedestrian",
	}
}

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

func jobWith(vars string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 42, Type: TaskType, Variables: vars, Retries: 3}}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_MapsScenario(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, nil, nil, newTestLogger(t))

	output, err := handler.Execute(context.Background(), createTestInput())
	require.NoError(t, err)
	require.NotNil(t, output.GeometricSpec)

	spec := output.GeometricSpec
	assert.InDelta(t, 1.25, spec.AspectRatio, 1e-9)
	assert.Len(t, spec.DepthBands, 3)
	assert.Less(t, spec.FocalPoint.Absolute.Y, 0.618*8)
	assert.False(t, output.Cached)

	assert.Equal(t, "upward_convergent", output.Metadata.Composition.EyeMovement)
	assert.NotEmpty(t, output.Metadata.Lighting.ShadowQuality)
	assert.NotEmpty(t, output.Metadata.SightLine.Description)
}

func TestHandler_Execute_OutputVariables(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, nil, nil, newTestLogger(t))

	output, err := handler.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	data, err := json.Marshal(output)
	require.NoError(t, err)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &vars))
	assert.Contains(t, vars, "geometricSpec")
	assert.Contains(t, vars, "metadata")
	assert.Equal(t, false, vars["cached"])

	spec := vars["geometricSpec"].(map[string]interface{})
	assert.Contains(t, spec, "focalPoint")
	assert.Contains(t, spec, "depthBands")
	assert.Contains(t, spec, "lighting")
}

// ==========================
// Cache Tests
// ==========================

func TestHandler_Execute_CachesResult(t *testing.T) {
	mr, cache := setupSpecCache(t)
	handler := NewHandler(createTestConfig(), cache, nil, nil, newTestLogger(t))
	ctx := context.Background()

	first, err := handler.Execute(ctx, createTestInput())
	require.NoError(t, err)
	assert.False(t, first.Cached)

	key := cache.Key(10, 8, "pyramidal", "theatrical_depth", "accent_dramatic", "street_pedestrian")
	assert.True(t, mr.Exists(key))

	second, err := handler.Execute(ctx, createTestInput())
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.GeometricSpec, second.GeometricSpec)
	assert.Equal(t, first.Metadata, second.Metadata)
}

func TestHandler_Execute_CacheDownRecomputes(t *testing.T) {
	mr, cache := setupSpecCache(t)
	handler := NewHandler(createTestConfig(), cache, nil, nil, newTestLogger(t))
	mr.Close()

	output, err := handler.Execute(context.Background(), createTestInput())
	require.NoError(t, err)
	assert.False(t, output.Cached)
	assert.Len(t, output.GeometricSpec.DepthBands, 3)
}

func TestHandler_Execute_InvalidInputIsNotCached(t *testing.T) {
	mr, cache := setupSpecCache(t)
	handler := NewHandler(createTestConfig(), cache, nil, nil, newTestLogger(t))

	input := createTestInput()
	input.WindowWidthFt = 0

	_, err := handler.Execute(context.Background(), input)
	require.Error(t, err)
	assert.Empty(t, mr.Keys())
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_InvalidParameters(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(in *Input)
		wantField string
	}{
		{"zero width", func(in *Input) { in.WindowWidthFt = 0 }, "window_width_ft"},
		{"negative height", func(in *Input) { in.WindowHeightFt = -2 }, "window_height_ft"},
		{"unknown composition", func(in *Input) { in.CompositionType = "nonexistent" }, "composition_type"},
		{"unknown viewer", func(in *Input) { in.ViewerContext = "drone" }, "viewer_context"},
	}

	handler := NewHandler(createTestConfig(), nil, nil, nil, newTestLogger(t))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := createTestInput()
			tt.mutate(input)

			output, err := handler.Execute(context.Background(), input)
			assert.Nil(t, output)

			stdErr, ok := err.(*errors.StandardError)
			require.True(t, ok, "expected StandardError, got %T", err)
			assert.Equal(t, errors.ErrCodeInvalidParameter, stdErr.Code)
			assert.Equal(t, tt.wantField, stdErr.Metadata["field"])
			assert.False(t, stdErr.Retryable)
		})
	}
}

func TestHandler_Execute_ExpiredContext(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, nil, nil, newTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := handler.Execute(ctx, createTestInput())
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeTimeout, stdErr.Code)
}

func TestHandler_ParseInput(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, nil, newTestValidator(t), newTestLogger(t))

	tests := []struct {
		name     string
		vars     string
		wantCode errors.ErrorCode
	}{
		{
			name:     "malformed json",
			vars:     `{"windowWidthFt":`,
			wantCode: errors.ErrCodeParseError,
		},
		{
			name:     "unknown tag rejected by schema",
			vars:     `{"windowWidthFt":10,"windowHeightFt":8,"compositionType":"nonexistent","depthStaging":"theatrical_depth","lightingFramework":"accent_dramatic","viewerContext":"street_pedestrian"}`,
			wantCode: errors.ErrCodeSchemaValidationFailed,
		},
		{
			name:     "missing field",
			vars:     `{"windowWidthFt":10}`,
			wantCode: errors.ErrCodeSchemaValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.parseInput(jobWith(tt.vars))
			stdErr, ok := err.(*errors.StandardError)
			require.True(t, ok, "expected StandardError, got %T", err)
			assert.Equal(t, tt.wantCode, stdErr.Code)
		})
	}

	_, err := handler.parseInput(jobWith(`{"windowWidthFt":10,"windowHeightFt":8,"compositionType":"nonexistent","depthStaging":"theatrical_depth","lightingFramework":"accent_dramatic","viewerContext":"street_pedestrian"}`))
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, []string{"compositionType"}, stdErr.Metadata["fields"])
	assert.Equal(t, map[string]interface{}{"compositionType": "nonexistent"}, stdErr.Metadata["values"])

	input, err := handler.parseInput(jobWith(`{"windowWidthFt":12.5,"windowHeightFt":9,"compositionType":"radial","depthStaging":"shallow_focus","lightingFramework":"cool_modern","viewerContext":"close_inspection","orderId":"o-1"}`))
	require.NoError(t, err)
	assert.Equal(t, 12.5, input.WindowWidthFt)
	assert.Equal(t, "radial", input.CompositionType)
}
