// internal/workers/dynamics/generate-attractor-prompt/handler.go
package generateattractorprompt

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"window-display-workers/internal/common/errors"
	"window-display-workers/internal/common/logger"
	"window-display-workers/internal/common/metrics"
	"window-display-workers/internal/common/validation"
	"window-display-workers/internal/display/rhythm"
	"window-display-workers/internal/display/vocabulary"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "generate-attractor-prompt"
)

type Handler struct {
	config      *Config
	visualTypes []string
	validator   *validation.Validator
	errors      *errors.ErrorHandler
	logger      logger.Logger
}

func NewHandler(config *Config, validator *validation.Validator, log logger.Logger) *Handler {
	types := vocabulary.VisualTypes()
	names := make([]string, len(types))
	for i, vt := range types {
		names[i] = vt.Name
	}

	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:      config,
		visualTypes: names,
		validator:   validator,
		errors:      errors.NewErrorHandler(l),
		logger:      l,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	timer := metrics.StartJob(TaskType)

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(job)
	if err != nil {
		h.failJob(ctx, client, job, timer, err)
		return
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, timer, err)
		return
	}

	h.completeJob(ctx, client, job, timer, output)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	if h.validator != nil {
		result, err := h.validator.Validate(TaskType, job.Variables)
		if err != nil {
			return nil, errors.NewParseError(err)
		}
		if !result.Valid {
			metrics.SchemaRejections.WithLabelValues(TaskType).Inc()
			return nil, errors.NewSchemaValidationFailedError(result.Summary()).
				WithMetadata("fields", result.Fields()).
				WithMetadata("values", result.Values())
		}
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewParseError(err)
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewTimeoutError(TaskType, err)
	}

	req := vocabulary.Request{
		Mode:          vocabulary.Mode(input.Mode),
		PresetName:    input.PresetName,
		CustomState:   input.CustomState,
		StyleModifier: input.StyleModifier,
		KeyframeCount: input.KeyframeCount,
		Strength:      h.config.DefaultStrength,
	}
	if req.StyleModifier == "" {
		req.StyleModifier = h.config.DefaultStyle
	}
	if req.KeyframeCount == 0 {
		req.KeyframeCount = h.config.DefaultKeyframeCount
	}
	if input.Strength != nil {
		req.Strength = *input.Strength
	}

	attractor, err := vocabulary.Generate(req)
	if err != nil {
		return nil, toStandardError(err)
	}

	h.logger.Debug("attractor prompt generated", map[string]interface{}{
		"mode":      string(attractor.Mode),
		"source":    attractor.Source,
		"preset":    attractor.Preset,
		"keyframes": len(attractor.Keyframes),
	})

	return &Output{
		PromptID:    uuid.NewString(),
		Attractor:   attractor,
		VisualTypes: h.visualTypes,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func toStandardError(err error) error {
	switch {
	case stderrors.Is(err, vocabulary.ErrUnknownSource), stderrors.Is(err, rhythm.ErrUnknownPreset):
		return errors.NewUnknownPresetError(err.Error())
	case stderrors.Is(err, vocabulary.ErrNoSource):
		return errors.NewInvalidParameterError("presetName", err.Error())
	case stderrors.Is(err, vocabulary.ErrUnknownMode):
		return errors.NewInvalidParameterError("mode", err.Error())
	case stderrors.Is(err, vocabulary.ErrInvalidKeyframes):
		return errors.NewInvalidParameterError("keyframeCount", err.Error())
	default:
		return errors.NewInternalError(err)
	}
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, timer *metrics.JobTimer, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.failJob(ctx, client, job, timer, errors.NewInternalError(err))
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		timer.Failed(string(errors.ErrCodeInternal))
		return
	}

	timer.Completed()
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, timer *metrics.JobTimer, err error) {
	bpmnErr := h.errors.HandleJobError(ctx, client, job, err)
	timer.Failed(bpmnErr.Code)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
