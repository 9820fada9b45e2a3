// internal/workers/dynamics/generate-rhythmic-sequence/handler.go
package generaterhythmicsequence

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"window-display-workers/internal/common/errors"
	"window-display-workers/internal/common/logger"
	"window-display-workers/internal/common/metrics"
	"window-display-workers/internal/common/validation"
	"window-display-workers/internal/display/rhythm"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-rhythmic-sequence"
)

type Handler struct {
	config    *Config
	validator *validation.Validator
	errors    *errors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, validator *validation.Validator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		validator: validator,
		errors:    errors.NewErrorHandler(l),
		logger:    l,
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

	req, preset, err := h.buildRequest(input)
	if err != nil {
		return nil, toStandardError(err)
	}

	seq, err := rhythm.Generate(req)
	if err != nil {
		if stderrors.Is(err, rhythm.ErrInvalidShape) {
			return nil, errors.NewInvalidParameterError(shapeField(req), err.Error())
		}
		return nil, toStandardError(err)
	}

	h.logger.Debug("sequence generated", map[string]interface{}{
		"stateA":     seq.StateA,
		"stateB":     seq.StateB,
		"pattern":    string(seq.Pattern),
		"totalSteps": seq.TotalSteps,
	})

	output := &Output{Sequence: seq, TotalSteps: seq.TotalSteps}
	if preset != nil {
		output.Preset = preset.Name
		output.Description = preset.Description
	}
	return output, nil
}

// buildRequest resolves a preset or fills defaults for an explicit pair.
func (h *Handler) buildRequest(input *Input) (rhythm.SequenceRequest, *rhythm.Preset, error) {
	if input.PresetName != "" {
		p, err := rhythm.LookupPreset(input.PresetName)
		if err != nil {
			return rhythm.SequenceRequest{}, nil, err
		}
		return rhythm.SequenceRequest{
			StateA:        p.StateA,
			StateB:        p.StateB,
			Pattern:       p.Pattern,
			Cycles:        p.Cycles,
			StepsPerCycle: p.StepsPerCycle,
			PhaseOffset:   input.PhaseOffset,
		}, &p, nil
	}

	req := rhythm.SequenceRequest{
		StateA:        input.StateA,
		StateB:        input.StateB,
		Pattern:       rhythm.Pattern(input.Pattern),
		Cycles:        input.NumCycles,
		StepsPerCycle: input.StepsPerCycle,
		PhaseOffset:   input.PhaseOffset,
	}
	if req.Pattern == "" {
		req.Pattern = h.config.DefaultPattern
	}
	if req.Cycles == 0 {
		req.Cycles = h.config.DefaultCycles
	}
	if req.StepsPerCycle == 0 {
		req.StepsPerCycle = h.config.DefaultStepsPerCycle
	}
	return req, nil, nil
}

// shapeField names the input that pushed the sequence out of range.
func shapeField(req rhythm.SequenceRequest) string {
	if req.StepsPerCycle <= 0 || req.StepsPerCycle > rhythm.MaxStepsPerCycle {
		return "stepsPerCycle"
	}
	return "numCycles"
}

func toStandardError(err error) error {
	switch {
	case stderrors.Is(err, rhythm.ErrUnknownState):
		return errors.NewUnknownDisplayStateError(err.Error())
	case stderrors.Is(err, rhythm.ErrUnknownPreset):
		return errors.NewUnknownPresetError(err.Error())
	case stderrors.Is(err, rhythm.ErrUnknownPattern):
		return errors.NewInvalidParameterError("pattern", err.Error())
	case stderrors.Is(err, rhythm.ErrInvalidShape):
		return errors.NewInvalidParameterError("numCycles", err.Error())
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
