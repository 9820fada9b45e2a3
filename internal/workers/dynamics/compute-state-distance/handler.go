// internal/workers/dynamics/compute-state-distance/handler.go
package computestatedistance

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
	TaskType = "compute-state-distance"
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

	d, err := rhythm.Distance(input.StateA, input.StateB)
	if err != nil {
		if stderrors.Is(err, rhythm.ErrUnknownState) {
			return nil, errors.NewUnknownDisplayStateError(err.Error())
		}
		return nil, errors.NewInternalError(err)
	}

	return &Output{
		StateA:            d.StateA,
		StateB:            d.StateB,
		EuclideanDistance: d.Distance,
		Differences:       d.Differences,
		Semantics:         rhythm.ParameterSemantics,
	}, nil
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
