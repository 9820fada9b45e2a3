// internal/workers/display/generate-display-prompt/handler.go
package generatedisplayprompt

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"window-display-workers/internal/common/errors"
	"window-display-workers/internal/common/logger"
	"window-display-workers/internal/common/metrics"
	"window-display-workers/internal/common/validation"
	"window-display-workers/internal/display/mapper"
	"window-display-workers/internal/display/synthesis"
	"window-display-workers/internal/display/taxonomy"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "generate-display-prompt"
)

type Handler struct {
	config    *Config
	mapper    *mapper.Mapper
	taxonomy  *taxonomy.Provider
	validator *validation.Validator
	errors    *errors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, validator *validation.Validator, log logger.Logger) *Handler {
	tax := taxonomy.NewProvider()
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		mapper:    mapper.New(tax),
		taxonomy:  tax,
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

	spec, err := h.mapper.Map(input.WindowWidthFt, input.WindowHeightFt,
		input.CompositionType, input.DepthStaging, input.LightingFramework, input.ViewerContext)
	if err != nil {
		return nil, toStandardError(err)
	}

	style := input.StyleModifier
	if style == "" {
		style = h.config.DefaultStyle
	}

	prompt, err := synthesis.BuildPrompt(spec, synthesis.MetadataFor(h.taxonomy, spec), input.SubjectDescription, style)
	if err != nil {
		return nil, toStandardError(err)
	}

	output := &Output{
		PromptID:       uuid.NewString(),
		Prompt:         prompt.Text,
		PromptSections: prompt.Parts,
		Parameters:     spec,
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	h.logger.Info("display prompt generated", map[string]interface{}{
		"promptId":    output.PromptID,
		"composition": spec.CompositionType,
		"sections":    len(prompt.Parts),
	})

	return output, nil
}

func toStandardError(err error) error {
	var invalid *mapper.InvalidParameterError
	switch {
	case stderrors.As(err, &invalid):
		return errors.NewInvalidParameterError(invalid.Field, invalid.Value)
	case stderrors.Is(err, synthesis.ErrEmptySubject), stderrors.Is(err, synthesis.ErrNilSpec):
		return errors.NewPromptSynthesisFailedError(err.Error())
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
