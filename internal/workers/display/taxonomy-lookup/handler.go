// internal/workers/display/taxonomy-lookup/handler.go
package taxonomylookup

import (
	"context"
	"encoding/json"

	"window-display-workers/internal/common/errors"
	"window-display-workers/internal/common/logger"
	"window-display-workers/internal/common/metrics"
	"window-display-workers/internal/common/validation"
	"window-display-workers/internal/display/rhythm"
	"window-display-workers/internal/display/taxonomy"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "taxonomy-lookup"
)

type Handler struct {
	config    *Config
	taxonomy  *taxonomy.Provider
	validator *validation.Validator
	errors    *errors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, validator *validation.Validator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		taxonomy:  taxonomy.NewProvider(),
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

	switch input.Category {
	case CategoryDisplayState:
		return h.lookup(input, stateEntry, stateEntries)
	case CategoryRhythmicPreset:
		output, err := h.lookup(input, presetEntry, noError(presetEntries))
		if err == nil {
			output.Patterns = make([]string, 0, len(rhythm.Patterns))
			for _, p := range rhythm.Patterns {
				output.Patterns = append(output.Patterns, string(p))
			}
		}
		return output, err
	case CategoryVisualType:
		return h.lookup(input, visualTypeEntry, noError(visualTypeEntries))
	case CategoryServerInfo:
		info := h.serverInfo()
		entry := taxonomy.Entry{Tag: info.Name, Description: "window display workers " + info.Version, Metadata: info}
		return &Output{Category: input.Category, Entries: []taxonomy.Entry{entry}, Count: 1}, nil
	}

	set := taxonomy.Set(input.Category)
	if h.taxonomy.Tags(set) == nil {
		return nil, errors.NewInvalidParameterError("category", input.Category)
	}
	return h.lookup(input,
		func(key string) (taxonomy.Entry, error) { return h.taxonomy.Entry(set, key) },
		func() ([]taxonomy.Entry, error) { return h.taxonomy.Entries(set) },
	)
}

// lookup returns the entry named by input.Key, or every entry when no key
// is given.
func (h *Handler) lookup(input *Input, one func(string) (taxonomy.Entry, error), all func() ([]taxonomy.Entry, error)) (*Output, error) {
	if input.Key != "" {
		entry, err := one(input.Key)
		if err != nil {
			return nil, errors.NewInvalidParameterError("key", input.Key)
		}
		return &Output{Category: input.Category, Entries: []taxonomy.Entry{entry}, Count: 1}, nil
	}

	entries, err := all()
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	h.logger.Debug("taxonomy listed", map[string]interface{}{
		"category": input.Category,
		"count":    len(entries),
	})

	output := &Output{Category: input.Category, Entries: entries, Count: len(entries)}
	if input.Category == CategoryDisplayState {
		output.ParameterNames = append([]string(nil), rhythm.Parameters...)
		output.ParameterSemantics = make(map[string]string, len(rhythm.ParameterSemantics))
		for k, v := range rhythm.ParameterSemantics {
			output.ParameterSemantics[k] = v
		}
	}
	return output, nil
}

func noError(list func() []taxonomy.Entry) func() ([]taxonomy.Entry, error) {
	return func() ([]taxonomy.Entry, error) { return list(), nil }
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
