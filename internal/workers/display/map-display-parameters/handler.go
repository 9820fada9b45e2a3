// internal/workers/display/map-display-parameters/handler.go
package mapdisplayparameters

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"window-display-workers/internal/common/errors"
	"window-display-workers/internal/common/logger"
	"window-display-workers/internal/common/metrics"
	"window-display-workers/internal/common/observability"
	"window-display-workers/internal/common/validation"
	"window-display-workers/internal/display/mapper"
	"window-display-workers/internal/display/taxonomy"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "map-display-parameters"
)

// SpecCache memoizes mapper results. Implemented by database.SpecCache.
type SpecCache interface {
	Key(width, height float64, composition, depth, lighting, viewer string) string
	Get(ctx context.Context, key string) (*mapper.GeometricSpec, bool, error)
	Put(ctx context.Context, key string, spec *mapper.GeometricSpec) error
}

type Handler struct {
	config    *Config
	mapper    *mapper.Mapper
	taxonomy  *taxonomy.Provider
	cache     SpecCache
	obs       *observability.Observability
	validator *validation.Validator
	errors    *errors.ErrorHandler
	logger    logger.Logger
}

// NewHandler builds the handler. cache, obs and validator may be nil.
func NewHandler(config *Config, cache SpecCache, obs *observability.Observability, validator *validation.Validator, log logger.Logger) *Handler {
	tax := taxonomy.NewProvider()
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		mapper:    mapper.New(tax),
		taxonomy:  tax,
		cache:     cache,
		obs:       obs,
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

	key := ""
	if h.cache != nil {
		key = h.cache.Key(input.WindowWidthFt, input.WindowHeightFt,
			input.CompositionType, input.DepthStaging, input.LightingFramework, input.ViewerContext)
		if spec, ok := h.lookup(ctx, key); ok {
			return &Output{GeometricSpec: spec, Metadata: h.metadata(spec), Cached: true}, nil
		}
	} else {
		h.recordCache(ctx, metrics.CacheDisabled)
	}

	spec, err := h.mapper.Map(input.WindowWidthFt, input.WindowHeightFt,
		input.CompositionType, input.DepthStaging, input.LightingFramework, input.ViewerContext)
	if err != nil {
		return nil, toStandardError(err)
	}

	if h.cache != nil {
		if err := h.cache.Put(ctx, key, spec); err != nil {
			h.logger.Warn("spec cache write failed", map[string]interface{}{
				"key":       key,
				"errorCode": errors.ErrCodeCacheUnavailable,
				"error":     err.Error(),
			})
		}
	}

	h.logger.Info("display parameters mapped", map[string]interface{}{
		"composition": spec.CompositionType,
		"focalX":      spec.FocalPoint.Normalized.X,
		"focalY":      spec.FocalPoint.Normalized.Y,
		"bands":       len(spec.DepthBands),
	})

	return &Output{GeometricSpec: spec, Metadata: h.metadata(spec)}, nil
}

// lookup never fails the job: any cache error is a miss.
func (h *Handler) lookup(ctx context.Context, key string) (*mapper.GeometricSpec, bool) {
	spec, ok, err := h.cache.Get(ctx, key)
	switch {
	case err != nil:
		h.recordCache(ctx, metrics.CacheError)
		h.logger.Warn("spec cache unavailable, recomputing", map[string]interface{}{
			"key":       key,
			"errorCode": errors.ErrCodeCacheUnavailable,
			"error":     err.Error(),
		})
		return nil, false
	case ok:
		h.recordCache(ctx, metrics.CacheHit)
		return spec, true
	default:
		h.recordCache(ctx, metrics.CacheMiss)
		return nil, false
	}
}

func (h *Handler) recordCache(ctx context.Context, result string) {
	metrics.SpecCacheLookups.WithLabelValues(result).Inc()
	h.obs.RecordCacheLookup(ctx, result)
}

func (h *Handler) metadata(spec *mapper.GeometricSpec) Metadata {
	var md Metadata
	md.Composition, _ = h.taxonomy.Composition(taxonomy.CompositionType(spec.CompositionType))
	md.DepthStaging, _ = h.taxonomy.DepthStaging(taxonomy.DepthStaging(spec.DepthStaging))
	md.Lighting, _ = h.taxonomy.Lighting(taxonomy.LightingFramework(spec.LightingFramework))
	md.SightLine, _ = h.taxonomy.SightLine(taxonomy.ViewerContext(spec.ViewerContext))
	return md
}

func toStandardError(err error) error {
	var invalid *mapper.InvalidParameterError
	if stderrors.As(err, &invalid) {
		return errors.NewInvalidParameterError(invalid.Field, invalid.Value)
	}
	return errors.NewInternalError(err)
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
	h.logger.Info("job completed", map[string]interface{}{
		"jobKey": job.Key,
		"cached": output.Cached,
	})
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, timer *metrics.JobTimer, err error) {
	bpmnErr := h.errors.HandleJobError(ctx, client, job, err)
	timer.Failed(bpmnErr.Code)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
