package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sketchddd/application/ports"
	"sketchddd/domain/core/aggregates"
	"sketchddd/domain/core/validators"
	"sketchddd/domain/core/valueobjects"
	"sketchddd/domain/events"
	domainservices "sketchddd/domain/services"
	"sketchddd/domain/versioning"
	"sketchddd/infrastructure/persistence/codec"
	pkgerrors "sketchddd/pkg/errors"
	"sketchddd/pkg/observability"
)

// ModelService is the application entry point for validating, storing and
// exchanging models. Event publishing is best effort: a failed publish is
// logged and never undoes a committed save.
type ModelService struct {
	repo       ports.ModelRepository
	publisher  ports.EventPublisher
	metrics    ports.Metrics
	tracer     *observability.Tracer
	validator  *validators.Validator
	codec      *codec.Codec
	versioning *versioning.VersioningService
	logger     *zap.Logger
	now        func() time.Time
}

// NewModelService creates a new model service
func NewModelService(
	repo ports.ModelRepository,
	publisher ports.EventPublisher,
	metrics ports.Metrics,
	tracer *observability.Tracer,
	validator *validators.Validator,
	c *codec.Codec,
	logger *zap.Logger,
) *ModelService {
	return &ModelService{
		repo:       repo,
		publisher:  publisher,
		metrics:    metrics,
		tracer:     tracer,
		validator:  validator,
		codec:      c,
		versioning: versioning.NewVersioningService(),
		logger:     logger,
		now:        time.Now,
	}
}

// Validate runs every check over the model and reports the diagnostics.
// The returned result is never nil.
func (s *ModelService) Validate(ctx context.Context, model *aggregates.Model) *validators.ValidationResult {
	var result *validators.ValidationResult
	_ = s.tracer.TraceFunction(ctx, "ModelService.Validate", func(ctx context.Context) error {
		start := s.now()
		result = s.validator.ValidateModelAggregate(model)
		elapsed := s.now().Sub(start)

		s.metrics.RecordValidation(ctx, result.ErrorCount(), result.WarningCount(), elapsed)
		s.tracer.AddAnnotation(ctx, "model", model.Name())
		s.tracer.AddMetadata(ctx, "codes", result.Codes())

		s.logger.Debug("Validated model",
			zap.String("modelID", model.ID().String()),
			zap.String("model", model.Name()),
			zap.Int("errors", result.ErrorCount()),
			zap.Int("warnings", result.WarningCount()),
			zap.Duration("duration", elapsed),
		)
		return nil
	})

	s.publish(ctx, events.NewModelValidated(
		model.ID().String(), model.Name(),
		result.ErrorCount(), result.WarningCount(), result.Codes(), s.now(),
	))
	return result
}

// CheckContextMaps runs the functor-law check for every map whose contexts
// resolve, keyed by map name
func (s *ModelService) CheckContextMaps(ctx context.Context, model *aggregates.Model) map[string]domainservices.FunctorCheckResult {
	results := domainservices.CheckModelContextMaps(model)
	for name, r := range results {
		if !r.IsValid {
			s.logger.Debug("Context map is not functorial",
				zap.String("model", model.Name()),
				zap.String("contextMap", name),
				zap.Int("violations", len(r.Errors)),
			)
		}
	}
	return results
}

// Save validates and persists the model. Models with error diagnostics are
// rejected with a *errors.ValidationErrors; on success the model's version
// is advanced to the stored one.
func (s *ModelService) Save(ctx context.Context, model *aggregates.Model) (*versioning.ModelVersion, error) {
	var version *versioning.ModelVersion
	err := s.trace(ctx, "Save", func(ctx context.Context) error {
		if err := s.Validate(ctx, model).Err(); err != nil {
			return err
		}

		v, err := s.versioning.CreateVersion(model, "")
		if err != nil {
			return fmt.Errorf("failed to create version: %w", err)
		}
		if err := s.repo.Save(ctx, model); err != nil {
			return err
		}

		model.MarkSaved(s.now())
		v.Version = model.Version()
		version = v

		pending := []events.DomainEvent{
			events.NewModelSaved(v.ModelID, model.Name(), v.Checksum, v.Version, s.now()),
		}
		for _, bc := range model.Contexts() {
			pending = append(pending, bc.GetUncommittedEvents()...)
		}
		if err := s.publisher.PublishBatch(ctx, pending); err != nil {
			s.logger.Warn("Failed to publish model events",
				zap.String("modelID", v.ModelID),
				zap.Int("events", len(pending)),
				zap.Error(err),
			)
		} else {
			for _, bc := range model.Contexts() {
				bc.MarkEventsAsCommitted()
			}
		}

		s.logger.Info("Saved model",
			zap.String("modelID", v.ModelID),
			zap.String("model", model.Name()),
			zap.Int("version", v.Version),
			zap.String("checksum", v.Checksum),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return version, nil
}

// Load fetches a stored model by id
func (s *ModelService) Load(ctx context.Context, id string) (*aggregates.Model, error) {
	modelID, err := valueobjects.NewModelIDFromString(id)
	if err != nil {
		return nil, pkgerrors.NewInvalidModelIDError(id, err)
	}

	var model *aggregates.Model
	err = s.trace(ctx, "Load", func(ctx context.Context) error {
		m, err := s.repo.GetByID(ctx, modelID)
		model = m
		return err
	})
	if err != nil {
		return nil, err
	}
	return model, nil
}

// List returns stored model summaries
func (s *ModelService) List(ctx context.Context, opts ports.ListOptions) ([]ports.ModelSummary, error) {
	var summaries []ports.ModelSummary
	err := s.trace(ctx, "List", func(ctx context.Context) error {
		out, err := s.repo.List(ctx, opts)
		summaries = out
		return err
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// Import decodes a document and validates the resulting model without
// storing it. An empty format is sniffed from the data.
func (s *ModelService) Import(ctx context.Context, data []byte, format string) (*aggregates.Model, *validators.ValidationResult, error) {
	f := codec.SniffFormat(data)
	if format != "" {
		parsed, err := codec.ParseFormat(format)
		if err != nil {
			return nil, nil, err
		}
		f = parsed
	}

	var model *aggregates.Model
	err := s.trace(ctx, "Import", func(ctx context.Context) error {
		m, err := s.codec.Decode(data, f)
		model = m
		return err
	})
	if err != nil {
		s.logger.Warn("Rejected model document",
			zap.String("format", string(f)),
			zap.Int("bytes", len(data)),
			zap.Error(err),
		)
		return nil, nil, err
	}

	s.publish(ctx, events.NewModelImported(model.ID().String(), model.Name(), string(f), s.now()))
	return model, s.Validate(ctx, model), nil
}

// Export loads a stored model and encodes it in the requested format
func (s *ModelService) Export(ctx context.Context, id, format string) ([]byte, error) {
	f, err := codec.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	model, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	var data []byte
	err = s.trace(ctx, "Export", func(ctx context.Context) error {
		out, err := s.codec.Encode(model, f)
		data = out
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Delete removes a stored model
func (s *ModelService) Delete(ctx context.Context, id string) error {
	modelID, err := valueobjects.NewModelIDFromString(id)
	if err != nil {
		return pkgerrors.NewInvalidModelIDError(id, err)
	}

	err = s.trace(ctx, "Delete", func(ctx context.Context) error {
		return s.repo.Delete(ctx, modelID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Deleted model", zap.String("modelID", id))
	s.publish(ctx, events.NewModelDeleted(id, s.now()))
	return nil
}

// trace runs fn inside a subsegment and records the operation metrics
func (s *ModelService) trace(ctx context.Context, operation string, fn func(context.Context) error) error {
	start := s.now()
	err := s.tracer.TraceFunction(ctx, "ModelService."+operation, fn)
	s.metrics.RecordOperation(ctx, operation, err == nil, s.now().Sub(start))
	return err
}

func (s *ModelService) publish(ctx context.Context, event events.DomainEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("eventType", event.GetEventType()),
			zap.String("aggregateID", event.GetAggregateID()),
			zap.Error(err),
		)
	}
}
