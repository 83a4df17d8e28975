package handlers

import (
	"context"
	"fmt"

	"sketchddd/application/ports"
	"sketchddd/application/queries"
	"sketchddd/application/queries/bus"
	"sketchddd/application/services"
)

// ModelQueryHandler answers every model query from the model service
type ModelQueryHandler struct {
	service *services.ModelService
}

// NewModelQueryHandler creates a new model query handler
func NewModelQueryHandler(service *services.ModelService) *ModelQueryHandler {
	return &ModelQueryHandler{service: service}
}

// Handle dispatches on the concrete query type
func (h *ModelQueryHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	switch q := query.(type) {
	case queries.GetModelQuery:
		return h.service.Load(ctx, q.ModelID)

	case queries.ListModelsQuery:
		return h.service.List(ctx, ports.ListOptions{
			NamePrefix: q.NamePrefix,
			Limit:      q.Limit,
			Offset:     q.Offset,
		})

	case queries.ExportModelQuery:
		return h.service.Export(ctx, q.ModelID, q.Format)

	case queries.ValidateModelQuery:
		model, err := h.service.Load(ctx, q.ModelID)
		if err != nil {
			return nil, err
		}
		return &queries.ValidationReport{
			ModelID:  q.ModelID,
			Version:  model.Version(),
			Result:   h.service.Validate(ctx, model),
			Functors: h.service.CheckContextMaps(ctx, model),
		}, nil

	case queries.ImportModelQuery:
		model, result, err := h.service.Import(ctx, q.Data, q.Format)
		if err != nil {
			return nil, err
		}
		return &queries.ImportResult{Model: model, Validation: result}, nil

	default:
		return nil, fmt.Errorf("unexpected query %T", query)
	}
}

// RegisterAll registers the handler for every model query
func RegisterAll(b *bus.QueryBus, service *services.ModelService) error {
	h := NewModelQueryHandler(service)
	for _, q := range []bus.Query{
		queries.GetModelQuery{},
		queries.ListModelsQuery{},
		queries.ExportModelQuery{},
		queries.ValidateModelQuery{},
		queries.ImportModelQuery{},
	} {
		if err := b.Register(q, h); err != nil {
			return err
		}
	}
	return nil
}
