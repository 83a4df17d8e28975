package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"sketchddd/application/commands"
	"sketchddd/application/commands/bus"
	"sketchddd/application/services"
)

// SaveModelHandler handles model save commands
type SaveModelHandler struct {
	service *services.ModelService
	logger  *zap.Logger
}

// NewSaveModelHandler creates a new save model handler
func NewSaveModelHandler(service *services.ModelService, logger *zap.Logger) *SaveModelHandler {
	return &SaveModelHandler{service: service, logger: logger}
}

// Handle executes the save model command
func (h *SaveModelHandler) Handle(ctx context.Context, cmd bus.Command) error {
	save, ok := cmd.(commands.SaveModelCommand)
	if !ok {
		return fmt.Errorf("unexpected command %T", cmd)
	}

	version, err := h.service.Save(ctx, save.Model)
	if err != nil {
		return err
	}

	h.logger.Debug("Model stored",
		zap.String("modelID", version.ModelID),
		zap.Int("version", version.Version),
	)
	return nil
}

// DeleteModelHandler handles model deletion commands
type DeleteModelHandler struct {
	service *services.ModelService
}

// NewDeleteModelHandler creates a new delete model handler
func NewDeleteModelHandler(service *services.ModelService) *DeleteModelHandler {
	return &DeleteModelHandler{service: service}
}

// Handle executes the delete model command
func (h *DeleteModelHandler) Handle(ctx context.Context, cmd bus.Command) error {
	del, ok := cmd.(commands.DeleteModelCommand)
	if !ok {
		return fmt.Errorf("unexpected command %T", cmd)
	}
	return h.service.Delete(ctx, del.ModelID)
}

// RegisterAll registers every model command handler on the bus
func RegisterAll(b *bus.CommandBus, service *services.ModelService, logger *zap.Logger) error {
	if err := b.Register(commands.SaveModelCommand{}, NewSaveModelHandler(service, logger)); err != nil {
		return err
	}
	return b.Register(commands.DeleteModelCommand{}, NewDeleteModelHandler(service))
}
