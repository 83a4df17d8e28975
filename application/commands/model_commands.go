// Package commands holds the state-changing requests dispatched through the
// command bus.
package commands

import (
	"sketchddd/domain/core/aggregates"
	"sketchddd/pkg/utils"
)

// SaveModelCommand validates and stores a model. On success the model's
// version is advanced to the stored one.
type SaveModelCommand struct {
	Model *aggregates.Model `validate:"required"`
}

// Validate validates the SaveModelCommand
func (c SaveModelCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// DeleteModelCommand removes a stored model
type DeleteModelCommand struct {
	ModelID string `validate:"required,uuid"`
}

// Validate validates the DeleteModelCommand
func (c DeleteModelCommand) Validate() error {
	return utils.ValidateStruct(c)
}
