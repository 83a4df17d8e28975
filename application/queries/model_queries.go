// Package queries holds the read-only requests dispatched through the query
// bus.
package queries

import (
	"fmt"

	"sketchddd/domain/core/aggregates"
	"sketchddd/domain/core/validators"
	domainservices "sketchddd/domain/services"
	"sketchddd/pkg/utils"
)

// GetModelQuery loads a stored model. Results are never cached because the
// returned aggregate is mutable.
type GetModelQuery struct {
	ModelID string `validate:"required,uuid"`
}

// Validate validates the GetModelQuery
func (q GetModelQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// ListModelsQuery lists stored models ordered by name
type ListModelsQuery struct {
	NamePrefix string
	Limit      int `validate:"gte=0,lte=1000"`
	Offset     int `validate:"gte=0"`
}

// Validate validates the ListModelsQuery
func (q ListModelsQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// CacheKey implements bus.Cacheable
func (q ListModelsQuery) CacheKey() string {
	return fmt.Sprintf("%q:%d:%d", q.NamePrefix, q.Limit, q.Offset)
}

// ExportModelQuery encodes a stored model as a document
type ExportModelQuery struct {
	ModelID string `validate:"required,uuid"`
	Format  string `validate:"required"`
}

// Validate validates the ExportModelQuery
func (q ExportModelQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// CacheKey implements bus.Cacheable
func (q ExportModelQuery) CacheKey() string {
	return q.ModelID + ":" + q.Format
}

// ValidateModelQuery validates a stored model
type ValidateModelQuery struct {
	ModelID string `validate:"required,uuid"`
}

// Validate validates the ValidateModelQuery
func (q ValidateModelQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// CacheKey implements bus.Cacheable
func (q ValidateModelQuery) CacheKey() string {
	return q.ModelID
}

// ValidationReport is the result of ValidateModelQuery
type ValidationReport struct {
	ModelID  string                                       `json:"model_id"`
	Version  int                                          `json:"version"`
	Result   *validators.ValidationResult                 `json:"result"`
	Functors map[string]domainservices.FunctorCheckResult `json:"functors"`
}

// ImportModelQuery decodes and validates a document without storing it.
// An empty Format is sniffed from Data.
type ImportModelQuery struct {
	Data   []byte `validate:"required"`
	Format string `validate:"omitempty,oneof=json yaml yml JSON YAML YML"`
}

// Validate validates the ImportModelQuery
func (q ImportModelQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// ImportResult is the result of ImportModelQuery
type ImportResult struct {
	Model      *aggregates.Model
	Validation *validators.ValidationResult
}
