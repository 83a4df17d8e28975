package versioning

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"sketchddd/domain/core/aggregates"
	"sketchddd/domain/core/entities"
	"sketchddd/domain/core/valueobjects"
)

// ModelVersion describes one persisted revision of a model
type ModelVersion struct {
	ModelID       string    `json:"model_id"`
	Version       int       `json:"version"`
	Checksum      string    `json:"checksum"`
	ContextCount  int       `json:"context_count"`
	MapCount      int       `json:"map_count"`
	ObjectCount   int       `json:"object_count"`
	MorphismCount int       `json:"morphism_count"`
	CreatedAt     time.Time `json:"created_at"`
	Description   string    `json:"description,omitempty"`
}

// VersionDiff is the size difference between two revisions
type VersionDiff struct {
	FromVersion    int           `json:"from_version"`
	ToVersion      int           `json:"to_version"`
	ContentChanged bool          `json:"content_changed"`
	ContextsDelta  int           `json:"contexts_delta"`
	MapsDelta      int           `json:"maps_delta"`
	ObjectsDelta   int           `json:"objects_delta"`
	MorphismsDelta int           `json:"morphisms_delta"`
	TimeDiff       time.Duration `json:"time_diff"`
}

// VersioningService stamps models with content checksums
type VersioningService struct {
	now func() time.Time
}

// NewVersioningService creates a new versioning service
func NewVersioningService() *VersioningService {
	return &VersioningService{now: time.Now}
}

// CreateVersion describes the revision the model will have once saved
func (s *VersioningService) CreateVersion(model *aggregates.Model, description string) (*ModelVersion, error) {
	if model == nil {
		return nil, fmt.Errorf("model cannot be nil")
	}

	checksum, err := Checksum(model)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksum: %w", err)
	}

	version := &ModelVersion{
		ModelID:      model.ID().String(),
		Version:      model.Version(),
		Checksum:     checksum,
		ContextCount: len(model.Contexts()),
		MapCount:     len(model.ContextMaps()),
		CreatedAt:    s.now(),
		Description:  description,
	}
	for _, ctx := range model.Contexts() {
		version.ObjectCount += ctx.Graph().ObjectCount()
		version.MorphismCount += ctx.Graph().MorphismCount()
	}
	return version, nil
}

// CompareVersions compares two revisions of the same model
func (s *VersioningService) CompareVersions(v1, v2 *ModelVersion) (*VersionDiff, error) {
	if v1 == nil || v2 == nil {
		return nil, fmt.Errorf("versions cannot be nil")
	}
	if v1.ModelID != v2.ModelID {
		return nil, fmt.Errorf("versions belong to different models: %s and %s", v1.ModelID, v2.ModelID)
	}

	return &VersionDiff{
		FromVersion:    v1.Version,
		ToVersion:      v2.Version,
		ContentChanged: v1.Checksum != v2.Checksum,
		ContextsDelta:  v2.ContextCount - v1.ContextCount,
		MapsDelta:      v2.MapCount - v1.MapCount,
		ObjectsDelta:   v2.ObjectCount - v1.ObjectCount,
		MorphismsDelta: v2.MorphismCount - v1.MorphismCount,
		TimeDiff:       v2.CreatedAt.Sub(v1.CreatedAt),
	}, nil
}

// Checksum hashes the full content of a model: every object, morphism,
// equation, cone, cocone, invariant and mapping, descriptions included.
// Timestamps and the version counter are excluded, so saving an unchanged
// model keeps its checksum.
func Checksum(model *aggregates.Model) (string, error) {
	type context struct {
		Name       string                    `json:"name"`
		Objects    []entities.Object         `json:"objects"`
		Morphisms  []entities.Morphism       `json:"morphisms"`
		Equations  []entities.PathEquation   `json:"equations"`
		Limits     []*entities.LimitCone     `json:"limits"`
		Colimits   []*entities.ColimitCocone `json:"colimits"`
		Roots      []valueobjects.ObjectID   `json:"roots"`
		Entities   []valueobjects.ObjectID   `json:"entities"`
		Values     []valueobjects.ObjectID   `json:"values"`
		Invariants []entities.Invariant      `json:"invariants"`
	}
	type contextMap struct {
		Name      string                       `json:"name"`
		Source    string                       `json:"source"`
		Target    string                       `json:"target"`
		Pattern   string                       `json:"pattern"`
		Objects   []aggregates.ObjectMapping   `json:"objects"`
		Morphisms []aggregates.MorphismMapping `json:"morphisms"`
	}

	data := struct {
		ID          string       `json:"id"`
		Name        string       `json:"name"`
		Description string       `json:"description"`
		Contexts    []context    `json:"contexts"`
		Maps        []contextMap `json:"maps"`
	}{
		ID:          model.ID().String(),
		Name:        model.Name(),
		Description: model.Description(),
	}

	for _, ctx := range model.Contexts() {
		data.Contexts = append(data.Contexts, context{
			Name:       ctx.Name(),
			Objects:    ctx.Graph().Objects(),
			Morphisms:  ctx.Graph().Morphisms(),
			Equations:  ctx.Sketch().Equations(),
			Limits:     ctx.Sketch().Limits(),
			Colimits:   ctx.Sketch().Colimits(),
			Roots:      ctx.AggregateRoots(),
			Entities:   ctx.Entities(),
			Values:     ctx.ValueObjects(),
			Invariants: ctx.Invariants(),
		})
	}
	for _, cm := range model.ContextMaps() {
		data.Maps = append(data.Maps, contextMap{
			Name:      cm.Name(),
			Source:    cm.SourceContext(),
			Target:    cm.TargetContext(),
			Pattern:   cm.Pattern().String(),
			Objects:   cm.ObjectMappings(),
			Morphisms: cm.MorphismMappings(),
		})
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(jsonData)
	return hex.EncodeToString(hash[:]), nil
}
