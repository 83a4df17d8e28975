package abstractions

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"sketchddd/application/ports"
	"sketchddd/domain/core/aggregates"
	"sketchddd/domain/versioning"
	"sketchddd/infrastructure/persistence/codec"
	pkgerrors "sketchddd/pkg/errors"
)

// TimestampedEntity represents an entity with timestamps
type TimestampedEntity struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VersionedEntity represents an entity with optimistic locking
type VersionedEntity struct {
	Version int
}

// ModelRecord is the backend-agnostic stored form of a model: listing
// columns plus the full JSON document
type ModelRecord struct {
	TimestampedEntity
	VersionedEntity
	ID           string
	Name         string
	Description  string
	Checksum     string
	ContextCount int
	Document     []byte
}

// NewModelRecord encodes model as the record of its next version
func NewModelRecord(c *codec.Codec, model *aggregates.Model, now time.Time) (*ModelRecord, error) {
	checksum, err := versioning.Checksum(model)
	if err != nil {
		return nil, fmt.Errorf("failed to checksum model: %w", err)
	}

	doc := codec.FromModel(model)
	doc.Version = model.Version() + 1
	doc.UpdatedAt = now.UTC()
	data, err := c.EncodeDocument(doc, codec.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to encode model: %w", err)
	}

	return &ModelRecord{
		TimestampedEntity: TimestampedEntity{CreatedAt: doc.CreatedAt, UpdatedAt: doc.UpdatedAt},
		VersionedEntity:   VersionedEntity{Version: doc.Version},
		ID:                doc.ID,
		Name:              doc.Name,
		Description:       doc.Description,
		Checksum:          checksum,
		ContextCount:      len(doc.Contexts),
		Document:          data,
	}, nil
}

// ToModel decodes the stored document
func (r *ModelRecord) ToModel(c *codec.Codec) (*aggregates.Model, error) {
	return c.Decode(r.Document, codec.FormatJSON)
}

// Summary returns the listing view of the record
func (r *ModelRecord) Summary() ports.ModelSummary {
	return ports.ModelSummary{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Version:      r.Version,
		Checksum:     r.Checksum,
		ContextCount: r.ContextCount,
		UpdatedAt:    r.UpdatedAt,
	}
}

// CheckVersion enforces optimistic locking. stored is the persisted
// version, or zero when no record exists.
func CheckVersion(model *aggregates.Model, stored int) error {
	if stored != model.Version() {
		return pkgerrors.NewVersionConflictError(model.ID().String(), model.Version(), stored)
	}
	return nil
}

// ApplyListOptions filters, orders and pages summaries in memory for
// backends without server-side ordering
func ApplyListOptions(summaries []ports.ModelSummary, opts ports.ListOptions) []ports.ModelSummary {
	out := make([]ports.ModelSummary, 0, len(summaries))
	for _, s := range summaries {
		if opts.NamePrefix == "" || strings.HasPrefix(s.Name, opts.NamePrefix) {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b ports.ModelSummary) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []ports.ModelSummary{}
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out
}
