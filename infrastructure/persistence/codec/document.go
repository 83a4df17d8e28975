package codec

import (
	"fmt"
	"time"

	"sketchddd/domain/core/aggregates"
	"sketchddd/domain/core/entities"
	"sketchddd/domain/core/valueobjects"
	"sketchddd/infrastructure/persistence/schema"
)

// ModelDocument is the serialized form of a model. Object and morphism ids
// are written verbatim and restored without renumbering.
type ModelDocument struct {
	SchemaVersion int                  `json:"schema_version" yaml:"schema_version" validate:"gte=1"`
	ID            string               `json:"id,omitempty" yaml:"id,omitempty" validate:"omitempty,uuid"`
	Name          string               `json:"name" yaml:"name" validate:"required"`
	Description   string               `json:"description,omitempty" yaml:"description,omitempty"`
	Version       int                  `json:"version,omitempty" yaml:"version,omitempty" validate:"gte=0"`
	CreatedAt     time.Time            `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt     time.Time            `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	Contexts      []ContextDocument    `json:"contexts" yaml:"contexts" validate:"dive"`
	ContextMaps   []ContextMapDocument `json:"context_maps" yaml:"context_maps" validate:"dive"`
}

// ContextDocument is the serialized form of a bounded context
type ContextDocument struct {
	Name             string              `json:"name" yaml:"name" validate:"required"`
	Objects          []ObjectDocument    `json:"objects" yaml:"objects"`
	Morphisms        []MorphismDocument  `json:"morphisms" yaml:"morphisms"`
	Equations        []EquationDocument  `json:"equations,omitempty" yaml:"equations,omitempty"`
	Limits           []LimitDocument     `json:"limits,omitempty" yaml:"limits,omitempty"`
	Colimits         []ColimitDocument   `json:"colimits,omitempty" yaml:"colimits,omitempty"`
	Entities         []uint32            `json:"entities,omitempty" yaml:"entities,omitempty"`
	EntityIdentities []IdentityDocument  `json:"entity_identities,omitempty" yaml:"entity_identities,omitempty"`
	ValueObjects     []uint32            `json:"value_objects,omitempty" yaml:"value_objects,omitempty"`
	AggregateRoots   []uint32            `json:"aggregate_roots,omitempty" yaml:"aggregate_roots,omitempty"`
	Invariants       []InvariantDocument `json:"invariants,omitempty" yaml:"invariants,omitempty"`
}

// ObjectDocument is a serialized object
type ObjectDocument struct {
	ID          uint32 `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// MorphismDocument is a serialized morphism
type MorphismDocument struct {
	ID          uint32 `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Source      uint32 `json:"source" yaml:"source"`
	Target      uint32 `json:"target" yaml:"target"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Identity    bool   `json:"identity,omitempty" yaml:"identity,omitempty"`
}

// PathDocument is a serialized path
type PathDocument struct {
	Source    uint32   `json:"source" yaml:"source"`
	Target    uint32   `json:"target" yaml:"target"`
	Morphisms []uint32 `json:"morphisms" yaml:"morphisms"`
}

// EquationDocument is a serialized path equation
type EquationDocument struct {
	Name string       `json:"name" yaml:"name"`
	LHS  PathDocument `json:"lhs" yaml:"lhs"`
	RHS  PathDocument `json:"rhs" yaml:"rhs"`
}

// ProjectionDocument is a serialized cone leg
type ProjectionDocument struct {
	Morphism uint32 `json:"morphism" yaml:"morphism"`
	Target   uint32 `json:"target" yaml:"target"`
}

// LimitDocument is a serialized limit cone
type LimitDocument struct {
	Name        string               `json:"name" yaml:"name"`
	Apex        uint32               `json:"apex" yaml:"apex"`
	Projections []ProjectionDocument `json:"projections" yaml:"projections"`
	Aggregate   bool                 `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`
	Root        *uint32              `json:"root,omitempty" yaml:"root,omitempty"`
}

// InjectionDocument is a serialized cocone leg
type InjectionDocument struct {
	Name   string `json:"name" yaml:"name"`
	Source uint32 `json:"source" yaml:"source"`
}

// ColimitDocument is a serialized colimit cocone
type ColimitDocument struct {
	Name       string              `json:"name" yaml:"name"`
	Apex       uint32              `json:"apex" yaml:"apex"`
	Injections []InjectionDocument `json:"injections" yaml:"injections"`
}

// IdentityDocument pairs an entity with its identity morphism
type IdentityDocument struct {
	Entity   uint32 `json:"entity" yaml:"entity"`
	Morphism uint32 `json:"morphism" yaml:"morphism"`
}

// InvariantDocument is a serialized equalizer invariant
type InvariantDocument struct {
	Name        string `json:"name" yaml:"name"`
	Equalizer   uint32 `json:"equalizer" yaml:"equalizer"`
	Inclusion   uint32 `json:"inclusion" yaml:"inclusion"`
	F           uint32 `json:"f" yaml:"f"`
	G           uint32 `json:"g" yaml:"g"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// MappingDocument is a serialized object or morphism mapping
type MappingDocument struct {
	Source      uint32 `json:"source" yaml:"source"`
	Target      uint32 `json:"target" yaml:"target"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ContextMapDocument is a serialized context map
type ContextMapDocument struct {
	Name             string                           `json:"name" yaml:"name" validate:"required"`
	Source           string                           `json:"source" yaml:"source" validate:"required"`
	Target           string                           `json:"target" yaml:"target" validate:"required"`
	Pattern          valueobjects.RelationshipPattern `json:"pattern" yaml:"pattern" validate:"required"`
	ObjectMappings   []MappingDocument                `json:"object_mappings,omitempty" yaml:"object_mappings,omitempty"`
	MorphismMappings []MappingDocument                `json:"morphism_mappings,omitempty" yaml:"morphism_mappings,omitempty"`
}

// FromModel converts a model into its document form
func FromModel(model *aggregates.Model) *ModelDocument {
	doc := &ModelDocument{
		SchemaVersion: schema.CurrentVersion,
		ID:            model.ID().String(),
		Name:          model.Name(),
		Description:   model.Description(),
		Version:       model.Version(),
		CreatedAt:     model.CreatedAt().UTC(),
		UpdatedAt:     model.UpdatedAt().UTC(),
		Contexts:      []ContextDocument{},
		ContextMaps:   []ContextMapDocument{},
	}
	for _, ctx := range model.Contexts() {
		doc.Contexts = append(doc.Contexts, FromContext(ctx))
	}
	for _, cm := range model.ContextMaps() {
		doc.ContextMaps = append(doc.ContextMaps, FromContextMap(cm))
	}
	return doc
}

// FromContext converts a bounded context into its document form
func FromContext(ctx *aggregates.BoundedContext) ContextDocument {
	graph := ctx.Graph()
	sketch := ctx.Sketch()

	doc := ContextDocument{
		Name:      ctx.Name(),
		Objects:   []ObjectDocument{},
		Morphisms: []MorphismDocument{},
	}
	for _, o := range graph.Objects() {
		doc.Objects = append(doc.Objects, ObjectDocument{ID: uint32(o.ID), Name: o.Name, Description: o.Description})
	}
	for _, m := range graph.Morphisms() {
		doc.Morphisms = append(doc.Morphisms, MorphismDocument{
			ID:          uint32(m.ID),
			Name:        m.Name,
			Source:      uint32(m.Source),
			Target:      uint32(m.Target),
			Description: m.Description,
			Identity:    m.IsIdentity,
		})
	}
	for _, eq := range sketch.Equations() {
		doc.Equations = append(doc.Equations, EquationDocument{Name: eq.Name, LHS: fromPath(eq.LHS), RHS: fromPath(eq.RHS)})
	}
	for _, l := range sketch.Limits() {
		ld := LimitDocument{Name: l.Name, Apex: uint32(l.Apex), Projections: []ProjectionDocument{}, Aggregate: l.IsAggregate}
		if l.Root != nil {
			r := uint32(*l.Root)
			ld.Root = &r
		}
		for _, p := range l.Projections {
			ld.Projections = append(ld.Projections, ProjectionDocument{Morphism: uint32(p.Morphism), Target: uint32(p.Target)})
		}
		doc.Limits = append(doc.Limits, ld)
	}
	for _, c := range sketch.Colimits() {
		cd := ColimitDocument{Name: c.Name, Apex: uint32(c.Apex), Injections: []InjectionDocument{}}
		for _, inj := range c.Injections {
			cd.Injections = append(cd.Injections, InjectionDocument{Name: inj.Name, Source: uint32(inj.Source)})
		}
		doc.Colimits = append(doc.Colimits, cd)
	}
	for _, e := range ctx.Entities() {
		doc.Entities = append(doc.Entities, uint32(e))
		if m, ok := ctx.EntityIdentity(e); ok {
			doc.EntityIdentities = append(doc.EntityIdentities, IdentityDocument{Entity: uint32(e), Morphism: uint32(m)})
		}
	}
	for _, v := range ctx.ValueObjects() {
		doc.ValueObjects = append(doc.ValueObjects, uint32(v))
	}
	for _, r := range ctx.AggregateRoots() {
		doc.AggregateRoots = append(doc.AggregateRoots, uint32(r))
	}
	for _, inv := range ctx.Invariants() {
		doc.Invariants = append(doc.Invariants, InvariantDocument{
			Name:        inv.Name,
			Equalizer:   uint32(inv.Equalizer),
			Inclusion:   uint32(inv.Inclusion),
			F:           uint32(inv.MorphismF),
			G:           uint32(inv.MorphismG),
			Description: inv.Description,
		})
	}
	return doc
}

// FromContextMap converts a context map into its document form
func FromContextMap(cm *aggregates.ContextMap) ContextMapDocument {
	doc := ContextMapDocument{
		Name:    cm.Name(),
		Source:  cm.SourceContext(),
		Target:  cm.TargetContext(),
		Pattern: cm.Pattern(),
	}
	for _, om := range cm.ObjectMappings() {
		doc.ObjectMappings = append(doc.ObjectMappings, MappingDocument{Source: uint32(om.Source), Target: uint32(om.Target), Description: om.Description})
	}
	for _, mm := range cm.MorphismMappings() {
		doc.MorphismMappings = append(doc.MorphismMappings, MappingDocument{Source: uint32(mm.Source), Target: uint32(mm.Target), Description: mm.Description})
	}
	return doc
}

// ToModel rebuilds the model. A document without an id gets a fresh one.
func (d *ModelDocument) ToModel() (*aggregates.Model, error) {
	contexts := make([]*aggregates.BoundedContext, 0, len(d.Contexts))
	for i := range d.Contexts {
		ctx, err := d.Contexts[i].ToContext()
		if err != nil {
			return nil, fmt.Errorf("context %q: %w", d.Contexts[i].Name, err)
		}
		contexts = append(contexts, ctx)
	}
	maps := make([]*aggregates.ContextMap, 0, len(d.ContextMaps))
	for _, cmd := range d.ContextMaps {
		maps = append(maps, cmd.ToContextMap())
	}

	id := valueobjects.NewModelID()
	if d.ID != "" {
		parsed, err := valueobjects.NewModelIDFromString(d.ID)
		if err != nil {
			return nil, err
		}
		id = parsed
	}
	created, updated := d.CreatedAt, d.UpdatedAt
	if created.IsZero() {
		created = time.Now()
	}
	if updated.IsZero() {
		updated = created
	}
	return aggregates.ReconstructModel(id, d.Name, d.Description, contexts, maps, created, updated, d.Version)
}

// ToContext rebuilds a bounded context keeping every id
func (d *ContextDocument) ToContext() (*aggregates.BoundedContext, error) {
	objects := make([]entities.Object, 0, len(d.Objects))
	for _, o := range d.Objects {
		objects = append(objects, entities.Object{ID: valueobjects.ObjectID(o.ID), Name: o.Name, Description: o.Description})
	}
	morphisms := make([]entities.Morphism, 0, len(d.Morphisms))
	for _, m := range d.Morphisms {
		morphisms = append(morphisms, entities.Morphism{
			ID:          valueobjects.MorphismID(m.ID),
			Name:        m.Name,
			Source:      valueobjects.ObjectID(m.Source),
			Target:      valueobjects.ObjectID(m.Target),
			Description: m.Description,
			IsIdentity:  m.Identity,
		})
	}
	graph, err := aggregates.RestoreGraph(objects, morphisms)
	if err != nil {
		return nil, err
	}

	equations := make([]entities.PathEquation, 0, len(d.Equations))
	for _, eq := range d.Equations {
		equations = append(equations, entities.NewPathEquation(eq.Name, eq.LHS.toPath(), eq.RHS.toPath()))
	}
	limits := make([]*entities.LimitCone, 0, len(d.Limits))
	for _, l := range d.Limits {
		cone := &entities.LimitCone{
			Name:        l.Name,
			Apex:        valueobjects.ObjectID(l.Apex),
			Projections: []entities.Projection{},
			IsAggregate: l.Aggregate,
		}
		if l.Root != nil {
			r := valueobjects.ObjectID(*l.Root)
			cone.Root = &r
		}
		for _, p := range l.Projections {
			cone.AddProjection(valueobjects.MorphismID(p.Morphism), valueobjects.ObjectID(p.Target))
		}
		limits = append(limits, cone)
	}
	colimits := make([]*entities.ColimitCocone, 0, len(d.Colimits))
	for _, c := range d.Colimits {
		cocone := entities.NewColimitCocone(c.Name, valueobjects.ObjectID(c.Apex))
		for _, inj := range c.Injections {
			cocone.AddVariant(inj.Name, valueobjects.ObjectID(inj.Source))
		}
		colimits = append(colimits, cocone)
	}
	sketch := aggregates.RestoreSketch(d.Name, graph, equations, limits, colimits)

	identities := make(map[valueobjects.ObjectID]valueobjects.MorphismID, len(d.EntityIdentities))
	for _, id := range d.EntityIdentities {
		identities[valueobjects.ObjectID(id.Entity)] = valueobjects.MorphismID(id.Morphism)
	}
	invariants := make([]entities.Invariant, 0, len(d.Invariants))
	for _, inv := range d.Invariants {
		invariants = append(invariants, entities.Invariant{
			Name:        inv.Name,
			Equalizer:   valueobjects.ObjectID(inv.Equalizer),
			Inclusion:   valueobjects.MorphismID(inv.Inclusion),
			MorphismF:   valueobjects.MorphismID(inv.F),
			MorphismG:   valueobjects.MorphismID(inv.G),
			Description: inv.Description,
		})
	}

	return aggregates.ReconstructBoundedContext(
		sketch,
		toObjectIDs(d.Entities),
		identities,
		toObjectIDs(d.ValueObjects),
		toObjectIDs(d.AggregateRoots),
		invariants,
	), nil
}

// ToContextMap rebuilds a context map
func (d ContextMapDocument) ToContextMap() *aggregates.ContextMap {
	cm := aggregates.NewContextMap(d.Name, d.Source, d.Target, d.Pattern)
	for _, om := range d.ObjectMappings {
		cm.MapObjectWithDescription(valueobjects.ObjectID(om.Source), valueobjects.ObjectID(om.Target), om.Description)
	}
	for _, mm := range d.MorphismMappings {
		cm.MapMorphismWithDescription(valueobjects.MorphismID(mm.Source), valueobjects.MorphismID(mm.Target), mm.Description)
	}
	return cm
}

func fromPath(p valueobjects.Path) PathDocument {
	pd := PathDocument{Source: uint32(p.Source), Target: uint32(p.Target), Morphisms: make([]uint32, 0, len(p.Morphisms))}
	for _, m := range p.Morphisms {
		pd.Morphisms = append(pd.Morphisms, uint32(m))
	}
	return pd
}

func (p PathDocument) toPath() valueobjects.Path {
	ms := make([]valueobjects.MorphismID, 0, len(p.Morphisms))
	for _, m := range p.Morphisms {
		ms = append(ms, valueobjects.MorphismID(m))
	}
	return valueobjects.NewPath(valueobjects.ObjectID(p.Source), valueobjects.ObjectID(p.Target), ms...)
}

func toObjectIDs(ids []uint32) []valueobjects.ObjectID {
	out := make([]valueobjects.ObjectID, 0, len(ids))
	for _, id := range ids {
		out = append(out, valueobjects.ObjectID(id))
	}
	return out
}
