package aggregates

import (
	"fmt"
	"slices"
	"time"

	"sketchddd/domain/core/entities"
	"sketchddd/domain/core/valueobjects"
	"sketchddd/domain/events"
)

// Variant is one payload-carrying alternative of a sum type
type Variant struct {
	Name string
	Type valueobjects.ObjectID
}

// BoundedContext is the DDD classification layer over a sketch.
// Every mutator keeps the bookkeeping lists consistent with the sketch at
// the moment of the call; nothing is reconciled afterwards.
type BoundedContext struct {
	sketch           *Sketch
	entities         []valueobjects.ObjectID
	entityIdentities map[valueobjects.ObjectID]valueobjects.MorphismID
	valueObjects     []valueobjects.ObjectID
	aggregateRoots   []valueobjects.ObjectID
	invariants       []entities.Invariant

	version int
	events  []events.DomainEvent
}

// NewBoundedContext creates an empty bounded context
func NewBoundedContext(name string) *BoundedContext {
	ctx := &BoundedContext{
		sketch:           NewSketch(name),
		entities:         []valueobjects.ObjectID{},
		entityIdentities: make(map[valueobjects.ObjectID]valueobjects.MorphismID),
		valueObjects:     []valueobjects.ObjectID{},
		aggregateRoots:   []valueobjects.ObjectID{},
		invariants:       []entities.Invariant{},
		version:          1,
		events:           []events.DomainEvent{},
	}
	ctx.addEvent(events.NewContextCreated(name, time.Now()))
	return ctx
}

// ReconstructBoundedContext rebuilds a context from stored state without
// recording events
func ReconstructBoundedContext(
	sketch *Sketch,
	entityList []valueobjects.ObjectID,
	entityIdentities map[valueobjects.ObjectID]valueobjects.MorphismID,
	valueObjects []valueobjects.ObjectID,
	aggregateRoots []valueobjects.ObjectID,
	invariants []entities.Invariant,
) *BoundedContext {
	identities := make(map[valueobjects.ObjectID]valueobjects.MorphismID, len(entityIdentities))
	for k, v := range entityIdentities {
		identities[k] = v
	}
	return &BoundedContext{
		sketch:           sketch,
		entities:         append([]valueobjects.ObjectID{}, entityList...),
		entityIdentities: identities,
		valueObjects:     append([]valueobjects.ObjectID{}, valueObjects...),
		aggregateRoots:   append([]valueobjects.ObjectID{}, aggregateRoots...),
		invariants:       append([]entities.Invariant{}, invariants...),
		version:          1,
		events:           []events.DomainEvent{},
	}
}

// Name returns the context name
func (c *BoundedContext) Name() string {
	return c.sketch.Name()
}

// Sketch returns the underlying sketch
func (c *BoundedContext) Sketch() *Sketch {
	return c.sketch
}

// Graph returns the underlying graph
func (c *BoundedContext) Graph() *Graph {
	return c.sketch.Graph()
}

// AddEntity creates an object together with its identity morphism
func (c *BoundedContext) AddEntity(name string) valueobjects.ObjectID {
	return c.AddEntityWithDescription(name, "")
}

// AddEntityWithDescription creates a described entity
func (c *BoundedContext) AddEntityWithDescription(name, description string) valueobjects.ObjectID {
	id := c.sketch.graph.AddObjectWithDescription(name, description)
	identity := c.sketch.graph.AddIdentityMorphism(id)
	c.entities = append(c.entities, id)
	c.entityIdentities[id] = identity
	c.recordElement(events.KindEntity, name, id)
	return id
}

// AddValueObject creates an object with an empty non-aggregate limit cone
func (c *BoundedContext) AddValueObject(name string) valueobjects.ObjectID {
	return c.AddValueObjectWithComponents(name, nil)
}

// AddValueObjectWithComponents creates a value object with one projection
// morphism "proj_i" per component, in order
func (c *BoundedContext) AddValueObjectWithComponents(name string, components []valueobjects.ObjectID) valueobjects.ObjectID {
	id := c.sketch.graph.AddObject(name)
	cone := entities.NewValueObjectCone(name, id)
	for i, component := range components {
		proj := c.sketch.graph.AddMorphism(fmt.Sprintf("proj_%d", i), id, component)
		cone.AddProjection(proj, component)
	}
	c.sketch.AddLimit(cone)
	c.valueObjects = append(c.valueObjects, id)
	c.recordElement(events.KindValueObject, name, id)
	return id
}

// DefineAggregate creates an aggregate cone rooted at root.
// The root is pushed onto the aggregate roots on every call, so defining
// two aggregates over one root lists it twice.
func (c *BoundedContext) DefineAggregate(name string, root valueobjects.ObjectID) *entities.LimitCone {
	return c.DefineAggregateWithMembers(name, root, nil)
}

// DefineAggregateWithMembers creates an aggregate cone with a projection
// morphism "<aggregate>_<member>" from the root to each member.
// A member that does not exist in the graph still gets a projection so that
// validation can report it.
func (c *BoundedContext) DefineAggregateWithMembers(name string, root valueobjects.ObjectID, members []valueobjects.ObjectID) *entities.LimitCone {
	c.aggregateRoots = append(c.aggregateRoots, root)
	cone := entities.NewAggregateCone(name, root)
	for _, member := range members {
		memberName := member.String()
		if o, ok := c.sketch.graph.Object(member); ok {
			memberName = o.Name
		}
		proj := c.sketch.graph.AddMorphism(name+"_"+memberName, root, member)
		cone.AddProjection(proj, member)
	}
	c.sketch.AddLimit(cone)
	c.recordElement(events.KindAggregate, name, root)
	return cone
}

// AddEnum creates an enumeration whose variants carry no payload
func (c *BoundedContext) AddEnum(name string, variants []string) valueobjects.ObjectID {
	id := c.sketch.graph.AddObject(name)
	c.sketch.AddColimit(entities.NewEnumeration(name, id, variants))
	c.recordElement(events.KindEnum, name, id)
	return id
}

// AddSumType creates a coproduct whose variants inject from their payload objects
func (c *BoundedContext) AddSumType(name string, variants []Variant) valueobjects.ObjectID {
	id := c.sketch.graph.AddObject(name)
	cocone := entities.NewColimitCocone(name, id)
	for _, v := range variants {
		cocone.AddVariant(v.Name, v.Type)
	}
	c.sketch.AddColimit(cocone)
	c.recordElement(events.KindSumType, name, id)
	return id
}

// AddEqualizerInvariant records a business rule as the equalizer of f and g.
// It creates the object "Eq_<name>" and the inclusion morphism
// "incl_<name>" into source. f and g are not checked here.
func (c *BoundedContext) AddEqualizerInvariant(name string, source valueobjects.ObjectID, f, g valueobjects.MorphismID, description string) valueobjects.ObjectID {
	equalizer := c.sketch.graph.AddObject("Eq_" + name)
	inclusion := c.sketch.graph.AddMorphism("incl_"+name, equalizer, source)
	c.invariants = append(c.invariants, entities.Invariant{
		Name:        name,
		Equalizer:   equalizer,
		Inclusion:   inclusion,
		MorphismF:   f,
		MorphismG:   g,
		Description: description,
	})
	c.recordElement(events.KindInvariant, name, equalizer)
	return equalizer
}

// AddPathEquation names an equation and adds it to the sketch
func (c *BoundedContext) AddPathEquation(name string, eq entities.PathEquation) {
	eq.Name = name
	c.sketch.AddEquation(eq)
	c.recordElement(events.KindEquation, name, eq.LHS.Source)
}

// IsEntity reports whether the object was declared as an entity
func (c *BoundedContext) IsEntity(id valueobjects.ObjectID) bool {
	return slices.Contains(c.entities, id)
}

// IsValueObject reports whether the object was declared as a value object
func (c *BoundedContext) IsValueObject(id valueobjects.ObjectID) bool {
	return slices.Contains(c.valueObjects, id)
}

// IsAggregateRoot reports whether the object roots an aggregate
func (c *BoundedContext) IsAggregateRoot(id valueobjects.ObjectID) bool {
	return slices.Contains(c.aggregateRoots, id)
}

// EntityIdentity returns the identity morphism registered for an entity
func (c *BoundedContext) EntityIdentity(entity valueobjects.ObjectID) (valueobjects.MorphismID, bool) {
	m, ok := c.entityIdentities[entity]
	return m, ok
}

// ValueObjectLimit returns the non-aggregate cone whose apex is the value object
func (c *BoundedContext) ValueObjectLimit(id valueobjects.ObjectID) (*entities.LimitCone, bool) {
	for _, l := range c.sketch.limits {
		if !l.IsAggregate && l.Apex == id {
			return l, true
		}
	}
	return nil, false
}

// Aggregate returns the first aggregate cone rooted at root
func (c *BoundedContext) Aggregate(root valueobjects.ObjectID) (*entities.LimitCone, bool) {
	for _, l := range c.sketch.limits {
		if l.IsAggregate && l.HasRoot(root) {
			return l, true
		}
	}
	return nil, false
}

// EnumColimit returns the cocone of an enumeration or sum type
func (c *BoundedContext) EnumColimit(id valueobjects.ObjectID) (*entities.ColimitCocone, bool) {
	for _, cc := range c.sketch.colimits {
		if cc.Apex == id {
			return cc, true
		}
	}
	return nil, false
}

// Entities returns the declared entities in declaration order
func (c *BoundedContext) Entities() []valueobjects.ObjectID {
	return slices.Clone(c.entities)
}

// EntityIdentities returns a copy of the entity to identity morphism map
func (c *BoundedContext) EntityIdentities() map[valueobjects.ObjectID]valueobjects.MorphismID {
	out := make(map[valueobjects.ObjectID]valueobjects.MorphismID, len(c.entityIdentities))
	for k, v := range c.entityIdentities {
		out[k] = v
	}
	return out
}

// ValueObjects returns the declared value objects in declaration order
func (c *BoundedContext) ValueObjects() []valueobjects.ObjectID {
	return slices.Clone(c.valueObjects)
}

// AggregateRoots returns the aggregate roots, duplicates included
func (c *BoundedContext) AggregateRoots() []valueobjects.ObjectID {
	return slices.Clone(c.aggregateRoots)
}

// Invariants returns the equalizer invariants in declaration order
func (c *BoundedContext) Invariants() []entities.Invariant {
	return slices.Clone(c.invariants)
}

// Version returns the number of recorded changes plus one
func (c *BoundedContext) Version() int {
	return c.version
}

// GetUncommittedEvents returns events that haven't been persisted
func (c *BoundedContext) GetUncommittedEvents() []events.DomainEvent {
	return slices.Clone(c.events)
}

// MarkEventsAsCommitted clears the uncommitted events
func (c *BoundedContext) MarkEventsAsCommitted() {
	c.events = []events.DomainEvent{}
}

func (c *BoundedContext) recordElement(kind events.ElementKind, name string, id valueobjects.ObjectID) {
	c.version++
	c.addEvent(events.NewElementDeclared(c.Name(), kind, name, uint32(id), c.version, time.Now()))
}

func (c *BoundedContext) addEvent(event events.DomainEvent) {
	c.events = append(c.events, event)
}
