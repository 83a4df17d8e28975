package aggregates

import (
	"fmt"
	"iter"
	"slices"

	"sketchddd/domain/core/entities"
	"sketchddd/domain/core/valueobjects"
)

// Graph is an append-only directed multigraph of named objects and morphisms.
// Storage is a dense arena: an id is the index of its element, so ids are
// strictly increasing and never reused. Nothing is ever removed.
//
// Mutators require exclusive access. Concurrent readers are safe only while
// no writer is active.
type Graph struct {
	objects   []entities.Object
	morphisms []entities.Morphism

	// name -> ids in insertion order; the first entry wins on lookup
	objectsByName   map[string][]valueobjects.ObjectID
	morphismsByName map[string][]valueobjects.MorphismID
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		objects:         []entities.Object{},
		morphisms:       []entities.Morphism{},
		objectsByName:   make(map[string][]valueobjects.ObjectID),
		morphismsByName: make(map[string][]valueobjects.MorphismID),
	}
}

// RestoreGraph rebuilds a graph from previously stored elements.
// Each element's id must equal its position so that references held by
// equations, cones and mappings stay valid.
func RestoreGraph(objects []entities.Object, morphisms []entities.Morphism) (*Graph, error) {
	g := NewGraph()
	for i, o := range objects {
		if o.ID.Index() != i {
			return nil, fmt.Errorf("object %q has id %d at position %d", o.Name, o.ID, i)
		}
		g.insertObject(o)
	}
	for i, m := range morphisms {
		if m.ID.Index() != i {
			return nil, fmt.Errorf("morphism %q has id %d at position %d", m.Name, m.ID, i)
		}
		g.insertMorphism(m)
	}
	return g, nil
}

// AddObject adds an object and returns its id
func (g *Graph) AddObject(name string) valueobjects.ObjectID {
	return g.AddObjectWithDescription(name, "")
}

// AddObjectWithDescription adds an object carrying a description
func (g *Graph) AddObjectWithDescription(name, description string) valueobjects.ObjectID {
	id := valueobjects.ObjectID(len(g.objects))
	g.insertObject(entities.Object{ID: id, Name: name, Description: description})
	return id
}

// AddMorphism adds a morphism between two objects.
// Endpoints are not checked; dangling endpoints are reported by validation.
func (g *Graph) AddMorphism(name string, source, target valueobjects.ObjectID) valueobjects.MorphismID {
	return g.AddMorphismWithDescription(name, source, target, "")
}

// AddMorphismWithDescription adds a morphism carrying a description
func (g *Graph) AddMorphismWithDescription(name string, source, target valueobjects.ObjectID, description string) valueobjects.MorphismID {
	id := valueobjects.MorphismID(len(g.morphisms))
	g.insertMorphism(entities.Morphism{
		ID:          id,
		Name:        name,
		Source:      source,
		Target:      target,
		Description: description,
	})
	return id
}

// AddIdentityMorphism adds the identity morphism "id_<name>" on an object
func (g *Graph) AddIdentityMorphism(object valueobjects.ObjectID) valueobjects.MorphismID {
	name := "id_"
	if o, ok := g.Object(object); ok {
		name += o.Name
	} else {
		name += object.String()
	}
	id := valueobjects.MorphismID(len(g.morphisms))
	g.insertMorphism(entities.Morphism{
		ID:         id,
		Name:       name,
		Source:     object,
		Target:     object,
		IsIdentity: true,
	})
	return id
}

// Object returns the object with the given id
func (g *Graph) Object(id valueobjects.ObjectID) (entities.Object, bool) {
	if id.Index() >= len(g.objects) {
		return entities.Object{}, false
	}
	return g.objects[id], true
}

// Morphism returns the morphism with the given id
func (g *Graph) Morphism(id valueobjects.MorphismID) (entities.Morphism, bool) {
	if id.Index() >= len(g.morphisms) {
		return entities.Morphism{}, false
	}
	return g.morphisms[id], true
}

// HasObject checks if an object exists
func (g *Graph) HasObject(id valueobjects.ObjectID) bool {
	return id.Index() < len(g.objects)
}

// HasMorphism checks if a morphism exists
func (g *Graph) HasMorphism(id valueobjects.MorphismID) bool {
	return id.Index() < len(g.morphisms)
}

// FindObjectByName returns the first inserted object with the given name
func (g *Graph) FindObjectByName(name string) (entities.Object, bool) {
	ids := g.objectsByName[name]
	if len(ids) == 0 {
		return entities.Object{}, false
	}
	return g.objects[ids[0]], true
}

// FindMorphismByName returns the first inserted morphism with the given name
func (g *Graph) FindMorphismByName(name string) (entities.Morphism, bool) {
	ids := g.morphismsByName[name]
	if len(ids) == 0 {
		return entities.Morphism{}, false
	}
	return g.morphisms[ids[0]], true
}

// ObjectsNamed returns every object id sharing a name, in insertion order
func (g *Graph) ObjectsNamed(name string) []valueobjects.ObjectID {
	return slices.Clone(g.objectsByName[name])
}

// OutgoingMorphisms yields the morphisms whose source is the given object.
// The sequence is lazy and may be ranged over more than once.
func (g *Graph) OutgoingMorphisms(object valueobjects.ObjectID) iter.Seq[entities.Morphism] {
	return g.filterMorphisms(func(m entities.Morphism) bool { return m.Source == object })
}

// IncomingMorphisms yields the morphisms whose target is the given object
func (g *Graph) IncomingMorphisms(object valueobjects.ObjectID) iter.Seq[entities.Morphism] {
	return g.filterMorphisms(func(m entities.Morphism) bool { return m.Target == object })
}

// Objects returns all objects in insertion order
func (g *Graph) Objects() []entities.Object {
	return slices.Clone(g.objects)
}

// Morphisms returns all morphisms in insertion order
func (g *Graph) Morphisms() []entities.Morphism {
	return slices.Clone(g.morphisms)
}

// ObjectCount returns the number of objects
func (g *Graph) ObjectCount() int {
	return len(g.objects)
}

// MorphismCount returns the number of morphisms
func (g *Graph) MorphismCount() int {
	return len(g.morphisms)
}

func (g *Graph) filterMorphisms(keep func(entities.Morphism) bool) iter.Seq[entities.Morphism] {
	return func(yield func(entities.Morphism) bool) {
		for _, m := range g.morphisms {
			if keep(m) && !yield(m) {
				return
			}
		}
	}
}

func (g *Graph) insertObject(o entities.Object) {
	g.objects = append(g.objects, o)
	g.objectsByName[o.Name] = append(g.objectsByName[o.Name], o.ID)
}

func (g *Graph) insertMorphism(m entities.Morphism) {
	g.morphisms = append(g.morphisms, m)
	g.morphismsByName[m.Name] = append(g.morphismsByName[m.Name], m.ID)
}
