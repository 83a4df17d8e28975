package aggregates

import (
	"slices"

	"sketchddd/domain/core/entities"
	"sketchddd/domain/core/valueobjects"
)

// Sketch is the categorical specification of one model: a graph plus path
// equations, limit cones and colimit cocones. The collections are
// append-only and never deduplicated; checking them is the validator's job.
type Sketch struct {
	name      string
	graph     *Graph
	equations []entities.PathEquation
	limits    []*entities.LimitCone
	colimits  []*entities.ColimitCocone
}

// NewSketch creates an empty sketch
func NewSketch(name string) *Sketch {
	return &Sketch{
		name:      name,
		graph:     NewGraph(),
		equations: []entities.PathEquation{},
		limits:    []*entities.LimitCone{},
		colimits:  []*entities.ColimitCocone{},
	}
}

// RestoreSketch rebuilds a sketch around an existing graph
func RestoreSketch(
	name string,
	graph *Graph,
	equations []entities.PathEquation,
	limits []*entities.LimitCone,
	colimits []*entities.ColimitCocone,
) *Sketch {
	s := NewSketch(name)
	if graph != nil {
		s.graph = graph
	}
	s.equations = append(s.equations, equations...)
	s.limits = append(s.limits, limits...)
	s.colimits = append(s.colimits, colimits...)
	return s
}

// Name returns the sketch name
func (s *Sketch) Name() string {
	return s.name
}

// Graph returns the underlying graph
func (s *Sketch) Graph() *Graph {
	return s.graph
}

// AddObject delegates to the graph
func (s *Sketch) AddObject(name string) valueobjects.ObjectID {
	return s.graph.AddObject(name)
}

// AddMorphism delegates to the graph
func (s *Sketch) AddMorphism(name string, source, target valueobjects.ObjectID) valueobjects.MorphismID {
	return s.graph.AddMorphism(name, source, target)
}

// AddEquation appends a path equation
func (s *Sketch) AddEquation(eq entities.PathEquation) {
	s.equations = append(s.equations, eq)
}

// AddLimit appends a limit cone
func (s *Sketch) AddLimit(limit *entities.LimitCone) {
	s.limits = append(s.limits, limit)
}

// AddColimit appends a colimit cocone
func (s *Sketch) AddColimit(colimit *entities.ColimitCocone) {
	s.colimits = append(s.colimits, colimit)
}

// Equations returns the path equations in insertion order
func (s *Sketch) Equations() []entities.PathEquation {
	return slices.Clone(s.equations)
}

// Limits returns the limit cones in insertion order
func (s *Sketch) Limits() []*entities.LimitCone {
	return slices.Clone(s.limits)
}

// Colimits returns the colimit cocones in insertion order
func (s *Sketch) Colimits() []*entities.ColimitCocone {
	return slices.Clone(s.colimits)
}
