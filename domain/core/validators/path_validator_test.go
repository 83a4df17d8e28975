package validators

import (
	"testing"

	"sketchddd/domain/core/aggregates"
	"sketchddd/domain/core/entities"
	"sketchddd/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a -f-> b -g-> c, plus h: a -> c
func chainGraph() (*aggregates.Graph, [3]valueobjects.ObjectID, [3]valueobjects.MorphismID) {
	g := aggregates.NewGraph()
	a := g.AddObject("A")
	b := g.AddObject("B")
	c := g.AddObject("C")
	f := g.AddMorphism("f", a, b)
	gm := g.AddMorphism("g", b, c)
	h := g.AddMorphism("h", a, c)
	return g, [3]valueobjects.ObjectID{a, b, c}, [3]valueobjects.MorphismID{f, gm, h}
}

func TestValidatePath(t *testing.T) {
	g, o, m := chainGraph()
	a, b, c := o[0], o[1], o[2]
	f, gm, h := m[0], m[1], m[2]

	tests := []struct {
		name  string
		path  valueobjects.Path
		codes []string
	}{
		{"composable path", valueobjects.NewPath(a, c, f, gm), nil},
		{"single morphism", valueobjects.NewPath(a, c, h), nil},
		{"identity path", valueobjects.IdentityPath(b), nil},
		{"missing source aborts", valueobjects.NewPath(42, 43, 77), []string{CodePathSourceMissing}},
		{"missing target", valueobjects.NewPath(a, 42, f), []string{CodePathTargetMissing, CodePathEndMismatch}},
		{"empty path with different endpoints", valueobjects.NewPath(a, b), []string{CodeEmptyPathEndpoints}},
		{"first morphism starts elsewhere", valueobjects.NewPath(b, c, f, gm), []string{CodePathStartMismatch}},
		{"non-composable", valueobjects.NewPath(a, c, f, h), []string{CodePathNotComposable}},
		{"wrong end", valueobjects.NewPath(a, c, f), []string{CodePathEndMismatch}},
		{"missing morphism is skipped", valueobjects.NewPath(a, c, f, 99, gm), []string{CodePathMorphismMissing}},
		{"start is checked only at position zero", valueobjects.NewPath(a, c, 99, gm), []string{CodePathMorphismMissing, CodePathNotComposable}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidatePath(tt.path, g, "p")
			if tt.codes == nil {
				assert.Empty(t, result.Issues)
				assert.True(t, result.IsOK())
				return
			}
			assert.Equal(t, tt.codes, result.Codes())
		})
	}
}

func TestValidatePath_Idempotent(t *testing.T) {
	g, o, m := chainGraph()
	p := valueobjects.NewPath(o[1], o[0], m[2], 99, m[0])

	first := ValidatePath(p, g, "p")
	second := ValidatePath(p, g, "p")
	assert.Equal(t, first, second)
}

func TestValidatePath_EmptyPaths(t *testing.T) {
	g, o, _ := chainGraph()
	for _, src := range o {
		for _, tgt := range o {
			result := ValidatePath(valueobjects.NewPath(src, tgt), g, "p")
			if src == tgt {
				assert.Empty(t, result.Issues)
			} else {
				assert.Equal(t, []string{CodeEmptyPathEndpoints}, result.Codes())
			}
		}
	}
}

func TestValidateEquation(t *testing.T) {
	g, o, m := chainGraph()
	a, b, c := o[0], o[1], o[2]
	f, gm, h := m[0], m[1], m[2]

	t.Run("trivial equation warns only", func(t *testing.T) {
		eq := entities.NewPathEquation("trivial", valueobjects.IdentityPath(a), valueobjects.IdentityPath(a))
		result := ValidateEquation(eq, g)
		assert.Equal(t, 0, result.ErrorCount())
		assert.Equal(t, []string{CodeTrivialEquation}, result.Codes())
	})

	t.Run("commuting triangle", func(t *testing.T) {
		eq := entities.NewPathEquation("triangle", valueobjects.NewPath(a, c, f, gm), valueobjects.NewPath(a, c, h))
		assert.Empty(t, ValidateEquation(eq, g).Issues)
	})

	t.Run("endpoint mismatch", func(t *testing.T) {
		eq := entities.NewPathEquation("bad", valueobjects.NewPath(a, b, f), valueobjects.NewPath(b, c, gm))
		result := ValidateEquation(eq, g)
		assert.Equal(t, []string{CodeEquationSourceMismatch, CodeEquationTargetMismatch}, result.Codes())
	})

	t.Run("long path", func(t *testing.T) {
		loop := g.AddMorphism("loop", a, a)
		long := valueobjects.NewPath(a, a, loop, loop, loop, loop, loop, loop)
		eq := entities.NewPathEquation("long", long, valueobjects.NewPath(a, a, loop))
		result := ValidateEquation(eq, g)
		assert.Equal(t, []string{CodeLongEquationPath}, result.Codes())
		assert.True(t, result.IsOK())
	})
}

func TestValidateEquations_DuplicateNames(t *testing.T) {
	s := aggregates.NewSketch("S")
	a := s.AddObject("A")
	id := valueobjects.IdentityPath(a)
	for _, name := range []string{"rule", "rule", "rule", "", ""} {
		s.AddEquation(entities.NewPathEquation(name, id, id))
	}

	result := ValidateEquations(s)
	groups := result.GroupByCode()
	require.Len(t, groups[CodeDuplicateEquationName], 1)
	assert.Len(t, groups[CodeTrivialEquation], 5)
}
