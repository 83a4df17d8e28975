package services

import (
	"testing"

	"sketchddd/domain/core/aggregates"
	"sketchddd/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFunctorialConsistency_EmptyMapIsValid(t *testing.T) {
	src := aggregates.NewBoundedContext("Sales")
	src.AddEntity("Customer")
	tgt := aggregates.NewBoundedContext("Billing")

	m := aggregates.NewContextMap("M", "Sales", "Billing", valueobjects.PatternConformist)

	result := CheckFunctorialConsistency(m, src.Graph(), tgt.Graph())
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestCheckFunctorialConsistency(t *testing.T) {
	// source: f: A -> B
	src := aggregates.NewGraph()
	a := src.AddObject("A")
	b := src.AddObject("B")
	f := src.AddMorphism("f", a, b)
	idA := src.AddIdentityMorphism(a)

	// target: FA, FB, FC and Ff: FC -> FB
	tgt := aggregates.NewGraph()
	fa := tgt.AddObject("FA")
	fb := tgt.AddObject("FB")
	fc := tgt.AddObject("FC")
	ffGood := tgt.AddMorphism("ffGood", fa, fb)
	ffBadSource := tgt.AddMorphism("ffBad", fc, fb)
	ffBadTarget := tgt.AddMorphism("ffBadTarget", fa, fc)
	idFA := tgt.AddIdentityMorphism(fa)

	tests := []struct {
		name      string
		configure func(m *aggregates.ContextMap)
		wantKinds []FunctorErrorKind
	}{
		{
			name: "structure preserved",
			configure: func(m *aggregates.ContextMap) {
				m.MapObject(a, fa)
				m.MapObject(b, fb)
				m.MapMorphism(f, ffGood)
				m.MapMorphism(idA, idFA)
			},
		},
		{
			name: "inconsistent source",
			configure: func(m *aggregates.ContextMap) {
				m.MapObject(a, fa)
				m.MapObject(b, fb)
				m.MapMorphism(f, ffBadSource)
			},
			wantKinds: []FunctorErrorKind{InconsistentSource},
		},
		{
			name: "inconsistent target",
			configure: func(m *aggregates.ContextMap) {
				m.MapObject(a, fa)
				m.MapObject(b, fb)
				m.MapMorphism(f, ffBadTarget)
			},
			wantKinds: []FunctorErrorKind{InconsistentTarget},
		},
		{
			name: "unmapped endpoints",
			configure: func(m *aggregates.ContextMap) {
				m.MapMorphism(f, ffGood)
			},
			wantKinds: []FunctorErrorKind{UnmappedSource, UnmappedTarget},
		},
		{
			name: "identity mapped to non-identity",
			configure: func(m *aggregates.ContextMap) {
				m.MapObject(a, fa)
				m.MapMorphism(idA, ffGood)
			},
			// ffGood ends at FB while A maps to FA
			wantKinds: []FunctorErrorKind{InconsistentTarget, IdentityNotPreserved},
		},
		{
			name: "absent morphisms are skipped",
			configure: func(m *aggregates.ContextMap) {
				m.MapMorphism(99, ffGood)
				m.MapMorphism(f, 99)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := aggregates.NewContextMap("M", "S", "T", valueobjects.PatternCustomerSupplier)
			tt.configure(m)

			result := CheckFunctorialConsistency(m, src, tgt)

			var kinds []FunctorErrorKind
			for _, e := range result.Errors {
				kinds = append(kinds, e.Kind)
				assert.NotEmpty(t, e.Error())
			}
			assert.Equal(t, tt.wantKinds, kinds)
			assert.Equal(t, len(tt.wantKinds) == 0, result.IsValid)
		})
	}
}

func TestCheckFunctorialConsistency_ReportsEndpoints(t *testing.T) {
	src := aggregates.NewGraph()
	a := src.AddObject("A")
	b := src.AddObject("B")
	f := src.AddMorphism("f", a, b)

	tgt := aggregates.NewGraph()
	fa := tgt.AddObject("FA")
	fb := tgt.AddObject("FB")
	fc := tgt.AddObject("FC")
	ff := tgt.AddMorphism("Ff", fc, fb)

	m := aggregates.NewContextMap("M", "S", "T", valueobjects.PatternPartnership)
	m.MapObject(a, fa)
	m.MapObject(b, fb)
	m.MapMorphism(f, ff)

	result := CheckFunctorialConsistency(m, src, tgt)
	require.Len(t, result.Errors, 1)
	e := result.Errors[0]
	assert.Equal(t, InconsistentSource, e.Kind)
	assert.Equal(t, f, e.SourceMorphism)
	assert.Equal(t, fa, e.Expected)
	assert.Equal(t, fc, e.Actual)
}

func TestCheckModelContextMaps(t *testing.T) {
	model, err := aggregates.NewModel("Enterprise")
	require.NoError(t, err)
	sales := model.AddContext("Sales")
	billing := model.AddContext("Billing")
	customer := sales.AddEntity("Customer")
	account := billing.AddEntity("Account")

	ok := model.AddContextMap("SalesToBilling", "Sales", "Billing", valueobjects.PatternCustomerSupplier)
	ok.MapObject(customer, account)
	idC, _ := sales.EntityIdentity(customer)
	idA, _ := billing.EntityIdentity(account)
	ok.MapMorphism(idC, idA)
	model.AddContextMap("Dangling", "Sales", "Nowhere", valueobjects.PatternConformist)

	results := CheckModelContextMaps(model)
	require.Len(t, results, 1)
	assert.True(t, results["SalesToBilling"].IsValid)
}
