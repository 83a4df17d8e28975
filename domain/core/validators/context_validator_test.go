package validators

import (
	"fmt"
	"testing"

	"sketchddd/domain/config"
	"sketchddd/domain/core/aggregates"
	"sketchddd/domain/core/entities"
	"sketchddd/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSketch(t *testing.T) {
	t.Run("duplicate object names", func(t *testing.T) {
		s := aggregates.NewSketch("S")
		s.AddObject("Customer")
		s.AddObject("Customer")

		result := ValidateSketch(s)
		assert.Equal(t, 1, result.ErrorCount())
		assert.Equal(t, []string{CodeDuplicateObjectName}, result.Codes())
	})

	t.Run("dangling morphism endpoints", func(t *testing.T) {
		s := aggregates.NewSketch("S")
		a := s.AddObject("A")
		s.AddMorphism("toNowhere", a, 50)
		s.AddMorphism("fromNowhere", 51, a)

		result := ValidateSketch(s)
		assert.Equal(t, []string{CodeMorphismTargetMissing, CodeMorphismSourceMissing}, result.Codes())
	})
}

func TestValidateContext_LargeAggregate(t *testing.T) {
	ctx := aggregates.NewBoundedContext("Commerce")
	root := ctx.AddEntity("Order")
	var members []valueobjects.ObjectID
	for i := 0; i < 6; i++ {
		members = append(members, ctx.AddEntity(fmt.Sprintf("Part%d", i)))
	}
	ctx.DefineAggregateWithMembers("Big", root, members)

	result := ValidateContext(ctx)
	assert.Equal(t, 0, result.ErrorCount())
	assert.Equal(t, []string{CodeAggregateTooLarge}, result.Codes())

	t.Run("threshold is configurable", func(t *testing.T) {
		cfg := config.DefaultDomainConfig()
		cfg.MaxAggregateSize = 10
		assert.Empty(t, NewValidator(cfg).ValidateContext(ctx).Issues)
	})
}

func TestValidateContext_CommerceDanglingMember(t *testing.T) {
	ctx := aggregates.NewBoundedContext("Commerce")
	customer := ctx.AddEntity("Customer")
	order := ctx.AddEntity("Order")
	ctx.Graph().AddMorphism("placedBy", order, customer)

	lineItem := valueobjects.ObjectID(ctx.Graph().ObjectCount() + 10)
	ctx.DefineAggregateWithMembers("OrderAggregate", order, []valueobjects.ObjectID{lineItem})

	result := ValidateContext(ctx)
	require.True(t, result.HasCode(CodeAggregateMemberMissing))
	assert.False(t, result.HasCode(CodeAggregateRootMissing))
	assert.False(t, result.HasCode(CodeAggregateConeRootMissing))
	assert.Len(t, result.GroupByCode()[CodeAggregateMemberMissing], 1)
}

func TestValidateContext_Classification(t *testing.T) {
	t.Run("missing aggregate root", func(t *testing.T) {
		ctx := aggregates.NewBoundedContext("C")
		ctx.DefineAggregate("Phantom", 77)

		result := ValidateContext(ctx)
		assert.True(t, result.HasCode(CodeAggregateRootMissing))
		assert.True(t, result.HasCode(CodeAggregateConeRootMissing))
	})

	t.Run("entity without identity and value object without cone", func(t *testing.T) {
		sketch := aggregates.NewSketch("C")
		e := sketch.AddObject("Customer")
		v := sketch.AddObject("Money")
		ctx := aggregates.ReconstructBoundedContext(sketch,
			[]valueobjects.ObjectID{e}, nil, []valueobjects.ObjectID{v}, nil, nil)

		result := ValidateContext(ctx)
		assert.Equal(t, []string{CodeEntityIdentityMissing, CodeValueObjectLimitMissing}, result.Codes())
		assert.Equal(t, 1, result.WarningCount())
	})

	t.Run("duplicate enum variants", func(t *testing.T) {
		ctx := aggregates.NewBoundedContext("C")
		ctx.AddEnum("Status", []string{"Open", "Closed", "Open"})

		result := ValidateContext(ctx)
		assert.Equal(t, []string{CodeDuplicateVariantName}, result.Codes())
	})

	t.Run("equalizer checks", func(t *testing.T) {
		ctx := aggregates.NewBoundedContext("C")
		order := ctx.AddEntity("Order")
		money := ctx.AddValueObject("Money")
		customer := ctx.AddEntity("Customer")
		total := ctx.Graph().AddMorphism("total", order, money)
		lines := ctx.Graph().AddMorphism("lineSum", order, money)
		buyer := ctx.Graph().AddMorphism("buyer", order, customer)

		ctx.AddEqualizerInvariant("Good", order, total, lines, "")
		assert.True(t, ValidateContext(ctx).IsOK())

		ctx.AddEqualizerInvariant("NotParallel", order, total, buyer, "")
		ctx.AddEqualizerInvariant("Missing", order, total, 999, "")

		result := ValidateContext(ctx)
		assert.Equal(t, []string{CodeInvariantNotParallel, CodeInvariantMorphismMissing}, result.Codes())
	})

	t.Run("well formed context", func(t *testing.T) {
		ctx := aggregates.NewBoundedContext("Commerce")
		customer := ctx.AddEntity("Customer")
		order := ctx.AddEntity("Order")
		line := ctx.AddEntity("LineItem")
		placedBy := ctx.Graph().AddMorphism("placedBy", order, customer)
		money := ctx.AddValueObject("Money")
		ctx.AddValueObjectWithComponents("Price", []valueobjects.ObjectID{money})
		ctx.DefineAggregateWithMembers("OrderAggregate", order, []valueobjects.ObjectID{line})
		ctx.AddEnum("OrderStatus", []string{"Pending", "Shipped"})
		ctx.AddPathEquation("placedByCommutes", entities.NewPathEquation("",
			valueobjects.NewPath(order, customer, placedBy),
			valueobjects.NewPath(order, customer, placedBy)))

		result := ValidateContext(ctx)
		assert.Empty(t, result.Issues)
		assert.NoError(t, result.Err())
	})
}
