// Package repotest holds the behaviour every ports.ModelRepository backend
// must share. Backend test files call RunContract with their own factory.
package repotest

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchddd/application/ports"
	"sketchddd/domain/core/aggregates"
	"sketchddd/domain/core/valueobjects"
	"sketchddd/infrastructure/persistence/codec"
	pkgerrors "sketchddd/pkg/errors"
	"sketchddd/tests/fixtures"
)

// Factory returns an empty repository for one subtest
type Factory func(t *testing.T) ports.ModelRepository

// RunContract exercises save, load, list, delete and optimistic locking
func RunContract(t *testing.T, newRepo Factory) {
	t.Run("save and load round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		model := fixtures.Commerce()

		require.NoError(t, repo.Save(ctx, model))
		model.MarkSaved(model.UpdatedAt())

		loaded, err := repo.GetByID(ctx, model.ID())
		require.NoError(t, err)
		assert.Equal(t, 1, loaded.Version())

		want := codec.FromModel(model)
		got := codec.FromModel(loaded)
		if diff := cmp.Diff(want.Contexts, got.Contexts); diff != "" {
			t.Errorf("contexts changed (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(want.ContextMaps, got.ContextMaps); diff != "" {
			t.Errorf("context maps changed (-want +got):\n%s", diff)
		}
	})

	t.Run("missing model", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.GetByID(context.Background(), valueobjects.NewModelID())
		assert.True(t, pkgerrors.IsNotFound(err), "got %v", err)

		err = repo.Delete(context.Background(), valueobjects.NewModelID())
		assert.True(t, pkgerrors.IsNotFound(err), "got %v", err)
	})

	t.Run("stale save conflicts", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		model := fixtures.Commerce()
		require.NoError(t, repo.Save(ctx, model))

		// model was not marked saved, so it still claims version 0
		err := repo.Save(ctx, model)
		assert.True(t, pkgerrors.IsConflict(err), "got %v", err)

		model.MarkSaved(model.UpdatedAt())
		model.AddContext("Billing")
		require.NoError(t, repo.Save(ctx, model))

		loaded, err := repo.GetByID(ctx, model.ID())
		require.NoError(t, err)
		assert.Equal(t, 2, loaded.Version())
		assert.Len(t, loaded.Contexts(), 3)
	})

	t.Run("list orders and pages", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		for _, name := range []string{"Gamma", "Alpha", "Beta", "Alpine"} {
			m, err := aggregates.NewModel(name)
			require.NoError(t, err)
			require.NoError(t, repo.Save(ctx, m))
		}

		all, err := repo.List(ctx, ports.ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha", "Alpine", "Beta", "Gamma"}, names(all))
		assert.Equal(t, 1, all[0].Version)
		assert.Len(t, all[0].Checksum, 64)

		page, err := repo.List(ctx, ports.ListOptions{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpine", "Beta"}, names(page))

		tail, err := repo.List(ctx, ports.ListOptions{Offset: 3})
		require.NoError(t, err)
		assert.Equal(t, []string{"Gamma"}, names(tail))

		prefixed, err := repo.List(ctx, ports.ListOptions{NamePrefix: "Al"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha", "Alpine"}, names(prefixed))
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		model := fixtures.Commerce()
		require.NoError(t, repo.Save(ctx, model))

		require.NoError(t, repo.Delete(ctx, model.ID()))
		_, err := repo.GetByID(ctx, model.ID())
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func names(summaries []ports.ModelSummary) []string {
	out := make([]string, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, s.Name)
	}
	return out
}
