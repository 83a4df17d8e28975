package integration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchddd/application/commands"
	"sketchddd/application/ports"
	"sketchddd/application/queries"
	"sketchddd/domain/core/aggregates"
	"sketchddd/domain/core/validators"
	"sketchddd/domain/core/valueobjects"
	"sketchddd/infrastructure/config"
	"sketchddd/infrastructure/di"
	pkgerrors "sketchddd/pkg/errors"
	"sketchddd/tests/fixtures"
)

func newContainer(t *testing.T, path string) *di.Container {
	t.Helper()
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("STORAGE_BACKEND", config.StorageSQLite)
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("METRICS_BACKEND", config.MetricsPrometheus)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	container, cleanup, err := di.InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return container
}

// TestModelLifecycle drives a model through the buses against SQLite
func TestModelLifecycle(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "models.db")
	c := newContainer(t, path)

	model := fixtures.Commerce()
	id := model.ID().String()

	t.Run("save through command bus", func(t *testing.T) {
		require.NoError(t, c.CommandBus.Send(ctx, commands.SaveModelCommand{Model: model}))
		assert.Equal(t, 1, model.Version())
	})

	t.Run("list caches until the next command", func(t *testing.T) {
		out, err := c.QueryBus.Ask(ctx, queries.ListModelsQuery{})
		require.NoError(t, err)
		summaries := out.([]ports.ModelSummary)
		require.Len(t, summaries, 1)
		assert.Equal(t, "Commerce", summaries[0].Name)
		assert.Equal(t, 1, summaries[0].Version)

		model.SetDescription("revised")
		require.NoError(t, c.CommandBus.Send(ctx, commands.SaveModelCommand{Model: model}))

		out, err = c.QueryBus.Ask(ctx, queries.ListModelsQuery{})
		require.NoError(t, err)
		assert.Equal(t, 2, out.([]ports.ModelSummary)[0].Version)
	})

	t.Run("validate stored model", func(t *testing.T) {
		out, err := c.QueryBus.Ask(ctx, queries.ValidateModelQuery{ModelID: id})
		require.NoError(t, err)
		report := out.(*queries.ValidationReport)
		assert.True(t, report.Result.IsOK())
		assert.True(t, report.Functors["OrdersToShipping"].IsValid)
	})

	t.Run("export and import yaml", func(t *testing.T) {
		out, err := c.QueryBus.Ask(ctx, queries.ExportModelQuery{ModelID: id, Format: "yaml"})
		require.NoError(t, err)

		imported, err := c.QueryBus.Ask(ctx, queries.ImportModelQuery{Data: out.([]byte)})
		require.NoError(t, err)
		result := imported.(*queries.ImportResult)
		assert.True(t, result.Validation.IsOK())
		assert.Equal(t, "revised", result.Model.Description())
		assert.Equal(t, 2, result.Model.Version())
	})

	t.Run("invalid model is rejected", func(t *testing.T) {
		broken, err := aggregates.NewModel("Broken")
		require.NoError(t, err)
		broken.AddContextMap("Dangling", "Sales", "Billing", valueobjects.PatternConformist)

		err = c.CommandBus.Send(ctx, commands.SaveModelCommand{Model: broken})
		require.Error(t, err)
		assert.True(t, errors.Is(err, pkgerrors.ErrModelValidationFailed))

		var verrs *pkgerrors.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs.Codes(), validators.CodeUnknownSourceContext)
	})

	t.Run("survives reopen", func(t *testing.T) {
		reopened := newContainer(t, path)
		out, err := reopened.QueryBus.Ask(ctx, queries.GetModelQuery{ModelID: id})
		require.NoError(t, err)
		loaded := out.(*aggregates.Model)
		assert.Equal(t, 2, loaded.Version())
		assert.Len(t, loaded.ContextMaps(), 1)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, c.CommandBus.Send(ctx, commands.DeleteModelCommand{ModelID: id}))

		_, err := c.QueryBus.Ask(ctx, queries.GetModelQuery{ModelID: id})
		assert.True(t, pkgerrors.IsNotFound(err))

		err = c.CommandBus.Send(ctx, commands.DeleteModelCommand{ModelID: "nope"})
		assert.Error(t, err)
	})
}
