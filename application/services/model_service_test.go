package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"sketchddd/application/ports"
	"sketchddd/domain/core/aggregates"
	"sketchddd/domain/core/validators"
	"sketchddd/domain/core/valueobjects"
	"sketchddd/domain/events"
	"sketchddd/infrastructure/messaging"
	"sketchddd/infrastructure/persistence/codec"
	"sketchddd/infrastructure/persistence/memory"
	pkgerrors "sketchddd/pkg/errors"
	"sketchddd/pkg/observability"
	"sketchddd/tests/fixtures"
)

type harness struct {
	service   *ModelService
	publisher *messaging.LoggingPublisher
	metrics   *observability.Collector
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := zaptest.NewLogger(t)
	c := codec.NewCodec()
	publisher := messaging.NewLoggingPublisher(logger, 100)
	metrics := observability.NewCollector("test")

	return &harness{
		service: NewModelService(
			memory.NewModelRepository(c, logger),
			publisher,
			metrics,
			observability.NewTracer("sketchddd", false),
			validators.NewValidator(nil),
			c,
			logger,
		),
		publisher: publisher,
		metrics:   metrics,
	}
}

func eventTypes(evts []events.DomainEvent) []string {
	out := make([]string, len(evts))
	for i, e := range evts {
		out[i] = e.GetEventType()
	}
	return out
}

func brokenModel(t *testing.T) *aggregates.Model {
	t.Helper()
	model, err := aggregates.NewModel("Broken")
	require.NoError(t, err)
	model.AddContext("Sales")
	model.AddContextMap("SalesToNowhere", "Sales", "Nowhere", valueobjects.PatternConformist)
	return model
}

func TestModelService_Validate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	result := h.service.Validate(ctx, fixtures.Commerce())
	assert.True(t, result.IsOK())

	result = h.service.Validate(ctx, brokenModel(t))
	assert.False(t, result.IsOK())
	assert.True(t, result.HasCode(validators.CodeUnknownTargetContext))

	assert.Equal(t, []string{events.TypeModelValidated, events.TypeModelValidated}, eventTypes(h.publisher.Recent()))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.ValidationRuns.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.ValidationRuns.WithLabelValues("false")))
}

func TestModelService_CheckContextMaps(t *testing.T) {
	h := newHarness(t)
	model := fixtures.Commerce()

	results := h.service.CheckContextMaps(context.Background(), model)
	require.Contains(t, results, "OrdersToShipping")
	assert.True(t, results["OrdersToShipping"].IsValid)

	results = h.service.CheckContextMaps(context.Background(), brokenModel(t))
	assert.Empty(t, results)
}

func TestModelService_SaveAndLoad(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	model := fixtures.Commerce()

	version, err := h.service.Save(ctx, model)
	require.NoError(t, err)
	assert.Equal(t, 1, version.Version)
	assert.Equal(t, 1, model.Version())
	assert.NotEmpty(t, version.Checksum)
	assert.Equal(t, 2, version.ContextCount)

	types := eventTypes(h.publisher.Recent())
	assert.Equal(t, events.TypeModelValidated, types[0])
	assert.Equal(t, events.TypeModelSaved, types[1])
	assert.Contains(t, types, events.TypeContextCreated)
	for _, bc := range model.Contexts() {
		assert.Empty(t, bc.GetUncommittedEvents())
	}

	loaded, err := h.service.Load(ctx, model.ID().String())
	require.NoError(t, err)
	assert.Equal(t, model.Name(), loaded.Name())
	assert.Equal(t, 1, loaded.Version())
	assert.Len(t, loaded.Contexts(), 2)

	_, err = h.service.Save(ctx, loaded)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Version())

	assert.Equal(t, 2.0, testutil.ToFloat64(h.metrics.Operations.WithLabelValues("Save", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Operations.WithLabelValues("Load", "success")))
}

func TestModelService_SaveRejectsInvalidModel(t *testing.T) {
	h := newHarness(t)

	_, err := h.service.Save(context.Background(), brokenModel(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrModelValidationFailed))

	var verrs *pkgerrors.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.Codes(), validators.CodeUnknownTargetContext)

	summaries, err := h.service.List(context.Background(), ports.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, summaries)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Operations.WithLabelValues("Save", "failure")))
}

func TestModelService_StaleSaveConflicts(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	model := fixtures.Commerce()

	_, err := h.service.Save(ctx, model)
	require.NoError(t, err)
	stale, err := h.service.Load(ctx, model.ID().String())
	require.NoError(t, err)

	_, err = h.service.Save(ctx, model)
	require.NoError(t, err)

	_, err = h.service.Save(ctx, stale)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsConflict(err))
	assert.Equal(t, 1, stale.Version())
}

func TestModelService_ImportExport(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	model := fixtures.Commerce()
	_, err := h.service.Save(ctx, model)
	require.NoError(t, err)

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			data, err := h.service.Export(ctx, model.ID().String(), format)
			require.NoError(t, err)

			imported, result, err := h.service.Import(ctx, data, "")
			require.NoError(t, err)
			assert.True(t, result.IsOK())
			assert.True(t, imported.ID().Equals(model.ID()))
			assert.Equal(t, 1, imported.Version())
		})
	}

	types := eventTypes(h.publisher.Recent())
	assert.Contains(t, types, events.TypeModelImported)
}

func TestModelService_ImportReportsDiagnostics(t *testing.T) {
	h := newHarness(t)
	data, err := codec.NewCodec().Encode(brokenModel(t), codec.FormatYAML)
	require.NoError(t, err)

	model, result, err := h.service.Import(context.Background(), data, "yml")
	require.NoError(t, err)
	assert.Equal(t, "Broken", model.Name())
	assert.True(t, result.HasCode(validators.CodeUnknownTargetContext))
}

func TestModelService_Errors(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		run    func() error
		target error
	}{
		{
			name:   "load with malformed id",
			run:    func() error { _, err := h.service.Load(ctx, "not-a-uuid"); return err },
			target: pkgerrors.ErrInvalidModelID,
		},
		{
			name:   "load missing model",
			run:    func() error { _, err := h.service.Load(ctx, valueobjects.NewModelID().String()); return err },
			target: pkgerrors.ErrModelNotFound,
		},
		{
			name:   "export in unknown format",
			run:    func() error { _, err := h.service.Export(ctx, valueobjects.NewModelID().String(), "xml"); return err },
			target: pkgerrors.ErrUnsupportedFormat,
		},
		{
			name:   "import garbage",
			run:    func() error { _, _, err := h.service.Import(ctx, []byte("{not json"), "json"); return err },
			target: pkgerrors.ErrInvalidModelDocument,
		},
		{
			name:   "delete missing model",
			run:    func() error { return h.service.Delete(ctx, valueobjects.NewModelID().String()) },
			target: pkgerrors.ErrModelNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestModelService_Delete(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	model := fixtures.Commerce()
	_, err := h.service.Save(ctx, model)
	require.NoError(t, err)

	require.NoError(t, h.service.Delete(ctx, model.ID().String()))

	_, err = h.service.Load(ctx, model.ID().String())
	assert.True(t, pkgerrors.IsNotFound(err))

	recent := h.publisher.Recent()
	assert.Equal(t, events.TypeModelDeleted, recent[len(recent)-1].GetEventType())
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, events.DomainEvent) error {
	return pkgerrors.NewEventPublishError(errors.New("bus unavailable"))
}

func (failingPublisher) PublishBatch(context.Context, []events.DomainEvent) error {
	return pkgerrors.NewEventPublishError(errors.New("bus unavailable"))
}

func TestModelService_PublishFailureKeepsSave(t *testing.T) {
	logger := zaptest.NewLogger(t)
	c := codec.NewCodec()
	service := NewModelService(
		memory.NewModelRepository(c, logger),
		failingPublisher{},
		observability.NoopMetrics{},
		observability.NewTracer("sketchddd", false),
		validators.NewValidator(nil),
		c,
		logger,
	)
	model := fixtures.Commerce()

	_, err := service.Save(context.Background(), model)
	require.NoError(t, err)

	_, err = service.Load(context.Background(), model.ID().String())
	require.NoError(t, err)

	orders, ok := model.Context("Orders")
	require.True(t, ok)
	assert.NotEmpty(t, orders.GetUncommittedEvents())
}
