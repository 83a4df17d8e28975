package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCollector(t *testing.T) {
	c := NewCollector("sketchddd")
	ctx := context.Background()

	c.RecordValidation(ctx, 2, 1, 10*time.Millisecond)
	c.RecordValidation(ctx, 0, 0, time.Millisecond)
	c.RecordOperation(ctx, "save", true, time.Millisecond)
	c.RecordOperation(ctx, "save", false, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.ValidationRuns.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ValidationRuns.WithLabelValues("false")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.ValidationIssues.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Operations.WithLabelValues("save", "failure")))

	families, err := c.GetRegistry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	// a second collector gets its own registry
	assert.NotPanics(t, func() { NewCollector("sketchddd") })
}

type cloudWatchStub struct {
	inputs []*cloudwatch.PutMetricDataInput
	err    error
}

func (s *cloudWatchStub) PutMetricData(ctx context.Context, in *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	s.inputs = append(s.inputs, in)
	return &cloudwatch.PutMetricDataOutput{}, s.err
}

func TestCloudWatchMetrics(t *testing.T) {
	stub := &cloudWatchStub{}
	m := NewCloudWatchMetrics("SketchDDD", stub, zap.NewNop())

	m.RecordValidation(context.Background(), 3, 0, 5*time.Millisecond)
	m.RecordOperation(context.Background(), "load", true, time.Millisecond)

	require.Len(t, stub.inputs, 2)
	assert.Equal(t, "SketchDDD", aws.ToString(stub.inputs[0].Namespace))
	assert.Len(t, stub.inputs[0].MetricData, 3)
	assert.Equal(t, 3.0, aws.ToFloat64(stub.inputs[0].MetricData[1].Value))
	assert.Equal(t, "Operation", aws.ToString(stub.inputs[1].MetricData[0].Dimensions[0].Name))

	stub.err = errors.New("denied")
	assert.NotPanics(t, func() { m.RecordOperation(context.Background(), "load", false, 0) })
}

func TestTracer_DisabledRunsDirectly(t *testing.T) {
	tracer := NewTracer("sketchddd", false)
	ctx, done := tracer.StartSegment(context.Background(), "validate")
	called := false
	err := tracer.TraceFunction(ctx, "inner", func(context.Context) error {
		called = true
		return nil
	})
	done(err)
	require.NoError(t, err)
	assert.True(t, called)
	assert.False(t, tracer.Enabled())
}
