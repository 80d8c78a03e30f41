package telemetry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/parcel/internal/adapters/telemetry"
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
)

func newRecordingTracer(t *testing.T) (*telemetry.OTelTracer, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })
	return telemetry.NewOTelTracerFrom(tp, "test"), rec
}

func attrs(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range s.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestOTelTracer_Attributes(t *testing.T) {
	tracer, rec := newRecordingTracer(t)

	_, span := tracer.Start(t.Context(), "sync", ports.WithAttribute("platform", "linux"))
	span.SetAttribute("count", 3)
	span.SetAttribute("big", int64(7))
	span.SetAttribute("ratio", 0.5)
	span.SetAttribute("updated", true)
	span.SetAttribute("bundles", []string{"a", "b"})
	span.SetAttribute("origin", domain.OriginCached)
	span.SetAttribute("other", struct{ X int }{1})
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	got := attrs(ended[0])
	assert.Equal(t, "linux", got["platform"].AsString())
	assert.Equal(t, int64(3), got["count"].AsInt64())
	assert.Equal(t, int64(7), got["big"].AsInt64())
	assert.InDelta(t, 0.5, got["ratio"].AsFloat64(), 0.0001)
	assert.True(t, got["updated"].AsBool())
	assert.Equal(t, []string{"a", "b"}, got["bundles"].AsStringSlice())
	assert.Equal(t, "cached", got["origin"].AsString())
	assert.Equal(t, "{1}", got["other"].AsString())
}

func TestOTelSpan_RecordError(t *testing.T) {
	tracer, rec := newRecordingTracer(t)

	_, span := tracer.Start(t.Context(), "fetch ui")
	span.RecordError(nil)
	span.RecordError(errors.New("boom"))
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
}

func TestOTelSpan_Write(t *testing.T) {
	tracer, rec := newRecordingTracer(t)

	_, span := tracer.Start(t.Context(), "publish")
	n, err := span.Write([]byte("wrote ui~aa"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	span.End()

	events := rec.Ended()[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "log", events[0].Name)
}
