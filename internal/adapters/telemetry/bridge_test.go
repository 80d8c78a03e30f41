package telemetry_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/parcel/internal/adapters/telemetry"
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func runSpan(t *testing.T, bridge *telemetry.Bridge, name string, fail bool) {
	t.Helper()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracerFrom(tp, "test")
	_, span := tracer.Start(context.Background(), name)
	span.SetAttribute(domain.AttrOrigin, "require-download")
	if fail {
		span.SetAttribute(domain.AttrReason, "fetch")
		span.RecordError(errors.New("status 503"))
	}
	span.End()
}

func TestBridge_ReportsFetchSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Cond(func(msg string) bool {
		return strings.HasPrefix(msg, "✓ ui~aa (require-download)")
	})).Times(1)

	runSpan(t, telemetry.NewBridge(logger), "fetch ui~aa", false)
}

func TestBridge_ReportsFetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).Times(1)

	runSpan(t, telemetry.NewBridge(logger), "fetch ui~aa", true)
}

func TestBridge_IgnoresOtherSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	runSpan(t, telemetry.NewBridge(logger), "sync", false)
}

func TestBridge_NilLogger(_ *testing.T) {
	bridge := telemetry.NewBridge(nil)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	_, span := tp.Tracer("test").Start(context.Background(), "fetch ui")
	span.End()
	_ = tp.Shutdown(context.Background())
}
