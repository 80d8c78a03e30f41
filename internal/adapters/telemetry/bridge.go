package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
	"go.trai.ch/parcel/internal/ui/style"
)

// Bridge implements sdktrace.SpanProcessor and reports finished fetch spans
// through the logger, one line per bundle.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{logger: logger}
}

// OnStart does nothing; progress is reported on completion.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd reports a finished fetch span.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}
	bundle, ok := strings.CutPrefix(s.Name(), domain.SpanFetchPrefix)
	if !ok {
		return
	}

	var origin, reason string
	for _, kv := range s.Attributes() {
		switch kv.Key {
		case attribute.Key(domain.AttrOrigin):
			origin = kv.Value.AsString()
		case attribute.Key(domain.AttrReason):
			reason = kv.Value.AsString()
		}
	}

	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)
	if s.Status().Code == codes.Error {
		if reason == "" {
			reason = "other"
		}
		b.logger.Warn(fmt.Sprintf("%s %s (%s, %s) %s", style.Cross, bundle, origin, reason, elapsed))
		return
	}
	b.logger.Info(fmt.Sprintf("%s %s (%s) %s", style.Check, bundle, origin, elapsed))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
