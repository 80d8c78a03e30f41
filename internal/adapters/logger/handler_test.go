package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/parcel/internal/adapters/logger"
)

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		want  string
	}{
		{name: "info", level: slog.LevelInfo, want: "message\n"},
		{name: "warn", level: slog.LevelWarn, want: "! message\n"},
		{name: "error", level: slog.LevelError, want: "✗ message\n"},
		{name: "debug filtered", level: slog.LevelDebug, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
			lg.Log(t.Context(), tt.level, "message")

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil)).With("bundle", "ui~aa").WithGroup("job")
	lg.Info("fetched", "origin", "cached")

	assert.Equal(t, "fetched job.bundle=ui~aa job.origin=cached\n", buf.String())
}

func TestPrettyHandler_Subject(t *testing.T) {
	tests := []struct {
		name  string
		msg   string
		attrs []any
		want  string
	}{
		{
			name:  "asset and bundle lead in fixed order",
			msg:   "load failed",
			attrs: []any{"bundle", "UI~02", "asset", "Logo", "url", "https://cdn/x"},
			want:  "load failed (asset Logo, bundle UI~02) url=https://cdn/x\n",
		},
		{
			name:  "reason tag",
			msg:   "fetch failed",
			attrs: []any{"reason", "integrity"},
			want:  "fetch failed [integrity]\n",
		},
		{
			name:  "multi-line message keeps the subject on the headline",
			msg:   "Error: dependency failed\n  cause: x",
			attrs: []any{"bundle", "Shared", "reason", "fetch"},
			want:  "Error: dependency failed (bundle Shared) [fetch]\n  cause: x\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			slog.New(logger.NewPrettyHandler(buf, nil)).Info(tt.msg, tt.attrs...)

			assert.Equal(t, tt.want, buf.String())
		})
	}
}
