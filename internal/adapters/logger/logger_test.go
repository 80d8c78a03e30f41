package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/parcel/internal/adapters/logger"
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing to a buffer without ANSI escapes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Info("catalog up to date")

	g := goldie.New(t)
	g.Assert(t, "info_basic", buf.Bytes())
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("persisted catalog unreadable, using embedded catalog")

	g := goldie.New(t)
	g.Assert(t, "warn_basic", buf.Bytes())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "standard error",
			err:        errors.New("connection refused"),
			goldenName: "error_standard",
		},
		{
			name:       "annotated sentinel",
			err:        domain.Annotate(domain.ErrNotFound, "asset", "Logo"),
			goldenName: "error_annotated",
		},
		{
			name: "wrapped chain",
			err: zerr.Wrap(
				domain.Fail(domain.ErrFetchFailed, errors.New("status 503"), "url", "https://cdn/x"),
				"bundle ui~aa failed",
			),
			goldenName: "error_chain",
		},
		{
			name: "dependency failure",
			err: domain.Fail(domain.ErrDependencyFailed, errors.New("status 503"),
				"asset", "Logo", "bundle", "Shared~01", "reason", string(domain.ReasonFetch)),
			goldenName: "error_dependency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Info("synced")
	lg.Error(domain.Annotate(domain.ErrNotFound, "asset", "Logo"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var info map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &info))
	assert.Equal(t, "INFO", info["level"])
	assert.Equal(t, "synced", info["msg"])

	var errLine map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &errLine))
	assert.Equal(t, "ERROR", errLine["level"])
	assert.Equal(t, "operation failed", errLine["msg"])
}

func TestLogger_SetOutputKeepsMode(t *testing.T) {
	lg, _ := newTestLogger(t)
	lg.SetJSON(true)

	buf := &bytes.Buffer{}
	lg.SetOutput(buf)
	lg.Info("hello")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
