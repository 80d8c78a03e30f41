package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/parcel/internal/adapters/logger"
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "single standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name: "zerr wrapped chain",
			err: zerr.Wrap(
				zerr.Wrap(errors.New("root cause"), "middle layer"),
				"outer layer",
			),
			wantMessages: []string{"outer layer", "middle layer", "root cause"},
			wantMetadata: []map[string]any{{}, {}, nil},
		},
		{
			name:         "annotated sentinel folds into sentinel entry",
			err:          domain.Annotate(domain.ErrNotFound, "asset", "Logo"),
			wantMessages: []string{"not found in catalog"},
			wantMetadata: []map[string]any{{"asset": "Logo"}},
		},
		{
			name:         "metadata on a standard error",
			err:          zerr.With(errors.New("disk full"), "path", "/tmp/x"),
			wantMessages: []string{"disk full"},
			wantMetadata: []map[string]any{{"path": "/tmp/x"}},
		},
		{
			name: "wrap around annotated sentinel",
			err:  zerr.Wrap(domain.Annotate(domain.ErrDependencyFailed, "bundle", "shared"), "load Logo"),
			wantMessages: []string{
				"load Logo",
				"dependency failed",
			},
			wantMetadata: []map[string]any{{}, {"bundle": "shared"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntriesExported(tt.err)

			assert.Len(t, entries, len(tt.wantMessages), "entry count mismatch")
			for i, wantMsg := range tt.wantMessages {
				assert.Equal(t, wantMsg, entries[i].Message, "message mismatch at index %d", i)
				assert.Equal(t, tt.wantMetadata[i], entries[i].Metadata, "metadata mismatch at index %d", i)
			}
		})
	}

	assert.Empty(t, logger.CollectErrorEntriesExported(nil))
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "causes",
			entries: []logger.ErrorEntry{{Message: "first"}, {Message: "second"}, {Message: "third"}},
			want:    "Error: first\n\n  Caused by:\n    → second\n    → third",
		},
		{
			name: "metadata sorted under its entry",
			entries: []logger.ErrorEntry{
				{Message: "main", Metadata: map[string]any{"zebra": "z", "alpha": 1}},
				{Message: "cause", Metadata: map[string]any{"url": "u"}},
			},
			want: "Error: main\n       alpha: 1\n       zebra: z\n\n  Caused by:\n    → cause\n      url: u",
		},
		{
			name:    "multiline messages",
			entries: []logger.ErrorEntry{{Message: "a\nb"}, {Message: "c\nd"}},
			want:    "Error: a\n       b\n\n  Caused by:\n    → c\n      d",
		},
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntriesExported(tt.entries))
		})
	}
}
