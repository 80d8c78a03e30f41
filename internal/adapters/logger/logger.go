// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/parcel/internal/core/ports"
)

// messager describes an error that reports its own message without the chain.
// zerr.Error satisfies it.
type messager interface {
	Message() string
}

// metadataer describes an error that carries structured metadata.
type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one level of an error chain as shown to the user.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

// New creates a new Logger writing pretty output to stderr.
func New() ports.Logger {
	return &Logger{
		logger: slog.New(newHandler(os.Stderr, false)),
		output: os.Stderr,
	}
}

func newHandler(w io.Writer, jsonMode bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if jsonMode {
		return slog.NewJSONHandler(w, opts)
	}
	return NewPrettyHandler(w, opts)
}

// SetOutput updates the output destination, keeping the current mode.
// A nil writer selects stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(newHandler(w, l.jsonMode))
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	w := l.output
	if w == nil {
		w = os.Stderr
	}
	l.logger = slog.New(newHandler(w, enable))
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error together with its cause chain and metadata.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}
	entries := collectErrorEntries(err)
	attrs := liftSubject(entries)
	l.logger.Error(formatErrorEntries(entries), attrs...)
}

// liftSubject moves the asset, bundle and reason of the headline entry out of
// its metadata so the handler can show them next to the message.
func liftSubject(entries []ErrorEntry) []any {
	if len(entries) == 0 || len(entries[0].Metadata) == 0 {
		return nil
	}
	meta := maps.Clone(entries[0].Metadata)
	var attrs []any
	for _, key := range append(slices.Clone(subjectKeys), reasonKey) {
		if v, ok := meta[key]; ok {
			attrs = append(attrs, key, v)
			delete(meta, key)
		}
	}
	entries[0].Metadata = meta
	return attrs
}

// collectErrorEntries walks the chain of err. zerr errors contribute their own
// message and metadata; the first standard error contributes its full text and
// ends the walk. Entries with an empty message only carry metadata, which is
// folded into the entry that follows them.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var pending map[string]any

	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: mergeMetadata(pending, nil)})
			break
		}

		var meta map[string]any
		if md, ok := current.(metadataer); ok {
			meta = md.Metadata()
		}

		next := errors.Unwrap(current)
		if m.Message() == "" && next != nil {
			pending = mergeMetadata(pending, meta)
			current = next
			continue
		}

		entries = append(entries, ErrorEntry{Message: m.Message(), Metadata: mergeMetadata(pending, meta)})
		pending = nil
		current = next
	}
	return entries
}

// mergeMetadata returns meta with pending folded in. Keys already present in
// meta win. With nothing pending, meta is returned untouched.
func mergeMetadata(pending, meta map[string]any) map[string]any {
	if len(pending) == 0 {
		return meta
	}
	out := maps.Clone(pending)
	maps.Copy(out, meta)
	return out
}

// formatErrorEntries renders entries as an "Error:" line followed by an
// indented "Caused by:" list.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		first, cont := "Error: ", "       "
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			first, cont = "    → ", "      "
		}

		lines = append(lines, first+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, cont+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", cont, key, entry.Metadata[key]))
		}
	}
	return strings.Join(lines, "\n")
}
