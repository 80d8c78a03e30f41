// Package watcher reports passthrough source changes as bundle invalidations.
package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/parcel/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventBuffer = 128

// fsnotify ops in priority order; the first match wins.
var opTable = []struct {
	fs fsnotify.Op
	op ports.WatchOp
}{
	{fsnotify.Write, ports.OpWrite},
	{fsnotify.Create, ports.OpCreate},
	{fsnotify.Remove, ports.OpRemove},
	{fsnotify.Rename, ports.OpRename},
}

// Watcher watches a source tree with fsnotify. Hidden directories are not watched.
type Watcher struct {
	fsw    *fsnotify.Watcher
	logger ports.Logger
	events chan ports.WatchEvent
}

// New creates a Watcher.
func New(logger ports.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create file watcher")
	}
	return &Watcher{
		fsw:    fsw,
		logger: logger,
		events: make(chan ports.WatchEvent, eventBuffer),
	}, nil
}

// Start adds root and its subdirectories and begins forwarding events.
func (w *Watcher) Start(ctx context.Context, root string) error {
	for dir := range directories(root) {
		if err := w.fsw.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to watch directory"), "dir", dir)
		}
	}
	go w.loop(ctx)
	return nil
}

// Stop closes the underlying watcher.
func (w *Watcher) Stop() error {
	return w.fsw.Close()
}

// Events yields converted events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for ev := range w.events {
			if !yield(ev) {
				return
			}
		}
	}
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			ev, ok := convert(raw)
			if !ok {
				continue
			}
			if ev.Operation == ports.OpCreate {
				w.follow(raw.Name)
			}
			select {
			case w.events <- ev:
			case <-ctx.Done():
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error(zerr.Wrap(err, "file watcher error"))
		}
	}
}

// follow starts watching a newly created directory tree.
func (w *Watcher) follow(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || hidden(info.Name()) {
		return
	}
	for dir := range directories(path) {
		_ = w.fsw.Add(dir)
	}
}

func convert(raw fsnotify.Event) (ports.WatchEvent, bool) {
	for _, row := range opTable {
		if raw.Op.Has(row.fs) {
			return ports.WatchEvent{Path: raw.Name, Operation: row.op}, true
		}
	}
	return ports.WatchEvent{}, false
}

func directories(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable directories are skipped
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && hidden(d.Name()) {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
