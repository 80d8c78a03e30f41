package ports

import (
	"context"
	"iter"
)

// WatchOp is the kind of change reported for a source file.
type WatchOp uint8

const (
	// OpCreate reports a new file or directory.
	OpCreate WatchOp = iota
	// OpWrite reports modified file contents.
	OpWrite
	// OpRemove reports a deleted file or directory.
	OpRemove
	// OpRename reports a file or directory moved away.
	OpRename
)

// WatchEvent is one change under the watched source root.
type WatchEvent struct {
	// Path is absolute.
	Path      string
	Operation WatchOp
}

// Watcher reports changes below the passthrough source root.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start watches root and every directory below it.
	Start(ctx context.Context, root string) error
	// Stop releases the watcher. Events ends after Stop.
	Stop() error
	// Events yields changes until the watcher stops or ctx is done.
	Events() iter.Seq[WatchEvent]
}
