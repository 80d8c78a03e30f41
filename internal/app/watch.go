package app

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/parcel/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
)

// fileHasher is implemented by hashers that can hash a file in place.
type fileHasher interface {
	ComputeFileHash(path string) (uint64, error)
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	// OnRebuild, when set, receives every rebuilt catalog and the bundles
	// whose sources changed. The first call has no changed bundles.
	OnRebuild func(c *domain.Catalog, changed []string)
}

// Watch rebuilds the passthrough catalog whenever source files change. It
// returns when ctx is done.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	if !a.cfg.Passthrough {
		return domain.ErrWatchRequiresPassthrough
	}

	rebuild := func(changed []string) {
		c, err := a.passthroughCatalog()
		if err != nil {
			a.logger.Error(err)
			return
		}
		if len(changed) == 0 {
			a.logger.Info(fmt.Sprintf("passthrough catalog: %d bundles, %d assets", c.BundleCount(), c.AssetCount()))
		} else {
			a.logger.Info(fmt.Sprintf("rebuilt passthrough catalog (%s)", strings.Join(changed, ", ")))
		}
		if opts.OnRebuild != nil {
			opts.OnRebuild(c, changed)
		}
	}
	rebuild(nil)

	if err := a.watcher.Start(ctx, a.cfg.SourceRoot); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	deb := watcher.NewDebouncer(watcher.DefaultWindow, func(paths []string) {
		if bundles := watcher.BundlesFor(a.cfg.SourceRoot, paths); len(bundles) > 0 {
			rebuild(bundles)
		}
	})

	hashes := make(map[string]uint64)
	fh, canHash := a.hasher.(fileHasher)
	for ev := range a.watcher.Events() {
		if canHash && ev.Operation == ports.OpWrite {
			sum, err := fh.ComputeFileHash(ev.Path)
			if err == nil && hashes[ev.Path] == sum {
				continue
			}
			hashes[ev.Path] = sum
		}
		deb.Add(ev.Path)
	}
	deb.Flush()
	return nil
}
