package domain

import (
	"context"
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrNotFound is returned when an asset or bundle name is absent from the catalog.
	ErrNotFound = zerr.New("not found in catalog")

	// ErrAssetNotFound is returned when a resident bundle does not yield the requested asset.
	ErrAssetNotFound = zerr.New("asset not found in bundle")

	// ErrMalformedCatalog is returned when an asset or dependency references a bundle absent from the catalog.
	ErrMalformedCatalog = zerr.New("malformed catalog")

	// ErrFetchFailed is returned when the fetch capability fails to deliver bytes.
	ErrFetchFailed = zerr.New("fetch failed")

	// ErrDecodeFailed is returned when a payload does not decode into the expected structure.
	ErrDecodeFailed = zerr.New("decode failed")

	// ErrEncodeFailed is returned when a value cannot be encoded.
	ErrEncodeFailed = zerr.New("encode failed")

	// ErrDuplicateDefinition is returned when adding a bundle or asset name that already exists.
	ErrDuplicateDefinition = zerr.New("duplicate definition")

	// ErrInvalidName is returned when a bundle, asset, or catalog name is malformed.
	ErrInvalidName = zerr.New("invalid name")

	// ErrCycleDetected is returned when a cycle is detected in the bundle dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrDependencyFailed is returned to an asset request when one of its bundles failed to fetch.
	ErrDependencyFailed = zerr.New("dependency failed")

	// ErrIntegrityMismatch is returned when fetched bytes do not match the hash in their name.
	ErrIntegrityMismatch = zerr.New("content hash mismatch")

	// ErrMissingFile is returned when a local bundle file is absent.
	ErrMissingFile = zerr.New("bundle file missing")

	// ErrCatalogUnavailable is returned when no catalog could be obtained.
	ErrCatalogUnavailable = zerr.New("catalog unavailable")

	// ErrSchedulerStopped is returned to requests made after the scheduler stopped.
	ErrSchedulerStopped = zerr.New("scheduler stopped")

	// ErrUnknownStrategy is returned when a resolution strategy tag cannot be parsed.
	ErrUnknownStrategy = zerr.New("unknown resolution strategy")

	// ErrUnknownCompression is returned when a compression tag is not supported.
	ErrUnknownCompression = zerr.New("unknown compression")

	// ErrStoreCreateFailed is returned when a store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create store directory")

	// ErrStoreReadFailed is returned when a stored value cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read stored value")

	// ErrStoreWriteFailed is returned when a value cannot be stored.
	ErrStoreWriteFailed = zerr.New("failed to write stored value")

	// ErrStoreOpenFailed is returned when the key-value database cannot be opened.
	ErrStoreOpenFailed = zerr.New("failed to open state database")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a config value is out of range or malformed.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrDefinitionReadFailed is returned when the bundle definition file cannot be read.
	ErrDefinitionReadFailed = zerr.New("failed to read bundle definition")

	// ErrNoAssetsSpecified is returned when a fetch names no assets.
	ErrNoAssetsSpecified = zerr.New("no assets specified")

	// ErrWatchRequiresPassthrough is returned when watch runs outside passthrough mode.
	ErrWatchRequiresPassthrough = zerr.New("watch requires passthrough mode")

	// ErrPublishFailed is returned when the publisher cannot write its output.
	ErrPublishFailed = zerr.New("publish failed")
)

// Annotate attaches key/value metadata to a sentinel error while keeping it
// matchable with errors.Is. Keys must be strings; a trailing odd value is ignored.
func Annotate(sentinel error, kv ...any) error {
	err := zerr.Wrap(sentinel, "")
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		err = zerr.With(err, key, kv[i+1])
	}
	return err
}

// Fail annotates sentinel with the message of the underlying cause. Context
// cancellation in the cause stays matchable through errors.Is.
func Fail(sentinel, cause error, kv ...any) error {
	if cause == nil {
		return Annotate(sentinel, kv...)
	}
	err := Annotate(sentinel, append(kv, "cause", cause.Error())...)
	switch {
	case errors.Is(cause, context.Canceled):
		return errors.Join(err, context.Canceled)
	case errors.Is(cause, context.DeadlineExceeded):
		return errors.Join(err, context.DeadlineExceeded)
	}
	return err
}
