// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/parcel/internal/adapters/cas"
	_ "go.trai.ch/parcel/internal/adapters/codec"
	_ "go.trai.ch/parcel/internal/adapters/config"
	_ "go.trai.ch/parcel/internal/adapters/fs"
	_ "go.trai.ch/parcel/internal/adapters/httpfetch"
	_ "go.trai.ch/parcel/internal/adapters/kv"
	_ "go.trai.ch/parcel/internal/adapters/logger"
	_ "go.trai.ch/parcel/internal/adapters/metrics"
	_ "go.trai.ch/parcel/internal/adapters/telemetry"
	_ "go.trai.ch/parcel/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/parcel/internal/app"
	_ "go.trai.ch/parcel/internal/engine/catalogsync"
	_ "go.trai.ch/parcel/internal/engine/publisher"
)
