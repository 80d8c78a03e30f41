package ports

import "go.trai.ch/parcel/internal/core/domain"

// Metrics records fetch and sync activity.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// FetchStarted records a job becoming active.
	FetchStarted(origin domain.Origin)
	// FetchFinished records a job reaching its terminal state.
	FetchFinished(origin domain.Origin, reason domain.FailureReason, seconds float64)
	// QueueDepth records the number of queued jobs.
	QueueDepth(n int)
	// ActiveFetches records the number of active jobs.
	ActiveFetches(n int)
	// CatalogSynced records the outcome of a catalog sync.
	CatalogSynced(upToDate bool)
}
