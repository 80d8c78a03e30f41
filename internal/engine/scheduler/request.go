package scheduler

import "go.trai.ch/parcel/internal/core/domain"

// assetRequest tracks one pending asset load.
type assetRequest struct {
	name     string
	fallback string
	strategy domain.Strategy
	cb       func(Outcome)

	// Set by plan.
	asset   domain.Asset
	missing map[string]struct{}
	done    bool
}

// finish delivers the outcome once; later calls are ignored.
func (r *assetRequest) finish(o Outcome) {
	if r.done {
		return
	}
	r.done = true
	if r.cb != nil {
		r.cb(o)
	}
}
