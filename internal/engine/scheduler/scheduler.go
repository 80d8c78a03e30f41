// Package scheduler turns asset requests into resident bundles. It computes
// dependency closures, keeps at most one fetch job per bundle, admits jobs
// under a parallelism cap and fans each completion out to every waiter.
package scheduler

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options configures a Scheduler.
type Options struct {
	// MaxParallelFetches caps the number of active jobs. Values below 1 mean
	// domain.DefaultMaxParallelFetches.
	MaxParallelFetches int
	// RemoteDir is the URL directory holding bundle archives.
	RemoteDir string
}

// OptionsFor derives scheduler options from the project configuration.
func OptionsFor(cfg *domain.Config) Options {
	return Options{
		MaxParallelFetches: cfg.MaxParallelFetches,
		RemoteDir:          cfg.RemoteDir(),
	}
}

// Outcome is delivered exactly once to every request callback.
type Outcome struct {
	Asset *domain.LoadedAsset
	Err   error
}

// Stats is a point-in-time view of the scheduler state.
type Stats struct {
	// Ready is true once a catalog is installed.
	Ready  bool
	Queued int
	Active int
	// Waiting counts requests held until the catalog arrives.
	Waiting  int
	Resident []string
}

// Scheduler owns the job registry and the resident bundle set. Both are
// touched only by the loop goroutine started by Start; every public method
// hands work to that goroutine. Callbacks run on the loop goroutine and must
// not block on the scheduler.
type Scheduler struct {
	fetcher ports.Fetcher
	files   ports.FileStore
	codec   ports.BundleCodec
	hasher  ports.ContentHasher
	tracer  ports.Tracer
	metrics ports.Metrics
	logger  ports.Logger
	opts    Options
	newID   func() string

	mu     sync.Mutex
	inbox  []func()
	closed bool
	wake   chan struct{}

	view   atomic.Pointer[domain.Catalog]
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	writes sync.WaitGroup

	// Loop-owned state.
	catalog  *domain.Catalog
	jobs     map[string]*fetchJob
	queue    []*fetchJob
	active   int
	resident map[string]*domain.BundleContent
	pending  []*assetRequest
	stopping bool
}

// NewScheduler creates a Scheduler. It does nothing until Start is called.
func NewScheduler(
	fetcher ports.Fetcher,
	files ports.FileStore,
	codec ports.BundleCodec,
	hasher ports.ContentHasher,
	tracer ports.Tracer,
	metrics ports.Metrics,
	logger ports.Logger,
	opts Options,
) *Scheduler {
	if opts.MaxParallelFetches < 1 {
		opts.MaxParallelFetches = domain.DefaultMaxParallelFetches
	}
	return &Scheduler{
		fetcher:  fetcher,
		files:    files,
		codec:    codec,
		hasher:   hasher,
		tracer:   tracer,
		metrics:  metrics,
		logger:   logger,
		opts:     opts,
		newID:    func() string { return uuid.Must(uuid.NewV7()).String() },
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		jobs:     make(map[string]*fetchJob),
		resident: make(map[string]*domain.BundleContent),
	}
}

// Start runs the event loop until ctx is cancelled or Stop is called.
// Start must be called once.
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)
	go s.loop()
}

// Stop cancels the loop and waits for it and any pending cache writes.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.Wait()
}

// Wait blocks until the loop has exited and every cache write finished.
func (s *Scheduler) Wait() {
	if s.cancel != nil {
		<-s.done
	}
	s.writes.Wait()
}

// SetCatalog installs the catalog used for every following request.
// Requests made before the first call are replayed in arrival order.
func (s *Scheduler) SetCatalog(c *domain.Catalog) {
	s.view.Store(c.Clone())
	own := c.Clone()
	s.submit(func() {
		s.catalog = own
		held := s.pending
		s.pending = nil
		for _, req := range held {
			s.plan(req)
		}
		s.schedule()
	})
}

// AssetExists reports whether the installed catalog names the asset. It is
// false until SetCatalog has been called.
func (s *Scheduler) AssetExists(name string) bool {
	c := s.view.Load()
	return c != nil && c.AssetExists(name)
}

// RequestAsset asks for an asset. fallback is used when name is not in the
// catalog. cb is invoked exactly once; after the scheduler stopped it is
// invoked immediately with domain.ErrSchedulerStopped.
func (s *Scheduler) RequestAsset(name, fallback string, strategy domain.Strategy, cb func(Outcome)) {
	req := &assetRequest{name: name, fallback: fallback, strategy: strategy, cb: cb}
	if !s.submit(func() { s.accept(req) }) {
		cb(Outcome{Err: domain.Annotate(domain.ErrSchedulerStopped, "asset", name)})
	}
}

// Load is the blocking form of RequestAsset. It must not be called from a
// request callback.
func (s *Scheduler) Load(ctx context.Context, name, fallback string, strategy domain.Strategy) (*domain.LoadedAsset, error) {
	ch := make(chan Outcome, 1)
	s.RequestAsset(name, fallback, strategy, func(o Outcome) { ch <- o })
	select {
	case o := <-ch:
		return o.Asset, o.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Stats returns a snapshot taken on the loop goroutine.
func (s *Scheduler) Stats(ctx context.Context) (Stats, error) {
	ch := make(chan Stats, 1)
	if !s.submit(func() { ch <- s.stats() }) {
		return Stats{}, domain.ErrSchedulerStopped
	}
	select {
	case st := <-ch:
		return st, nil
	case <-s.done:
		return Stats{}, domain.ErrSchedulerStopped
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	}
}

func (s *Scheduler) stats() Stats {
	return Stats{
		Ready:    s.catalog != nil,
		Queued:   len(s.queue),
		Active:   s.active,
		Waiting:  len(s.pending),
		Resident: slices.Sorted(maps.Keys(s.resident)),
	}
}

// submit queues external work. It fails once the scheduler is stopping.
func (s *Scheduler) submit(fn func()) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.inbox = append(s.inbox, fn)
	s.mu.Unlock()
	s.signal()
	return true
}

// post queues internal events, which are accepted while draining.
func (s *Scheduler) post(fn func()) {
	s.mu.Lock()
	s.inbox = append(s.inbox, fn)
	s.mu.Unlock()
	s.signal()
}

func (s *Scheduler) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scheduler) drain() {
	for {
		s.mu.Lock()
		batch := s.inbox
		s.inbox = nil
		s.mu.Unlock()
		if len(batch) == 0 {
			return
		}
		for _, fn := range batch {
			fn()
		}
	}
}

func (s *Scheduler) loop() {
	defer close(s.done)

	for {
		select {
		case <-s.wake:
			s.drain()
		case <-s.ctx.Done():
			s.shutdown()
			return
		}
	}
}

// shutdown rejects new work, fails everything not yet active and waits for
// active jobs to report.
func (s *Scheduler) shutdown() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.stopping = true

	// Work accepted before the close still runs and sees stopping.
	s.drain()

	queued := s.queue
	s.queue = nil
	for _, job := range queued {
		delete(s.jobs, job.name)
		s.notify(job, domain.ErrSchedulerStopped)
	}
	for _, req := range s.pending {
		req.finish(Outcome{Err: domain.Annotate(domain.ErrSchedulerStopped, "asset", req.name)})
	}
	s.pending = nil

	for s.active > 0 {
		<-s.wake
		s.drain()
	}
	s.drain()
	s.metrics.QueueDepth(0)
	s.metrics.ActiveFetches(0)
}

func (s *Scheduler) accept(req *assetRequest) {
	switch {
	case s.stopping:
		req.finish(Outcome{Err: domain.Annotate(domain.ErrSchedulerStopped, "asset", req.name)})
	case s.catalog == nil:
		s.pending = append(s.pending, req)
	default:
		s.plan(req)
		s.schedule()
	}
}

// plan resolves the request's asset and subscribes it to every missing
// bundle of the containing bundle's closure.
func (s *Scheduler) plan(req *assetRequest) {
	asset, bundle, err := s.lookup(req)
	if err != nil {
		req.finish(Outcome{Err: err})
		return
	}
	req.asset = asset

	closure, err := s.catalog.Closure(bundle.Name, false)
	if err != nil {
		req.finish(Outcome{Err: err})
		return
	}

	req.missing = make(map[string]struct{}, len(closure.Bundles))
	for _, name := range closure.Bundles {
		if _, ok := s.resident[name]; !ok {
			req.missing[name] = struct{}{}
		}
	}
	if len(req.missing) == 0 {
		s.resolve(req)
		return
	}

	for _, name := range closure.Bundles {
		if _, ok := req.missing[name]; ok {
			s.subscribe(name, req)
		}
	}
}

// lookup finds the asset under its name, then under the fallback.
func (s *Scheduler) lookup(req *assetRequest) (domain.Asset, domain.Bundle, error) {
	bundle, err := s.catalog.ContainingBundle(req.name)
	if err == nil {
		asset, _ := s.catalog.Asset(req.name)
		return asset, bundle, nil
	}
	if req.fallback == "" {
		return domain.Asset{}, domain.Bundle{}, err
	}

	fb, fbErr := s.catalog.ContainingBundle(req.fallback)
	if fbErr != nil {
		return domain.Asset{}, domain.Bundle{}, zerr.With(err, "fallback", req.fallback)
	}
	asset, _ := s.catalog.Asset(req.fallback)
	return asset, fb, nil
}

func (s *Scheduler) subscribe(name string, req *assetRequest) {
	job, ok := s.jobs[name]
	if !ok {
		bundle, _ := s.catalog.Bundle(name)
		job = &fetchJob{name: name, bundle: bundle.Clone(), state: jobQueued}
		s.jobs[name] = job
		s.queue = append(s.queue, job)
	}
	job.waiters = append(job.waiters, req)
}

// schedule admits queued jobs in FIFO order while fewer than
// MaxParallelFetches are active.
func (s *Scheduler) schedule() {
	for len(s.queue) > 0 && s.active < s.opts.MaxParallelFetches && !s.stopping {
		job := s.queue[0]
		s.queue = s.queue[1:]

		// Origin may have changed since the job was queued.
		if b, ok := s.catalog.Bundle(job.name); ok {
			job.bundle = b.Clone()
		}
		job.state = jobActive
		s.active++
		s.metrics.FetchStarted(job.bundle.Origin)
		go s.run(job)
	}
	s.metrics.QueueDepth(len(s.queue))
	s.metrics.ActiveFetches(s.active)
}

func (s *Scheduler) complete(res jobResult) {
	job := res.job
	s.active--
	delete(s.jobs, job.name)

	reason := domain.ReasonOf(res.err)
	s.metrics.FetchFinished(job.bundle.Origin, reason, res.elapsed.Seconds())
	if res.err == nil {
		s.resident[job.name] = res.content
	}

	s.notify(job, res.err)
	s.schedule()
}

// notify delivers a terminal job state to every waiter in attachment order.
func (s *Scheduler) notify(job *fetchJob, err error) {
	job.state = jobDone
	waiters := job.waiters
	job.waiters = nil
	for _, req := range waiters {
		s.bundleDone(req, job.name, err)
	}
}

func (s *Scheduler) bundleDone(req *assetRequest, name string, err error) {
	if req.done {
		return
	}
	delete(req.missing, name)

	switch {
	case errors.Is(err, domain.ErrSchedulerStopped):
		req.finish(Outcome{Err: domain.Annotate(domain.ErrSchedulerStopped, "asset", req.asset.Name, "bundle", name)})
	case err != nil:
		req.finish(Outcome{Err: domain.Fail(domain.ErrDependencyFailed, err,
			"asset", req.asset.Name,
			"bundle", name,
			"reason", string(domain.ReasonOf(err)),
		)})
	case len(req.missing) == 0:
		s.resolve(req)
	}
}

// resolve extracts the asset from its resident bundle.
func (s *Scheduler) resolve(req *assetRequest) {
	content, ok := s.resident[req.asset.BundleName]
	if !ok {
		req.finish(Outcome{Err: domain.Annotate(domain.ErrAssetNotFound, "asset", req.asset.Name, "bundle", req.asset.BundleName)})
		return
	}
	if content.Passthrough {
		var err error
		content, err = s.passthroughContent(req.asset)
		if err != nil {
			req.finish(Outcome{Err: err})
			return
		}
	}

	loaded, err := domain.Resolve(content, req.asset, req.strategy, s.newID)
	req.finish(Outcome{Asset: loaded, Err: err})
}

// passthroughContent reads a single asset from the source tree.
func (s *Scheduler) passthroughContent(asset domain.Asset) (*domain.BundleContent, error) {
	data, err := s.files.ReadSource(domain.SourcePath(asset.BundleName, asset))
	if err != nil {
		return nil, domain.Fail(domain.ErrAssetNotFound, err, "asset", asset.Name, "bundle", asset.BundleName)
	}
	content := domain.NewBundleContent(asset.BundleName)
	content.Items[asset.Name] = domain.Item{
		Name:      asset.Name,
		Kind:      domain.KindResource,
		Extension: asset.Extension,
		Data:      data,
	}
	return content, nil
}
