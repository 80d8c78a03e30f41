package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
)

type jobState uint8

const (
	jobQueued jobState = iota
	jobActive
	jobDone
)

// fetchJob is the single in-flight operation for one bundle name.
type fetchJob struct {
	name    string
	bundle  domain.Bundle
	state   jobState
	waiters []*assetRequest
}

type jobResult struct {
	job     *fetchJob
	content *domain.BundleContent
	err     error
	elapsed time.Duration
}

// run executes a job off the loop and posts its single completion event.
func (s *Scheduler) run(job *fetchJob) {
	start := time.Now()
	bundle := job.bundle

	ctx, span := s.tracer.Start(s.ctx, domain.SpanFetchPrefix+bundle.Name,
		ports.WithAttribute(domain.AttrOrigin, bundle.Origin.String()))
	content, err := s.fetchBundle(ctx, bundle)
	if err != nil {
		span.SetAttribute(domain.AttrReason, string(domain.ReasonOf(err)))
		span.RecordError(err)
	}
	span.End()

	res := jobResult{job: job, content: content, err: err, elapsed: time.Since(start)}
	s.post(func() { s.complete(res) })
}

// fetchBundle produces the in-memory content of a bundle from its origin.
func (s *Scheduler) fetchBundle(ctx context.Context, b domain.Bundle) (*domain.BundleContent, error) {
	switch b.Origin {
	case domain.OriginLocalPassthrough:
		content := domain.NewBundleContent(b.Name)
		content.Passthrough = true
		return content, nil

	case domain.OriginEmbedded:
		data, err := s.files.ReadEmbedded(b.Name)
		if err != nil {
			return nil, err
		}
		return s.decode(b.Name, data)

	case domain.OriginCached:
		data, err := s.files.ReadCached(b.Name)
		if err == nil {
			content, decodeErr := s.decode(b.Name, data)
			if decodeErr == nil {
				return content, nil
			}
			err = decodeErr
			_ = s.files.RemoveCached(b.Name)
		}
		s.logger.Warn(fmt.Sprintf("cached bundle %s unusable, downloading: %v", b.Name, err))
	}

	return s.download(ctx, b.Name)
}

func (s *Scheduler) download(ctx context.Context, name string) (*domain.BundleContent, error) {
	url := s.opts.RemoteDir + "/" + name
	data, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		if errors.Is(err, domain.ErrFetchFailed) {
			return nil, err
		}
		return nil, domain.Fail(domain.ErrFetchFailed, err, "bundle", name, "url", url)
	}

	content, err := s.decode(name, data)
	if err != nil {
		return nil, err
	}

	// The cache write does not gate completion.
	s.writes.Add(1)
	go func() {
		defer s.writes.Done()
		if err := s.files.WriteCached(name, data); err != nil {
			s.logger.Warn(fmt.Sprintf("failed to cache bundle %s: %v", name, err))
			return
		}
		s.post(func() {
			if s.catalog != nil {
				s.catalog.SetOrigin(name, domain.OriginCached)
			}
		})
	}()
	return content, nil
}

// decode checks the bytes against the hash in the bundle name, then decodes.
func (s *Scheduler) decode(name string, data []byte) (*domain.BundleContent, error) {
	if _, hash, ok := domain.SplitHashedName(name); ok {
		if got := s.hasher.BundleHash(data); got != hash {
			return nil, domain.Annotate(domain.ErrIntegrityMismatch, "bundle", name, "expected", hash, "actual", got)
		}
	}
	return s.codec.Decode(name, data)
}
