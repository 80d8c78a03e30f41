// Package httpfetch implements ports.Fetcher over HTTP with retries.
package httpfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
)

// maxBodySize caps a single response body.
const maxBodySize = 512 << 20

var _ ports.Fetcher = (*Fetcher)(nil)

// Fetcher downloads remote files. Transport errors and 5xx responses are
// retried; the delay before attempt n is RetryDelay * Backoff^(n-1).
type Fetcher struct {
	client *http.Client
	policy domain.RemoteConfig
	logger ports.Logger
}

// New creates a Fetcher for the given remote policy.
func New(policy domain.RemoteConfig, logger ports.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: policy.Timeout},
		policy: policy,
		logger: logger,
	}
}

// Fetch returns the body stored at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= f.policy.Retries; attempt++ {
		if attempt > 0 {
			delay := f.delay(attempt)
			f.logger.Warn(fmt.Sprintf("retrying %s in %s (attempt %d/%d): %v", url, delay, attempt, f.policy.Retries, lastErr))
			if err := sleep(ctx, delay); err != nil {
				return nil, domain.Fail(domain.ErrFetchFailed, err, "url", url)
			}
		}

		body, retry, err := f.once(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry || ctx.Err() != nil {
			break
		}
	}
	return nil, domain.Fail(domain.ErrFetchFailed, lastErr, "url", url)
}

func (f *Fetcher) delay(attempt int) time.Duration {
	factor := math.Pow(float64(max(f.policy.Backoff, 1)), float64(attempt-1))
	return time.Duration(float64(f.policy.RetryDelay) * factor)
}

func (f *Fetcher) once(ctx context.Context, url string) (body []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	for k, v := range f.policy.Headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, resp.StatusCode >= http.StatusInternalServerError, &statusError{code: resp.StatusCode}
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, true, err
	}
	if len(body) > maxBodySize {
		return nil, false, errors.New("response body too large")
	}
	return body, false, nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d %s", e.code, http.StatusText(e.code))
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
