package httpfetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/parcel/internal/adapters/httpfetch"
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func policy(retries int) domain.RemoteConfig {
	return domain.RemoteConfig{
		Timeout:    time.Second,
		Retries:    retries,
		RetryDelay: domain.MinRetryDelay,
		Backoff:    1,
		Headers:    map[string]string{"X-Client": "parcel"},
	}
}

func TestFetcher_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "parcel", r.Header.Get("X-Client"))
		_, _ = w.Write([]byte("payload"))
	}))
	t.Cleanup(srv.Close)

	ctrl := gomock.NewController(t)
	f := httpfetch.New(policy(0), mocks.NewMockLogger(ctrl))

	body, err := f.Fetch(context.Background(), srv.URL+"/x")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), body)
}

func TestFetcher_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(2)

	body, err := httpfetch.New(policy(3), log).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), body)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetcher_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	ctrl := gomock.NewController(t)
	_, err := httpfetch.New(policy(5), mocks.NewMockLogger(ctrl)).Fetch(context.Background(), srv.URL)

	require.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Equal(t, domain.ReasonFetch, domain.ReasonOf(err))
	assert.Contains(t, err.Error(), "fetch failed")
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetcher_ExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	_, err := httpfetch.New(policy(2), log).Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetcher_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	_, err := httpfetch.New(policy(3), log).Fetch(ctx, srv.URL)
	require.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Equal(t, domain.ReasonCancelled, domain.ReasonOf(err))
}
