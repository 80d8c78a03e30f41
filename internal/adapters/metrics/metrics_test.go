package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/parcel/internal/adapters/metrics"
	"go.trai.ch/parcel/internal/core/domain"
)

func TestRecorder_Fetch(t *testing.T) {
	r := metrics.New()

	r.FetchStarted(domain.OriginRequireDownload)
	r.FetchStarted(domain.OriginRequireDownload)
	r.FetchFinished(domain.OriginRequireDownload, domain.ReasonNone, 0.2)
	r.FetchFinished(domain.OriginRequireDownload, domain.ReasonFetch, 0.1)
	r.QueueDepth(4)
	r.ActiveFetches(2)

	n, err := testutil.GatherAndCount(r.Registry(), "parcel_fetch_finished_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = testutil.GatherAndCount(r.Registry(), "parcel_fetch_started_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	body := scrape(t, r)
	assert.Contains(t, body, `parcel_fetch_started_total{origin="require-download"} 2`)
	assert.Contains(t, body, `parcel_fetch_finished_total{origin="require-download",reason="ok"} 1`)
	assert.Contains(t, body, `parcel_fetch_finished_total{origin="require-download",reason="fetch"} 1`)
	assert.Contains(t, body, "parcel_fetch_queue_depth 4")
	assert.Contains(t, body, "parcel_fetch_active 2")
}

func TestRecorder_CatalogSynced(t *testing.T) {
	r := metrics.New()
	r.CatalogSynced(true)
	r.CatalogSynced(false)
	r.CatalogSynced(false)

	body := scrape(t, r)
	assert.Contains(t, body, `parcel_catalog_sync_total{result="up_to_date"} 1`)
	assert.Contains(t, body, `parcel_catalog_sync_total{result="updated"} 2`)
}

func TestRecorder_Independent(t *testing.T) {
	a, b := metrics.New(), metrics.New()
	a.QueueDepth(3)
	assert.Contains(t, scrape(t, b), "parcel_fetch_queue_depth 0")
}

func scrape(t *testing.T, r *metrics.Recorder) string {
	t.Helper()
	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}
