package scheduler_test

import (
	"context"
	"errors"
	"path"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
	"go.trai.ch/parcel/internal/core/ports/mocks"
	"go.trai.ch/parcel/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

const remoteDir = "https://cdn.test/linux/1.0.0"

// harness wires a scheduler to mocks. Remote fetches block until released.
type harness struct {
	t       *testing.T
	fetcher *mocks.MockFetcher
	files   *mocks.MockFileStore
	codec   *mocks.MockBundleCodec
	hasher  *mocks.MockContentHasher
	logger  *mocks.MockLogger
	sched   *scheduler.Scheduler

	mu        sync.Mutex
	gates     map[string]chan struct{}
	failures  map[string]error
	started   []string
	inFlight  int
	maxFlight int
	contents  map[string]*domain.BundleContent
}

func newHarness(t *testing.T, maxParallel int) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := &harness{
		t:        t,
		fetcher:  mocks.NewMockFetcher(ctrl),
		files:    mocks.NewMockFileStore(ctrl),
		codec:    mocks.NewMockBundleCodec(ctrl),
		hasher:   mocks.NewMockContentHasher(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		gates:    make(map[string]chan struct{}),
		failures: make(map[string]error),
		contents: make(map[string]*domain.BundleContent),
	}

	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().End().AnyTimes()

	metrics := mocks.NewMockMetrics(ctrl)
	metrics.EXPECT().FetchStarted(gomock.Any()).AnyTimes()
	metrics.EXPECT().FetchFinished(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	metrics.EXPECT().QueueDepth(gomock.Any()).AnyTimes()
	metrics.EXPECT().ActiveFetches(gomock.Any()).AnyTimes()

	h.codec.EXPECT().Decode(gomock.Any(), gomock.Any()).DoAndReturn(
		func(name string, _ []byte) (*domain.BundleContent, error) {
			h.mu.Lock()
			defer h.mu.Unlock()
			if c, ok := h.contents[name]; ok {
				return c, nil
			}
			return domain.NewBundleContent(name), nil
		}).AnyTimes()
	h.files.EXPECT().WriteCached(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	h.sched = scheduler.NewScheduler(h.fetcher, h.files, h.codec, h.hasher, tracer, metrics, h.logger,
		scheduler.Options{MaxParallelFetches: maxParallel, RemoteDir: remoteDir})
	return h
}

// expectFetches installs a gated remote fetch for exactly n calls.
func (h *harness) expectFetches(n int) {
	h.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, url string) ([]byte, error) {
			name := path.Base(url)
			h.mu.Lock()
			gate, ok := h.gates[name]
			if !ok {
				gate = make(chan struct{})
				h.gates[name] = gate
			}
			h.started = append(h.started, name)
			h.inFlight++
			h.maxFlight = max(h.maxFlight, h.inFlight)
			h.mu.Unlock()

			defer func() {
				h.mu.Lock()
				h.inFlight--
				h.mu.Unlock()
			}()

			select {
			case <-gate:
			case <-ctx.Done():
				return nil, ctx.Err()
			}

			h.mu.Lock()
			defer h.mu.Unlock()
			if err := h.failures[name]; err != nil {
				return nil, err
			}
			return []byte(name), nil
		}).Times(n)
}

func (h *harness) release(name string) {
	h.mu.Lock()
	gate, ok := h.gates[name]
	if !ok {
		gate = make(chan struct{})
		h.gates[name] = gate
	}
	h.mu.Unlock()
	close(gate)
	synctest.Wait()
}

func (h *harness) startedFetches() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.started...)
}

func (h *harness) start(c *domain.Catalog) {
	h.sched.Start(h.t.Context())
	if c != nil {
		h.sched.SetCatalog(c)
	}
	h.t.Cleanup(h.sched.Stop)
}

// collector records outcomes delivered to callbacks.
type collector struct {
	mu       sync.Mutex
	outcomes map[string][]scheduler.Outcome
}

func newCollector() *collector {
	return &collector{outcomes: make(map[string][]scheduler.Outcome)}
}

func (c *collector) cb(key string) func(scheduler.Outcome) {
	return func(o scheduler.Outcome) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.outcomes[key] = append(c.outcomes[key], o)
	}
}

func (c *collector) get(key string) []scheduler.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcomes[key]
}

func uiCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	c := domain.NewCatalog("v1")
	require.NoError(t, c.AddBundle(domain.Bundle{Name: "Shared"}, []string{"Palette.png"}))
	require.NoError(t, c.AddBundle(domain.Bundle{Name: "UI", Dependencies: []string{"Shared"}}, []string{"Logo.png", "Button.prefab", "Icon.png"}))
	return c
}

func (h *harness) uiContent() {
	ui := domain.NewBundleContent("UI")
	ui.Items["Logo"] = domain.Item{Name: "Logo", Extension: "png", Data: []byte("logo-bytes")}
	ui.Items["Icon"] = domain.Item{Name: "Icon", Extension: "png", Data: []byte("icon-bytes")}
	ui.Items["Button"] = domain.Item{
		Name: "Button", Kind: domain.KindPrefab, Extension: "prefab", Data: []byte("{}"),
		Components: []domain.Component{{Name: "Label", Data: []byte("Play")}},
	}
	h.mu.Lock()
	h.contents["UI"] = ui
	h.mu.Unlock()
}

func TestScheduler_LogoEndToEnd(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t, 3)
		h.uiContent()
		h.expectFetches(2)
		h.start(uiCatalog(t))

		got := newCollector()
		h.sched.RequestAsset("Logo", "", domain.ResolveResource(), got.cb("logo"))
		synctest.Wait()

		assert.ElementsMatch(t, []string{"Shared", "UI"}, h.startedFetches())
		assert.Empty(t, got.get("logo"))

		h.release("Shared")
		assert.Empty(t, got.get("logo"))

		h.release("UI")
		outcomes := got.get("logo")
		require.Len(t, outcomes, 1)
		require.NoError(t, outcomes[0].Err)
		assert.Equal(t, []byte("logo-bytes"), outcomes[0].Asset.Resource.Data)
		assert.Equal(t, "UI", outcomes[0].Asset.Asset.BundleName)
	})
}

func TestScheduler_DeduplicatesJobs(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t, 3)
		h.uiContent()
		h.expectFetches(2)
		h.start(uiCatalog(t))

		got := newCollector()
		h.sched.RequestAsset("Logo", "", domain.ResolveResource(), got.cb("logo"))
		h.sched.RequestAsset("Icon", "", domain.ResolveResource(), got.cb("icon"))
		synctest.Wait()

		stats, err := h.sched.Stats(t.Context())
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Active)

		h.release("Shared")
		h.release("UI")

		require.Len(t, got.get("logo"), 1)
		require.Len(t, got.get("icon"), 1)
		require.NoError(t, got.get("logo")[0].Err)
		require.NoError(t, got.get("icon")[0].Err)
		assert.Len(t, h.startedFetches(), 2)
	})
}

func TestScheduler_NotifiesWaitersInAttachmentOrder(t *testing.T) {
	packCatalog := func(t *testing.T) *domain.Catalog {
		t.Helper()
		c := domain.NewCatalog("v1")
		require.NoError(t, c.AddBundle(domain.Bundle{Name: "Pack"}, []string{"A.bin", "B.bin", "C.bin"}))
		return c
	}

	for _, tc := range []struct {
		name string
		fail bool
	}{
		{name: "success"},
		{name: "failure", fail: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				h := newHarness(t, 1)
				pack := domain.NewBundleContent("Pack")
				for _, n := range []string{"A", "B", "C"} {
					pack.Items[n] = domain.Item{Name: n, Extension: "bin", Data: []byte(n)}
				}
				h.contents["Pack"] = pack
				if tc.fail {
					h.failures["Pack"] = domain.Annotate(domain.ErrFetchFailed, "status", 503)
				}
				h.expectFetches(1)
				h.start(packCatalog(t))

				var (
					mu    sync.Mutex
					order []string
				)
				for _, n := range []string{"C", "A", "B"} {
					h.sched.RequestAsset(n, "", domain.ResolveResource(), func(o scheduler.Outcome) {
						mu.Lock()
						defer mu.Unlock()
						if tc.fail {
							assert.ErrorIs(t, o.Err, domain.ErrDependencyFailed)
						} else {
							assert.NoError(t, o.Err)
						}
						order = append(order, n)
					})
				}
				synctest.Wait()

				stats, err := h.sched.Stats(t.Context())
				require.NoError(t, err)
				assert.Equal(t, 1, stats.Active)

				h.release("Pack")

				mu.Lock()
				defer mu.Unlock()
				assert.Equal(t, []string{"C", "A", "B"}, order)
				assert.Equal(t, []string{"Pack"}, h.startedFetches())
			})
		})
	}
}

func TestScheduler_AdmissionBound(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t, 2)
		h.expectFetches(5)

		c := domain.NewCatalog("v1")
		names := []string{"B1", "B2", "B3", "B4", "B5"}
		for _, n := range names {
			require.NoError(t, c.AddBundle(domain.Bundle{Name: n}, []string{"A" + n + ".bin"}))
			h.mu.Lock()
			content := domain.NewBundleContent(n)
			content.Items["A"+n] = domain.Item{Name: "A" + n, Extension: "bin"}
			h.contents[n] = content
			h.mu.Unlock()
		}
		h.start(c)

		got := newCollector()
		for _, n := range names {
			h.sched.RequestAsset("A"+n, "", domain.ResolveResource(), got.cb(n))
		}
		synctest.Wait()

		assert.ElementsMatch(t, []string{"B1", "B2"}, h.startedFetches())
		stats, err := h.sched.Stats(t.Context())
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Active)
		assert.Equal(t, 3, stats.Queued)

		h.release("B1")
		started := h.startedFetches()
		require.Len(t, started, 3)
		assert.Equal(t, "B3", started[2])

		for _, n := range names[1:] {
			h.release(n)
		}
		for _, n := range names {
			require.Len(t, got.get(n), 1, n)
			require.NoError(t, got.get(n)[0].Err)
		}
		assert.Equal(t, 2, h.maxFlight)
	})
}

func TestScheduler_FallbackSubstitution(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t, 3)
		h.uiContent()
		h.expectFetches(2)
		h.start(uiCatalog(t))

		got := newCollector()
		h.sched.RequestAsset("Icon_v2", "Icon", domain.ResolveResource(), got.cb("icon"))
		synctest.Wait()
		h.release("Shared")
		h.release("UI")

		require.Len(t, got.get("icon"), 1)
		require.NoError(t, got.get("icon")[0].Err)
		assert.Equal(t, "Icon", got.get("icon")[0].Asset.Asset.Name)
	})
}

func TestScheduler_NotFound(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t, 3)
		h.start(uiCatalog(t))

		_, err := h.sched.Load(t.Context(), "Missing", "AlsoMissing", domain.ResolveResource())
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, h.startedFetches())
	})
}

func TestScheduler_ZeroMissFastPath(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t, 3)
		h.uiContent()
		h.expectFetches(2)
		h.start(uiCatalog(t))

		got := newCollector()
		h.sched.RequestAsset("Logo", "", domain.ResolveResource(), got.cb("first"))
		synctest.Wait()
		h.release("Shared")
		h.release("UI")
		require.NoError(t, got.get("first")[0].Err)

		// No further Fetch is expected by the mock.
		loaded, err := h.sched.Load(t.Context(), "Logo", "", domain.ResolveResource())
		require.NoError(t, err)
		assert.Equal(t, []byte("logo-bytes"), loaded.Resource.Data)

		stats, err := h.sched.Stats(t.Context())
		require.NoError(t, err)
		assert.Equal(t, []string{"Shared", "UI"}, stats.Resident)
		assert.Zero(t, stats.Active)
	})
}

func TestScheduler_ComponentStrategy(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t, 3)
		h.uiContent()
		h.expectFetches(2)
		h.start(uiCatalog(t))

		got := newCollector()
		h.sched.RequestAsset("Button", "", domain.ResolveComponent("Label"), got.cb("button"))
		synctest.Wait()
		h.release("Shared")
		h.release("UI")

		require.Len(t, got.get("button"), 1)
		o := got.get("button")[0]
		require.NoError(t, o.Err)
		require.NotNil(t, o.Asset.Instance)
		assert.NotEmpty(t, o.Asset.Instance.ID)
		assert.Equal(t, []byte("Play"), o.Asset.Component.Data)
	})
}

func TestScheduler_DependencyFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t, 3)
		h.uiContent()
		h.expectFetches(2)
		h.failures["Shared"] = domain.Annotate(domain.ErrFetchFailed, "cause", "status 503")
		h.start(uiCatalog(t))

		got := newCollector()
		h.sched.RequestAsset("Logo", "", domain.ResolveResource(), got.cb("logo"))
		synctest.Wait()

		h.release("Shared")
		outcomes := got.get("logo")
		require.Len(t, outcomes, 1)
		require.ErrorIs(t, outcomes[0].Err, domain.ErrDependencyFailed)
		assert.Equal(t, domain.ReasonDependency, domain.ReasonOf(outcomes[0].Err))

		// UI still completes and becomes resident.
		h.release("UI")
		assert.Len(t, got.get("logo"), 1)
		stats, err := h.sched.Stats(t.Context())
		require.NoError(t, err)
		assert.Equal(t, []string{"UI"}, stats.Resident)
	})
}

func TestScheduler_HoldsRequestsUntilCatalog(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t, 3)
		h.uiContent()
		h.expectFetches(2)
		h.start(nil)

		got := newCollector()
		h.sched.RequestAsset("Logo", "", domain.ResolveResource(), got.cb("logo"))
		synctest.Wait()

		assert.False(t, h.sched.AssetExists("Logo"))
		stats, err := h.sched.Stats(t.Context())
		require.NoError(t, err)
		assert.False(t, stats.Ready)
		assert.Equal(t, 1, stats.Waiting)

		h.sched.SetCatalog(uiCatalog(t))
		synctest.Wait()
		assert.True(t, h.sched.AssetExists("Logo"))

		h.release("Shared")
		h.release("UI")
		require.Len(t, got.get("logo"), 1)
		require.NoError(t, got.get("logo")[0].Err)
	})
}

func TestScheduler_LocalOrigins(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t, 3)
		h.uiContent()
		c := domain.NewCatalog("v1")
		require.NoError(t, c.AddBundle(domain.Bundle{Name: "Shared", Origin: domain.OriginEmbedded}, nil))
		require.NoError(t, c.AddBundle(domain.Bundle{Name: "UI", Origin: domain.OriginCached, Dependencies: []string{"Shared"}}, []string{"Logo.png"}))

		h.files.EXPECT().ReadEmbedded("Shared").Return([]byte("shared"), nil)
		h.files.EXPECT().ReadCached("UI").Return([]byte("ui"), nil)
		h.start(c)

		loaded, err := h.sched.Load(t.Context(), "Logo", "", domain.ResolveResource())
		require.NoError(t, err)
		assert.Equal(t, []byte("logo-bytes"), loaded.Resource.Data)
		assert.Empty(t, h.startedFetches())
	})
}

func TestScheduler_CachedReadFallsBackToDownload(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t, 3)
		c := domain.NewCatalog("v1")
		require.NoError(t, c.AddBundle(domain.Bundle{Name: "Solo", Origin: domain.OriginCached}, []string{"Thing.txt"}))
		content := domain.NewBundleContent("Solo")
		content.Items["Thing"] = domain.Item{Name: "Thing", Extension: "txt", Data: []byte("t")}
		h.contents["Solo"] = content

		h.files.EXPECT().ReadCached("Solo").Return(nil, domain.ErrMissingFile)
		h.logger.EXPECT().Warn(gomock.Any()).Times(1)
		h.expectFetches(1)
		h.start(c)

		got := newCollector()
		h.sched.RequestAsset("Thing", "", domain.ResolveResource(), got.cb("thing"))
		synctest.Wait()
		h.release("Solo")

		require.Len(t, got.get("thing"), 1)
		require.NoError(t, got.get("thing")[0].Err)
		assert.Equal(t, []string{"Solo"}, h.startedFetches())
	})
}

func TestScheduler_IntegrityMismatch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t, 3)
		c := domain.NewCatalog("v1")
		require.NoError(t, c.AddBundle(domain.Bundle{Name: "Solo~00000000000000aa"}, []string{"Thing.txt"}))
		h.hasher.EXPECT().BundleHash(gomock.Any()).Return("00000000000000bb")
		h.expectFetches(1)
		h.start(c)

		got := newCollector()
		h.sched.RequestAsset("Thing", "", domain.ResolveResource(), got.cb("thing"))
		synctest.Wait()
		h.release("Solo~00000000000000aa")

		require.Len(t, got.get("thing"), 1)
		err := got.get("thing")[0].Err
		require.ErrorIs(t, err, domain.ErrDependencyFailed)
		assert.Contains(t, err.Error(), "dependency failed")
	})
}

func TestScheduler_Passthrough(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t, 3)
		c := domain.NewCatalog("dev")
		require.NoError(t, c.AddBundle(domain.Bundle{Name: "UI_Menu", Origin: domain.OriginLocalPassthrough}, []string{"Logo.png"}))
		h.files.EXPECT().ReadSource("UI/Menu/Logo.png").Return([]byte("png"), nil)
		h.start(c)

		loaded, err := h.sched.Load(t.Context(), "Logo", "", domain.ResolveResource())
		require.NoError(t, err)
		assert.Equal(t, []byte("png"), loaded.Resource.Data)
	})
}

func TestScheduler_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t, 1)
		h.expectFetches(1)

		c := domain.NewCatalog("v1")
		require.NoError(t, c.AddBundle(domain.Bundle{Name: "B1"}, []string{"A1.bin"}))
		require.NoError(t, c.AddBundle(domain.Bundle{Name: "B2"}, []string{"A2.bin"}))

		ctx, cancel := context.WithCancel(t.Context())
		h.sched.Start(ctx)
		h.sched.SetCatalog(c)

		got := newCollector()
		h.sched.RequestAsset("A1", "", domain.ResolveResource(), got.cb("a1"))
		h.sched.RequestAsset("A2", "", domain.ResolveResource(), got.cb("a2"))
		synctest.Wait()

		cancel()
		h.sched.Wait()

		require.Len(t, got.get("a1"), 1)
		require.Len(t, got.get("a2"), 1)
		assert.Equal(t, domain.ReasonDependency, domain.ReasonOf(got.get("a1")[0].Err))
		assert.True(t, errors.Is(got.get("a1")[0].Err, context.Canceled))
		require.ErrorIs(t, got.get("a2")[0].Err, domain.ErrSchedulerStopped)

		h.sched.RequestAsset("A1", "", domain.ResolveResource(), got.cb("late"))
		require.Len(t, got.get("late"), 1)
		require.ErrorIs(t, got.get("late")[0].Err, domain.ErrSchedulerStopped)
	})
}
