package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultServeAddr is the address serve listens on when none is given.
	DefaultServeAddr = "127.0.0.1:8480"

	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// ServeOptions configuration for the Serve method.
type ServeOptions struct {
	Addr string
	// Dir is the publish output root. Empty means the configured output.
	Dir string
	// Ready, when set, receives the bound address once the listener is up.
	Ready func(addr string)
}

// Serve exposes a publish output over HTTP, laid out as the remote expects,
// plus the Prometheus registry under /metrics. It returns when ctx is done.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	if opts.Addr == "" {
		opts.Addr = DefaultServeAddr
	}
	if opts.Dir == "" {
		opts.Dir = a.cfg.Publish.Output
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	mux.Handle("/", http.FileServer(http.Dir(opts.Dir)))

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", opts.Addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to listen"), "addr", opts.Addr)
	}

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: readHeaderTimeout}
	a.logger.Info(fmt.Sprintf("serving %s on http://%s", opts.Dir, ln.Addr()))
	if opts.Ready != nil {
		opts.Ready(ln.Addr().String())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.Wrap(err, "server failed")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
