package http

import (
	"context"
	"net/http"
	"net/http/pprof"
	"sync"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/go-tooling/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type AdminOptions struct {
	// The version served on /version.
	Version string

	// The world exposed on /debug/frame and /debug/quadtree.
	Source FrameSource

	// Reports whether the simulation published its first frame.
	Ready func() bool

	// Serves /smoke-test when not nil.
	SmokeTest http.Handler
}

// NewAdminHandler returns the handler of the admin server, instrumented with
// HTTP metrics.
func NewAdminHandler(opts AdminOptions) http.Handler {
	ready := opts.Ready
	if ready == nil {
		ready = func() bool { return true }
	}

	var admin http.ServeMux
	admin.Handle("/metrics", promhttp.Handler())
	admin.HandleFunc("/health", HandleHealthCheck)
	admin.HandleFunc("/ready", HandleReadyCheck(ready))
	admin.HandleFunc("/version", HandleVersion(opts.Version))
	admin.HandleFunc("/debug/pprof/", pprof.Index)
	admin.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	admin.HandleFunc("/debug/pprof/profile", pprof.Profile)
	admin.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	admin.HandleFunc("/debug/pprof/trace", pprof.Trace)
	admin.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
	admin.Handle("/debug/pprof/heap", pprof.Handler("heap"))

	if opts.Source != nil {
		admin.HandleFunc("/debug/frame", HandleFrame(opts.Source))
		admin.HandleFunc("/debug/quadtree", HandleQuadtree(opts.Source))
	}
	if opts.SmokeTest != nil {
		admin.Handle("/smoke-test", opts.SmokeTest)
	}

	return metrics.HTTPHandler(&admin, MetricsPathFormatter)
}

// ListenAndServe runs the given servers until ctx is canceled.
func ListenAndServe(ctx context.Context, servers ...*http.Server) {
	go func() {
		<-ctx.Done()

		for _, s := range servers {
			if err := s.Shutdown(context.Background()); err != nil {
				logs.Warn(errors.Newf("shutting down the server failed").
					WithTag("addr", s.Addr).
					Wrap(err))
			}
		}
	}()

	var wg sync.WaitGroup

	for _, s := range servers {
		wg.Add(1)

		go func(s *http.Server) {
			defer wg.Done()

			logs.WithTag("addr", s.Addr).Info("starting server")

			switch err := s.ListenAndServe(); err {
			case nil, http.ErrServerClosed, context.Canceled:
				logs.WithTag("addr", s.Addr).Info("stopping server")

			default:
				logs.Warn(errors.Newf("server stopped").
					WithTag("addr", s.Addr).
					Wrap(err))
			}
		}(s)
	}

	wg.Wait()
}

// MetricsPathFormatter returns an empty string on HTTP 301, 400, 404 or 405
// status codes so unknown paths do not create new metric labels.
func MetricsPathFormatter(statusCode int, path string) string {
	if statusCode == http.StatusMovedPermanently ||
		statusCode == http.StatusBadRequest ||
		statusCode == http.StatusNotFound ||
		statusCode == http.StatusMethodNotAllowed {
		return ""
	}

	return path
}
