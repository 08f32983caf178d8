package api

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"gnc_sssp/pkg/config"
	"gnc_sssp/pkg/metrics"
)

// NewServer creates an HTTP server with all routes and middleware. reg may
// be nil, in which case /metrics is not served.
func NewServer(cfg config.ServerConfig, handlers *Handlers, reg *metrics.Registry, log logrus.FieldLogger) *http.Server {
	mux := http.NewServeMux()

	// Concurrency limiter.
	sem := make(chan struct{}, cfg.MaxConcurrent)
	mw := middleware{cfg: cfg, sem: sem, metrics: reg, log: log}

	mux.HandleFunc("POST /api/v1/solve", mw.wrap("/api/v1/solve", handlers.HandleSolve))
	mux.HandleFunc("POST /api/v1/solve/batch", mw.wrap("/api/v1/solve/batch", handlers.HandleSolveBatch))
	mux.HandleFunc("POST /api/v1/benchmark", mw.wrap("/api/v1/benchmark", handlers.HandleBenchmark))
	mux.HandleFunc("GET /api/v1/health", mw.wrap("/api/v1/health", handlers.HandleHealth))
	mux.HandleFunc("GET /api/v1/stats", mw.wrap("/api/v1/stats", handlers.HandleStats))
	if reg != nil {
		mux.Handle("GET /metrics", reg.Handler())
	}

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// ListenAndServe starts the server and blocks until it fails or the process
// receives SIGTERM or SIGINT, then shuts down gracefully.
func ListenAndServe(srv *http.Server, log logrus.FieldLogger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

type middleware struct {
	cfg     config.ServerConfig
	sem     chan struct{}
	metrics *metrics.Registry
	log     logrus.FieldLogger
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// wrap adds security headers, CORS, concurrency limiting, panic recovery,
// a request timeout, request logging and metrics. route is the metrics
// path label.
func (m middleware) wrap(route string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Cache-Control", "no-store")

		if m.cfg.CORSOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", m.cfg.CORSOrigin)
		}

		select {
		case m.sem <- struct{}{}:
			defer func() { <-m.sem }()
		default:
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusServiceUnavailable, "service_unavailable", "")
			m.metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(http.StatusServiceUnavailable), 0)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		defer func() {
			if p := recover(); p != nil {
				m.log.WithField("panic", p).Error("handler panicked")
				writeError(rec, http.StatusInternalServerError, "internal_error", "")
			}
			elapsed := time.Since(start)
			m.metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(rec.status), elapsed)
			m.log.WithFields(logrus.Fields{
				"method":  r.Method,
				"path":    r.URL.Path,
				"status":  rec.status,
				"elapsed": elapsed.Round(time.Microsecond).String(),
			}).Debug("request handled")
		}()

		ctx, cancel := context.WithTimeout(r.Context(), m.cfg.RequestTimeout)
		defer cancel()

		handler(rec, r.WithContext(ctx))
	}
}
