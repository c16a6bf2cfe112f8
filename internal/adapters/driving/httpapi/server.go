package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/sitesync/internal/core/ports/driving"
	"github.com/custodia-labs/sitesync/internal/logger"
)

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("httpapi: document service is required")

// Server exposes driving ports over HTTP.
type Server struct {
	documents driving.DocumentService
	sync      driving.SyncOrchestrator
	router    *chi.Mux
}

// NewServer creates the HTTP API. syncOrch may be nil, which disables
// the /status and /sync routes.
func NewServer(documents driving.DocumentService, syncOrch driving.SyncOrchestrator) (*Server, error) {
	if documents == nil {
		return nil, ErrMissingDocumentService
	}

	s := &Server{
		documents: documents,
		sync:      syncOrch,
		router:    chi.NewRouter(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", s.handleListDocuments)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetDocument)
			r.Get("/access", s.handleCheckAccess)
		})
	})

	if s.sync != nil {
		r.Get("/status", s.handleStatus)
		r.Post("/sync", s.handleSync)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("http: listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// requestLogger logs each request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Debug("http: %s %s %d %s [%s]", r.Method, r.URL.Path, ww.Status(),
			time.Since(start).Round(time.Microsecond), middleware.GetReqID(r.Context()))
	})
}
