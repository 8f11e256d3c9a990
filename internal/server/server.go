// Package server exposes the quote engine over HTTP: a single quote endpoint
// plus health and metrics. A priced quote is a 200; a clarification, greeting
// or unrecognized reply is a 422 so API clients can branch on the status
// without inspecting the body.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"quote-engine/internal/common/config"
	"quote-engine/internal/common/logger"
	"quote-engine/internal/engine/quote"
)

// QuoteService is the engine surface the server needs.
type QuoteService interface {
	Quote(ctx context.Context, req quote.Request) (*quote.Response, error)
}

// Server is the HTTP transport.
type Server struct {
	httpServer     *http.Server
	svc            QuoteService
	logger         logger.Logger
	requestTimeout time.Duration
}

func New(cfg config.ServerConfig, svc QuoteService, log logger.Logger) *Server {
	s := &Server{
		svc:            svc,
		logger:         log.With(map[string]interface{}{"component": "server"}),
		requestTimeout: time.Duration(cfg.RequestTimeout) * time.Millisecond,
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return s
}

// Routes builds the handler tree.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/quote", s.handleQuote)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quote.Request
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	ctx := r.Context()
	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	resp, err := s.svc.Quote(ctx, req)
	if err != nil {
		s.logger.WithError(err).Error("quote processing failed", nil)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	status := http.StatusOK
	if resp.Clarification != nil {
		status = http.StatusUnprocessableEntity
	}
	s.writeJSON(w, status, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("response encoding failed", nil)
	}
}
