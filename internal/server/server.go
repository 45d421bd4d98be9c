// Package server provides the HTTP REST API for the candidate ranker.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-ranker/internal/logger"
	"github.com/jonathan/candidate-ranker/internal/server/ratelimit"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// Ranker is the screening behaviour the API exposes.
type Ranker interface {
	Screen(ctx context.Context, raw types.RawCriteria) (*types.RankedCandidates, error)
	GetJobDescription(ctx context.Context, id uuid.UUID) (*types.JobDescription, error)
	ListJobDescriptions(ctx context.Context, page types.Page) ([]types.JobDescription, int, error)
	ScreenForJob(ctx context.Context, id uuid.UUID, limit int) (*types.JobShortlist, error)
	Shortlist(ctx context.Context, ids []uuid.UUID, limit int) ([]types.JobShortlist, error)
	Ping(ctx context.Context) error
}

// Analytics computes dashboard statistics.
type Analytics interface {
	Dashboard(ctx context.Context, topN int) (*types.PoolStats, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	ranker      Ranker
	analytics   Analytics
	rateLimiter *ratelimit.Limiter
	validator   *validator.Validate
	logger      *zap.Logger
}

// Config holds server configuration
type Config struct {
	Port           int
	RateLimit      *ratelimit.Config
	AllowedOrigins []string
}

// New creates a new server instance
func New(cfg Config, ranker Ranker, analytics Analytics, log *zap.Logger) *Server {
	s := &Server{
		ranker:      ranker,
		analytics:   analytics,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		validator:   validator.New(),
		logger:      logger.OrNop(log),
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.withRecovery(s.routes()), origins))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /candidates/rank", s.handleRankCandidates)
	mux.HandleFunc("POST /candidates/rank", s.handleRankCandidates)

	mux.HandleFunc("GET /job-descriptions", s.handleListJobDescriptions)
	mux.HandleFunc("GET /job-descriptions/{id}", s.handleGetJobDescription)
	mux.HandleFunc("GET /job-descriptions/{id}/candidates", s.handleRankForJobDescription)
	mux.HandleFunc("POST /shortlists", s.handleShortlists)

	mux.HandleFunc("GET /analytics", s.handleAnalytics)
	return mux
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler, origins []string) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(next)
}

// withRecovery turns handler panics into 500 responses.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{s.logger}),
		handlers.PrintRecoveryStack(false),
	)(next)
}

type recoveryLogger struct {
	logger *zap.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("recovered from panic", zap.String("panic", fmt.Sprint(v...)))
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return handlers.CustomLoggingHandler(io.Discard, next, func(_ io.Writer, p handlers.LogFormatterParams) {
		s.logger.Info("request",
			zap.String("method", p.Request.Method),
			zap.String("path", p.URL.Path),
			zap.Int("status", p.StatusCode),
			zap.Int("size", p.Size),
			zap.Duration("duration", time.Since(p.TimeStamp)),
		)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleHealth reports whether the candidate store is reachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.ranker.Ping(r.Context()); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("error encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFromErr maps err to a status code. Internal errors are logged and
// reported with prefix; client errors are reported verbatim.
func (s *Server) errorFromErr(w http.ResponseWriter, err error, prefix string) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(prefix, zap.Error(err))
		s.errorResponse(w, status, prefix+": "+err.Error())
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier (IP address) from the request.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		retryAfter := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = retryAfter
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
	}

	s.logger.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Time("reset_at", info.ResetTime))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
