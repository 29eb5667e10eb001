package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/workwithprnv-stack/survey/internal/collection"
	"github.com/workwithprnv-stack/survey/internal/intake"
	"github.com/workwithprnv-stack/survey/internal/models"
)

const maxBodyBytes = 1 << 20

type Server struct {
	store     *collection.Store
	address   string
	staticDir string
	logger    *zap.Logger
	metrics   *metrics
	registry  *prometheus.Registry
	server    *http.Server
}

// NewServer serves submissions into store. Static files are served from
// staticDir; an empty staticDir disables static serving.
func NewServer(store *collection.Store, address, staticDir string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := prometheus.NewRegistry()
	return &Server{
		store:     store,
		address:   address,
		staticDir: staticDir,
		logger:    logger,
		metrics:   newMetrics(registry),
		registry:  registry,
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("ok"))
}

func (s *Server) handleSubmit(w http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var submission models.Submission
	if err := json.NewDecoder(http.MaxBytesReader(w, request.Body, maxBodyBytes)).Decode(&submission); err != nil {
		s.metrics.submissions.WithLabelValues(outcomeInvalid).Inc()
		writeJSON(w, http.StatusBadRequest, models.SubmitReply{Error: "Invalid JSON format"})
		return
	}

	set, err := intake.Check(submission)
	var validation *intake.ValidationError
	var quality *intake.QualityRejection
	switch {
	case errors.As(err, &validation):
		s.metrics.submissions.WithLabelValues(outcomeInvalid).Inc()
		writeJSON(w, http.StatusBadRequest, models.SubmitReply{Error: validation.Error()})
		return
	case errors.As(err, &quality):
		s.metrics.submissions.WithLabelValues(outcomeRejected).Inc()
		s.logger.Warn("Rejected neutral-only response", zap.String("session", intake.Describe(quality.SessionID)))
		writeJSON(w, http.StatusUnprocessableEntity, models.SubmitReply{Error: quality.Error()})
		return
	case err != nil:
		s.metrics.submissions.WithLabelValues(outcomeError).Inc()
		s.logger.Error("Error processing submission", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.SubmitReply{Error: "Server error"})
		return
	}

	result, err := s.store.Upsert(set)
	if err != nil {
		s.metrics.submissions.WithLabelValues(outcomeError).Inc()
		s.logger.Error("Error saving response", zap.String("session", intake.Describe(set.SessionID)), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.SubmitReply{Error: "Failed to save response"})
		return
	}

	s.metrics.submissions.WithLabelValues(outcomeAccepted).Inc()
	s.logger.Info("Saved response",
		zap.String("session", intake.Describe(set.SessionID)),
		zap.Bool("replaced", result.Replaced),
		zap.Int("total", result.Total))
	writeJSON(w, http.StatusOK, models.SubmitReply{
		Accepted:  true,
		SessionID: set.SessionID,
		Message:   "Response saved successfully",
	})
}

func (s *Server) handleResponses(w http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	c, err := s.store.Load()
	if err != nil {
		s.logger.Error("Error reading responses", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.SubmitReply{Error: "Failed to read responses"})
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/submit", s.handleSubmit)
	mux.HandleFunc("/api/responses", s.handleResponses)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	if s.staticDir != "" {
		mux.Handle("/", newStaticHandler(s.staticDir, s.store.Path()))
	} else {
		mux.Handle("/", http.NotFoundHandler())
	}
	return withCORS(mux)
}

// Handler returns the server's routes without listening.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// withCORS allows any origin to submit and read, and answers preflight
// requests directly.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, request *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if request.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, request)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.address,
		Handler:      s.setupRoutes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	group, groupContext := errgroup.WithContext(ctx)
	group.Go(func() error {
		s.logger.Info("Survey server listening",
			zap.String("address", s.address),
			zap.String("data", s.store.Path()),
			zap.String("static", s.staticDir))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupContext.Done()
		s.logger.Info("Shutting down server...")

		shutdownContext, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownContext)
	})

	if err := group.Wait(); err != nil {
		return err
	}
	s.logger.Info("Server exited")
	return nil
}
