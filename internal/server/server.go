package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tournevent/iats/internal/graphql"
	"github.com/tournevent/iats/pkg/iats"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Server exposes the gateway client over HTTP/JSON and GraphQL.
type Server struct {
	port     int
	client   *iats.Client
	resolver *graphql.Resolver
	logger   *otelzap.Logger
	gatherer prometheus.Gatherer
}

// Config holds server configuration.
type Config struct {
	Port int
	// Gatherer backs /metrics. Defaults to the global registry.
	Gatherer prometheus.Gatherer
}

// New creates a new server instance.
func New(cfg Config, client *iats.Client, logger *otelzap.Logger) *Server {
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	return &Server{
		port:     cfg.Port,
		client:   client,
		resolver: graphql.NewResolver(client, logger),
		logger:   logger,
		gatherer: gatherer,
	}
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/v1/regions", s.handleRegions)
	mux.HandleFunc("/v1/{family}", s.handleFamily)
	mux.HandleFunc("/v1/{family}/{operation}", s.handleCall)
	mux.Handle("/graphql", graphql.NewHandler(s.resolver))

	return mux
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type errorResponse struct {
	Error string `json:"error"`
}

type familyResponse struct {
	Family     string   `json:"family"`
	Operations []string `json:"operations"`
}

type regionResponse struct {
	Region  iats.Region `json:"region"`
	Current bool        `json:"current"`
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	var resp []regionResponse
	for _, region := range iats.Regions() {
		resp = append(resp, regionResponse{Region: region, Current: region == s.client.Region()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFamily(w http.ResponseWriter, r *http.Request) {
	family, ok := iats.LookupFamily(r.PathValue("family"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown service family: " + r.PathValue("family")})
		return
	}
	writeJSON(w, http.StatusOK, familyResponse{Family: family.Name, Operations: family.Operations()})
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed, use POST"})
		return
	}

	family, ok := iats.LookupFamily(r.PathValue("family"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown service family: " + r.PathValue("family")})
		return
	}

	body := map[string]any{}
	if r.ContentLength != 0 {
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON: " + err.Error()})
			return
		}
	}

	operation := r.PathValue("operation")
	result := s.client.Call(r.Context(), family, operation, iats.ParametersFromMap(body))

	s.logger.Ctx(r.Context()).Debug("Gateway call served",
		zap.String("family", family.Name),
		zap.String("operation", operation),
		zap.Stringer("outcome", result.Kind),
	)

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
