package a2a

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kadirpekel/coopcheck/observability"
	"github.com/kadirpekel/coopcheck/safety"
)

// CheckEndpoint is the path of the food safety check endpoint
const CheckEndpoint = "/a2a/chicken-food-safety"

// DiscoveryEndpoint is the path of the service discovery endpoint
const DiscoveryEndpoint = "/a2a/discovery"

// HealthEndpoint is the path of the health check endpoint
const HealthEndpoint = "/health"

// ============================================================================
// A2A SERVER - Exposes the food safety service over the A2A protocol
// ============================================================================

// ServerConfig contains configuration for the A2A server
type ServerConfig struct {
	Host          string
	Port          int
	BaseURL       string // Public URL advertised in discovery
	Agent         AgentInfo
	EnableMetrics bool
}

// Server implements the A2A protocol server. Request handling is stateless:
// the only shared state is the immutable safety.Checker, so handlers need no
// coordination of their own.
type Server struct {
	host       string
	port       int
	baseURL    string
	agent      AgentInfo
	checker    *safety.Checker
	metrics    *observability.Metrics
	logger     *slog.Logger
	httpServer *http.Server
}

// NewServer creates a new A2A protocol server
func NewServer(cfg *ServerConfig, checker *safety.Checker, logger *slog.Logger) *Server {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port)
	}

	var metrics *observability.Metrics
	if cfg.EnableMetrics {
		metrics = observability.NewMetrics()
	}

	return &Server{
		host:    cfg.Host,
		port:    cfg.Port,
		baseURL: baseURL,
		agent:   cfg.Agent,
		checker: checker,
		metrics: metrics,
		logger:  logger,
	}
}

// Handler builds the HTTP handler tree. Exposed for tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.corsMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.metrics.Middleware)

	r.Post(CheckEndpoint, s.handleCheck)
	r.Get(DiscoveryEndpoint, s.handleDiscovery)
	r.Get(HealthEndpoint, s.handleHealth)

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	return r
}

// Start starts the A2A HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.host, s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("A2A server starting",
		"addr", s.httpServer.Addr,
		"check", s.baseURL+CheckEndpoint,
		"discovery", s.baseURL+DiscoveryEndpoint,
		"health", s.baseURL+HealthEndpoint)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// ============================================================================
// HTTP HANDLERS
// ============================================================================

// handleCheck processes a food safety check request: validate the envelope,
// classify the food item, reply with a correlated response envelope. All
// failures are terminal for the request; there are no retries.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.respondError(w, "", nil, ErrorCodeInvalidRequest, "failed to read request body")
		return
	}

	env, payload, err := ValidateRequest(body)
	if err != nil {
		// Correlate the error envelope when the request decoded far
		// enough to carry an ID.
		requestID := ""
		var recipient *AgentInfo
		if env != nil {
			requestID = env.ID
			if env.Sender.AgentID != "" {
				recipient = &env.Sender
			}
		}

		code := ErrorCodeInvalidRequest
		var unknownService *UnknownServiceError
		if errors.As(err, &unknownService) {
			code = ErrorCodeUnknownService
		}

		s.logger.Warn("invalid A2A request", "error", err)
		s.respondError(w, requestID, recipient, code, err.Error())
		return
	}

	// Empty or whitespace-only food names are rejected up front rather
	// than classified as unknown.
	if safety.Normalize(payload.FoodItem) == "" {
		verr := &ValidationError{Field: "payload.food_item", Reason: "food item cannot be empty"}
		s.logger.Warn("invalid A2A request", "error", verr)
		s.respondError(w, env.ID, &env.Sender, ErrorCodeInvalidRequest, verr.Error())
		return
	}

	result := s.checker.Classify(payload.FoodItem)
	s.metrics.ObserveClassification(string(result.Status))

	resp, err := BuildResponse(env.ID, s.agent, &env.Sender, ResponsePayload{
		Success: true,
		Service: ServiceName,
		Result:  &result,
	})
	if err != nil {
		s.logger.Error("failed to build response envelope", "error", err)
		s.respondError(w, env.ID, &env.Sender, ErrorCodeInternal, "internal server error")
		return
	}

	s.logger.Info("food safety check processed",
		"request_id", env.ID,
		"food_item", payload.FoodItem,
		"status", result.Status)

	respondJSON(w, http.StatusOK, resp)
}

// handleDiscovery returns the static service directory
func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	directory := ServiceDirectory{
		Services: []ServiceInfo{
			{
				Name:        ServiceName,
				Description: "Check if a food item is safe for chickens",
				Endpoint:    CheckEndpoint,
				Method:      http.MethodPost,
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"food_item": map[string]any{
							"type":        "string",
							"description": "Name of the food item to check",
						},
					},
					"required": []string{"food_item"},
				},
			},
		},
	}

	respondJSON(w, http.StatusOK, directory)
}

// handleHealth returns the liveness document
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthStatus{Status: "ok"})
}

// respondError writes an error envelope with HTTP 400
func (s *Server) respondError(w http.ResponseWriter, requestID string, recipient *AgentInfo, code, message string) {
	env := BuildError(requestID, s.agent, recipient, code, message)
	respondJSON(w, http.StatusBadRequest, env)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// ============================================================================
// MIDDLEWARE
// ============================================================================

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	})
}

// corsMiddleware adds CORS headers
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
