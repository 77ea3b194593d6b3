package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/lead-prospector/internal/config"
	"github.com/jonathan/lead-prospector/internal/db"
	"github.com/jonathan/lead-prospector/internal/llm"
	"github.com/jonathan/lead-prospector/internal/prompts"
	"github.com/jonathan/lead-prospector/internal/prospect"
	"github.com/jonathan/lead-prospector/internal/server/middleware"
	"github.com/jonathan/lead-prospector/internal/server/ratelimit"
	"github.com/jonathan/lead-prospector/internal/session"
	"github.com/jonathan/lead-prospector/internal/types"
	"github.com/jonathan/lead-prospector/internal/websearch"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	transport   llm.Client
	sessions    *sessionRegistry
	history     HistoryStore
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	APIKey      string
	Location    *llm.GeoPoint
	Accumulator *prospect.AccumulatorOptions
	Verbose     bool
}

// historyRecorder adapts the database history store to session.Recorder.
type historyRecorder struct {
	store HistoryStore
}

func (h historyRecorder) Add(ctx context.Context, userID uuid.UUID, params types.SearchParams, resultCount int) error {
	return h.store.AddSearchHistory(ctx, userID, params, resultCount)
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	transport, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return nil, err
	}

	s := &Server{
		db:        database,
		transport: transport,
		history:   database,
	}

	// Search pipeline: grounded batches, pagination, deep-search scraping
	builder := prompts.NewBuilder(cfg.Location)
	client := prospect.NewClient(transport, builder, &prospect.ClientOptions{
		MaxRetries:   prospect.DefaultClientOptions().MaxRetries,
		InitialDelay: prospect.DefaultClientOptions().InitialDelay,
		Verbose:      cfg.Verbose,
	})
	accOpts := cfg.Accumulator
	if accOpts == nil {
		accOpts = prospect.DefaultAccumulatorOptions()
	}
	accOpts.Verbose = cfg.Verbose
	enricher := websearch.NewEnricher(websearch.EnricherOptions{Verbose: cfg.Verbose})
	service := prospect.NewService(prospect.NewAccumulator(client, accOpts), enricher)

	s.sessions = newSessionRegistry(func(userID uuid.UUID, notifier session.Notifier) *session.Session {
		return session.New(userID, service, historyRecorder{store: database}, notifier, nil)
	})

	// Rate limiting and authentication services
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for CSV export of large result sets
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router: public auth/health endpoints plus the
// token-protected search, profile and history surface.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.HandleFunc("GET /health", s.handleHealth)

	protected := http.NewServeMux()
	protected.HandleFunc("GET /users/me", s.handleGetMe)
	protected.HandleFunc("PUT /users/me", s.handleUpdateMe)

	protected.HandleFunc("POST /search", s.handleSearch)
	protected.HandleFunc("POST /search/more", s.handleLoadMore)
	protected.HandleFunc("GET /search/status", s.handleSearchStatus)
	protected.HandleFunc("GET /search/export.csv", s.handleExportCSV)

	protected.HandleFunc("GET /history", s.handleListHistory)
	protected.HandleFunc("DELETE /history/{id}", s.handleDeleteHistoryItem)
	protected.HandleFunc("DELETE /history", s.handleClearHistory)

	authed := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(protected)
	mux.Handle("/", authed)

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	s.sessions.closeAll()
	if err := s.transport.Close(); err != nil {
		log.Printf("Error closing model client: %v", err)
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// handleGetMe returns the authenticated user's profile.
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authedUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.GetProfile(w, r, userID)
}

// handleUpdateMe updates the authenticated user's profile.
func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authedUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.UpdateProfile(w, r, userID)
}

// authedUserID pulls the authenticated user from the request context.
func (s *Server) authedUserID(r *http.Request) (uuid.UUID, error) {
	return middleware.GetUserID(r)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
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

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data)
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
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
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
