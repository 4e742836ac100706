// Package server exposes the analysis engine over HTTP. One provider
// chain is built at startup and shared between the analyzer and the chat
// responder; storage is optional and enabled by a database URL.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-analyzer/internal/analyzer"
	"github.com/jonathan/resume-analyzer/internal/chat"
	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/llm"
)

// Config holds the server configuration.
type Config struct {
	Port        int
	DatabaseURL string
	Credentials llm.Credentials
	LLM         *llm.Config
}

// Server is the HTTP server for the analysis API.
type Server struct {
	httpServer *http.Server
	db         *db.DB
	providers  []llm.Provider
	analyzer   *analyzer.Analyzer
	responder  *chat.Responder
	validate   *validator.Validate
}

// New creates a server. Provider construction failure is fatal; a failed
// database connection only disables persistence.
func New(ctx context.Context, cfg Config) (*Server, error) {
	providers, err := llm.NewProviders(ctx, cfg.Credentials, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize providers: %w", err)
	}

	s := &Server{
		providers: providers,
		analyzer:  analyzer.NewWithProviders(providers...),
		responder: chat.NewWithProviders(providers...),
		validate:  validator.New(),
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("warning: database unavailable, persistence disabled: %v", err)
		} else if err := database.Migrate(ctx); err != nil {
			database.Close()
			log.Printf("warning: migration failed, persistence disabled: %v", err)
		} else {
			s.db = database
		}
	}

	port := cfg.Port
	if port == 0 {
		port = 8080
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.routes(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/analysis/{id}", s.handleGetAnalysis)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/stats/{user_id}", s.handleStats)
	mux.HandleFunc("GET /health", s.handleHealth)

	return withCORS(mux)
}

// Start runs the server until SIGINT or SIGTERM, then shuts down
// gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-stop
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	llm.CloseAll(s.providers)
	if s.db != nil {
		s.db.Close()
	}

	log.Println("server stopped")
	return nil
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
