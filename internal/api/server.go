package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/docsight/internal/chat"
	"github.com/dgallion1/docsight/internal/config"
	"github.com/dgallion1/docsight/internal/ocr"
	"github.com/dgallion1/docsight/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docsight.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	ocr          *ocr.Client
	chat         *chat.Client
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, ocrClient *ocr.Client, chatClient *chat.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		ocr:          ocrClient,
		chat:         chatClient,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.DocsightAPIKey, s.log))

		r.Post("/api/documents", s.handleUpload)
		r.Get("/api/documents/{docID}/status", s.handleStatus)
		r.Get("/api/documents/{docID}", s.handleDocument)
		r.Get("/api/documents/{docID}/html", s.handleDocumentHTML)
		r.Get("/api/documents/{docID}/docx", s.handleDocumentDocx)
		r.Post("/api/documents/{docID}/chat", s.handleChat)

		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
