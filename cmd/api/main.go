package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"storefront-scraper/internal/types"
	"storefront-scraper/pipeline"
)

// ScrapeRequest is the request body for the scrape endpoint
type ScrapeRequest struct {
	URL      string   `json:"url"`
	Platform string   `json:"platform,omitempty"`
	Methods  []string `json:"methods,omitempty"`
}

// ScrapeResponse is the response from the scrape endpoint
type ScrapeResponse struct {
	Success bool                `json:"success"`
	RunID   string              `json:"run_id,omitempty"`
	Summary *pipeline.Summary   `json:"summary,omitempty"`
	Rows    []types.OutputRow   `json:"rows,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// Server holds the API server configuration
type Server struct {
	logger *logrus.Logger
	config *types.Config
	store  *pipeline.Store
}

// NewServer creates a new API server
func NewServer() *Server {
	// Load .env file if present
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Server{
		logger: logger,
		config: types.DefaultConfig(),
		store:  pipeline.NewStore(),
	}
}

// handleScrape runs a scrape and stores the result under a fresh run ID.
func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	s.setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		s.sendError(w, "url is required", http.StatusBadRequest)
		return
	}

	methods := s.resolveMethods(req)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
	defer cancel()

	p := pipeline.New(s.config, s.logger)
	defer p.Close()

	result, err := p.Run(ctx, req.URL, methods)
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadGateway)
		return
	}

	s.store.Put(result)
	summary := pipeline.Summarize(result)

	s.sendJSON(w, http.StatusOK, ScrapeResponse{
		Success: true,
		RunID:   result.ID,
		Summary: &summary,
		Rows:    result.Rows,
	})
}

// handleRun serves the rows of a stored run, optionally filtered by the
// vendor and type query parameters.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	s.setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/runs/")
	if id == "" {
		s.sendError(w, "run id is required", http.StatusBadRequest)
		return
	}

	result, ok := s.store.Get(id)
	if !ok {
		s.sendError(w, "run not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		filter := pipeline.Filter{
			Vendors:      queryList(r, "vendor"),
			ProductTypes: queryList(r, "type"),
		}
		summary := pipeline.Summarize(result)
		s.sendJSON(w, http.StatusOK, ScrapeResponse{
			Success: true,
			RunID:   result.ID,
			Summary: &summary,
			Rows:    filter.Apply(result.Rows),
		})
	case http.MethodDelete:
		s.store.Delete(id)
		s.sendJSON(w, http.StatusOK, ScrapeResponse{Success: true, RunID: id})
	default:
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) resolveMethods(req ScrapeRequest) []pipeline.Method {
	if len(req.Methods) > 0 {
		methods := make([]pipeline.Method, 0, len(req.Methods))
		for _, m := range req.Methods {
			methods = append(methods, pipeline.Method(m))
		}
		return methods
	}

	switch req.Platform {
	case "shopify":
		return pipeline.MethodsForPlatform(types.PlatformShopify)
	case "wordpress":
		return pipeline.MethodsForPlatform(types.PlatformWordPress)
	default:
		return pipeline.MethodsForPlatform(types.PlatformUnknown)
	}
}

func (s *Server) setCORS(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, resp ScrapeResponse) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Errorf("Failed to encode response: %v", err)
	}
}

func (s *Server) sendError(w http.ResponseWriter, message string, status int) {
	s.sendJSON(w, status, ScrapeResponse{Success: false, Error: message})
}

func queryList(r *http.Request, key string) []string {
	values := r.URL.Query()[key]
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func main() {
	server := NewServer()

	mux := http.NewServeMux()
	mux.HandleFunc("/scrape", server.handleScrape)
	mux.HandleFunc("/runs/", server.handleRun)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server.logger.Infof("API server listening on :%s", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", port), mux); err != nil {
		server.logger.Fatalf("Server failed: %v", err)
	}
}
