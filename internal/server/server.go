package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"cropcast/internal/chatbot"
	"cropcast/internal/climate"
	"cropcast/internal/config"
	"cropcast/internal/llm"
	"cropcast/internal/predict"
	"cropcast/internal/soil"
	"cropcast/internal/storage"

	"github.com/go-playground/validator/v10"
)

// Server wires the prediction pipeline and chat assistant behind HTTP
type Server struct {
	Config    *config.Config
	Climate   *climate.Fetcher
	Soil      *soil.Store
	Extractor *predict.Extractor
	Assistant *chatbot.Assistant
	Snapshots storage.SnapshotStore
	validate  *validator.Validate
}

// NewServer creates a server instance from configuration
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	generator := llm.NewClient(cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMBaseURL)

	snapshots, err := storage.NewSnapshotStore(ctx, cfg.SnapshotMode, cfg.LocalSnapshotsDir, cfg.GCSBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize snapshot store: %w", err)
	}
	if snapshots == nil {
		log.Printf("Snapshot archiving disabled")
	} else {
		log.Printf("Snapshot archiving enabled (mode: %s)", cfg.SnapshotMode)
	}

	return &Server{
		Config:    cfg,
		Climate:   climate.NewFetcher(cfg.ClimateAPIURL, cfg.ClimateTimeout),
		Soil:      soil.NewStore(cfg.SoilDataFile),
		Extractor: predict.NewExtractor(generator),
		Assistant: chatbot.NewAssistant(generator),
		Snapshots: snapshots,
		validate:  validator.New(),
	}, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/predict", s.HandlePredict)
	mux.HandleFunc("/ask", s.HandleAsk)
	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/predictions", s.HandleListSnapshots)
	mux.HandleFunc("/predictions/", s.HandleGetSnapshot)
	mux.HandleFunc("/", s.HandleRoot)

	return withCORS(mux)
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Snapshots != nil {
		return s.Snapshots.Close()
	}
	return nil
}

// withCORS allows the browser frontend to call the API from any origin
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
