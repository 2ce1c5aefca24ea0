package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cropcast/internal/climate"
	"cropcast/internal/config"
	"cropcast/internal/models"
	"cropcast/internal/predict"
	"cropcast/internal/storage"
)

// HandleRoot serves the welcome message
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Crop Prediction API",
	})
}

// HandleHealth provides a health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   config.ServiceName,
		"version":   config.GetVersion(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandlePredict runs the prediction pipeline: climate fetch with fallback,
// soil lookup, prompt assembly, generation, extraction
func (s *Server) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	ctx := r.Context()

	// Climate fetch failure must never abort the prediction
	climateData, err := s.Climate.FetchSummary(ctx, req.Latitude, req.Longitude)
	if err != nil {
		log.Printf("Climate fetch failed, using default summary: %v", err)
		climateData = climate.DefaultSummary()
	}

	soilInfo := s.Soil.Lookup(req.SoilType)

	prompt := predict.BuildPrompt(req.LandArea, req.Latitude, req.Longitude, req.SoilType, climateData, soilInfo)

	generated, err := s.Extractor.Predict(ctx, prompt)
	if err != nil {
		status := http.StatusInternalServerError
		var ue *predict.UpstreamError
		if errors.As(err, &ue) {
			switch ue.Kind {
			case predict.FailureQuota:
				status = http.StatusTooManyRequests
			case predict.FailureAuth:
				status = http.StatusUnauthorized
			}
		}
		log.Printf("Prediction failed (%d): %v", status, err)
		writeError(w, status, err.Error())
		return
	}

	result := models.PredictionResult{
		Crops:          generated.Crops,
		YieldData:      generated.YieldData,
		CropTimeline:   generated.CropTimeline,
		BestSowingTime: generated.BestSowingTime,
		ClimateData:    climateData,
		SoilInfo:       soilInfo,
	}

	s.archiveSnapshot(r, result)

	writeJSON(w, http.StatusOK, result)
}

// HandleAsk answers a question about a previously computed prediction.
// Always 200: every failure mode resolves to answer text.
func (s *Server) HandleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	answer := s.Assistant.Answer(r.Context(), req.Question, req.PredictionData, req.Language)

	writeJSON(w, http.StatusOK, models.ChatAnswer{Answer: answer})
}

// HandleListSnapshots lists recent archived predictions
func (s *Server) HandleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.Snapshots == nil {
		writeError(w, http.StatusNotFound, "Snapshot archiving is disabled")
		return
	}

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 100 {
		limit = 100
	}

	paths, err := s.Snapshots.List(r.Context(), limit)
	if err != nil {
		log.Printf("Failed to list snapshots: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list snapshots")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshots": paths,
		"count":     len(paths),
	})
}

// HandleGetSnapshot serves one archived prediction file
func (s *Server) HandleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.Snapshots == nil {
		writeError(w, http.StatusNotFound, "Snapshot archiving is disabled")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/predictions/")
	if path == "" || strings.Contains(path, "..") {
		writeError(w, http.StatusBadRequest, "Invalid snapshot path")
		return
	}

	data, err := s.Snapshots.Get(r.Context(), "predictions/"+path)
	if err != nil {
		writeError(w, http.StatusNotFound, "Snapshot not found")
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(path))
	w.Write(data)
}

// archiveSnapshot stores the result as an audit artifact. Failures are
// logged, never surfaced: archiving is outside the request contract.
func (s *Server) archiveSnapshot(r *http.Request, result models.PredictionResult) {
	if s.Snapshots == nil {
		return
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Printf("Failed to marshal snapshot: %v", err)
		return
	}

	if err := s.Snapshots.Store(r.Context(), data, "prediction.json", time.Now().UTC()); err != nil {
		log.Printf("Failed to archive snapshot: %v", err)
	}
}
