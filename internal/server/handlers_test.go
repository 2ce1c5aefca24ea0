package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cropcast/internal/chatbot"
	"cropcast/internal/climate"
	"cropcast/internal/config"
	"cropcast/internal/llm"
	"cropcast/internal/models"
	"cropcast/internal/predict"
	"cropcast/internal/soil"
	"cropcast/internal/storage"

	"github.com/go-playground/validator/v10"
)

// stubGenerator serves both the extractor and the assistant in tests
type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string, cfg llm.GenerationConfig) (string, error) {
	s.lastPrompt = prompt
	return s.response, s.err
}

const generatorResponse = `{
	"crops": [{"name": "Rice", "water_required_liters": 45000}],
	"yield_data": [{"crop_name": "Rice", "yield_amount": 250, "market_rate_per_unit": 30, "cost_of_selling": 7500, "cost_of_growing": 5000, "roi": 50}],
	"crop_timeline": [{"crop": "Rice", "season": "Kharif", "suitable_months": ["June", "July"]}],
	"best_sowing_time": "June to July"
}`

// fixedClimateServer serves a constant 30-day series:
// T2M=20, GWETTOP=0.4, TS=21, PRECTOTCORR=2
func fixedClimateServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var b strings.Builder
		b.WriteString(`{"properties":{"parameter":{`)
		params := []struct {
			code  string
			value string
		}{
			{"T2M", "20"},
			{"GWETTOP", "0.4"},
			{"TS", "21"},
			{"PRECTOTCORR", "2"},
		}
		day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		for i, p := range params {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(`"` + p.code + `":{`)
			for d := 0; d < 30; d++ {
				if d > 0 {
					b.WriteString(",")
				}
				b.WriteString(`"` + day.AddDate(0, 0, d).Format(climate.DateFormat) + `":` + p.value)
			}
			b.WriteString("}")
		}
		b.WriteString("}}}")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(b.String()))
	}))
}

func newTestServer(climateURL string, gen *stubGenerator) *Server {
	return &Server{
		Config:    &config.Config{Port: "8000"},
		Climate:   climate.NewFetcher(climateURL, 5*time.Second),
		Soil:      soil.NewStore(""),
		Extractor: predict.NewExtractor(gen),
		Assistant: chatbot.NewAssistant(gen),
		validate:  validator.New(),
	}
}

func postJSON(t *testing.T, handler http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandlePredictEndToEnd(t *testing.T) {
	climateServer := fixedClimateServer(t)
	defer climateServer.Close()

	gen := &stubGenerator{response: generatorResponse}
	srv := newTestServer(climateServer.URL, gen)

	rec := postJSON(t, srv.SetupRoutes(), "/predict", models.PredictionRequest{
		LandArea:  1000,
		Latitude:  13.1172,
		Longitude: 77.6346,
		SoilType:  "Loamy",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result models.PredictionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	// Aggregated climate summary from the fixed series
	expected := models.ClimateSummary{AvgTemp: 20.00, AvgSoilMoisture: 0.4000, AvgSurfaceTemp: 21.00, TotalRainfall: 60.00}
	if result.ClimateData != expected {
		t.Errorf("Expected climate summary %+v, got %+v", expected, result.ClimateData)
	}

	// The summary appears verbatim in the built prompt
	for _, want := range []string{
		"Average Temperature: 20.00°C",
		"Average Soil Moisture: 0.4000",
		"Average Surface Temperature: 21.00°C",
		"Total Rainfall: 60.00 mm",
	} {
		if !strings.Contains(gen.lastPrompt, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}

	if len(result.Crops) != 1 || result.Crops[0].Name != "Rice" {
		t.Errorf("Unexpected crops: %+v", result.Crops)
	}
	if result.SoilInfo.Type != "Loamy" || result.SoilInfo.WaterRetention == soil.UnknownLabel {
		t.Errorf("Unexpected soil info: %+v", result.SoilInfo)
	}
	if result.BestSowingTime != "June to July" {
		t.Errorf("Unexpected sowing time: %q", result.BestSowingTime)
	}
}

func TestHandlePredictClimateFallback(t *testing.T) {
	// Climate API down: prediction proceeds with the default summary
	climateServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer climateServer.Close()

	gen := &stubGenerator{response: generatorResponse}
	srv := newTestServer(climateServer.URL, gen)

	rec := postJSON(t, srv.SetupRoutes(), "/predict", models.PredictionRequest{
		LandArea: 1000, Latitude: 13.1, Longitude: 77.6, SoilType: "Sandy",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 despite climate failure, got %d", rec.Code)
	}

	var result models.PredictionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result.ClimateData != climate.DefaultSummary() {
		t.Errorf("Expected default climate summary, got %+v", result.ClimateData)
	}
}

func TestHandlePredictFailureStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected int
	}{
		{"quota maps to 429", "rate limit reached for requests", http.StatusTooManyRequests},
		{"auth maps to 401", "error, status code: 403", http.StatusUnauthorized},
		{"generic maps to 500", "connection refused", http.StatusInternalServerError},
	}

	climateServer := fixedClimateServer(t)
	defer climateServer.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{err: errors.New(tt.message)}
			srv := newTestServer(climateServer.URL, gen)

			rec := postJSON(t, srv.SetupRoutes(), "/predict", models.PredictionRequest{
				LandArea: 1000, Latitude: 13.1, Longitude: 77.6, SoilType: "Loamy",
			})

			if rec.Code != tt.expected {
				t.Errorf("Expected status %d, got %d", tt.expected, rec.Code)
			}
		})
	}
}

func TestHandlePredictValidation(t *testing.T) {
	gen := &stubGenerator{response: generatorResponse}
	srv := newTestServer("http://127.0.0.1:0", gen)
	handler := srv.SetupRoutes()

	tests := []struct {
		name string
		body models.PredictionRequest
	}{
		{"zero land area", models.PredictionRequest{LandArea: 0, SoilType: "Loamy"}},
		{"negative land area", models.PredictionRequest{LandArea: -5, SoilType: "Loamy"}},
		{"missing soil type", models.PredictionRequest{LandArea: 1000}},
		{"latitude out of range", models.PredictionRequest{LandArea: 1000, Latitude: 95, SoilType: "Loamy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, handler, "/predict", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleAskAlwaysSucceeds(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream exploded")}
	srv := newTestServer("http://127.0.0.1:0", gen)

	rec := postJSON(t, srv.SetupRoutes(), "/ask", models.AskRequest{
		Question: "Which crop earns the most?",
		Language: "hi",
	})

	// Invocation failure is still a 200 with a localized textual answer
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 on invocation failure, got %d", rec.Code)
	}

	var answer models.ChatAnswer
	if err := json.Unmarshal(rec.Body.Bytes(), &answer); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if strings.TrimSpace(answer.Answer) == "" {
		t.Error("Expected non-empty localized answer")
	}
}

func TestHandleAsk(t *testing.T) {
	gen := &stubGenerator{response: "Rice has the highest ROI at 50%."}
	srv := newTestServer("http://127.0.0.1:0", gen)

	rec := postJSON(t, srv.SetupRoutes(), "/ask", models.AskRequest{
		Question: "Which crop has the best ROI?",
		PredictionData: models.PredictionResult{
			Crops:          []models.CropRecommendation{{Name: "Rice", WaterRequiredLiters: 45000}},
			BestSowingTime: "June",
		},
		Language: "en",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var answer models.ChatAnswer
	if err := json.Unmarshal(rec.Body.Bytes(), &answer); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if answer.Answer != "Rice has the highest ROI at 50%." {
		t.Errorf("Unexpected answer: %q", answer.Answer)
	}
	if !strings.Contains(gen.lastPrompt, "Which crop has the best ROI?") {
		t.Error("Prompt missing the verbatim question")
	}
}

func TestHandleAskMissingQuestion(t *testing.T) {
	gen := &stubGenerator{response: "answer"}
	srv := newTestServer("http://127.0.0.1:0", gen)

	rec := postJSON(t, srv.SetupRoutes(), "/ask", models.AskRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing question, got %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	gen := &stubGenerator{response: generatorResponse}
	srv := newTestServer("http://127.0.0.1:0", gen)
	handler := srv.SetupRoutes()

	for _, path := range []string{"/predict", "/ask"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405 for GET %s, got %d", path, rec.Code)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	gen := &stubGenerator{}
	srv := newTestServer("http://127.0.0.1:0", gen)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.SetupRoutes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("Unexpected health body: %s", rec.Body.String())
	}
}

func TestHandleRoot(t *testing.T) {
	gen := &stubGenerator{}
	srv := newTestServer("http://127.0.0.1:0", gen)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.SetupRoutes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Crop Prediction API") {
		t.Errorf("Unexpected root body: %s", rec.Body.String())
	}
}

func TestSnapshotArchiveAndRetrieve(t *testing.T) {
	climateServer := fixedClimateServer(t)
	defer climateServer.Close()

	store, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	gen := &stubGenerator{response: generatorResponse}
	srv := newTestServer(climateServer.URL, gen)
	srv.Snapshots = store
	handler := srv.SetupRoutes()

	rec := postJSON(t, handler, "/predict", models.PredictionRequest{
		LandArea: 1000, Latitude: 13.1, Longitude: 77.6, SoilType: "Loamy",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Predict failed: %d", rec.Code)
	}

	// The prediction was archived and is listable
	req := httptest.NewRequest(http.MethodGet, "/predictions?limit=5", nil)
	listRec := httptest.NewRecorder()
	handler.ServeHTTP(listRec, req)
	if listRec.Code != http.StatusOK {
		t.Fatalf("List failed: %d", listRec.Code)
	}

	var listing struct {
		Snapshots []string `json:"snapshots"`
		Count     int      `json:"count"`
	}
	if err := json.Unmarshal(listRec.Body.Bytes(), &listing); err != nil {
		t.Fatalf("Failed to decode listing: %v", err)
	}
	if listing.Count != 1 {
		t.Fatalf("Expected 1 snapshot, got %d", listing.Count)
	}

	// And retrievable by its listed path
	getReq := httptest.NewRequest(http.MethodGet, "/"+listing.Snapshots[0], nil)
	getRec := httptest.NewRecorder()
	handler.ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Fatalf("Get snapshot failed: %d", getRec.Code)
	}
	if getRec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected JSON content type, got %s", getRec.Header().Get("Content-Type"))
	}

	var archived models.PredictionResult
	if err := json.Unmarshal(getRec.Body.Bytes(), &archived); err != nil {
		t.Fatalf("Failed to decode archived prediction: %v", err)
	}
	if len(archived.Crops) != 1 || archived.Crops[0].Name != "Rice" {
		t.Errorf("Archived prediction does not match: %+v", archived.Crops)
	}
}

func TestSnapshotsDisabled(t *testing.T) {
	gen := &stubGenerator{}
	srv := newTestServer("http://127.0.0.1:0", gen)
	// Snapshots nil: archiving disabled

	req := httptest.NewRequest(http.MethodGet, "/predictions", nil)
	rec := httptest.NewRecorder()
	srv.SetupRoutes().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 when archiving is disabled, got %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	gen := &stubGenerator{}
	srv := newTestServer("http://127.0.0.1:0", gen)

	req := httptest.NewRequest(http.MethodOptions, "/predict", nil)
	rec := httptest.NewRecorder()
	srv.SetupRoutes().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected permissive CORS header")
	}
}
