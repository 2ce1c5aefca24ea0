package predict

import (
	"context"
	"encoding/json"
	"log"

	"cropcast/internal/llm"
	"cropcast/internal/models"
)

// NotSpecified is the sentinel sowing time used when the generator output
// carries no usable recommendation
const NotSpecified = "Not specified"

// TextGenerator is the generation collaborator the extractor invokes
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, cfg llm.GenerationConfig) (string, error)
}

// Generated holds the fields recovered from one generation pass
type Generated struct {
	Crops          []models.CropRecommendation `json:"crops"`
	YieldData      []models.YieldEconomics     `json:"yield_data"`
	CropTimeline   []models.CropTimelineEntry  `json:"crop_timeline"`
	BestSowingTime string                      `json:"best_sowing_time"`
}

// Extractor invokes the generator and recovers a structured prediction
// from its free-form output
type Extractor struct {
	generator TextGenerator
}

// NewExtractor creates a prediction extractor
func NewExtractor(generator TextGenerator) *Extractor {
	return &Extractor{generator: generator}
}

// Predict submits the prompt and extracts the structured recommendation.
// Invocation failures are classified and returned as *UpstreamError.
// Unparsable output is not an error: the generator returning prose instead
// of JSON degrades to an empty-but-valid result.
func (e *Extractor) Predict(ctx context.Context, prompt string) (Generated, error) {
	text, err := e.generator.Generate(ctx, prompt, llm.GenerationConfig{})
	if err != nil {
		return Generated{}, ClassifyUpstreamError(err)
	}

	return parseGenerated(text), nil
}

// parseGenerated recovers prediction fields from raw generated text
func parseGenerated(text string) Generated {
	candidate, ok := ExtractJSONObject(text)
	if !ok {
		log.Printf("No JSON object found in generated output (%d chars)", len(text))
		return emptyGenerated()
	}

	var gen Generated
	if err := json.Unmarshal([]byte(candidate), &gen); err != nil {
		log.Printf("Failed to decode generated JSON: %v", err)
		return emptyGenerated()
	}

	// Missing individual fields must not fail the whole parse
	if gen.Crops == nil {
		gen.Crops = []models.CropRecommendation{}
	}
	if gen.YieldData == nil {
		gen.YieldData = []models.YieldEconomics{}
	}
	if gen.CropTimeline == nil {
		gen.CropTimeline = []models.CropTimelineEntry{}
	}
	if gen.BestSowingTime == "" {
		gen.BestSowingTime = NotSpecified
	}

	return gen
}

func emptyGenerated() Generated {
	return Generated{
		Crops:          []models.CropRecommendation{},
		YieldData:      []models.YieldEconomics{},
		CropTimeline:   []models.CropTimelineEntry{},
		BestSowingTime: NotSpecified,
	}
}
