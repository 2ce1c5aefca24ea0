package models

// ClimateSummary represents aggregated climate observations for the last 30 days
type ClimateSummary struct {
	AvgTemp         float64 `json:"avg_temp"`          // °C, mean of daily T2M
	AvgSoilMoisture float64 `json:"avg_soil_moisture"` // 0-1 fraction, mean of daily GWETTOP
	AvgSurfaceTemp  float64 `json:"avg_surface_temp"`  // °C, mean of daily TS
	TotalRainfall   float64 `json:"total_rainfall"`    // mm, sum of daily PRECTOTCORR
}

// SoilInfo contains reference attributes for a soil type
type SoilInfo struct {
	Type            string  `json:"type"`
	WaterRetention  string  `json:"water_retention"`  // Low/Moderate/High or "Unknown"
	NutrientContent string  `json:"nutrient_content"` // Low/Moderate/High or "Unknown"
	PHLevel         float64 `json:"pH_level"`         // 0 when unknown
}

// CropRecommendation is a single crop suggested by the generator
type CropRecommendation struct {
	Name                string  `json:"name"`
	WaterRequiredLiters float64 `json:"water_required_liters"` // total for the requested plot
}

// YieldEconomics holds generator-estimated yield and cost figures for one crop.
// The selling/ROI relations are requested of the generator, not recomputed here.
type YieldEconomics struct {
	CropName          string  `json:"crop_name"`
	YieldAmount       float64 `json:"yield_amount"`         // kg
	MarketRatePerUnit float64 `json:"market_rate_per_unit"` // rupees per kg
	CostOfSelling     float64 `json:"cost_of_selling"`      // rupees
	CostOfGrowing     float64 `json:"cost_of_growing"`      // rupees
	ROI               float64 `json:"roi"`                  // percent
}

// CropTimelineEntry maps a crop to its planting season and suitable months
type CropTimelineEntry struct {
	Crop           string   `json:"crop"`
	Season         string   `json:"season"`          // Kharif/Rabi/Summer/Year Round
	SuitableMonths []string `json:"suitable_months"` // full month names
}

// PredictionResult is the complete response for one predict request
type PredictionResult struct {
	Crops          []CropRecommendation `json:"crops"`
	YieldData      []YieldEconomics     `json:"yield_data"`
	CropTimeline   []CropTimelineEntry  `json:"crop_timeline"`
	BestSowingTime string               `json:"best_sowing_time"`
	ClimateData    ClimateSummary       `json:"climate_data"`
	SoilInfo       SoilInfo             `json:"soil_info"`
}

// ChatAnswer is the response for one ask request
type ChatAnswer struct {
	Answer string `json:"answer"`
}

// PredictionRequest is the inbound payload for /predict
type PredictionRequest struct {
	LandArea  int     `json:"land_area" validate:"required,gt=0"` // square feet
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	SoilType  string  `json:"soil_type" validate:"required"`
}

// AskRequest is the inbound payload for /ask
type AskRequest struct {
	Question       string           `json:"question" validate:"required"`
	PredictionData PredictionResult `json:"prediction_data"`
	Language       string           `json:"language"` // en/hi/kn, defaults to en
}
