package predict

import (
	"fmt"

	"cropcast/internal/models"
)

// SquareFeetPerAcre converts the request's base land unit to acres
const SquareFeetPerAcre = 43560.0

// BuildPrompt assembles the structured-request text submitted to the
// generator. Pure and deterministic: the same inputs always produce the
// same prompt, which carries the land details, climate aggregates, soil
// attributes, and the exact JSON schema the generator must emit.
func BuildPrompt(landArea int, latitude, longitude float64, soilType string, climate models.ClimateSummary, soilInfo models.SoilInfo) string {
	landAreaAcres := float64(landArea) / SquareFeetPerAcre

	return fmt.Sprintf(`Based on the following agricultural data, provide crop recommendations:

**Land Details:**
- Land Area: %d square feet (%.2f acres)
- Location: Latitude %v, Longitude %v

**Climate Data (Last 30 days):**
- Average Temperature: %.2f°C
- Average Soil Moisture: %.4f
- Average Surface Temperature: %.2f°C
- Total Rainfall: %.2f mm

**Soil Information:**
- Type: %s
- Water Retention: %s
- Nutrient Content: %s
- pH Level: %v

Please provide recommendations in the following JSON format:
{
    "crops": [
        {
            "name": "Crop Name",
            "water_required_liters": <total liters needed for %d sq ft>
        }
    ],
    "yield_data": [
        {
            "crop_name": "Crop Name",
            "yield_amount": <exact numeric yield in kg for %d sq ft, not a range>,
            "market_rate_per_unit": <exact market rate in rupees per kg>,
            "cost_of_selling": <yield_amount * market_rate_per_unit>,
            "cost_of_growing": <exact cost in rupees to grow this crop on %d sq ft>,
            "roi": <((cost_of_selling - cost_of_growing) / cost_of_growing) * 100>
        }
    ],
    "crop_timeline": [
        {
            "crop": "Crop Name",
            "season": "Season (Kharif/Rabi/Summer/Year Round)",
            "suitable_months": ["January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"] - only include months suitable for planting
        }
    ],
    "best_sowing_time": "Optimal planting season(s) with specific months"
}

Recommend 3-5 best crops considering climate and soil conditions. For yield_data, provide EXACT numbers (not ranges) for yield in kg, market rates in Indian rupees per kg, costs in rupees, and ROI as a percentage. For crop_timeline, include all 12 months list but only list the suitable months for planting each crop. Be very specific with all values.`,
		landArea, landAreaAcres,
		latitude, longitude,
		climate.AvgTemp, climate.AvgSoilMoisture, climate.AvgSurfaceTemp, climate.TotalRainfall,
		soilInfo.Type, soilInfo.WaterRetention, soilInfo.NutrientContent, soilInfo.PHLevel,
		landArea, landArea, landArea)
}
