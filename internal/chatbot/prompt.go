package chatbot

import (
	"fmt"
	"strings"

	"cropcast/internal/models"
)

// buildPrompt assembles the closed-dataset prompt: the language rule, every
// field of the prediction serialized as labeled sections, ten behavioral
// rules, and the verbatim question.
func buildPrompt(question string, data models.PredictionResult, lang string) string {
	var b strings.Builder

	b.WriteString(languageInstructions[lang])
	b.WriteString("\n\nYou are a farming assistant for a crop recommendation dashboard. Answer the farmer's question using ONLY the dataset below.\n")

	b.WriteString("\n**Recommended Crops (with water requirements):**\n")
	if len(data.Crops) == 0 {
		b.WriteString("- none\n")
	}
	for _, crop := range data.Crops {
		fmt.Fprintf(&b, "- %s: %.2f liters of water required\n", crop.Name, crop.WaterRequiredLiters)
	}

	b.WriteString("\n**Yield & Economics (amounts in Indian rupees):**\n")
	if len(data.YieldData) == 0 {
		b.WriteString("- none\n")
	}
	for _, yd := range data.YieldData {
		profit := yd.CostOfSelling - yd.CostOfGrowing
		fmt.Fprintf(&b, "- %s: yield %.2f kg, market rate %.2f/kg, selling value %.2f, growing cost %.2f, profit %.2f, ROI %.2f%%\n",
			yd.CropName, yd.YieldAmount, yd.MarketRatePerUnit, yd.CostOfSelling, yd.CostOfGrowing, profit, yd.ROI)
	}

	b.WriteString("\n**Crop Timeline:**\n")
	if len(data.CropTimeline) == 0 {
		b.WriteString("- none\n")
	}
	for _, entry := range data.CropTimeline {
		fmt.Fprintf(&b, "- %s: %s season, suitable months: %s\n",
			entry.Crop, entry.Season, strings.Join(entry.SuitableMonths, ", "))
	}

	fmt.Fprintf(&b, "\n**Best Sowing Time:** %s\n", data.BestSowingTime)

	fmt.Fprintf(&b, "\n**Climate Summary (last 30 days):** average temperature %.2f°C, average soil moisture %.4f, average surface temperature %.2f°C, total rainfall %.2f mm\n",
		data.ClimateData.AvgTemp, data.ClimateData.AvgSoilMoisture, data.ClimateData.AvgSurfaceTemp, data.ClimateData.TotalRainfall)

	fmt.Fprintf(&b, "\n**Soil Summary:** type %s, water retention %s, nutrient content %s, pH level %v\n",
		data.SoilInfo.Type, data.SoilInfo.WaterRetention, data.SoilInfo.NutrientContent, data.SoilInfo.PHLevel)

	fmt.Fprintf(&b, `
**Rules you must follow:**
1. Respond ONLY in %s. Never mix languages in one answer.
2. Answer ONLY from the dataset above. It is your entire knowledge base.
3. You may derive simple figures from the provided numbers (profit, net income, totals, differences) but nothing else.
4. You may discuss: the recommended crops, their water requirements, yields, market rates, costs, profit, ROI, sowing times, planting months, the climate summary, and the soil summary.
5. If a question is outside those topics or cannot be answered from the dataset, politely decline and say the information is not in the current analysis.
6. Never invent numbers, crops, or facts that are not in the dataset.
7. Do not give general agricultural advice beyond what the dataset supports.
8. Keep answers short and direct.
9. If asked about a crop that is not in the dataset, say it was not part of this recommendation and list the crops that were.
10. If asked about general farming practices (fertilizers, pesticides, equipment, techniques), reply that you can only discuss this analysis's recommendations and data.

**Farmer's question:** %s`, languageNames[lang], question)

	return b.String()
}
