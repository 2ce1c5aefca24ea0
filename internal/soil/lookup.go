package soil

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"cropcast/internal/models"
)

// UnknownLabel marks soil attributes the reference set has no data for
const UnknownLabel = "Unknown"

// referenceFile mirrors the layout of the soil reference JSON file
type referenceFile struct {
	SoilData []models.SoilInfo `json:"soil_data"`
}

// Store holds the static soil reference set, keyed by lowercased type
type Store struct {
	records map[string]models.SoilInfo
}

// NewStore loads the soil reference set from the given file. A missing or
// unreadable file falls back to the built-in reference records, never an
// error.
func NewStore(path string) *Store {
	records := defaultRecords()

	if path != "" {
		if loaded, err := loadFile(path); err == nil {
			records = loaded
		} else {
			log.Printf("Soil reference file %s not usable, using built-in records: %v", path, err)
		}
	}

	index := make(map[string]models.SoilInfo, len(records))
	for _, rec := range records {
		index[strings.ToLower(rec.Type)] = rec
	}

	return &Store{records: index}
}

// Lookup returns the reference record for a soil type, matched
// case-insensitively. An unrecognized type returns a record carrying the
// caller's label verbatim with Unknown attributes. Lookup never fails.
func (s *Store) Lookup(soilType string) models.SoilInfo {
	if rec, ok := s.records[strings.ToLower(soilType)]; ok {
		return rec
	}

	return models.SoilInfo{
		Type:            soilType,
		WaterRetention:  UnknownLabel,
		NutrientContent: UnknownLabel,
		PHLevel:         0,
	}
}

func loadFile(path string) ([]models.SoilInfo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file referenceFile
	if err := json.Unmarshal(content, &file); err != nil {
		return nil, err
	}

	return file.SoilData, nil
}

// defaultRecords provides built-in properties for the common soil types.
func defaultRecords() []models.SoilInfo {
	return []models.SoilInfo{
		{Type: "Sandy", WaterRetention: "Low", NutrientContent: "Low", PHLevel: 6.5},
		{Type: "Loamy", WaterRetention: "High", NutrientContent: "High", PHLevel: 6.8},
		{Type: "Clayey", WaterRetention: "High", NutrientContent: "Moderate", PHLevel: 7.2},
		{Type: "Silty", WaterRetention: "Moderate", NutrientContent: "High", PHLevel: 6.6},
	}
}
