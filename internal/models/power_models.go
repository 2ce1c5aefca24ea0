package models

// PowerResponse represents the NASA POWER daily point API response.
// Each parameter maps YYYYMMDD date strings to observed values, with
// -999 marking days the source has no observation for.
type PowerResponse struct {
	Properties PowerProperties `json:"properties"`
}

// PowerProperties wraps the parameter block of a POWER response
type PowerProperties struct {
	Parameter map[string]map[string]float64 `json:"parameter"`
}

// MissingValue is the sentinel NASA POWER uses for absent observations
const MissingValue = -999.0
