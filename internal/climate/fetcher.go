package climate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"cropcast/internal/models"

	"github.com/go-resty/resty/v2"
)

// Query constants for the NASA POWER daily point endpoint
const (
	// WindowDays is the size of the observation window ending at request time
	WindowDays = 30
	// Parameters requested from POWER: air temp, rainfall, topsoil wetness, surface temp
	Parameters = "T2M,PRECTOTCORR,GWETTOP,TS"
	// Community selects the agroclimatology data products
	Community = "AG"
	// DateFormat is the YYYYMMDD layout POWER expects
	DateFormat = "20060102"
)

// ErrNoValidData indicates the primary temperature series held no usable
// samples for the requested window (the source lags a few days behind
// real time, so a short window can be entirely -999).
var ErrNoValidData = errors.New("no valid climate data found for the requested period")

// Fetcher retrieves and aggregates 30-day climate observations
type Fetcher struct {
	client  *resty.Client
	baseURL string
}

// NewFetcher creates a climate fetcher against the given POWER base URL.
// The timeout bounds the whole outbound call; the fetch is single-attempt
// because a slow or flaky source is substituted, never waited on.
func NewFetcher(baseURL string, timeout time.Duration) *Fetcher {
	client := resty.New()
	client.SetTimeout(timeout)

	return &Fetcher{
		client:  client,
		baseURL: baseURL,
	}
}

// FetchSummary fetches the last 30 days of observations for the location
// and aggregates them into a ClimateSummary. Any transport failure,
// non-200 status, or empty primary series returns an error; callers are
// expected to substitute DefaultSummary.
func (f *Fetcher) FetchSummary(ctx context.Context, lat, lon float64) (models.ClimateSummary, error) {
	now := time.Now()
	start := now.AddDate(0, 0, -WindowDays)

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"request":    "execute",
			"parameters": Parameters,
			"community":  Community,
			"longitude":  fmt.Sprintf("%f", lon),
			"latitude":   fmt.Sprintf("%f", lat),
			"start":      start.Format(DateFormat),
			"end":        now.Format(DateFormat),
			"format":     "JSON",
		}).
		Get(f.baseURL)

	if err != nil {
		return models.ClimateSummary{}, fmt.Errorf("failed to fetch climate data: %w", err)
	}

	if resp.StatusCode() != 200 {
		return models.ClimateSummary{}, fmt.Errorf("climate API returned status %d", resp.StatusCode())
	}

	var data models.PowerResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return models.ClimateSummary{}, fmt.Errorf("failed to parse climate response: %w", err)
	}

	return Summarize(data.Properties.Parameter)
}

// Summarize aggregates raw POWER parameter series into a ClimateSummary.
// Sentinel (-999) samples are dropped per parameter before aggregation.
// An empty T2M series fails the whole summary even when other parameters
// still hold data.
func Summarize(parameters map[string]map[string]float64) (models.ClimateSummary, error) {
	t2m := cleanValues(parameters["T2M"])
	gwet := cleanValues(parameters["GWETTOP"])
	ts := cleanValues(parameters["TS"])
	precip := cleanValues(parameters["PRECTOTCORR"])

	if len(t2m) == 0 {
		return models.ClimateSummary{}, ErrNoValidData
	}

	return models.ClimateSummary{
		AvgTemp:         round(mean(t2m), 2),
		AvgSoilMoisture: round(mean(gwet), 4),
		AvgSurfaceTemp:  round(mean(ts), 2),
		TotalRainfall:   round(sum(precip), 2),
	}, nil
}

// DefaultSummary returns the hardcoded fallback used when the climate
// fetch fails. Fetch failure must never abort a prediction.
func DefaultSummary() models.ClimateSummary {
	return models.ClimateSummary{
		AvgTemp:         25.0,
		AvgSoilMoisture: 0.5,
		AvgSurfaceTemp:  26.0,
		TotalRainfall:   100.0,
	}
}

// cleanValues drops sentinel samples from one parameter series
func cleanValues(series map[string]float64) []float64 {
	var values []float64
	for _, v := range series {
		if v != models.MissingValue {
			values = append(values, v)
		}
	}
	return values
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func round(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
