package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the crop recommendation service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8000"`

	// LLM configuration
	LLMAPIKey  string `env:"LLM_API_KEY,required"`
	LLMModel   string `env:"LLM_MODEL,default=gpt-4o-mini"`
	LLMBaseURL string `env:"LLM_BASE_URL"` // optional OpenAI-compatible endpoint

	// Climate data source
	ClimateAPIURL  string        `env:"CLIMATE_API_URL,default=https://power.larc.nasa.gov/api/temporal/daily/point"`
	ClimateTimeout time.Duration `env:"CLIMATE_TIMEOUT,default=15s"`

	// Soil reference data
	SoilDataFile string `env:"SOIL_DATA_FILE,default=soil_data.json"`

	// Prediction snapshot archive (local, gcs, or off)
	SnapshotMode      string `env:"SNAPSHOT_MODE,default=local"`
	LocalSnapshotsDir string `env:"LOCAL_SNAPSHOTS_DIR,default=./predictions"`
	GCPProjectID      string `env:"GCP_PROJECT_ID"`
	GCSBucket         string `env:"GCS_BUCKET"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
