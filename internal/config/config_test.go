package config

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
		validate    func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid config with required fields",
			envVars: map[string]string{
				"LLM_API_KEY": "test-key",
			},
			expectError: false,
			validate: func(t *testing.T, cfg *Config) {
				if cfg.LLMAPIKey != "test-key" {
					t.Errorf("Expected LLMAPIKey to be 'test-key', got '%s'", cfg.LLMAPIKey)
				}
				if cfg.Port != "8000" {
					t.Errorf("Expected default Port to be '8000', got '%s'", cfg.Port)
				}
				if cfg.LLMModel != "gpt-4o-mini" {
					t.Errorf("Expected default LLMModel to be 'gpt-4o-mini', got '%s'", cfg.LLMModel)
				}
				if cfg.ClimateAPIURL != "https://power.larc.nasa.gov/api/temporal/daily/point" {
					t.Errorf("Unexpected default ClimateAPIURL: '%s'", cfg.ClimateAPIURL)
				}
				if cfg.ClimateTimeout != 15*time.Second {
					t.Errorf("Expected default ClimateTimeout of 15s, got %v", cfg.ClimateTimeout)
				}
				if cfg.SnapshotMode != "local" {
					t.Errorf("Expected default SnapshotMode to be 'local', got '%s'", cfg.SnapshotMode)
				}
				if cfg.Environment != "development" {
					t.Errorf("Expected default Environment to be 'development', got '%s'", cfg.Environment)
				}
			},
		},
		{
			name:        "missing required LLM API key",
			envVars:     map[string]string{},
			expectError: true,
		},
		{
			name: "custom values override defaults",
			envVars: map[string]string{
				"LLM_API_KEY":     "key",
				"PORT":            "9090",
				"SNAPSHOT_MODE":   "off",
				"CLIMATE_TIMEOUT": "5s",
			},
			expectError: false,
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Port != "9090" {
					t.Errorf("Expected Port '9090', got '%s'", cfg.Port)
				}
				if cfg.SnapshotMode != "off" {
					t.Errorf("Expected SnapshotMode 'off', got '%s'", cfg.SnapshotMode)
				}
				if cfg.ClimateTimeout != 5*time.Second {
					t.Errorf("Expected ClimateTimeout 5s, got %v", cfg.ClimateTimeout)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}
			defer os.Clearenv()

			cfg, err := Load(context.Background())

			if tt.expectError {
				if err == nil {
					t.Error("Expected an error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestGetVersion(t *testing.T) {
	os.Setenv("APP_VERSION", "1.2.3")
	defer os.Unsetenv("APP_VERSION")

	if v := GetVersion(); v != "1.2.3" {
		t.Errorf("Expected version '1.2.3', got '%s'", v)
	}
}
