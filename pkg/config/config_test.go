package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/battery-health/pkg/config"
)

func validConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:     "test-app",
			Mode:     "development",
			LogLevel: "info",
		},
		API: config.APIConfig{
			Port: 8080,
		},
		Source: config.SourceConfig{
			Type: "synthetic",
			Synthetic: config.SyntheticConfig{
				Cycles:     500,
				InitialSOH: 100,
				DecayRate:  0.001,
			},
		},
		Prediction: config.PredictionConfig{
			Scale:            100,
			ThresholdMin:     50,
			ThresholdMax:     90,
			ThresholdDefault: 80,
		},
		Training: config.TrainingConfig{
			Delay:         2 * time.Second,
			MaxConcurrent: 2,
		},
		Upload: config.UploadConfig{
			AllowedExtensions: []string{"csv"},
			MaxSizeBytes:      1024,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modifyFunc  func(*config.Config)
		expectErr   bool
		errContains string
	}{
		{
			name:       "valid config",
			modifyFunc: func(c *config.Config) {},
		},
		{
			name: "default outside bounds",
			modifyFunc: func(c *config.Config) {
				c.Prediction.ThresholdDefault = 95
			},
			expectErr:   true,
			errContains: "threshold_default must be within",
		},
		{
			name: "min above max",
			modifyFunc: func(c *config.Config) {
				c.Prediction.ThresholdMin = 85
				c.Prediction.ThresholdMax = 60
				c.Prediction.ThresholdDefault = 70
			},
			expectErr:   true,
			errContains: "threshold_min must be <= threshold_max",
		},
		{
			name: "http source without endpoint",
			modifyFunc: func(c *config.Config) {
				c.Source.Type = "http"
				c.Source.Timeout = time.Second
			},
			expectErr:   true,
			errContains: "source.endpoint is required",
		},
		{
			name: "unknown source type",
			modifyFunc: func(c *config.Config) {
				c.Source.Type = "kafka"
			},
			expectErr:   true,
			errContains: "source.type must be one of",
		},
		{
			name: "negative training delay",
			modifyFunc: func(c *config.Config) {
				c.Training.Delay = -time.Second
			},
			expectErr:   true,
			errContains: "training.delay must not be negative",
		},
		{
			name: "no upload extensions",
			modifyFunc: func(c *config.Config) {
				c.Upload.AllowedExtensions = nil
			},
			expectErr:   true,
			errContains: "upload.allowed_extensions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modifyFunc(cfg)

			err := cfg.Validate()

			if tt.expectErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "battery-health", cfg.App.Name)
	assert.Equal(t, 2*time.Second, cfg.Training.Delay)
	assert.Equal(t, []string{"csv", "xlsx", "xls"}, cfg.Upload.AllowedExtensions)
	assert.Equal(t, 500, cfg.Source.Synthetic.Cycles)
	assert.InDelta(t, 0.001, cfg.Source.Synthetic.DecayRate, 1e-12)

	bounds := cfg.Prediction.Bounds()
	assert.Equal(t, 50.0, bounds.Min)
	assert.Equal(t, 90.0, bounds.Max)
	assert.Equal(t, 80.0, bounds.Default)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
app:
  mode: test
prediction:
  threshold_default: 70
training:
  delay: 10ms
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("BATTERY_API_PORT", "9191")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.App.Mode)
	assert.Equal(t, 70.0, cfg.Prediction.ThresholdDefault)
	assert.Equal(t, 10*time.Millisecond, cfg.Training.Delay)
	assert.Equal(t, 9191, cfg.API.Port)
}
