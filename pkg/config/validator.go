package config

import (
	"errors"
	"fmt"
)

func (c *Config) Validate() error {
	var errs []error

	// App validation
	if c.App.Name == "" {
		errs = append(errs, errors.New("app.name is required"))
	}

	validModes := map[string]bool{"development": true, "production": true, "test": true}
	if !validModes[c.App.Mode] {
		errs = append(errs, fmt.Errorf("app.mode must be one of: development, production, test"))
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.App.LogLevel] {
		errs = append(errs, fmt.Errorf("app.log_level must be one of: debug, info, warn, error"))
	}

	// API validation
	if c.API.Port <= 0 || c.API.Port > 65535 {
		errs = append(errs, errors.New("api.port must be between 1 and 65535"))
	}
	if c.API.RateLimit < 0 {
		errs = append(errs, errors.New("api.rate_limit must not be negative"))
	}

	// Source validation
	switch c.Source.Type {
	case "synthetic":
		if c.Source.Synthetic.Cycles <= 0 {
			errs = append(errs, errors.New("source.synthetic.cycles must be positive"))
		}
		if c.Source.Synthetic.DecayRate <= 0 {
			errs = append(errs, errors.New("source.synthetic.decay_rate must be positive"))
		}
		if c.Source.Synthetic.InitialSOH <= 0 {
			errs = append(errs, errors.New("source.synthetic.initial_soh must be positive"))
		}
	case "http":
		if c.Source.Endpoint == "" {
			errs = append(errs, errors.New("source.endpoint is required for http source"))
		}
		if c.Source.Timeout <= 0 {
			errs = append(errs, errors.New("source.timeout must be positive"))
		}
	default:
		errs = append(errs, errors.New("source.type must be one of: synthetic, http"))
	}

	// Prediction validation
	p := c.Prediction
	if p.Scale <= 0 {
		errs = append(errs, errors.New("prediction.scale must be positive"))
	}
	if p.ThresholdMin <= 0 || p.ThresholdMax >= 100 {
		errs = append(errs, errors.New("prediction thresholds must be between 0 and 100"))
	}
	if p.ThresholdMin > p.ThresholdMax {
		errs = append(errs, errors.New("prediction.threshold_min must be <= threshold_max"))
	}
	if p.ThresholdDefault < p.ThresholdMin || p.ThresholdDefault > p.ThresholdMax {
		errs = append(errs, errors.New("prediction.threshold_default must be within [threshold_min, threshold_max]"))
	}

	// Training validation
	if c.Training.Delay < 0 {
		errs = append(errs, errors.New("training.delay must not be negative"))
	}
	if c.Training.MaxConcurrent <= 0 {
		errs = append(errs, errors.New("training.max_concurrent must be positive"))
	}

	// Upload validation
	if len(c.Upload.AllowedExtensions) == 0 {
		errs = append(errs, errors.New("upload.allowed_extensions must not be empty"))
	}
	if c.Upload.MaxSizeBytes <= 0 {
		errs = append(errs, errors.New("upload.max_size_bytes must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
