package source

import (
	"fmt"

	"github.com/OldStager01/battery-health/internal/resilience"
	"github.com/OldStager01/battery-health/pkg/config"
)

// New builds the configured source. Remote sources are wrapped with retries and a circuit breaker.
func New(cfg config.SourceConfig, onStateChange func(name string, from, to resilience.State)) (Source, error) {
	switch cfg.Type {
	case "", "synthetic":
		return NewSyntheticSource(SyntheticConfig{
			Model:      cfg.Synthetic.Model,
			Cycles:     cfg.Synthetic.Cycles,
			InitialSOH: cfg.Synthetic.InitialSOH,
			DecayRate:  cfg.Synthetic.DecayRate,
		}), nil
	case "http":
		return NewResilientSource(ResilientSourceConfig{
			Source: NewHTTPSource(HTTPSourceConfig{
				Endpoint: cfg.Endpoint,
				Timeout:  cfg.Timeout,
			}),
			MaxFailures:   cfg.CircuitBreaker.MaxFailures,
			Timeout:       cfg.CircuitBreaker.Timeout,
			RetryAttempts: cfg.RetryAttempts,
			RetryDelay:    cfg.RetryDelay,
			OnStateChange: onStateChange,
		}), nil
	default:
		return nil, fmt.Errorf("unknown source type %q", cfg.Type)
	}
}
