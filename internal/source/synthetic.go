package source

import (
	"context"

	"github.com/OldStager01/battery-health/internal/simulator"
	"github.com/OldStager01/battery-health/pkg/models"
)

type SyntheticConfig struct {
	Model      string
	Cycles     int
	InitialSOH float64
	DecayRate  float64
}

// SyntheticSource evaluates a closed-form decay curve in process. Every cell gets the same curve.
type SyntheticSource struct {
	model  simulator.DecayModel
	cycles int
}

func NewSyntheticSource(cfg SyntheticConfig) *SyntheticSource {
	model := simulator.ParseModel(cfg.Model)
	if exp, ok := model.(*simulator.ExponentialDecay); ok && (cfg.InitialSOH > 0 || cfg.DecayRate > 0) {
		custom := *exp
		if cfg.InitialSOH > 0 {
			custom.Initial = cfg.InitialSOH
		}
		if cfg.DecayRate > 0 {
			custom.Rate = cfg.DecayRate
		}
		model = &custom
	}

	cycles := cfg.Cycles
	if cycles <= 0 {
		cycles = simulator.DefaultCycles
	}

	return &SyntheticSource{model: model, cycles: cycles}
}

func (s *SyntheticSource) Trajectory(ctx context.Context, cellID string) (models.Trajectory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return simulator.Generate(s.model, s.cycles), nil
}

func (s *SyntheticSource) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *SyntheticSource) Close() error {
	return nil
}

func (s *SyntheticSource) ModelName() string {
	return s.model.Name()
}
