package simulator

import (
	"math"
	"math/rand"

	"github.com/OldStager01/battery-health/pkg/models"
)

// DecayModel produces a synthetic state-of-health value for a cycle.
type DecayModel interface {
	SOH(cycle int) float64
	Name() string
}

const (
	DefaultInitialSOH = 100.0
	DefaultDecayRate  = 0.001
	DefaultCycles     = 500
)

var (
	ModelExponential DecayModel = &ExponentialDecay{Initial: DefaultInitialSOH, Rate: DefaultDecayRate}
	ModelLinear      DecayModel = &LinearDecay{Initial: DefaultInitialSOH, Slope: 0.05}
	ModelKnee        DecayModel = &KneeDecay{Initial: DefaultInitialSOH, Slope: 0.02, KneeCycle: 300, Rate: 0.004}
)

func ParseModel(name string) DecayModel {
	switch name {
	case "linear":
		return ModelLinear
	case "knee":
		return ModelKnee
	case "noisy":
		return &NoisyDecay{Base: ModelExponential, Amplitude: 0.3, Seed: 1}
	default:
		return ModelExponential
	}
}

// ExponentialDecay - Initial * exp(-Rate * cycle), the reference capacity fade curve
type ExponentialDecay struct {
	Initial float64
	Rate    float64
}

func (m *ExponentialDecay) SOH(cycle int) float64 {
	return m.Initial * math.Exp(-m.Rate*float64(cycle))
}

func (m *ExponentialDecay) Name() string {
	return "exponential"
}

// LinearDecay - constant fade per cycle, floored at zero
type LinearDecay struct {
	Initial float64
	Slope   float64
}

func (m *LinearDecay) SOH(cycle int) float64 {
	return math.Max(0, m.Initial-m.Slope*float64(cycle))
}

func (m *LinearDecay) Name() string {
	return "linear"
}

// KneeDecay - slow linear fade until KneeCycle, then accelerated exponential fade
type KneeDecay struct {
	Initial   float64
	Slope     float64
	KneeCycle int
	Rate      float64
}

func (m *KneeDecay) SOH(cycle int) float64 {
	if cycle <= m.KneeCycle {
		return m.Initial - m.Slope*float64(cycle)
	}
	atKnee := m.Initial - m.Slope*float64(m.KneeCycle)
	return atKnee * math.Exp(-m.Rate*float64(cycle-m.KneeCycle))
}

func (m *KneeDecay) Name() string {
	return "knee"
}

// NoisyDecay adds bounded deterministic jitter to a base model, like a sensor log.
type NoisyDecay struct {
	Base      DecayModel
	Amplitude float64
	Seed      int64
}

func (m *NoisyDecay) SOH(cycle int) float64 {
	rng := rand.New(rand.NewSource(m.Seed + int64(cycle)))
	return m.Base.SOH(cycle) + (rng.Float64()*2-1)*m.Amplitude
}

func (m *NoisyDecay) Name() string {
	return "noisy"
}

// Generate evaluates model over cycles 0..cycles-1.
func Generate(model DecayModel, cycles int) models.Trajectory {
	if cycles <= 0 {
		cycles = DefaultCycles
	}
	trajectory := make(models.Trajectory, cycles)
	for i := range trajectory {
		trajectory[i] = models.CyclePoint{Cycle: i, SOH: model.SOH(i)}
	}
	return trajectory
}
