package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/OldStager01/battery-health/internal/analyzer"
	"github.com/OldStager01/battery-health/internal/chart"
	"github.com/OldStager01/battery-health/internal/content"
	"github.com/OldStager01/battery-health/internal/events"
	"github.com/OldStager01/battery-health/internal/logger"
	"github.com/OldStager01/battery-health/internal/metrics"
	"github.com/OldStager01/battery-health/internal/source"
	"github.com/OldStager01/battery-health/internal/trainer"
	"github.com/OldStager01/battery-health/internal/upload"
	"github.com/OldStager01/battery-health/pkg/models"
	"github.com/OldStager01/battery-health/pkg/validation"
)

type Config struct {
	DefaultCellID string
	Locale        string
	ChartWidth    int
	ChartHeight   int
	RecentLimit   int
}

type Dependencies struct {
	Source    source.Source
	Analyzer  *analyzer.Analyzer
	Trainer   *trainer.Trainer
	Uploads   *upload.Receiver
	Catalog   *content.Catalog
	Publisher *events.Publisher
}

// Service composes the page flows. Every call takes its selection explicitly; no UI
// state is kept between requests.
type Service struct {
	config Config
	deps   Dependencies
}

func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.DefaultCellID == "" {
		cfg.DefaultCellID = "cell-001"
	}
	if cfg.Locale == "" {
		cfg.Locale = content.DefaultLocale
	}
	if cfg.ChartWidth <= 0 {
		cfg.ChartWidth = 800
	}
	if cfg.ChartHeight <= 0 {
		cfg.ChartHeight = 480
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 10
	}
	return &Service{config: cfg, deps: deps}
}

func (s *Service) Bounds() models.ThresholdBounds {
	return s.deps.Analyzer.Bounds()
}

func (s *Service) Trainer() *trainer.Trainer {
	return s.deps.Trainer
}

func (s *Service) Uploads() *upload.Receiver {
	return s.deps.Uploads
}

func (s *Service) Source() source.Source {
	return s.deps.Source
}

// Predict fetches the cell's trajectory and locates the EOL crossing for percent.
func (s *Service) Predict(ctx context.Context, cellID string, percent float64) (*models.Prediction, error) {
	if cellID == "" {
		cellID = s.config.DefaultCellID
	}
	if err := validation.ValidateCellID(cellID); err != nil {
		return nil, err
	}

	start := time.Now()
	trajectory, err := s.deps.Source.Trajectory(ctx, cellID)
	if err != nil {
		logger.WithTrace(ctx).WithField("cell_id", cellID).Warnf("Trajectory fetch failed: %v", err)
		return nil, err
	}

	prediction, err := s.deps.Analyzer.Predict(cellID, trajectory, percent)
	if err != nil {
		return nil, err
	}
	metrics.ObservePrediction(time.Since(start), prediction.Result.Reached)

	s.deps.Publisher.WithTraceID(logger.TraceIDFromContext(ctx)).PredictionComputed(prediction)
	return prediction, nil
}

// Analyze runs the EOL scan over a caller-supplied trajectory and threshold value.
func (s *Service) Analyze(trajectory models.Trajectory, thresholdValue float64) (models.AnalysisResult, error) {
	if len(trajectory) > 0 {
		if err := trajectory.Validate(); err != nil {
			return models.AnalysisResult{}, fmt.Errorf("%w: %v", analyzer.ErrInvalidInput, err)
		}
	}
	return analyzer.FindEOL(trajectory, thresholdValue)
}

// Chart renders the prediction with labels in the given locale.
func (s *Service) Chart(p *models.Prediction, locale string) (string, error) {
	c := s.content(locale)
	labels := chart.DefaultLabels(p.ThresholdPercent)
	if c != nil {
		labels = chart.Labels{
			Title:     c.Predict.ChartTitle,
			XAxis:     c.Predict.XLabel,
			YAxis:     c.Predict.YLabel,
			Series:    c.Predict.SeriesLabel,
			Threshold: c.ThresholdLabel(p.ThresholdPercent),
		}
	}
	return chart.RenderWithLabels(p, s.config.ChartWidth, s.config.ChartHeight, labels)
}

func (s *Service) content(locale string) *content.Content {
	if s.deps.Catalog == nil {
		return nil
	}
	if locale == "" {
		locale = s.config.Locale
	}
	return s.deps.Catalog.ForLocale(locale)
}
