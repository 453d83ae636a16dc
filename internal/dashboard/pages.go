package dashboard

import (
	"context"

	"github.com/OldStager01/battery-health/internal/content"
	"github.com/OldStager01/battery-health/pkg/models"
)

type NavItem struct {
	Page   models.Page `json:"page"`
	Label  string      `json:"label"`
	Active bool        `json:"active"`
}

type ModelOption struct {
	Type     models.ModelType `json:"type"`
	Label    string           `json:"label"`
	Selected bool             `json:"selected"`
}

type UploadView struct {
	Extensions   []string                `json:"extensions"`
	MaxSizeBytes int64                   `json:"max_size_bytes,omitempty"`
	Recent       []*models.UploadReceipt `json:"recent"`
}

type TrainView struct {
	Models []ModelOption         `json:"models"`
	Runs   []*models.TrainingRun `json:"runs"`
}

type PredictView struct {
	Bounds     models.ThresholdBounds `json:"bounds"`
	Prediction *models.Prediction     `json:"prediction"`
	ChartSVG   string                 `json:"chart_svg,omitempty"`
}

// PageView is everything needed to render one page. Exactly one of the page
// sections is set, matching Page.
type PageView struct {
	Page    models.Page      `json:"page"`
	Locale  string           `json:"locale"`
	Content *content.Content `json:"content,omitempty"`
	Nav     []NavItem        `json:"nav"`
	Home    *content.Home    `json:"home,omitempty"`
	Upload  *UploadView      `json:"upload,omitempty"`
	Train   *TrainView       `json:"train,omitempty"`
	Predict *PredictView     `json:"predict,omitempty"`
}

func (s *Service) Page(ctx context.Context, cfg models.PageConfig) (*PageView, error) {
	if err := cfg.Validate(s.Bounds()); err != nil {
		return nil, err
	}

	locale := cfg.Locale
	if locale == "" {
		locale = s.config.Locale
	}
	c := s.content(locale)

	view := &PageView{
		Page:    cfg.Page,
		Locale:  locale,
		Content: c,
		Nav:     s.nav(c, cfg.Page),
	}

	switch cfg.Page {
	case models.PageHome:
		if c != nil {
			home := c.Home
			view.Home = &home
		}
	case models.PageUpload:
		view.Upload = s.uploadView()
	case models.PageTrain:
		view.Train = s.trainView(cfg.ModelType)
	case models.PagePredict:
		predict, err := s.predictView(ctx, cfg, locale)
		if err != nil {
			return nil, err
		}
		view.Predict = predict
	}
	return view, nil
}

func (s *Service) nav(c *content.Content, active models.Page) []NavItem {
	items := make([]NavItem, 0, len(models.AllPages()))
	for _, page := range models.AllPages() {
		label := page.Title()
		if c != nil {
			label = c.PageLabel(page)
		}
		items = append(items, NavItem{Page: page, Label: label, Active: page == active})
	}
	return items
}

func (s *Service) uploadView() *UploadView {
	view := &UploadView{Recent: []*models.UploadReceipt{}}
	if s.deps.Uploads != nil {
		view.Extensions = s.deps.Uploads.Extensions()
		view.MaxSizeBytes = s.deps.Uploads.MaxSizeBytes()
		view.Recent = s.deps.Uploads.Recent(s.config.RecentLimit)
	}
	return view
}

func (s *Service) trainView(selected models.ModelType) *TrainView {
	view := &TrainView{Runs: []*models.TrainingRun{}}
	for _, m := range models.AllModelTypes() {
		view.Models = append(view.Models, ModelOption{Type: m, Label: m.DisplayName(), Selected: m == selected})
	}
	if s.deps.Trainer != nil {
		runs := s.deps.Trainer.List()
		if len(runs) > s.config.RecentLimit {
			runs = runs[:s.config.RecentLimit]
		}
		view.Runs = runs
	}
	return view
}

func (s *Service) predictView(ctx context.Context, cfg models.PageConfig, locale string) (*PredictView, error) {
	prediction, err := s.Predict(ctx, cfg.CellID, *cfg.ThresholdPercent)
	if err != nil {
		return nil, err
	}
	svg, err := s.Chart(prediction, locale)
	if err != nil {
		return nil, err
	}
	return &PredictView{
		Bounds:     s.Bounds(),
		Prediction: prediction,
		ChartSVG:   svg,
	}, nil
}
