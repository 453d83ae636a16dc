package models

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownPage      = errors.New("unknown page")
	ErrUnknownModelType = errors.New("unknown model type")
	ErrThresholdRange   = errors.New("threshold out of range")
)

type Page string

const (
	PageHome    Page = "home"
	PageUpload  Page = "upload"
	PageTrain   Page = "train"
	PagePredict Page = "predict"
)

func AllPages() []Page {
	return []Page{PageHome, PageUpload, PageTrain, PagePredict}
}

func ParsePage(s string) (Page, error) {
	switch p := Page(s); p {
	case PageHome, PageUpload, PageTrain, PagePredict:
		return p, nil
	case "":
		return PageHome, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPage, s)
	}
}

func (p Page) Title() string {
	switch p {
	case PageUpload:
		return "Data Upload"
	case PageTrain:
		return "Model Training"
	case PagePredict:
		return "Prediction Results"
	default:
		return "Home"
	}
}

type ModelType string

const (
	ModelRandomForest ModelType = "random_forest"
	ModelSVR          ModelType = "svr"
	ModelXGBoost      ModelType = "xgboost"
	ModelLSTM         ModelType = "lstm"
)

func AllModelTypes() []ModelType {
	return []ModelType{ModelRandomForest, ModelSVR, ModelXGBoost, ModelLSTM}
}

func ParseModelType(s string) (ModelType, error) {
	switch m := ModelType(s); m {
	case ModelRandomForest, ModelSVR, ModelXGBoost, ModelLSTM:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownModelType, s)
	}
}

func (m ModelType) DisplayName() string {
	switch m {
	case ModelRandomForest:
		return "Random Forest"
	case ModelSVR:
		return "SVR"
	case ModelXGBoost:
		return "XGBoost"
	case ModelLSTM:
		return "LSTM"
	default:
		return string(m)
	}
}

// ThresholdBounds mirrors the EOL slider: inclusive range and default, in percent.
type ThresholdBounds struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

func DefaultThresholdBounds() ThresholdBounds {
	return ThresholdBounds{Min: 50, Max: 90, Default: 80}
}

func (b ThresholdBounds) Check(percent float64) error {
	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		return fmt.Errorf("%w: threshold must be finite", ErrThresholdRange)
	}
	if percent < b.Min || percent > b.Max {
		return fmt.Errorf("%w: %.1f not in [%.0f, %.0f]", ErrThresholdRange, percent, b.Min, b.Max)
	}
	return nil
}

// PageConfig is the typed selection that drives one page render.
type PageConfig struct {
	Page             Page      `json:"page"`
	ThresholdPercent *float64  `json:"threshold_percent,omitempty"`
	ModelType        ModelType `json:"model_type,omitempty"`
	CellID           string    `json:"cell_id,omitempty"`
	Locale           string    `json:"locale,omitempty"`
}

// Validate fills defaults for the page and rejects values the page cannot use.
func (c *PageConfig) Validate(bounds ThresholdBounds) error {
	if _, err := ParsePage(string(c.Page)); err != nil {
		return err
	}
	if c.Page == "" {
		c.Page = PageHome
	}

	switch c.Page {
	case PagePredict:
		if c.ThresholdPercent == nil {
			percent := bounds.Default
			c.ThresholdPercent = &percent
		}
		if err := bounds.Check(*c.ThresholdPercent); err != nil {
			return err
		}
	case PageTrain:
		if c.ModelType == "" {
			c.ModelType = ModelRandomForest
		}
		if _, err := ParseModelType(string(c.ModelType)); err != nil {
			return err
		}
	}
	return nil
}
