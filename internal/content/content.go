package content

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/OldStager01/battery-health/pkg/models"
)

const DefaultLocale = "en"

//go:embed content.yaml
var raw []byte

type Content struct {
	Title    string  `yaml:"title" json:"title"`
	Subtitle string  `yaml:"subtitle" json:"subtitle"`
	Icon     string  `yaml:"icon" json:"icon"`
	Nav      Nav     `yaml:"nav" json:"nav"`
	Home     Home    `yaml:"home" json:"home"`
	Upload   Upload  `yaml:"upload" json:"upload"`
	Train    Train   `yaml:"train" json:"train"`
	Predict  Predict `yaml:"predict" json:"predict"`
	Footer   Footer  `yaml:"footer" json:"footer"`
}

type Nav struct {
	Title string            `yaml:"title" json:"title"`
	Label string            `yaml:"label" json:"label"`
	Pages map[string]string `yaml:"pages" json:"pages"`
}

type Home struct {
	Header        string   `yaml:"header" json:"header"`
	Intro         string   `yaml:"intro" json:"intro"`
	Hint          string   `yaml:"hint" json:"hint"`
	ImageURL      string   `yaml:"image_url" json:"image_url"`
	ImageWidth    int      `yaml:"image_width" json:"image_width"`
	FeaturesTitle string   `yaml:"features_title" json:"features_title"`
	Features      []string `yaml:"features" json:"features"`
}

type Upload struct {
	Header      string `yaml:"header" json:"header"`
	Description string `yaml:"description" json:"description"`
	Label       string `yaml:"label" json:"label"`
}

type Train struct {
	Header     string `yaml:"header" json:"header"`
	ModelLabel string `yaml:"model_label" json:"model_label"`
	Button     string `yaml:"button" json:"button"`
	Spinner    string `yaml:"spinner" json:"spinner"`
	Success    string `yaml:"success" json:"success"`
}

type Predict struct {
	Header         string `yaml:"header" json:"header"`
	SliderLabel    string `yaml:"slider_label" json:"slider_label"`
	ChartTitle     string `yaml:"chart_title" json:"chart_title"`
	XLabel         string `yaml:"x_label" json:"x_label"`
	YLabel         string `yaml:"y_label" json:"y_label"`
	SeriesLabel    string `yaml:"series_label" json:"series_label"`
	ThresholdLabel string `yaml:"threshold_label" json:"threshold_label"`
}

type Footer struct {
	Heading   string `yaml:"heading" json:"heading"`
	Copyright string `yaml:"copyright" json:"copyright"`
}

// PageLabel falls back to the page's English title when the locale has no entry.
func (c *Content) PageLabel(page models.Page) string {
	if label, ok := c.Nav.Pages[string(page)]; ok && label != "" {
		return label
	}
	return page.Title()
}

func (c *Content) ThresholdLabel(percent float64) string {
	return fmt.Sprintf(c.Predict.ThresholdLabel, percent)
}

// Catalog holds page copy keyed by locale.
type Catalog struct {
	locales map[string]*Content
}

var (
	defaultCatalog *Catalog
	loadErr        error
	once           sync.Once
)

// Load parses the embedded copy once.
func Load() (*Catalog, error) {
	once.Do(func() {
		defaultCatalog, loadErr = Parse(raw)
	})
	return defaultCatalog, loadErr
}

func Parse(data []byte) (*Catalog, error) {
	locales := make(map[string]*Content)
	if err := yaml.Unmarshal(data, &locales); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	if _, ok := locales[DefaultLocale]; !ok {
		return nil, fmt.Errorf("content is missing the %q locale", DefaultLocale)
	}
	return &Catalog{locales: locales}, nil
}

func (c *Catalog) ForLocale(locale string) *Content {
	if content, ok := c.locales[locale]; ok {
		return content
	}
	return c.locales[DefaultLocale]
}

func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.locales))
	for locale := range c.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}
