package handlers

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/OldStager01/battery-health/internal/content"
	"github.com/OldStager01/battery-health/internal/dashboard"
	"github.com/OldStager01/battery-health/pkg/models"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded HTML templates for gin's renderer.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

type PageHandler struct {
	service *dashboard.Service
	catalog *content.Catalog
	locale  string
	timeout time.Duration
}

func NewPageHandler(service *dashboard.Service, catalog *content.Catalog, locale string, timeout time.Duration) *PageHandler {
	if locale == "" {
		locale = content.DefaultLocale
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PageHandler{service: service, catalog: catalog, locale: locale, timeout: timeout}
}

type pageData struct {
	Locale  string
	Content *content.Content
	View    *dashboard.PageView
	Chart   template.HTML
	Error   string
}

func (h *PageHandler) pageConfig(c *gin.Context, page string) (models.PageConfig, error) {
	p, err := models.ParsePage(page)
	if err != nil {
		return models.PageConfig{}, err
	}
	cfg := models.PageConfig{
		Page:      p,
		ModelType: models.ModelType(c.Query("model_type")),
		CellID:    c.Query("cell_id"),
		Locale:    c.DefaultQuery("locale", h.locale),
	}
	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.PageConfig{}, models.ErrThresholdRange
		}
		cfg.ThresholdPercent = &v
	}
	return cfg, nil
}

// Get godoc
// @Summary Render one dashboard page as JSON
// @Tags Pages
// @Produce json
// @Param page path string true "home, upload, train or predict"
// @Param threshold query number false "EOL threshold in percent (predict page)"
// @Param model_type query string false "Selected model (train page)"
// @Param cell_id query string false "Cell identifier (predict page)"
// @Param locale query string false "en or zh"
// @Success 200 {object} dashboard.PageView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/pages/{page} [get]
func (h *PageHandler) Get(c *gin.Context) {
	h.renderJSON(c, c.Param("page"))
}

// Home godoc
// @Summary Home page content
// @Tags Pages
// @Produce json
// @Param locale query string false "en or zh"
// @Success 200 {object} dashboard.PageView
// @Router /api/home [get]
func (h *PageHandler) Home(c *gin.Context) {
	h.renderJSON(c, string(models.PageHome))
}

func (h *PageHandler) renderJSON(c *gin.Context, page string) {
	cfg, err := h.pageConfig(c, page)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	view, err := h.service.Page(ctx, cfg)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Dashboard renders the HTML page selected by ?page=.
func (h *PageHandler) Dashboard(c *gin.Context) {
	locale := c.DefaultQuery("locale", h.locale)
	data := pageData{Locale: locale, Content: h.catalog.ForLocale(locale)}

	cfg, err := h.pageConfig(c, c.Query("page"))
	if err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()
		data.View, err = h.service.Page(ctx, cfg)
	}

	if err != nil {
		status := statusFor(err)
		data.Error = err.Error()
		if status == http.StatusInternalServerError {
			data.Error = "internal server error"
		}
		// fall back to the home page so navigation still renders
		data.View, _ = h.service.Page(c.Request.Context(), models.PageConfig{Page: models.PageHome, Locale: locale})
		c.HTML(status, "dashboard.html", data)
		return
	}

	if data.View.Predict != nil {
		// rendered by internal/chart with every label escaped
		data.Chart = template.HTML(data.View.Predict.ChartSVG)
	}
	c.HTML(http.StatusOK, "dashboard.html", data)
}
