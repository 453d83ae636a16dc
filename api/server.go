package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/OldStager01/battery-health/api/handlers"
	"github.com/OldStager01/battery-health/api/middleware"
	"github.com/OldStager01/battery-health/api/websocket"
	_ "github.com/OldStager01/battery-health/docs"
	"github.com/OldStager01/battery-health/internal/content"
	"github.com/OldStager01/battery-health/internal/dashboard"
	"github.com/OldStager01/battery-health/internal/logger"
	"github.com/OldStager01/battery-health/pkg/config"
	"github.com/OldStager01/battery-health/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// multipartSlack covers multipart framing on top of the largest accepted file.
const multipartSlack = 64 << 10

type Dependencies struct {
	Service  *dashboard.Service
	Catalog  *content.Catalog
	Events   <-chan *models.Event
	Gatherer prometheus.Gatherer
}

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     *config.Config
	deps       Dependencies
	wsHub      *websocket.Hub
	wsBridge   *websocket.EventBridge
}

func NewServer(cfg *config.Config, deps Dependencies) (*Server, error) {
	if cfg.App.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
	}

	tmpl, err := handlers.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	s := &Server{
		router: router,
		config: cfg,
		deps:   deps,
		wsHub:  websocket.NewHub(&cfg.WebSocket),
	}

	s.setupMiddleware()
	s.setupRoutes()

	go s.wsHub.Run()

	if deps.Events != nil {
		s.wsBridge = websocket.NewEventBridge(s.wsHub, deps.Events)
		s.wsBridge.Start()
	}

	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.TraceID())
	s.router.Use(middleware.RequestLogger())
	s.router.Use(middleware.Metrics())
	s.router.Use(middleware.SecurityHeaders())
	s.router.Use(middleware.CORS(middleware.CORSFromConfig(s.config.API.CORS)))

	rateLimiter := middleware.NewRateLimiter(s.config.API.RateLimit, time.Minute)
	s.router.Use(middleware.RateLimit(rateLimiter))

	endpointLimiter := middleware.NewEndpointRateLimiter()
	endpointLimiter.AddEndpoint(http.MethodPost, "/api/uploads", s.config.API.MutateLimit, time.Minute)
	endpointLimiter.AddEndpoint(http.MethodPost, "/api/training", s.config.API.MutateLimit, time.Minute)
	s.router.Use(endpointLimiter.Middleware())
}

func (s *Server) setupRoutes() {
	service := s.deps.Service
	apiCfg := s.config.API

	healthHandler := handlers.NewHealthHandler(map[string]handlers.Checker{
		"trajectory_source": service.Source(),
	})
	pageHandler := handlers.NewPageHandler(service, s.deps.Catalog, s.config.App.Locale, apiCfg.WriteTimeout)
	uploadHandler := handlers.NewUploadHandler(service.Uploads(), apiCfg.DefaultLimit, apiCfg.MaxLimit)
	trainingHandler := handlers.NewTrainingHandler(service.Trainer(), apiCfg.DefaultLimit, apiCfg.MaxLimit)
	predictionHandler := handlers.NewPredictionHandler(service, s.config.Source.Timeout*time.Duration(max(1, s.config.Source.RetryAttempts)+1))

	// Public routes
	s.router.GET("/health", healthHandler.Health)
	s.router.GET("/health/ready", healthHandler.Ready)
	s.router.GET("/health/live", healthHandler.Live)

	s.router.GET("/", pageHandler.Dashboard)
	s.router.GET("/ws", websocket.ServeWebSocket(s.wsHub))

	if s.config.Prometheus.Enabled {
		gatherer := s.deps.Gatherer
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		s.router.GET(s.config.Prometheus.Path, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	if apiCfg.SwaggerEnabled {
		s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v := s.router.Group("/api")
	{
		v.GET("/home", pageHandler.Home)
		v.GET("/pages/:page", pageHandler.Get)

		v.GET("/uploads", uploadHandler.List)
		v.POST("/uploads",
			middleware.RequestSizeLimit(service.Uploads().MaxSizeBytes()+multipartSlack),
			uploadHandler.Create)

		v.GET("/training", trainingHandler.List)
		v.POST("/training", trainingHandler.Start)
		v.GET("/training/:id", trainingHandler.Get)
		v.DELETE("/training/:id", trainingHandler.Cancel)

		v.GET("/predictions", predictionHandler.Predict)
		v.GET("/predictions/chart.svg", predictionHandler.Chart)
		v.POST("/analyze", predictionHandler.Analyze)
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.API.Port)

	idle := s.config.API.IdleTimeout
	if idle <= 0 {
		idle = 60 * time.Second
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.API.ReadTimeout,
		WriteTimeout: s.config.API.WriteTimeout,
		IdleTimeout:  idle,
	}

	logger.Infof("API server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.wsBridge != nil {
		s.wsBridge.Stop()
	}
	s.wsHub.Stop()

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) WebSocketHub() *websocket.Hub {
	return s.wsHub
}
