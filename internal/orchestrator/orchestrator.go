package orchestrator

import (
	"fmt"
	"sync"

	"github.com/OldStager01/battery-health/internal/analyzer"
	"github.com/OldStager01/battery-health/internal/content"
	"github.com/OldStager01/battery-health/internal/dashboard"
	"github.com/OldStager01/battery-health/internal/events"
	"github.com/OldStager01/battery-health/internal/logger"
	"github.com/OldStager01/battery-health/internal/metrics"
	"github.com/OldStager01/battery-health/internal/resilience"
	"github.com/OldStager01/battery-health/internal/source"
	"github.com/OldStager01/battery-health/internal/trainer"
	"github.com/OldStager01/battery-health/internal/upload"
	"github.com/OldStager01/battery-health/pkg/config"
	"github.com/OldStager01/battery-health/pkg/models"
)

// Orchestrator owns the lifetime of everything behind the HTTP layer.
type Orchestrator struct {
	config      *config.Config
	eventBus    *events.EventBus
	eventLogger *events.EventLogger
	publisher   *events.Publisher
	source      source.Source
	trainer     *trainer.Trainer
	catalog     *content.Catalog
	service     *dashboard.Service

	mu      sync.Mutex
	started bool
	stopped bool
}

// New wires the components described by cfg. A nil src builds one from cfg.Source.
func New(cfg *config.Config, src source.Source) (*Orchestrator, error) {
	catalog, err := content.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	eventBus := events.NewEventBus(cfg.Events.BufferSize)

	// Subscribe event logger to all events
	eventLogger := events.NewEventLogger(eventBus.SubscribeAll())
	publisher := events.NewPublisher(eventBus)

	if src == nil {
		src, err = source.New(cfg.Source, func(name string, from, to resilience.State) {
			metrics.SetCircuitState(name, to.String())
			publisher.SourceStateChanged(name, from.String(), to.String())
		})
		if err != nil {
			eventBus.Close()
			return nil, fmt.Errorf("failed to create trajectory source: %w", err)
		}
	}

	tr := trainer.New(trainer.Config{
		Delay:         cfg.Training.Delay,
		MaxConcurrent: cfg.Training.MaxConcurrent,
		HistorySize:   cfg.Training.HistorySize,
	}, publisher)

	uploads := upload.NewReceiver(upload.Config{
		AllowedExtensions: cfg.Upload.AllowedExtensions,
		MaxSizeBytes:      cfg.Upload.MaxSizeBytes,
		HistorySize:       cfg.Upload.HistorySize,
	}, publisher)

	service := dashboard.NewService(dashboard.Dependencies{
		Source:    src,
		Analyzer:  analyzer.New(analyzer.Config{Scale: cfg.Prediction.Scale, Bounds: cfg.Prediction.Bounds()}),
		Trainer:   tr,
		Uploads:   uploads,
		Catalog:   catalog,
		Publisher: publisher,
	}, dashboard.Config{
		DefaultCellID: cfg.Prediction.DefaultCellID,
		Locale:        cfg.App.Locale,
		RecentLimit:   cfg.API.DefaultLimit,
	})

	return &Orchestrator{
		config:      cfg,
		eventBus:    eventBus,
		eventLogger: eventLogger,
		publisher:   publisher,
		source:      src,
		trainer:     tr,
		catalog:     catalog,
		service:     service,
	}, nil
}

func (o *Orchestrator) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.stopped {
		return fmt.Errorf("orchestrator already stopped")
	}
	if o.started {
		return nil
	}
	o.started = true

	logger.Info("Orchestrator starting")
	o.eventLogger.Start()
	return nil
}

// Stop ends training runs before closing the bus so their final events are still delivered.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.stopped {
		return
	}
	o.stopped = true

	logger.Info("Orchestrator stopping")

	o.trainer.Stop()

	if o.started {
		o.eventLogger.Stop()
	}

	o.eventBus.Close()

	if err := o.source.Close(); err != nil {
		logger.Warnf("Failed to close trajectory source: %v", err)
	}

	logger.Info("Orchestrator stopped")
}

// ApplyConfig takes the settings that are safe to change while running.
func (o *Orchestrator) ApplyConfig(cfg *config.Config) {
	if cfg.App.LogLevel != logger.Level() {
		if err := logger.SetLevel(cfg.App.LogLevel); err != nil {
			logger.Warnf("Ignoring log level %q: %v", cfg.App.LogLevel, err)
		} else {
			logger.Infof("Log level changed to %s", cfg.App.LogLevel)
		}
	}
}

func (o *Orchestrator) Service() *dashboard.Service {
	return o.service
}

func (o *Orchestrator) Catalog() *content.Catalog {
	return o.catalog
}

func (o *Orchestrator) Publisher() *events.Publisher {
	return o.publisher
}

func (o *Orchestrator) SubscribeEvents(eventTypes ...models.EventType) <-chan *models.Event {
	return o.eventBus.Subscribe(eventTypes...)
}

func (o *Orchestrator) SubscribeAllEvents() <-chan *models.Event {
	return o.eventBus.SubscribeAll()
}
