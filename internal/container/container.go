package container

import (
	"fmt"
	"net/http"

	"go-landing-scout/internal/analyzer"
	"go-landing-scout/internal/config"
	"go-landing-scout/internal/factory"
	"go-landing-scout/internal/logger"
	"go-landing-scout/internal/observer"
	"go-landing-scout/internal/repository"
	"go-landing-scout/internal/service"
	"go-landing-scout/internal/storage"
	"go-landing-scout/internal/transport"
	"go-landing-scout/pkg/validation"
)

// Container holds all application dependencies
type Container struct {
	config         *config.Config
	imageFetcher   storage.ImageFetcher
	outputStore    storage.OutputStore
	imageAnalyzer  analyzer.ImageAnalyzer
	imageRepo      repository.ImageRepository
	metrics        *observer.MetricsObserver
	landingService service.LandingService
	handler        http.Handler
}

// NewContainer wires the application for cfg
func NewContainer(cfg *config.Config) (*Container, error) {
	components := factory.NewComponentFactory(cfg)

	imageFetcher, err := components.StorageFactory.CreateFetcher(factory.RoutedStorage)
	if err != nil {
		return nil, fmt.Errorf("failed to create image fetcher: %w", err)
	}

	outputStore, err := components.StorageFactory.CreateOutputStore()
	if err != nil {
		return nil, fmt.Errorf("failed to create output store: %w", err)
	}

	imageAnalyzer, err := components.AnalyzerFactory.CreateAnalyzer()
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}

	validator := validation.NewURLValidator(cfg.AllowedURLHosts...)
	imageRepo := repository.NewImageRepository(imageFetcher, validator, analyzer.ImageSize)

	metrics := observer.NewMetricsObserver()
	events := observer.NewEventPublisher()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(metrics)

	landingService := service.NewLandingService(imageRepo, imageAnalyzer, outputStore, events)
	handler := transport.NewHandler(landingService, metrics, cfg)

	return &Container{
		config:         cfg,
		imageFetcher:   imageFetcher,
		outputStore:    outputStore,
		imageAnalyzer:  imageAnalyzer,
		imageRepo:      imageRepo,
		metrics:        metrics,
		landingService: landingService,
		handler:        handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Metrics returns the analysis counters
func (c *Container) Metrics() *observer.MetricsObserver {
	return c.metrics
}
