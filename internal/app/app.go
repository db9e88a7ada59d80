package app

import (
	"fmt"

	"github.com/GriffinCanCode/manifestgen/internal/catalog"
	"github.com/GriffinCanCode/manifestgen/internal/domain/generator"
	"github.com/GriffinCanCode/manifestgen/internal/infrastructure/config"
	"github.com/GriffinCanCode/manifestgen/internal/infrastructure/logging"
	"github.com/GriffinCanCode/manifestgen/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/manifestgen/internal/providers/http/client"
	"github.com/GriffinCanCode/manifestgen/internal/providers/image"
	"go.uber.org/zap"
)

// App holds the wired components of one session
type App struct {
	Config    *config.Config
	Logger    *logging.Logger
	Metrics   *monitoring.Metrics
	Catalog   *catalog.Catalog
	Backend   *client.ManifestService
	Inspector *image.Inspector
	Store     *generator.Store
	Generator *generator.Generator
}

// New wires every component described by cfg
func New(cfg *config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.FromConfig(cfg.Logging.Level, cfg.Logging.Development)
	}
	metrics := monitoring.NewMetrics()

	modes, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	backendClient := client.NewClient(client.Config{
		Name:            "manifest-backend",
		Timeout:         cfg.API.Timeout,
		UserAgent:       cfg.API.UserAgent,
		RateLimitRPS:    cfg.API.RateLimitRPS,
		BreakerFailures: cfg.API.BreakerFailures,
	}).WithMetrics(metrics)
	backend := client.NewManifestService(backendClient, cfg.API.ManifestsEndpoint())

	imageClient := client.NewClient(client.Config{
		Name:      "image-fetch",
		Timeout:   cfg.Image.Timeout,
		UserAgent: cfg.API.UserAgent,
	}).WithMetrics(metrics)
	inspector := image.NewInspector(image.Config{
		Headless: cfg.Image.Headless,
		Timeout:  cfg.Image.Timeout,
		MaxBytes: cfg.Image.MaxBytes,
	}, imageClient, logger)

	store := generator.NewStore(logger).WithMetrics(metrics)
	gen := generator.NewGenerator(store, backend, inspector, modes, logger).WithMetrics(metrics)

	logger.Info("session ready",
		zap.String("session_id", store.SessionID().String()),
		zap.String("api_url", cfg.API.URL),
		zap.Bool("headless", cfg.Image.Headless),
		zap.Int("displays", len(modes.Displays())),
	)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metrics,
		Catalog:   modes,
		Backend:   backend,
		Inspector: inspector,
		Store:     store,
		Generator: gen,
	}, nil
}
