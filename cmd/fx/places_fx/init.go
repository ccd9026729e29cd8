package places_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"gompa/internal/config"
	"gompa/internal/services"
	"gompa/pkg/metrics"
)

var Module = fx.Provide(
	provideGoogleSource,
	provideOSMSource,
	provideEnricher,
	provideSessionStore,
	provideNearbyService,
)

func provideGoogleSource(cfg config.PipelineConfig, logger *zap.Logger) *services.GooglePlacesSource {
	src := services.NewGooglePlacesSource(services.GooglePlacesConfig{
		APIKey:  config.GetEnvWithDefault("GOOGLE_PLACES_API_KEY", ""),
		BaseURL: config.GetEnvWithDefault("GOOGLE_PLACES_URL", services.DefaultGooglePlacesURL),
		Timeout: cfg.SourceTimeout,
		Region:  cfg.Region,
	}, logger)
	if !src.Enabled() {
		logger.Warn("GOOGLE_PLACES_API_KEY not set; commercial source and contact enrichment disabled")
	}
	return src
}

func provideOSMSource(cfg config.PipelineConfig, logger *zap.Logger) *services.OSMSource {
	return services.NewOSMSource(services.OverpassConfig{
		Endpoint:  config.GetEnvWithDefault("OVERPASS_URL", services.DefaultOverpassEndpoint),
		UserAgent: config.GetEnvWithDefault("OVERPASS_USER_AGENT", "gompa/1.0"),
		Timeout:   cfg.SourceTimeout,
		Region:    cfg.Region,
	}, logger)
}

func provideEnricher(google *services.GooglePlacesSource, cfg config.PipelineConfig, m *metrics.Registry, logger *zap.Logger) *services.Enricher {
	return services.NewEnricher(google, cfg, m, logger)
}

// provideSessionStore sweeps idle sessions in the background. On stop every
// session is closed and in-flight enrichment drains before the app exits.
func provideSessionStore(lc fx.Lifecycle, cfg config.PipelineConfig, m *metrics.Registry, enricher *services.Enricher) *services.SessionStore {
	store := services.NewSessionStore(cfg.Session, m)
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				store.Run(runCtx, config.GetEnvDuration("SESSION_SWEEP_INTERVAL", 0))
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-ctx.Done():
				return ctx.Err()
			}
			enricher.Wait()
			return nil
		},
	})
	return store
}

func provideNearbyService(google *services.GooglePlacesSource, osm *services.OSMSource, landmarks services.LandmarkServiceInterface,
	enricher *services.Enricher, sessions *services.SessionStore, cfg config.PipelineConfig, m *metrics.Registry,
	logger *zap.Logger) services.NearbyServiceInterface {
	return services.NewNearbyService(google, osm, landmarks, enricher, sessions, cfg, m, logger)
}
