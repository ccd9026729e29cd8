package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"gompa/internal/config"
)

var Module = fx.Provide(providePipelineConfig)

func providePipelineConfig(logger *zap.Logger) (config.PipelineConfig, error) {
	path := config.GetEnvWithDefault("PLACES_CONFIG", "")
	cfg, err := config.LoadPipelineConfig(path)
	if err != nil {
		return cfg, err
	}
	logger.Info("pipeline config loaded",
		zap.String("file", path),
		zap.Float64("default_radius_km", cfg.DefaultRadiusKm),
		zap.Int("result_limit", cfg.ResultLimit))
	return cfg, nil
}
