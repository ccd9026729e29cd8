package logger_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"gompa/internal/config"
)

var Module = fx.Provide(provideLogger)

// provideLogger builds the production logger unless APP_ENV=development and
// installs it as the global logger used by utils.HandleServiceError.
func provideLogger(lc fx.Lifecycle) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if config.GetEnvWithDefault("APP_ENV", "production") == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	undo := zap.ReplaceGlobals(logger)
	lc.Append(fx.StopHook(func() {
		_ = logger.Sync()
		undo()
	}))
	return logger, nil
}
