package transport_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"gompa/internal/services"
)

var Module = fx.Provide(provideTransportService)

func provideTransportService(landmarks services.LandmarkServiceInterface, nearby services.NearbyServiceInterface,
	logger *zap.Logger) services.TransportServiceInterface {
	return services.NewTransportService(landmarks, nearby, logger)
}
