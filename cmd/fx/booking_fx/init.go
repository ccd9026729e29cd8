package booking_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gompa/internal/repositories"
	"gompa/internal/services"
	"gompa/pkg/metrics"
)

var Module = fx.Provide(
	provideBookingRepo, provideBookingService,
)

func provideBookingRepo(db *gorm.DB) repositories.BookingRepository {
	return repositories.NewBookingRepository(db)
}

func provideBookingService(repo repositories.BookingRepository, landmarks services.LandmarkServiceInterface,
	gateway services.PaymentGateway, m *metrics.Registry, logger *zap.Logger) services.BookingServiceInterface {
	return services.NewBookingService(repo, landmarks, gateway, m, logger)
}
