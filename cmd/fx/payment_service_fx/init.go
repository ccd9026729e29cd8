package payment_service_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"gompa/internal/config"
	"gompa/internal/services"
)

var Module = fx.Provide(
	providePaymentGateway,
)

func providePaymentGateway(logger *zap.Logger) services.PaymentGateway {
	cfg := services.RazorpayConfig{
		KeyID:     config.GetEnvWithDefault("RAZORPAY_KEY_ID", ""),
		KeySecret: config.GetEnvWithDefault("RAZORPAY_KEY_SECRET", ""),
	}
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		logger.Warn("Razorpay keys not set; bookings with a positive total will fail payment")
	}
	return services.NewRazorpayGateway(cfg, logger)
}
