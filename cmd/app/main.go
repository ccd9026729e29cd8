package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"gompa/cmd/fx/booking_fx"
	"gompa/cmd/fx/config_fx"
	"gompa/cmd/fx/controllers_fx"
	"gompa/cmd/fx/db_fx"
	"gompa/cmd/fx/landmark_fx"
	"gompa/cmd/fx/logger_fx"
	"gompa/cmd/fx/metrics_fx"
	"gompa/cmd/fx/payment_service_fx"
	"gompa/cmd/fx/places_fx"
	"gompa/cmd/fx/transport_fx"
	"gompa/internal/api/controllers"
	"gompa/internal/config"
	"gompa/pkg/metrics"
	"gompa/pkg/middleware"
	"gompa/pkg/utils"
)

func main() {
	_ = config.LoadDotEnv()

	app := fx.New(
		logger_fx.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		config_fx.Module,
		metrics_fx.Module,
		db_fx.Module,
		landmark_fx.Module,
		places_fx.Module,
		transport_fx.Module,
		payment_service_fx.Module,
		booking_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + config.GetEnvWithDefault("PORT", "8080"),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			if !utils.JWTConfigured() {
				logger.Warn("JWT_SECRET is not set; authenticated routes reject every token")
			}
			logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

type RouterParams struct {
	fx.In

	Registry            *metrics.Registry
	LandmarksController *controllers.LandmarksController
	PlacesController    *controllers.PlacesController
	TransportController *controllers.TransportController
	BookingsController  *controllers.BookingsController
	HealthController    *controllers.HealthController
}

func ProvideRouter(p RouterParams) *gin.Engine {
	if config.GetEnvWithDefault("APP_ENV", "production") != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware(splitOrigins(config.GetEnvWithDefault("CORS_ORIGINS", ""))))

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	r.GET("/health", p.HealthController.Health)
	r.GET("/metrics", gin.WrapH(p.Registry.Handler()))

	landmarks := r.Group("/landmarks")
	landmarks.GET("", p.LandmarksController.ListLandmarks)
	landmarks.GET("/:id", p.LandmarksController.GetLandmark)

	places := r.Group("/places")
	places.GET("/nearby", p.PlacesController.Nearby)
	places.GET("/nearby/count", p.PlacesController.Count)
	places.GET("/sessions/:sessionId", p.PlacesController.Session)
	places.GET("/sessions/:sessionId/events", p.PlacesController.Events)
	places.POST("/sessions/:sessionId/places/:placeId/resolve", p.PlacesController.Resolve)

	transport := r.Group("/transport")
	transport.GET("/quote", p.TransportController.Quote)
	transport.GET("/recommended", p.TransportController.Recommended)

	bookings := r.Group("/bookings")
	bookings.POST("/quote", p.BookingsController.Quote)
	bookings.POST("", middleware.JWTAuthMiddleware(), p.BookingsController.Create)
	bookings.GET("/mine", middleware.JWTAuthMiddleware(), p.BookingsController.Mine)
	bookings.GET("/:id", middleware.JWTAuthMiddleware(), p.BookingsController.Get)
	bookings.GET("", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware(utils.RoleAdmin), p.BookingsController.All)
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
