package controllers_fx

import (
	"go.uber.org/fx"

	"gompa/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewLandmarksController),
	fx.Provide(controllers.NewPlacesController),
	fx.Provide(controllers.NewTransportController),
	fx.Provide(controllers.NewBookingsController),
	fx.Provide(controllers.NewHealthController))
