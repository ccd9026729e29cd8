package landmark_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"gompa/internal/repositories"
	"gompa/internal/services"
)

var Module = fx.Provide(
	NewLandmarkService, NewLandmarkRepo)

func NewLandmarkService(repo repositories.LandmarkRepository) services.LandmarkServiceInterface {
	return services.NewLandmarkService(repo)
}

func NewLandmarkRepo(db *gorm.DB) repositories.LandmarkRepository {
	return repositories.NewLandmarkRepository(db)
}
