package controllers

import (
	"github.com/gin-gonic/gin"

	"gompa/internal/services"
	"gompa/pkg/utils"
)

type LandmarksController struct {
	landmarkService services.LandmarkServiceInterface
}

func NewLandmarksController(landmarkService services.LandmarkServiceInterface) *LandmarksController {
	return &LandmarksController{
		landmarkService: landmarkService,
	}
}

// ListLandmarks godoc
// @Summary List landmarks
// @Description Fetch the monasteries visitors can search around
// @Tags Landmarks
// @Produce json
// @Param district query string false "District filter, e.g. West Sikkim"
// @Success 200 {array} response_models.LandmarkResponse
// @Router /landmarks [get]
func (l *LandmarksController) ListLandmarks(c *gin.Context) {
	landmarks, err := l.landmarkService.List(c.Request.Context(), c.Query("district"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, landmarks, "Landmarks fetched successfully")
}

// GetLandmark godoc
// @Summary Get a landmark
// @Tags Landmarks
// @Produce json
// @Param id path string true "Landmark id, e.g. rumtek"
// @Success 200 {object} response_models.LandmarkResponse
// @Failure 404 {object} utils.APIResponse
// @Router /landmarks/{id} [get]
func (l *LandmarksController) GetLandmark(c *gin.Context) {
	landmark, err := l.landmarkService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, landmark, "Landmark fetched successfully")
}
