package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gompa/internal/models/request_models"
	"gompa/internal/services"
	"gompa/pkg/geo"
	"gompa/pkg/utils"
)

type TransportController struct {
	transportService services.TransportServiceInterface
}

func NewTransportController(transportService services.TransportServiceInterface) *TransportController {
	return &TransportController{
		transportService: transportService,
	}
}

// Quote godoc
// @Summary Fare and ETA estimates to a landmark
// @Tags Transport
// @Produce json
// @Param from query string true "Origin as lat,lng"
// @Param landmarkId query string true "Landmark id"
// @Success 200 {object} response_models.TransportQuoteResponse
// @Failure 400 {object} utils.APIResponse
// @Router /transport/quote [get]
func (t *TransportController) Quote(c *gin.Context) {
	query, from, ok := bindTransport(c)
	if !ok {
		return
	}

	resp, err := t.transportService.Quote(c.Request.Context(), from, query.LandmarkID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Transport quote created")
}

// Recommended godoc
// @Summary Taxi stands on the way to a landmark
// @Description Stands near the origin ranked by the detour they add.
// @Tags Transport
// @Produce json
// @Param from query string true "Origin as lat,lng"
// @Param landmarkId query string true "Landmark id"
// @Param radiusKm query number false "Stand search radius, default 15"
// @Success 200 {array} response_models.TaxiStandResponse
// @Router /transport/recommended [get]
func (t *TransportController) Recommended(c *gin.Context) {
	query, from, ok := bindTransport(c)
	if !ok {
		return
	}

	resp, err := t.transportService.Recommended(c.Request.Context(), from, query.LandmarkID, query.RadiusKm)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Recommended stands fetched successfully")
}

func bindTransport(c *gin.Context) (request_models.TransportQuery, geo.Point, bool) {
	var query request_models.TransportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "from and landmarkId are required")
		return query, geo.Point{}, false
	}
	from, err := geo.ParsePoint(query.From)
	if err != nil {
		utils.HandleServiceError(c, utils.ErrInvalidCoordinates)
		return query, geo.Point{}, false
	}
	return query, from, true
}
