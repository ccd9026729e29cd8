package controllers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gompa/internal/models/place_models"
	"gompa/internal/models/request_models"
	"gompa/internal/services"
	"gompa/pkg/geo"
	"gompa/pkg/utils"
)

// ClientIDHeader identifies a client across nearby loads so a new load
// supersedes the previous one.
const ClientIDHeader = "X-Client-ID"

const sseKeepAlive = 15 * time.Second

type PlacesController struct {
	nearbyService services.NearbyServiceInterface
}

func NewPlacesController(nearbyService services.NearbyServiceInterface) *PlacesController {
	return &PlacesController{
		nearbyService: nearbyService,
	}
}

// Nearby godoc
// @Summary Nearby places around a landmark or coordinate
// @Description Merges both place sources, prices the results and starts contact enrichment. Poll the session or subscribe to its events for updates.
// @Tags Places
// @Produce json
// @Param landmarkId query string false "Landmark id"
// @Param lat query number false "Latitude, used when landmarkId is empty"
// @Param lng query number false "Longitude, used when landmarkId is empty"
// @Param category query string false "dining | lodging | attraction | transit" default(dining)
// @Param radiusKm query number false "Search radius in km"
// @Param limit query int false "Maximum results"
// @Param keyword query string false "Keyword for the commercial source"
// @Param X-Client-ID header string false "Stable client id"
// @Success 200 {object} response_models.NearbyResponse
// @Failure 400 {object} utils.APIResponse
// @Router /places/nearby [get]
func (p *PlacesController) Nearby(c *gin.Context) {
	req, ok := bindNearby(c)
	if !ok {
		return
	}
	req.ClientKey = c.GetHeader(ClientIDHeader)

	resp, err := p.nearbyService.Nearby(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Nearby places fetched successfully")
}

// Count godoc
// @Summary Count nearby places per category
// @Description Unnamed places are included. Without a category every category is counted.
// @Tags Places
// @Produce json
// @Param landmarkId query string false "Landmark id"
// @Param lat query number false "Latitude"
// @Param lng query number false "Longitude"
// @Param category query string false "Single category"
// @Param radiusKm query number false "Search radius in km"
// @Success 200 {object} response_models.NearbyCountResponse
// @Router /places/nearby/count [get]
func (p *PlacesController) Count(c *gin.Context) {
	req, ok := bindNearby(c)
	if !ok {
		return
	}

	resp, err := p.nearbyService.Count(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Nearby places counted successfully")
}

// Session godoc
// @Summary Current snapshot of a nearby session
// @Tags Places
// @Produce json
// @Param sessionId path string true "Session id"
// @Success 200 {object} response_models.NearbyResponse
// @Failure 404 {object} utils.APIResponse
// @Router /places/sessions/{sessionId} [get]
func (p *PlacesController) Session(c *gin.Context) {
	resp, err := p.nearbyService.Snapshot(c.Param("sessionId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Session fetched successfully")
}

// Events godoc
// @Summary Server-sent events for a nearby session
// @Description Emits place.updated for every enriched place and session.closed when the session is superseded or expires.
// @Tags Places
// @Produce text/event-stream
// @Param sessionId path string true "Session id"
// @Failure 404 {object} utils.APIResponse
// @Router /places/sessions/{sessionId}/events [get]
func (p *PlacesController) Events(c *gin.Context) {
	events, unsubscribe, err := p.nearbyService.Subscribe(c.Param("sessionId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(sseKeepAlive)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(ev.Type, services.ToPlaceEventResponse(ev))
			return ev.Type != services.EventSessionClosed
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			return true
		case <-ctx.Done():
			return false
		}
	})
}

// Resolve godoc
// @Summary Resolve the contact action for one place now
// @Description Looks up the phone number on demand. Falls back to a web search link.
// @Tags Places
// @Produce json
// @Param sessionId path string true "Session id"
// @Param placeId path string true "Place id"
// @Success 200 {object} response_models.ContactResponse
// @Failure 404 {object} utils.APIResponse
// @Router /places/sessions/{sessionId}/places/{placeId}/resolve [post]
func (p *PlacesController) Resolve(c *gin.Context) {
	resp, err := p.nearbyService.Resolve(c.Request.Context(), c.Param("sessionId"), c.Param("placeId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Contact resolved")
}

func bindNearby(c *gin.Context) (services.NearbyRequest, bool) {
	var query request_models.NearbyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return services.NearbyRequest{}, false
	}

	req := services.NearbyRequest{
		LandmarkID: query.LandmarkID,
		RadiusKm:   query.RadiusKm,
		Limit:      query.Limit,
		Keyword:    query.Keyword,
	}
	if query.Lat != nil && query.Lng != nil {
		req.Origin = &geo.Point{Lat: *query.Lat, Lng: *query.Lng}
	}
	if query.Category != "" {
		cat, ok := place_models.ParseCategory(query.Category)
		if !ok {
			utils.HandleServiceError(c, utils.ErrInvalidCategory)
			return services.NearbyRequest{}, false
		}
		req.Category = cat
	}
	return req, true
}
