package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gompa/internal/models/request_models"
	"gompa/internal/services"
	"gompa/pkg/utils"
)

type BookingsController struct {
	bookingService services.BookingServiceInterface
}

func NewBookingsController(bookingService services.BookingServiceInterface) *BookingsController {
	return &BookingsController{
		bookingService: bookingService,
	}
}

// Quote godoc
// @Summary Price a booking without recording it
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body request_models.BookingRequest true "Booking"
// @Success 200 {object} response_models.BillResponse
// @Failure 400 {object} utils.APIResponse
// @Router /bookings/quote [post]
func (b *BookingsController) Quote(c *gin.Context) {
	var request request_models.BookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	bill, err := b.bookingService.Quote(request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bill, "Booking quoted")
}

// Create godoc
// @Summary Record a booking and open a payment order
// @Description A positive total creates a Razorpay order. Gateway failures return 502 payment_creation_failed.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body request_models.BookingRequest true "Booking"
// @Success 201 {object} response_models.BookingResponse
// @Failure 502 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bookings [post]
func (b *BookingsController) Create(c *gin.Context) {
	var request request_models.BookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	var accountID *uuid.UUID
	if id, err := uuid.Parse(c.GetString("user_id")); err == nil {
		accountID = &id
	}

	booking, err := b.bookingService.Create(c.Request.Context(), accountID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, booking, "Booking recorded")
}

// Mine godoc
// @Summary Bookings of the signed-in account
// @Tags Bookings
// @Produce json
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {array} response_models.BookingResponse
// @Security BearerAuth
// @Router /bookings/mine [get]
func (b *BookingsController) Mine(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "user_id is required")
		return
	}

	page, pageSize := pagination(c)
	bookings, err := b.bookingService.ListMine(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bookings, "Bookings fetched successfully")
}

// All godoc
// @Summary All bookings
// @Tags Bookings
// @Produce json
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {array} response_models.BookingResponse
// @Security BearerAuth
// @Router /bookings [get]
func (b *BookingsController) All(c *gin.Context) {
	page, pageSize := pagination(c)
	bookings, err := b.bookingService.ListAll(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bookings, "Bookings fetched successfully")
}

// Get godoc
// @Summary One booking
// @Description Owners see their own bookings; admins see any.
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking id"
// @Success 200 {object} response_models.BookingResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bookings/{id} [get]
func (b *BookingsController) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, utils.ErrBookingNotFound)
		return
	}
	userID, _ := uuid.Parse(c.GetString("user_id"))

	booking, err := b.bookingService.Get(c.Request.Context(), id, userID, c.GetString("Role") == utils.RoleAdmin)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, booking, "Booking fetched successfully")
}

func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 0
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil {
		pageSize = 0
	}
	return page, pageSize
}
