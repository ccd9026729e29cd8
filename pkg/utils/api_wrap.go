package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// errorStatus maps service sentinels to an HTTP status and a client message.
var errorStatus = []struct {
	err     error
	code    int
	message string
}{
	{ErrLandmarkNotFound, http.StatusNotFound, "Landmark not found"},
	{ErrSessionNotFound, http.StatusNotFound, "Session not found or expired"},
	{ErrPlaceNotFound, http.StatusNotFound, "Place not found"},
	{ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{ErrInvalidCoordinates, http.StatusBadRequest, "Invalid coordinates, expected lat,lng"},
	{ErrInvalidCategory, http.StatusBadRequest, "Invalid category"},
	{ErrInvalidRadius, http.StatusBadRequest, "Radius must be between 0.1 and 50 km"},
	{ErrInvalidPage, http.StatusBadRequest, "Page must be greater than 0"},
	{ErrInvalidPageSize, http.StatusBadRequest, "Page size must be between 1 and 100"},
	{ErrInvalidBooking, http.StatusBadRequest, "Invalid booking request"},
	{ErrPaymentGateway, http.StatusBadGateway, "payment_creation_failed"},
}

func HandleServiceError(c *gin.Context, err error) {
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			message := m.message
			if m.code == http.StatusBadRequest && err.Error() != m.err.Error() {
				message = err.Error()
			}
			RespondError(c, m.code, message)
			return
		}
	}

	if errors.Is(err, ErrDatabaseError) {
		zap.L().Error("database error", zap.Error(err), zap.String("trace_id", traceID(c)))
	} else {
		zap.L().Error("unhandled service error", zap.Error(err), zap.String("trace_id", traceID(c)))
	}
	RespondError(c, http.StatusInternalServerError, "Internal server error")
}
