package utils

import "errors"

var (
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")

	ErrLandmarkNotFound   = errors.New("landmark not found")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidRadius      = errors.New("invalid radius")
	ErrSessionNotFound    = errors.New("session not found")
	ErrPlaceNotFound      = errors.New("place not found")

	// ErrSourceDisabled is returned by a place source without credentials.
	ErrSourceDisabled = errors.New("place source disabled")
	ErrSourceStatus   = errors.New("place source returned an error status")

	ErrInvalidBooking  = errors.New("invalid booking request")
	ErrBookingNotFound = errors.New("booking not found")
	ErrPaymentGateway  = errors.New("payment creation failed")
)
