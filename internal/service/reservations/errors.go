package reservations

import "errors"

var (
	// ErrReservationNotFound is returned when no reservation matches the id
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied is returned when the identity may not see or cancel the reservation
	ErrAccessDenied = errors.New("access denied")

	// ErrStorageUnavailable is returned when the reservation store fails
	ErrStorageUnavailable = errors.New("reservations service: reservation store unavailable")
)
