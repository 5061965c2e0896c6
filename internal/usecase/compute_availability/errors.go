package compute_availability

import "errors"

var (
	// ErrUnknownEquipment is returned when the equipment is not in the catalog
	ErrUnknownEquipment = errors.New("compute_availability: unknown equipment")

	// ErrInvalidInput is returned for malformed request data
	ErrInvalidInput = errors.New("compute_availability: invalid input data")

	// ErrStorageUnavailable is returned when the reservation store fails.
	// Surfaced to the caller as-is; the engine never retries.
	ErrStorageUnavailable = errors.New("compute_availability: reservation store unavailable")
)
