package submit_booking

import (
	"errors"
	"fmt"

	"github.com/kairovix/labsched/internal/domain"
)

var (
	// ErrInvalidInput is returned for bad or missing request data
	// (empty requester name, malformed interval)
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrMissingSlot is returned when slotted equipment is submitted without a slot
	ErrMissingSlot = errors.New("submit_booking: slot selection required for slotted equipment")

	// ErrUnknownEquipment is returned when the equipment is not in the catalog
	ErrUnknownEquipment = errors.New("submit_booking: unknown equipment")

	// ErrUnknownSlot is returned when the slot is not one of the equipment's slots
	ErrUnknownSlot = errors.New("submit_booking: unknown slot")

	// ErrSlotTaken is matched by errors.Is against *ConflictError
	ErrSlotTaken = errors.New("submit_booking: requested interval conflicts with an existing reservation")

	// ErrStorageUnavailable is returned when the reservation store fails.
	// Never retried internally: a blind retry could double-submit.
	ErrStorageUnavailable = errors.New("submit_booking: reservation store unavailable")
)

// ConflictError rejects an admission and carries the colliding reservations
// so the caller can show which interval and slot is taken
type ConflictError struct {
	Conflicts []*domain.Reservation
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 1 {
		c := e.Conflicts[0]
		return fmt.Sprintf("submit_booking: %s conflicts with reservation %s %s", c.Equipment, c.ID, c.Interval)
	}
	return fmt.Sprintf("submit_booking: request conflicts with %d existing reservations", len(e.Conflicts))
}

// Is lets errors.Is(err, ErrSlotTaken) match a *ConflictError
func (e *ConflictError) Is(target error) bool {
	return target == ErrSlotTaken
}
