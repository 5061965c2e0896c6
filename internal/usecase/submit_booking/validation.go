package submit_booking

import (
	"fmt"
	"strings"

	"github.com/kairovix/labsched/internal/domain"
)

// validateRequest checks the request fields that need no catalog or storage
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.RequesterName) == "" {
		return fmt.Errorf("%w: requester name is required", ErrInvalidInput)
	}
	if len(req.RequesterName) > domain.MaxRequesterNameLength {
		return fmt.Errorf("%w: requester name exceeds %d characters", ErrInvalidInput, domain.MaxRequesterNameLength)
	}

	if strings.TrimSpace(req.Lab) == "" {
		return fmt.Errorf("%w: lab is required", ErrInvalidInput)
	}
	if len(req.Lab) > domain.MaxLabNameLength {
		return fmt.Errorf("%w: lab exceeds %d characters", ErrInvalidInput, domain.MaxLabNameLength)
	}

	if strings.TrimSpace(req.Equipment) == "" {
		return fmt.Errorf("%w: equipment is required", ErrInvalidInput)
	}

	// Re-validate through the constructor so a hand-built zero interval
	// cannot slip past admission.
	if _, err := domain.NewTimeInterval(req.Interval.Start, req.Interval.End); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateSlotSelection enforces the slotted/unslotted contract:
// slotted equipment needs a slot from its catalog list, unslotted must not
// carry one
func validateSlotSelection(equipment *domain.Equipment, slot *string) error {
	if !equipment.IsSlotted() {
		if slot != nil && strings.TrimSpace(*slot) != "" {
			return fmt.Errorf("%w: %q of %q (equipment has no slots)", ErrUnknownSlot, *slot, equipment.Name)
		}
		return nil
	}

	if slot == nil || strings.TrimSpace(*slot) == "" {
		return fmt.Errorf("%w: %q", ErrMissingSlot, equipment.Name)
	}
	if !equipment.HasSlot(*slot) {
		return fmt.Errorf("%w: %q of %q", ErrUnknownSlot, *slot, equipment.Name)
	}
	return nil
}

// findConflicts returns the existing reservations overlapping the requested
// interval. Same half-open predicate as availability display; the two must
// never disagree.
func findConflicts(requested domain.TimeInterval, existing []*domain.Reservation) []*domain.Reservation {
	var conflicts []*domain.Reservation
	for _, r := range existing {
		if requested.Overlaps(r.Interval) {
			conflicts = append(conflicts, r)
		}
	}
	return conflicts
}
