package compute_availability

import "github.com/kairovix/labsched/internal/domain"

// SlotStatus is the availability verdict for one slot
type SlotStatus string

const (
	// StatusAvailable means no live reservation overlaps the requested interval
	StatusAvailable SlotStatus = "available"
	// StatusBooked means at least one live reservation overlaps
	StatusBooked SlotStatus = "booked"
	// StatusUnknown means the caller has not supplied a complete interval yet.
	// Distinct from available: unparsed input must never read as free.
	StatusUnknown SlotStatus = "unknown"
)

// Request asks for per-slot availability of one piece of equipment.
// A nil Interval means the caller's range is not fully specified.
type Request struct {
	Equipment string
	Interval  *domain.TimeInterval
}

// Response carries the per-slot verdicts in catalog slot order
type Response struct {
	Equipment string
	Interval  *domain.TimeInterval
	Slots     []SlotAvailability
}

// SlotAvailability is the verdict and conflict set for one slot
type SlotAvailability struct {
	Slot      string // empty for the anonymous slot of unslotted equipment
	Status    SlotStatus
	Conflicts []*domain.Reservation
}
