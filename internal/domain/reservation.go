package domain

import "time"

// Reservation represents a committed booking of one equipment+slot for a time
// interval. Reservations are never edited in place: changing one is
// cancel-then-resubmit. The store is the sole authority for their lifetime.
type Reservation struct {
	ID             string // uuid, generated at creation, never reused
	RequesterName  string
	RequesterEmail string
	Lab            string
	Equipment      string
	Slot           *string // set iff the equipment is slotted
	Interval       TimeInterval
	CreatedAt      time.Time // display ordering only, not used for correctness
}

// SlotLabel returns the slot label conflicts are keyed on,
// AnonymousSlot for unslotted equipment
func (r *Reservation) SlotLabel() string {
	if r.Slot == nil {
		return AnonymousSlot
	}
	return *r.Slot
}

// ReservationFilter narrows listing queries.
// Nil fields mean "no restriction".
type ReservationFilter struct {
	Lab       *string
	Equipment *string
	StartDate *time.Time // reservations whose interval starts on this calendar day
}
