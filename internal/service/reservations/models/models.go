package models

import (
	"time"

	"github.com/kairovix/labsched/internal/domain"
)

// ListRequest narrows a visible-reservations listing.
// Lab is only honored for administrators; members are always scoped to their
// own lab regardless of what they ask for.
type ListRequest struct {
	Lab       *string
	Equipment *string
	StartDate *time.Time
}

// ReservationResponse is the service-level view of one reservation
type ReservationResponse struct {
	ID             string
	RequesterName  string
	RequesterEmail string
	Lab            string
	Equipment      string
	Slot           *string
	Start          time.Time
	End            time.Time
	CreatedAt      time.Time
}

// ReservationListResponse wraps a listing
type ReservationListResponse struct {
	Reservations []*ReservationResponse
	Total        int
}

// FromDomainReservation converts one domain reservation
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:             r.ID,
		RequesterName:  r.RequesterName,
		RequesterEmail: r.RequesterEmail,
		Lab:            r.Lab,
		Equipment:      r.Equipment,
		Slot:           r.Slot,
		Start:          r.Interval.Start,
		End:            r.Interval.End,
		CreatedAt:      r.CreatedAt,
	}
}

// FromDomainReservationList converts a listing
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, FromDomainReservation(r))
	}
	return &ReservationListResponse{Reservations: out, Total: len(out)}
}
