package submit_booking

import (
	"time"

	"github.com/kairovix/labsched/internal/domain"
	submitBooking "github.com/kairovix/labsched/internal/usecase/submit_booking"
	"github.com/kairovix/labsched/pkg/types"
)

// SubmitBookingRequest is the HTTP request body. Dates are "2006-01-02",
// times are 12-hour wall clock text with AM/PM marker ("09:00 AM"), matching
// what the booking form collects.
type SubmitBookingRequest struct {
	RequesterName string  `json:"requesterName"`
	Equipment     string  `json:"equipment"`
	Slot          *string `json:"slot,omitempty"`
	StartDate     string  `json:"startDate"`
	StartTime     string  `json:"startTime"`
	EndDate       string  `json:"endDate"`
	EndTime       string  `json:"endTime"`
}

// ReservationResponse is the HTTP view of a committed reservation
type ReservationResponse struct {
	ID            string  `json:"id"`
	RequesterName string  `json:"requesterName"`
	Lab           string  `json:"lab"`
	Equipment     string  `json:"equipment"`
	Slot          *string `json:"slot,omitempty"`
	StartDate     string  `json:"startDate"`
	StartTime     string  `json:"startTime"`
	EndDate       string  `json:"endDate"`
	EndTime       string  `json:"endTime"`
	CreatedAt     string  `json:"createdAt"`
}

// ConflictResponse is the 409 payload carrying the colliding reservations
type ConflictResponse struct {
	Message   string                 `json:"message"`
	Conflicts []*ReservationResponse `json:"conflicts"`
}

// ToUseCaseRequest parses the textual dates/times and builds the use case
// request. Identity supplies requester email and lab.
func (r *SubmitBookingRequest) ToUseCaseRequest(identity domain.Identity) (*submitBooking.Request, error) {
	start, err := types.ParseDateTime12(r.StartDate, r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := types.ParseDateTime12(r.EndDate, r.EndTime)
	if err != nil {
		return nil, err
	}

	interval, err := domain.NewTimeInterval(start, end)
	if err != nil {
		return nil, err
	}

	return &submitBooking.Request{
		RequesterName:  r.RequesterName,
		RequesterEmail: identity.Email,
		Lab:            identity.Lab,
		Equipment:      r.Equipment,
		Slot:           r.Slot,
		Interval:       interval,
	}, nil
}

// FromUseCaseResponse converts the use case response to the HTTP view
func FromUseCaseResponse(resp *submitBooking.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:            resp.ID,
		RequesterName: resp.RequesterName,
		Lab:           resp.Lab,
		Equipment:     resp.Equipment,
		Slot:          resp.Slot,
		StartDate:     types.FormatDate(resp.Start),
		StartTime:     types.FormatClock12(resp.Start),
		EndDate:       types.FormatDate(resp.End),
		EndTime:       types.FormatClock12(resp.End),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}

func fromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:            r.ID,
		RequesterName: r.RequesterName,
		Lab:           r.Lab,
		Equipment:     r.Equipment,
		Slot:          r.Slot,
		StartDate:     types.FormatDate(r.Interval.Start),
		StartTime:     types.FormatClock12(r.Interval.Start),
		EndDate:       types.FormatDate(r.Interval.End),
		EndTime:       types.FormatClock12(r.Interval.End),
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
}
