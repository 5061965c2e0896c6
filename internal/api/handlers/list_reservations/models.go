package list_reservations

import (
	"time"

	"github.com/kairovix/labsched/internal/service/reservations/models"
	"github.com/kairovix/labsched/pkg/types"
)

// ReservationView is the HTTP view of one reservation
type ReservationView struct {
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

// ListResponse wraps a listing
type ListResponse struct {
	Reservations []*ReservationView `json:"reservations"`
	Total        int                `json:"total"`
}

// FromServiceResponse converts the service listing to the HTTP view
func FromServiceResponse(resp *models.ReservationListResponse) *ListResponse {
	out := &ListResponse{
		Reservations: make([]*ReservationView, 0, len(resp.Reservations)),
		Total:        resp.Total,
	}
	for _, r := range resp.Reservations {
		out.Reservations = append(out.Reservations, &ReservationView{
			ID:            r.ID,
			RequesterName: r.RequesterName,
			Lab:           r.Lab,
			Equipment:     r.Equipment,
			Slot:          r.Slot,
			StartDate:     types.FormatDate(r.Start),
			StartTime:     types.FormatClock12(r.Start),
			EndDate:       types.FormatDate(r.End),
			EndTime:       types.FormatClock12(r.End),
			CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}
