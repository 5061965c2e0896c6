package get_availability

import (
	computeAvailability "github.com/kairovix/labsched/internal/usecase/compute_availability"
	"github.com/kairovix/labsched/pkg/types"
)

// AvailabilityResponse is the per-slot availability view
type AvailabilityResponse struct {
	Equipment string                 `json:"equipment"`
	Slots     []SlotAvailabilityView `json:"slots"`
}

// SlotAvailabilityView is one slot's verdict
type SlotAvailabilityView struct {
	Slot      string         `json:"slot"`
	Status    string         `json:"status"` // available | booked | unknown
	Conflicts []ConflictView `json:"conflicts,omitempty"`
}

// ConflictView is the caller-facing shape of a colliding reservation
type ConflictView struct {
	ID        string  `json:"id"`
	Lab       string  `json:"lab"`
	Slot      *string `json:"slot,omitempty"`
	StartDate string  `json:"startDate"`
	StartTime string  `json:"startTime"`
	EndDate   string  `json:"endDate"`
	EndTime   string  `json:"endTime"`
}

// FromUseCaseResponse converts the use case response to the HTTP view
func FromUseCaseResponse(resp *computeAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Equipment: resp.Equipment,
		Slots:     make([]SlotAvailabilityView, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		view := SlotAvailabilityView{
			Slot:   s.Slot,
			Status: string(s.Status),
		}
		for _, c := range s.Conflicts {
			view.Conflicts = append(view.Conflicts, ConflictView{
				ID:        c.ID,
				Lab:       c.Lab,
				Slot:      c.Slot,
				StartDate: types.FormatDate(c.Interval.Start),
				StartTime: types.FormatClock12(c.Interval.Start),
				EndDate:   types.FormatDate(c.Interval.End),
				EndTime:   types.FormatClock12(c.Interval.End),
			})
		}
		out.Slots = append(out.Slots, view)
	}

	return out
}
