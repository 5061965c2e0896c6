package submit_booking

import (
	"time"

	"github.com/kairovix/labsched/internal/domain"
)

// Request carries a booking intent into admission.
// Slot must be set iff the equipment is slotted.
type Request struct {
	RequesterName  string
	RequesterEmail string
	Lab            string
	Equipment      string
	Slot           *string
	Interval       domain.TimeInterval
}

// Response is the committed reservation
type Response struct {
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

func fromDomain(res *domain.Reservation) *Response {
	return &Response{
		ID:             res.ID,
		RequesterName:  res.RequesterName,
		RequesterEmail: res.RequesterEmail,
		Lab:            res.Lab,
		Equipment:      res.Equipment,
		Slot:           res.Slot,
		Start:          res.Interval.Start,
		End:            res.Interval.End,
		CreatedAt:      res.CreatedAt,
	}
}
