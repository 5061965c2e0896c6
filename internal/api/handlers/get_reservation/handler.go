package get_reservation

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/kairovix/labsched/internal/api/handlers"
	"github.com/kairovix/labsched/internal/api/middleware"
	"github.com/kairovix/labsched/internal/service/reservations"
	"github.com/kairovix/labsched/internal/service/reservations/models"
	"github.com/kairovix/labsched/pkg/types"
)

const (
	msgNotFound         = "reservation not found"
	msgForbidden        = "you may not view this reservation"
	msgStoreUnavailable = "reservation store is temporarily unavailable"
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

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "missing identity")
		return
	}

	reservationID := mux.Vars(r)["reservationId"]

	result, err := h.service.GetByID(r.Context(), identity, reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/{id} - not found: id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /reservations/{id} - access denied: id=%s identity=%s",
				reservationID, identity.Email)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrStorageUnavailable):
			h.logger.Error("GET /reservations/{id} - store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("GET /reservations/{id} - failed: id=%s error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromServiceResponse(result))
}

func fromServiceResponse(r *models.ReservationResponse) *ReservationView {
	return &ReservationView{
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
	}
}
