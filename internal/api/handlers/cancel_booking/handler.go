package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kairovix/labsched/internal/api/handlers"
	"github.com/kairovix/labsched/internal/api/middleware"
	"github.com/kairovix/labsched/internal/service/reservations"
)

const (
	msgInvalidReservationID = "invalid reservation id"
	msgNotFound             = "reservation not found"
	msgForbidden            = "you may not cancel this reservation"
	msgStoreUnavailable     = "reservation store is temporarily unavailable"
)

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

// Handle DELETE /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "missing identity")
		return
	}

	reservationID := mux.Vars(r)["reservationId"]
	if reservationID == "" {
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	if err := h.service.Cancel(r.Context(), identity, reservationID); err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("DELETE /reservations/{id} - not found: id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("DELETE /reservations/{id} - access denied: id=%s identity=%s",
				reservationID, identity.Email)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrStorageUnavailable):
			h.logger.Error("DELETE /reservations/{id} - store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("DELETE /reservations/{id} - failed to cancel: id=%s error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - cancelled: id=%s identity=%s", reservationID, identity.Email)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
