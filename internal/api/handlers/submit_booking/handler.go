package submit_booking

import (
	"errors"
	"net/http"

	"github.com/kairovix/labsched/internal/api/handlers"
	"github.com/kairovix/labsched/internal/api/middleware"
	submitBooking "github.com/kairovix/labsched/internal/usecase/submit_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateTime    = "invalid date/time, expected date YYYY-MM-DD and 12-hour time like 09:00 AM"
	msgMissingSlot        = "a slot selection is required for this equipment"
	msgUnknownEquipment   = "unknown equipment"
	msgUnknownSlot        = "unknown slot for this equipment"
	msgConflict           = "the requested interval is already booked"
	msgStoreUnavailable   = "reservation store is temporarily unavailable"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "missing identity")
		return
	}

	var req SubmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(identity)
	if err != nil {
		h.logger.Warn("POST /reservations - failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflict *submitBooking.ConflictError

		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /reservations - conflict: equipment=%q requester=%s",
				req.Equipment, identity.Email)
			payload := ConflictResponse{Message: msgConflict}
			for _, c := range conflict.Conflicts {
				payload.Conflicts = append(payload.Conflicts, fromDomainReservation(c))
			}
			handlers.RespondJSON(w, http.StatusConflict, payload)

		case errors.Is(err, submitBooking.ErrMissingSlot):
			h.logger.Warn("POST /reservations - missing slot: equipment=%q", req.Equipment)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgMissingSlot)

		case errors.Is(err, submitBooking.ErrUnknownEquipment):
			h.logger.Warn("POST /reservations - unknown equipment: %q", req.Equipment)
			handlers.RespondNotFound(w, msgUnknownEquipment)

		case errors.Is(err, submitBooking.ErrUnknownSlot):
			h.logger.Warn("POST /reservations - unknown slot: equipment=%q", req.Equipment)
			handlers.RespondBadRequest(w, msgUnknownSlot)

		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /reservations - invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, submitBooking.ErrStorageUnavailable):
			h.logger.Error("POST /reservations - store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("POST /reservations - failed to submit booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - reservation created: id=%s equipment=%q requester=%s",
		result.ID, result.Equipment, identity.Email)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
