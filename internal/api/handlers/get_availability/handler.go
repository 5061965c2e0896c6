package get_availability

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/kairovix/labsched/internal/api/handlers"
	"github.com/kairovix/labsched/internal/domain"
	computeAvailability "github.com/kairovix/labsched/internal/usecase/compute_availability"
	"github.com/kairovix/labsched/pkg/types"
)

const (
	msgUnknownEquipment = "unknown equipment"
	msgInvalidDateTime  = "invalid date/time, expected date YYYY-MM-DD and 12-hour time like 09:00 AM"
	msgInvalidInterval  = "end must be after start"
	msgStoreUnavailable = "reservation store is temporarily unavailable"
)

type Handler struct {
	useCase AvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase AvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/equipment/{equipment}/availability
// Query: startDate, startTime, endDate, endTime (12-hour clock text).
// When all four are absent the requested range is treated as unspecified and
// every slot reports status "unknown".
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	equipment := mux.Vars(r)["equipment"]

	interval, err := intervalFromQuery(r)
	if err != nil {
		h.logger.Warn("GET /equipment/{equipment}/availability - bad interval: %v", err)
		if errors.Is(err, domain.ErrInvalidInterval) {
			handlers.RespondBadRequest(w, msgInvalidInterval)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDateTime)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), &computeAvailability.Request{
		Equipment: equipment,
		Interval:  interval,
	})
	if err != nil {
		switch {
		case errors.Is(err, computeAvailability.ErrUnknownEquipment):
			h.logger.Warn("GET /equipment/{equipment}/availability - unknown equipment: %q", equipment)
			handlers.RespondNotFound(w, msgUnknownEquipment)

		case errors.Is(err, computeAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, computeAvailability.ErrStorageUnavailable):
			h.logger.Error("GET /equipment/{equipment}/availability - store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("GET /equipment/{equipment}/availability - failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// intervalFromQuery builds the requested interval from query parameters.
// All four blank means "not specified yet" (nil interval); anything partial
// or unparseable is an error.
func intervalFromQuery(r *http.Request) (*domain.TimeInterval, error) {
	q := r.URL.Query()
	startDate := strings.TrimSpace(q.Get("startDate"))
	startTime := strings.TrimSpace(q.Get("startTime"))
	endDate := strings.TrimSpace(q.Get("endDate"))
	endTime := strings.TrimSpace(q.Get("endTime"))

	if startDate == "" && startTime == "" && endDate == "" && endTime == "" {
		return nil, nil
	}

	start, err := types.ParseDateTime12(startDate, startTime)
	if err != nil {
		return nil, err
	}
	end, err := types.ParseDateTime12(endDate, endTime)
	if err != nil {
		return nil, err
	}

	interval, err := domain.NewTimeInterval(start, end)
	if err != nil {
		return nil, err
	}
	return &interval, nil
}
