package list_reservations

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/kairovix/labsched/internal/api/handlers"
	"github.com/kairovix/labsched/internal/api/middleware"
	"github.com/kairovix/labsched/internal/domain"
	"github.com/kairovix/labsched/internal/service/reservations"
	"github.com/kairovix/labsched/internal/service/reservations/models"
)

const (
	msgInvalidDate      = "invalid date filter, expected YYYY-MM-DD"
	msgStoreUnavailable = "reservation store is temporarily unavailable"
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

// Handle GET /api/v1/reservations
// Query: equipment, date (YYYY-MM-DD), lab (admins only; members are always
// scoped to their own lab).
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "missing identity")
		return
	}

	req := &models.ListRequest{}
	q := r.URL.Query()

	if equipment := strings.TrimSpace(q.Get("equipment")); equipment != "" {
		req.Equipment = &equipment
	}
	if lab := strings.TrimSpace(q.Get("lab")); lab != "" {
		req.Lab = &lab
	}
	if dateText := strings.TrimSpace(q.Get("date")); dateText != "" {
		date, err := time.ParseInLocation(domain.DateFormat, dateText, time.Local)
		if err != nil {
			h.logger.Warn("GET /reservations - invalid date filter %q", dateText)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &date
	}

	result, err := h.service.List(r.Context(), identity, req)
	if err != nil {
		if errors.Is(err, reservations.ErrStorageUnavailable) {
			h.logger.Error("GET /reservations - store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)
			return
		}
		h.logger.Error("GET /reservations - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
