package get_reservation

import (
	"context"

	"github.com/kairovix/labsched/internal/domain"
	"github.com/kairovix/labsched/internal/service/reservations/models"
)

type ReservationService interface {
	GetByID(ctx context.Context, identity domain.Identity, id string) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
