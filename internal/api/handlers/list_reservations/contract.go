package list_reservations

import (
	"context"

	"github.com/kairovix/labsched/internal/domain"
	"github.com/kairovix/labsched/internal/service/reservations/models"
)

type ReservationService interface {
	List(ctx context.Context, identity domain.Identity, req *models.ListRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
