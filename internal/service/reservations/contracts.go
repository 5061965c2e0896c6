package reservations

import (
	"context"

	"github.com/kairovix/labsched/internal/domain"
)

// ReservationRepository is the store surface the service needs
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	ListWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	Delete(ctx context.Context, id string) error
}

// AccessPolicy scopes what a caller may see or cancel
type AccessPolicy interface {
	Visible(identity domain.Identity) func(*domain.Reservation) bool
	MayCancel(identity domain.Identity, r *domain.Reservation) bool
}

// Logger is the logging surface used by the service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
