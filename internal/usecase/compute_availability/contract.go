package compute_availability

import (
	"context"

	"github.com/kairovix/labsched/internal/domain"
)

// ReservationRepository is the store surface the engine needs: one fetch per
// equipment, never one per slot
type ReservationRepository interface {
	GetByEquipment(ctx context.Context, equipment string) ([]*domain.Reservation, error)
}

// Catalog resolves equipment and its slot labels
type Catalog interface {
	Get(name string) (*domain.Equipment, error)
}

// Logger is the logging surface used by the use case
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
