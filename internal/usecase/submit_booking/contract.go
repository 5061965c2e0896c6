package submit_booking

import (
	"context"
	"time"

	"github.com/kairovix/labsched/internal/domain"
)

// ReservationRepository is the store surface admission needs
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByEquipmentAndSlot(ctx context.Context, equipment string, slot *string) ([]*domain.Reservation, error)
}

// Catalog resolves equipment and validates slot selections
type Catalog interface {
	Get(name string) (*domain.Equipment, error)
}

// TransactionManager serializes the conflict check and the insert.
// Both run in one serializable transaction so two concurrent submissions for
// the same (equipment, slot) cannot both pass the check.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (swapped out in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface used by the use case
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time source
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
