package cancel_booking

import (
	"context"

	"github.com/kairovix/labsched/internal/domain"
)

type ReservationService interface {
	Cancel(ctx context.Context, identity domain.Identity, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
