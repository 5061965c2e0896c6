package get_availability

import (
	"context"

	computeAvailability "github.com/kairovix/labsched/internal/usecase/compute_availability"
)

type AvailabilityUseCase interface {
	Execute(ctx context.Context, req *computeAvailability.Request) (*computeAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
