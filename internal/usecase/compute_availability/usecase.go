package compute_availability

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kairovix/labsched/internal/catalog"
)

// UseCase computes per-slot availability for one piece of equipment against
// the live reservation set. It shares the exact overlap predicate with the
// admission workflow, so what it displays and what admission decides agree.
type UseCase struct {
	reservationRepo ReservationRepository
	catalog         Catalog
	logger          Logger
}

// NewUseCase creates the availability use case
func NewUseCase(reservationRepo ReservationRepository, cat Catalog, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalog:         cat,
		logger:          logger,
	}
}

// Execute computes the availability map for req.Equipment.
// With a nil interval every slot reports StatusUnknown and no conflict
// computation happens: callers must not treat unparsed input as free.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(req.Equipment) == "" {
		return nil, fmt.Errorf("%w: equipment is required", ErrInvalidInput)
	}

	equipment, err := uc.catalog.Get(req.Equipment)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownEquipment) {
			uc.logger.Warn("ComputeAvailability: unknown equipment %q", req.Equipment)
			return nil, fmt.Errorf("%w: %q", ErrUnknownEquipment, req.Equipment)
		}
		return nil, err
	}

	slots := equipment.BookableSlots()
	response := &Response{
		Equipment: equipment.Name,
		Interval:  req.Interval,
		Slots:     make([]SlotAvailability, 0, len(slots)),
	}

	// Requested range not fully specified yet: report unknown for every slot
	// without touching storage results.
	if req.Interval == nil {
		for _, slot := range slots {
			response.Slots = append(response.Slots, SlotAvailability{Slot: slot, Status: StatusUnknown})
		}
		return response, nil
	}

	// One fetch for the whole device, then group by slot. N slots must not
	// mean N storage round-trips.
	reservations, err := uc.reservationRepo.GetByEquipment(ctx, equipment.Name)
	if err != nil {
		uc.logger.Error("ComputeAvailability: failed to fetch reservations for %q: %v", equipment.Name, err)
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	grouped := groupBySlot(reservations)

	for _, slot := range slots {
		conflicts := conflictsFor(*req.Interval, grouped[slot])

		status := StatusAvailable
		if len(conflicts) > 0 {
			status = StatusBooked
		}

		response.Slots = append(response.Slots, SlotAvailability{
			Slot:      slot,
			Status:    status,
			Conflicts: conflicts,
		})
	}

	uc.logger.Info("ComputeAvailability: equipment=%q interval=%s slots=%d",
		equipment.Name, req.Interval, len(response.Slots))
	return response, nil
}
