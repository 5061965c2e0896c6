package submit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kairovix/labsched/internal/catalog"
	"github.com/kairovix/labsched/internal/domain"
)

// UseCase admits booking requests. The conflict set is re-derived against the
// store inside a serializable transaction, independent of whatever
// availability snapshot the caller observed earlier; display-time availability
// can be stale, admission cannot.
type UseCase struct {
	reservationRepo ReservationRepository
	catalog         Catalog
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the admission use case
func NewUseCase(
	reservationRepo ReservationRepository,
	cat Catalog,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalog:         cat,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute validates and commits one booking request.
// A successful call performs exactly one durable write; a failed call
// performs zero writes.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: requester=%q lab=%q equipment=%q interval=%s",
		req.RequesterName, req.Lab, req.Equipment, req.Interval)

	// 1. Local validation, no storage touched
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Resolve equipment and slot against the catalog
	equipment, err := uc.catalog.Get(req.Equipment)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownEquipment) {
			uc.logger.Warn("SubmitBooking: unknown equipment %q", req.Equipment)
			return nil, fmt.Errorf("%w: %q", ErrUnknownEquipment, req.Equipment)
		}
		return nil, err
	}

	if err := validateSlotSelection(equipment, req.Slot); err != nil {
		uc.logger.Warn("SubmitBooking: slot validation failed: %v", err)
		return nil, err
	}

	// Unslotted equipment stores a NULL slot
	var slot *string
	if equipment.IsSlotted() {
		slot = req.Slot
	}

	var result *domain.Reservation

	// 3-5. Authoritative conflict check + insert as one atomic unit per
	// (equipment, slot). The repository locks the pair's rows (FOR UPDATE)
	// inside the serializable transaction.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.reservationRepo.GetByEquipmentAndSlot(txCtx, equipment.Name, slot)
		if err != nil {
			uc.logger.Error("SubmitBooking: failed to fetch reservations for %q: %v", equipment.Name, err)
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}

		if conflicts := findConflicts(req.Interval, existing); len(conflicts) > 0 {
			uc.logger.Warn("SubmitBooking: %d conflict(s) for equipment=%q slot=%q interval=%s",
				len(conflicts), equipment.Name, slotLabel(slot), req.Interval)
			return &ConflictError{Conflicts: conflicts}
		}

		reservation := &domain.Reservation{
			ID:             uuid.NewString(),
			RequesterName:  req.RequesterName,
			RequesterEmail: req.RequesterEmail,
			Lab:            req.Lab,
			Equipment:      equipment.Name,
			Slot:           slot,
			Interval:       req.Interval,
			CreatedAt:      uc.timeProvider.Now(),
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("SubmitBooking: failed to persist reservation: %v", err)
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.logger.Info("SubmitBooking: confirmed reservation id=%s equipment=%q slot=%q",
		result.ID, result.Equipment, result.SlotLabel())
	return fromDomain(result), nil
}

// mapTxError keeps the typed errors produced inside the transaction callback
// and classifies everything else (begin and commit failures, including
// serialization aborts when two transactions race on an empty slot) as a
// storage failure. Never retried here: a blind retry could double-submit.
func (uc *UseCase) mapTxError(err error) error {
	var conflict *ConflictError
	if errors.As(err, &conflict) || errors.Is(err, ErrStorageUnavailable) {
		return err
	}
	uc.logger.Error("SubmitBooking: transaction failed: %v", err)
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

func slotLabel(slot *string) string {
	if slot == nil {
		return domain.AnonymousSlot
	}
	return *slot
}
