package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/kairovix/labsched/internal/domain"
	reservationRepo "github.com/kairovix/labsched/internal/infra/storage/reservation"
	"github.com/kairovix/labsched/internal/service/reservations/models"
)

// Service lists, fetches and cancels reservations on behalf of an identity.
// Every call takes the identity explicitly; there is no ambient session state.
type Service struct {
	reservationRepo ReservationRepository
	access          AccessPolicy
	logger          Logger
}

// NewService creates the reservations service
func NewService(reservationRepo ReservationRepository, access AccessPolicy, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		access:          access,
		logger:          logger,
	}
}

// List returns the reservations visible to the identity, newest first.
// Members are scoped to their own lab in the query itself; the visibility
// predicate is applied on top so the scoping holds even if the query changes.
func (s *Service) List(ctx context.Context, identity domain.Identity, req *models.ListRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("List: identity=%s lab=%q admin=%t", identity.Email, identity.Lab, identity.IsAdmin)

	filter := domain.ReservationFilter{
		Equipment: req.Equipment,
		StartDate: req.StartDate,
	}

	if identity.IsAdmin {
		filter.Lab = req.Lab
	} else {
		lab := identity.Lab
		filter.Lab = &lab
	}

	reservations, err := s.reservationRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for identity=%s: %v", identity.Email, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrStorageUnavailable, err)
	}

	visible := s.access.Visible(identity)
	scoped := make([]*domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if visible(r) {
			scoped = append(scoped, r)
		}
	}

	s.logger.Info("List: returning %d reservation(s) for identity=%s", len(scoped), identity.Email)
	return models.FromDomainReservationList(scoped), nil
}

// GetByID returns one reservation if the identity may see it
func (s *Service) GetByID(ctx context.Context, identity domain.Identity, id string) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: id=%s identity=%s", id, identity.Email)

	reservation, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.access.Visible(identity)(reservation) {
		s.logger.Warn("GetByID: access denied for identity=%s to reservation id=%s", identity.Email, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(reservation), nil
}

// Cancel deletes a reservation if the identity's cancel predicate allows it.
// Plain delete: cancellation carries no ordering requirement relative to
// other bookings, and a cancelled interval is immediately bookable again.
func (s *Service) Cancel(ctx context.Context, identity domain.Identity, id string) error {
	s.logger.Info("Cancel: id=%s identity=%s", id, identity.Email)

	reservation, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	if !s.access.MayCancel(identity, reservation) {
		s.logger.Warn("Cancel: access denied for identity=%s to reservation id=%s (lab=%q requester=%s)",
			identity.Email, id, reservation.Lab, reservation.RequesterEmail)
		return ErrAccessDenied
	}

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			// Deleted between fetch and delete; same outcome for the caller
			s.logger.Warn("Cancel: reservation id=%s vanished before delete", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrStorageUnavailable, err)
	}

	s.logger.Info("Cancel: reservation id=%s cancelled by identity=%s", id, identity.Email)
	return nil
}

func (s *Service) fetch(ctx context.Context, id string) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("fetch: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: fetch - repository error: %v", ErrStorageUnavailable, err)
	}
	return reservation, nil
}
