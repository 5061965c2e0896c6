package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kairovix/labsched/internal/access"
	"github.com/kairovix/labsched/internal/domain"
	reservationRepo "github.com/kairovix/labsched/internal/infra/storage/reservation"
	"github.com/kairovix/labsched/internal/service/reservations/models"
	"github.com/kairovix/labsched/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	reservations map[string]*domain.Reservation
	listErr      error
	deleted      []string
}

func newFakeRepo(reservations ...*domain.Reservation) *fakeRepo {
	f := &fakeRepo{reservations: make(map[string]*domain.Reservation)}
	for _, r := range reservations {
		f.reservations[r.ID] = r
	}
	return f
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeRepo) ListWithFilter(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Reservation
	for _, r := range f.reservations {
		if filter.Lab != nil && r.Lab != *filter.Lab {
			continue
		}
		if filter.Equipment != nil && r.Equipment != *filter.Equipment {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	delete(f.reservations, id)
	f.deleted = append(f.deleted, id)
	return nil
}

var (
	alice = domain.Identity{Email: "alice@example.org", Lab: "Smith Lab"}
	bob   = domain.Identity{Email: "bob@example.org", Lab: "Smith Lab"}
	carol = domain.Identity{Email: "carol@example.org", Lab: "Jones Lab"}
	admin = domain.Identity{Email: "root@example.org", Lab: "Core Facility", IsAdmin: true}
)

func testReservation(t *testing.T, id string, owner domain.Identity, equipment string) *domain.Reservation {
	t.Helper()
	iv, err := domain.NewTimeInterval(
		time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local),
		time.Date(2025, 10, 15, 11, 0, 0, 0, time.Local),
	)
	require.NoError(t, err)
	return &domain.Reservation{
		ID:             id,
		RequesterName:  "Someone",
		RequesterEmail: owner.Email,
		Lab:            owner.Lab,
		Equipment:      equipment,
		Interval:       iv,
		CreatedAt:      time.Date(2025, 10, 1, 12, 0, 0, 0, time.Local),
	}
}

func newService(t *testing.T, policy access.CancelPolicy, repo *fakeRepo) *Service {
	t.Helper()
	filter, err := access.NewFilter(policy)
	require.NoError(t, err)
	return NewService(repo, filter, nopLogger{})
}

func TestList_LabScoping(t *testing.T) {
	repo := newFakeRepo(
		testReservation(t, "r1", alice, "Centrifuge"),
		testReservation(t, "r2", bob, "IncuCyte"),
		testReservation(t, "r3", carol, "Centrifuge"),
	)
	svc := newService(t, access.CancelOwn, repo)

	t.Run("member sees own lab only", func(t *testing.T) {
		resp, err := svc.List(context.Background(), alice, &models.ListRequest{})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
		for _, r := range resp.Reservations {
			assert.Equal(t, "Smith Lab", r.Lab)
		}
	})

	t.Run("member cannot widen scope with a lab filter", func(t *testing.T) {
		resp, err := svc.List(context.Background(), alice, &models.ListRequest{Lab: ptr.Ptr("Jones Lab")})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total, "requested lab is ignored for members")
		for _, r := range resp.Reservations {
			assert.Equal(t, "Smith Lab", r.Lab)
		}
	})

	t.Run("admin sees every lab", func(t *testing.T) {
		resp, err := svc.List(context.Background(), admin, &models.ListRequest{})
		require.NoError(t, err)
		assert.Equal(t, 3, resp.Total)
	})

	t.Run("admin may narrow to one lab", func(t *testing.T) {
		resp, err := svc.List(context.Background(), admin, &models.ListRequest{Lab: ptr.Ptr("Jones Lab")})
		require.NoError(t, err)
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, "r3", resp.Reservations[0].ID)
	})

	t.Run("equipment filter applies within scope", func(t *testing.T) {
		resp, err := svc.List(context.Background(), alice, &models.ListRequest{Equipment: ptr.Ptr("Centrifuge")})
		require.NoError(t, err)
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, "r1", resp.Reservations[0].ID)
	})

	t.Run("repository failure", func(t *testing.T) {
		failing := newFakeRepo()
		failing.listErr = errors.New("connection refused")
		svc := newService(t, access.CancelOwn, failing)

		_, err := svc.List(context.Background(), alice, &models.ListRequest{})
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})
}

func TestGetByID(t *testing.T) {
	repo := newFakeRepo(
		testReservation(t, "r1", alice, "Centrifuge"),
		testReservation(t, "r3", carol, "Centrifuge"),
	)
	svc := newService(t, access.CancelOwn, repo)

	t.Run("visible to lab mate", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), bob, "r1")
		require.NoError(t, err)
		assert.Equal(t, "r1", resp.ID)
	})

	t.Run("hidden across labs", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), bob, "r3")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin sees across labs", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), admin, "r3")
		require.NoError(t, err)
		assert.Equal(t, "r3", resp.ID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), alice, "missing")
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("own policy allows only the requester", func(t *testing.T) {
		repo := newFakeRepo(testReservation(t, "r1", alice, "Centrifuge"))
		svc := newService(t, access.CancelOwn, repo)

		err := svc.Cancel(context.Background(), bob, "r1")
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, repo.deleted)

		err = svc.Cancel(context.Background(), alice, "r1")
		require.NoError(t, err)
		assert.Equal(t, []string{"r1"}, repo.deleted)
	})

	t.Run("lab policy allows lab mates", func(t *testing.T) {
		repo := newFakeRepo(testReservation(t, "r1", alice, "Centrifuge"))
		svc := newService(t, access.CancelLab, repo)

		err := svc.Cancel(context.Background(), bob, "r1")
		require.NoError(t, err)
		assert.Equal(t, []string{"r1"}, repo.deleted)
	})

	t.Run("lab policy still blocks other labs", func(t *testing.T) {
		repo := newFakeRepo(testReservation(t, "r1", alice, "Centrifuge"))
		svc := newService(t, access.CancelLab, repo)

		err := svc.Cancel(context.Background(), carol, "r1")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin cancels anything", func(t *testing.T) {
		repo := newFakeRepo(testReservation(t, "r1", alice, "Centrifuge"))
		svc := newService(t, access.CancelOwn, repo)

		err := svc.Cancel(context.Background(), admin, "r1")
		require.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newService(t, access.CancelOwn, repo)

		err := svc.Cancel(context.Background(), alice, "missing")
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}
