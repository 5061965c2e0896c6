package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kairovix/labsched/internal/catalog"
	"github.com/kairovix/labsched/internal/domain"
	"github.com/kairovix/labsched/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// memoryRepo is an in-memory reservation store. Safe for concurrent use only
// through memoryTxManager, which serializes the check-then-insert sections the
// way the serializable transaction does in production.
type memoryRepo struct {
	mu           sync.Mutex
	reservations []*domain.Reservation
	createErr    error
	fetchErr     error
}

func sameSlot(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (m *memoryRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *res
	m.reservations = append(m.reservations, &stored)
	return &stored, nil
}

func (m *memoryRepo) GetByEquipmentAndSlot(_ context.Context, equipment string, slot *string) ([]*domain.Reservation, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Reservation
	for _, r := range m.reservations {
		if r.Equipment == equipment && sameSlot(r.Slot, slot) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryRepo) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.reservations {
		if r.ID == id {
			m.reservations = append(m.reservations[:i], m.reservations[i+1:]...)
			return
		}
	}
}

// memoryTxManager runs each unit under one mutex, mimicking the mutual
// exclusion a serializable transaction provides per (equipment, slot)
type memoryTxManager struct {
	mu sync.Mutex
}

func (m *memoryTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Entry{
		{Name: "IncuCyte", Slots: []string{"Top Left", "Top Right"}},
		{Name: "Centrifuge"},
	})
	require.NoError(t, err)
	return c
}

func newTestUseCase(t *testing.T, repo *memoryRepo) *UseCase {
	t.Helper()
	uc := NewUseCase(repo, testCatalog(t), &memoryTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 10, 1, 12, 0, 0, 0, time.Local)}
	return uc
}

func interval(t *testing.T, startHour, endHour int) domain.TimeInterval {
	t.Helper()
	iv, err := domain.NewTimeInterval(
		time.Date(2025, 10, 15, startHour, 0, 0, 0, time.Local),
		time.Date(2025, 10, 15, endHour, 0, 0, 0, time.Local),
	)
	require.NoError(t, err)
	return iv
}

func validRequest(t *testing.T, slot *string, startHour, endHour int) *Request {
	t.Helper()
	equipment := "Centrifuge"
	if slot != nil {
		equipment = "IncuCyte"
	}
	return &Request{
		RequesterName:  "Alice",
		RequesterEmail: "alice@example.org",
		Lab:            "Smith Lab",
		Equipment:      equipment,
		Slot:           slot,
		Interval:       interval(t, startHour, endHour),
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &memoryRepo{}
	uc := newTestUseCase(t, repo)

	resp, err := uc.Execute(context.Background(), validRequest(t, ptr.Ptr("Top Left"), 9, 11))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "IncuCyte", resp.Equipment)
	require.NotNil(t, resp.Slot)
	assert.Equal(t, "Top Left", *resp.Slot)
	assert.Equal(t, time.Date(2025, 10, 1, 12, 0, 0, 0, time.Local), resp.CreatedAt)
	assert.Len(t, repo.reservations, 1)
}

func TestExecute_UnslottedStoresNilSlot(t *testing.T) {
	repo := &memoryRepo{}
	uc := newTestUseCase(t, repo)

	resp, err := uc.Execute(context.Background(), validRequest(t, nil, 9, 11))
	require.NoError(t, err)
	assert.Nil(t, resp.Slot)
	require.Len(t, repo.reservations, 1)
	assert.Nil(t, repo.reservations[0].Slot)
}

func TestExecute_ConflictCarriesExistingReservation(t *testing.T) {
	repo := &memoryRepo{}
	uc := newTestUseCase(t, repo)

	first, err := uc.Execute(context.Background(), validRequest(t, ptr.Ptr("Top Left"), 9, 11))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validRequest(t, ptr.Ptr("Top Left"), 10, 12))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotTaken)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, conflict.Conflicts, 1)
	assert.Equal(t, first.ID, conflict.Conflicts[0].ID)

	// The failed submission wrote nothing
	assert.Len(t, repo.reservations, 1)
}

func TestExecute_AdjacentIntervalsBothAdmitted(t *testing.T) {
	repo := &memoryRepo{}
	uc := newTestUseCase(t, repo)

	_, err := uc.Execute(context.Background(), validRequest(t, ptr.Ptr("Top Left"), 9, 11))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validRequest(t, ptr.Ptr("Top Left"), 11, 13))
	require.NoError(t, err, "back-to-back reservations must not conflict")
	assert.Len(t, repo.reservations, 2)
}

func TestExecute_IndependentSlotsDoNotConflict(t *testing.T) {
	repo := &memoryRepo{}
	uc := newTestUseCase(t, repo)

	_, err := uc.Execute(context.Background(), validRequest(t, ptr.Ptr("Top Left"), 9, 11))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validRequest(t, ptr.Ptr("Top Right"), 9, 11))
	require.NoError(t, err, "same interval on a different slot is independent")
	assert.Len(t, repo.reservations, 2)
}

func TestExecute_CancelThenResubmit(t *testing.T) {
	repo := &memoryRepo{}
	uc := newTestUseCase(t, repo)

	first, err := uc.Execute(context.Background(), validRequest(t, ptr.Ptr("Top Left"), 9, 11))
	require.NoError(t, err)

	repo.remove(first.ID)

	_, err = uc.Execute(context.Background(), validRequest(t, ptr.Ptr("Top Left"), 9, 11))
	require.NoError(t, err, "a cancelled interval is immediately bookable again")
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{
			name:    "empty requester name",
			mutate:  func(r *Request) { r.RequesterName = "  " },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty lab",
			mutate:  func(r *Request) { r.Lab = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty equipment",
			mutate:  func(r *Request) { r.Equipment = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero-length interval",
			mutate:  func(r *Request) { r.Interval.End = r.Interval.Start },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "inverted interval",
			mutate:  func(r *Request) { r.Interval.Start, r.Interval.End = r.Interval.End, r.Interval.Start },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown equipment",
			mutate:  func(r *Request) { r.Equipment = "Mass Spec" },
			wantErr: ErrUnknownEquipment,
		},
		{
			name:    "slotted without slot",
			mutate:  func(r *Request) { r.Slot = nil },
			wantErr: ErrMissingSlot,
		},
		{
			name:    "slot not in catalog",
			mutate:  func(r *Request) { r.Slot = ptr.Ptr("Bottom Middle") },
			wantErr: ErrUnknownSlot,
		},
		{
			name: "slot on unslotted equipment",
			mutate: func(r *Request) {
				r.Equipment = "Centrifuge"
				r.Slot = ptr.Ptr("Top Left")
			},
			wantErr: ErrUnknownSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryRepo{}
			uc := newTestUseCase(t, repo)

			req := validRequest(t, ptr.Ptr("Top Left"), 9, 11)
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.reservations, "rejected submissions must write nothing")
		})
	}
}

func TestExecute_StorageFailures(t *testing.T) {
	t.Run("fetch failure", func(t *testing.T) {
		repo := &memoryRepo{fetchErr: errors.New("connection refused")}
		uc := newTestUseCase(t, repo)

		_, err := uc.Execute(context.Background(), validRequest(t, ptr.Ptr("Top Left"), 9, 11))
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})

	t.Run("insert failure", func(t *testing.T) {
		repo := &memoryRepo{createErr: errors.New("connection refused")}
		uc := newTestUseCase(t, repo)

		_, err := uc.Execute(context.Background(), validRequest(t, ptr.Ptr("Top Left"), 9, 11))
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})
}

// commitFailingTxManager runs the unit but fails at commit, the way a
// serializable transaction aborts when a concurrent writer got there first
type commitFailingTxManager struct {
	commitErr error
}

func (m *commitFailingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return m.commitErr
}

func TestExecute_CommitFailureMapsToStorageUnavailable(t *testing.T) {
	repo := &memoryRepo{}
	uc := NewUseCase(repo, testCatalog(t), &commitFailingTxManager{
		commitErr: fmt.Errorf("txmanager: commit transaction: %w",
			errors.New("pq: could not serialize access due to read/write dependencies among transactions")),
	}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest(t, ptr.Ptr("Top Left"), 9, 11))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable, "commit aborts must surface as a typed storage failure")

	var conflict *ConflictError
	assert.False(t, errors.As(err, &conflict))
}

func TestExecute_ConflictSurvivesTxManagerWrapping(t *testing.T) {
	repo := &memoryRepo{}
	seeded := newTestUseCase(t, repo)
	first, err := seeded.Execute(context.Background(), validRequest(t, ptr.Ptr("Top Left"), 9, 11))
	require.NoError(t, err)

	// The conflict is found inside the unit, so the commit error is never reached
	uc := NewUseCase(repo, testCatalog(t), &commitFailingTxManager{
		commitErr: errors.New("txmanager: commit transaction: unreachable"),
	}, nopLogger{})

	_, err = uc.Execute(context.Background(), validRequest(t, ptr.Ptr("Top Left"), 10, 12))
	require.Error(t, err)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, conflict.Conflicts, 1)
	assert.Equal(t, first.ID, conflict.Conflicts[0].ID)
}

// Two concurrent submissions for the same slot and overlapping intervals:
// exactly one may win, regardless of interleaving.
func TestExecute_ConcurrentOverlappingSubmissions(t *testing.T) {
	const rounds = 50

	for i := 0; i < rounds; i++ {
		repo := &memoryRepo{}
		uc := newTestUseCase(t, repo)

		var wg sync.WaitGroup
		errs := make([]error, 2)

		for j := 0; j < 2; j++ {
			wg.Add(1)
			go func(j int) {
				defer wg.Done()
				_, errs[j] = uc.Execute(context.Background(), validRequest(t, ptr.Ptr("Top Left"), 9, 11))
			}(j)
		}
		wg.Wait()

		var successes, conflicts int
		for _, err := range errs {
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotTaken):
				conflicts++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}

		assert.Equal(t, 1, successes, "exactly one submission may win")
		assert.Equal(t, 1, conflicts, "the loser must see the conflict")
		assert.Len(t, repo.reservations, 1)
	}
}
