package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/kairovix/labsched/internal/domain"
	"github.com/kairovix/labsched/pkg/dbmetrics"
	"github.com/kairovix/labsched/pkg/psqlbuilder"
)

const reservationsTable = "reservations"

var reservationColumns = []string{
	"id",
	"requester_name",
	"requester_email",
	"lab",
	"equipment",
	"slot",
	"start_time",
	"end_time",
	"created_at",
}

// Repository is the PostgreSQL reservation store
type Repository struct {
	db DBExecutor
}

// NewRepository creates a reservation repository over db
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new reservation. When an active transaction is carried in
// the context (through the transaction manager) the insert runs on it, which
// is how admission keeps its conflict check and write atomic.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(reservationsTable).
		Columns(
			"id",
			"requester_name",
			"requester_email",
			"lab",
			"equipment",
			"slot",
			"start_time",
			"end_time",
		).
		Values(
			res.ID,
			res.RequesterName,
			res.RequesterEmail,
			res.Lab,
			res.Equipment,
			res.Slot,
			res.Interval.Start,
			res.Interval.End,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	return res, nil
}

// GetByID fetches one reservation by id
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From(reservationsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}
	return res, nil
}

// GetByEquipment fetches every reservation for one piece of equipment in a
// single query. Availability computation groups the result by slot instead of
// issuing one query per slot.
func (r *Repository) GetByEquipment(ctx context.Context, equipment string) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From(reservationsTable).
		Where(squirrel.Eq{"equipment": equipment}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEquipment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEquipment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByEquipmentAndSlot fetches the reservations for exactly one
// (equipment, slot) pair. A nil slot targets unslotted equipment.
// Inside a managed transaction the rows are locked with FOR UPDATE so
// admission's check-then-insert is serialized per pair.
func (r *Repository) GetByEquipmentAndSlot(ctx context.Context, equipment string, slot *string) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From(reservationsTable).
		Where(squirrel.Eq{"equipment": equipment}).
		Where(squirrel.Eq{"slot": slot}). // slot IS NULL when slot == nil
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEquipmentAndSlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEquipmentAndSlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListWithFilter fetches reservations matching the filter,
// newest first for display
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From(reservationsTable).
		OrderBy("created_at DESC")

	if filter.Lab != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"lab": *filter.Lab})
	}
	if filter.Equipment != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"equipment": *filter.Equipment})
	}
	if filter.StartDate != nil {
		dayStart := time.Date(filter.StartDate.Year(), filter.StartDate.Month(), filter.StartDate.Day(),
			0, 0, 0, 0, filter.StartDate.Location())
		selectBuilder = selectBuilder.
			Where(squirrel.GtOrEq{"start_time": dayStart}).
			Where(squirrel.Lt{"start_time": dayStart.AddDate(0, 0, 1)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Delete removes a reservation by id (cancellation is a plain delete)
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(reservationsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res       domain.Reservation
		slot      sql.NullString
		start     time.Time
		end       time.Time
		createdAt sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.RequesterName,
		&res.RequesterEmail,
		&res.Lab,
		&res.Equipment,
		&slot,
		&start,
		&end,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if slot.Valid {
		res.Slot = &slot.String
	}
	res.Interval = domain.TimeInterval{Start: start, End: end}
	res.CreatedAt = createdAt.Time
	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}
	return reservations, nil
}
