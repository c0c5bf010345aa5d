package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/flightops/internal/domain"
)

type StaffRepository interface {
	List(ctx context.Context) ([]domain.Staff, error)
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	Create(ctx context.Context, staff *domain.Staff) error
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	Transfer(ctx context.Context, staffID, newAirportID int64, notes string) error
	History(ctx context.Context, staffID int64) ([]domain.TransferRecord, error)
}

const staffColumns = `
	s.id, s.first_name, s.last_name, s.role,
	al.id, al.name,
	a.id, a.name, a.city`

const staffJoins = `
	FROM staff s
	JOIN airlines al ON s.airline_id = al.id
	JOIN airports a ON s.airport_id = a.id`

type PGStaffRepository struct {
	db *pgxpool.Pool
}

func NewStaffRepository(db *pgxpool.Pool) StaffRepository {
	return &PGStaffRepository{db: db}
}

func scanStaff(row pgx.Row, s *domain.Staff) error {
	return row.Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.Role,
		&s.AirlineID, &s.Airline,
		&s.AirportID, &s.Airport, &s.AirportCity,
	)
}

func (r *PGStaffRepository) List(ctx context.Context) ([]domain.Staff, error) {
	rows, err := r.db.Query(ctx, `SELECT `+staffColumns+staffJoins+` ORDER BY s.last_name, s.first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]domain.Staff, 0)
	for rows.Next() {
		var s domain.Staff
		if err := scanStaff(rows, &s); err != nil {
			return nil, err
		}
		members = append(members, s)
	}
	return members, rows.Err()
}

func (r *PGStaffRepository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	row := r.db.QueryRow(ctx, `SELECT `+staffColumns+staffJoins+` WHERE s.id=$1`, id)
	var s domain.Staff
	if err := scanStaff(row, &s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGStaffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	return r.db.QueryRow(ctx, `INSERT INTO staff (first_name, last_name, role, airline_id, airport_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		staff.FirstName, staff.LastName, staff.Role, staff.AirlineID, staff.AirportID).Scan(&staff.ID)
}

var staffUpdateColumns = map[string]string{
	"first_name": "first_name",
	"last_name":  "last_name",
	"role":       "role",
	"airline_id": "airline_id",
}

var staffUpdateOrder = []string{"first_name", "last_name", "role", "airline_id"}

// Update changes profile fields only. Airport moves go through Transfer so
// that the history row is written alongside.
func (r *PGStaffRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	clause, args := setClause(fields, staffUpdateColumns, staffUpdateOrder)
	if clause == "" {
		return fmt.Errorf("%w: no fields to update", domain.ErrInvalid)
	}
	args = append(args, id)
	res, err := r.db.Exec(ctx, `UPDATE staff SET `+clause+` WHERE id=$`+strconv.Itoa(len(args)), args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGStaffRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM staff WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Transfer moves the staff member to a new airport and records the move in
// staff_history within the same transaction.
func (r *PGStaffRepository) Transfer(ctx context.Context, staffID, newAirportID int64, notes string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var oldAirportID int64
	if err := tx.QueryRow(ctx, `SELECT airport_id FROM staff WHERE id=$1`, staffID).Scan(&oldAirportID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE staff SET airport_id=$1 WHERE id=$2`, newAirportID, staffID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO staff_history (staff_id, old_airport_id, new_airport_id, notes)
		VALUES ($1, $2, $3, $4)`, staffID, oldAirportID, newAirportID, notes); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGStaffRepository) History(ctx context.Context, staffID int64) ([]domain.TransferRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT h.id, a1.name, a1.city, a2.name, a2.city, h.changed_at, COALESCE(h.notes, '')
		FROM staff_history h
		JOIN airports a1 ON h.old_airport_id = a1.id
		JOIN airports a2 ON h.new_airport_id = a2.id
		WHERE h.staff_id=$1
		ORDER BY h.changed_at DESC`, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.TransferRecord, 0)
	for rows.Next() {
		var t domain.TransferRecord
		if err := rows.Scan(&t.HistoryID, &t.OldAirport, &t.OldCity, &t.NewAirport, &t.NewCity, &t.ChangedAt, &t.Notes); err != nil {
			return nil, err
		}
		records = append(records, t)
	}
	return records, rows.Err()
}

var _ StaffRepository = (*PGStaffRepository)(nil)
