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

type AirlineRepository interface {
	List(ctx context.Context) ([]domain.Airline, error)
	GetByID(ctx context.Context, id int64) (*domain.Airline, error)
	Create(ctx context.Context, airline *domain.Airline) error
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	FlightCount(ctx context.Context, airlineID int64) (int, error)
	StaffCount(ctx context.Context, airlineID int64) (int, error)
	Flights(ctx context.Context, airlineID int64) ([]domain.Flight, error)
	Staff(ctx context.Context, airlineID int64) ([]domain.Staff, error)
}

type PGAirlineRepository struct {
	db *pgxpool.Pool
}

func NewAirlineRepository(db *pgxpool.Pool) AirlineRepository {
	return &PGAirlineRepository{db: db}
}

func (r *PGAirlineRepository) List(ctx context.Context) ([]domain.Airline, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, contact_info FROM airlines ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airlines := make([]domain.Airline, 0)
	for rows.Next() {
		var a domain.Airline
		if err := rows.Scan(&a.ID, &a.Name, &a.ContactInfo); err != nil {
			return nil, err
		}
		airlines = append(airlines, a)
	}
	return airlines, rows.Err()
}

func (r *PGAirlineRepository) GetByID(ctx context.Context, id int64) (*domain.Airline, error) {
	var a domain.Airline
	err := r.db.QueryRow(ctx, `SELECT id, name, contact_info FROM airlines WHERE id=$1`, id).
		Scan(&a.ID, &a.Name, &a.ContactInfo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGAirlineRepository) Create(ctx context.Context, airline *domain.Airline) error {
	return r.db.QueryRow(ctx, `INSERT INTO airlines (name, contact_info) VALUES ($1, $2) RETURNING id`,
		airline.Name, airline.ContactInfo).Scan(&airline.ID)
}

var airlineUpdateColumns = map[string]string{
	"name":         "name",
	"contact_info": "contact_info",
}

var airlineUpdateOrder = []string{"name", "contact_info"}

func (r *PGAirlineRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	clause, args := setClause(fields, airlineUpdateColumns, airlineUpdateOrder)
	if clause == "" {
		return fmt.Errorf("%w: no fields to update", domain.ErrInvalid)
	}
	args = append(args, id)
	res, err := r.db.Exec(ctx, `UPDATE airlines SET `+clause+` WHERE id=$`+strconv.Itoa(len(args)), args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGAirlineRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM airlines WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGAirlineRepository) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM airlines WHERE lower(name)=lower($1) AND id<>$2)`, name, excludeID).Scan(&exists)
	return exists, err
}

func (r *PGAirlineRepository) FlightCount(ctx context.Context, airlineID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM flights WHERE airline_id=$1`, airlineID).Scan(&count)
	return count, err
}

func (r *PGAirlineRepository) StaffCount(ctx context.Context, airlineID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM staff WHERE airline_id=$1`, airlineID).Scan(&count)
	return count, err
}

func (r *PGAirlineRepository) Flights(ctx context.Context, airlineID int64) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+flightJoins+` WHERE f.airline_id=$1 ORDER BY f.departure_time`, airlineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGAirlineRepository) Staff(ctx context.Context, airlineID int64) ([]domain.Staff, error) {
	rows, err := r.db.Query(ctx, `SELECT `+staffColumns+staffJoins+` WHERE s.airline_id=$1 ORDER BY s.last_name, s.first_name`, airlineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]domain.Staff, 0)
	for rows.Next() {
		var m domain.Staff
		if err := scanStaff(rows, &m); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

var _ AirlineRepository = (*PGAirlineRepository)(nil)
