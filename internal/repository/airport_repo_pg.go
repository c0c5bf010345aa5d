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

type AirportRepository interface {
	List(ctx context.Context) ([]domain.Airport, error)
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	Create(ctx context.Context, airport *domain.Airport) error
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	NameCityExists(ctx context.Context, name, city string, excludeID int64) (bool, error)
	ActiveDepartureCount(ctx context.Context, airportID int64) (int, error)
	ActiveArrivalCount(ctx context.Context, airportID int64) (int, error)
	StaffCount(ctx context.Context, airportID int64) (int, error)
	HistoricalFlightCount(ctx context.Context, airportID int64) (int, error)
	Departures(ctx context.Context, airportID int64) ([]domain.Flight, error)
	Arrivals(ctx context.Context, airportID int64) ([]domain.Flight, error)
	Staff(ctx context.Context, airportID int64) ([]domain.Staff, error)
}

// Traffic columns count only Scheduled and Delayed flights; Cancelled and
// Completed flights do not contribute.
const airportColumns = `
	a.id, a.name, a.city, a.country,
	COALESCE((SELECT COUNT(*) FROM flights f WHERE f.from_airport_id = a.id AND f.status IN ('Scheduled','Delayed')), 0),
	COALESCE((SELECT COUNT(*) FROM flights f WHERE f.to_airport_id = a.id AND f.status IN ('Scheduled','Delayed')), 0),
	COALESCE((SELECT COUNT(*) FROM staff s WHERE s.airport_id = a.id), 0)`

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

func scanAirport(row pgx.Row, a *domain.Airport) error {
	return row.Scan(&a.ID, &a.Name, &a.City, &a.Country, &a.Departures, &a.Arrivals, &a.TotalStaff)
}

func (r *PGAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT `+airportColumns+` FROM airports a ORDER BY a.city, a.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := scanAirport(rows, &a); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func (r *PGAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	row := r.db.QueryRow(ctx, `SELECT `+airportColumns+` FROM airports a WHERE a.id=$1`, id)
	var a domain.Airport
	if err := scanAirport(row, &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	return r.db.QueryRow(ctx, `INSERT INTO airports (name, city, country) VALUES ($1, $2, $3) RETURNING id`,
		airport.Name, airport.City, airport.Country).Scan(&airport.ID)
}

var airportUpdateColumns = map[string]string{
	"name":    "name",
	"city":    "city",
	"country": "country",
}

var airportUpdateOrder = []string{"name", "city", "country"}

func (r *PGAirportRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	clause, args := setClause(fields, airportUpdateColumns, airportUpdateOrder)
	if clause == "" {
		return fmt.Errorf("%w: no fields to update", domain.ErrInvalid)
	}
	args = append(args, id)
	res, err := r.db.Exec(ctx, `UPDATE airports SET `+clause+` WHERE id=$`+strconv.Itoa(len(args)), args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGAirportRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM airports WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGAirportRepository) NameCityExists(ctx context.Context, name, city string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM airports WHERE lower(name)=lower($1) AND lower(city)=lower($2) AND id<>$3)`,
		name, city, excludeID).Scan(&exists)
	return exists, err
}

func (r *PGAirportRepository) ActiveDepartureCount(ctx context.Context, airportID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM flights WHERE from_airport_id=$1 AND status IN ('Scheduled','Delayed')`, airportID).Scan(&count)
	return count, err
}

func (r *PGAirportRepository) ActiveArrivalCount(ctx context.Context, airportID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM flights WHERE to_airport_id=$1 AND status IN ('Scheduled','Delayed')`, airportID).Scan(&count)
	return count, err
}

func (r *PGAirportRepository) StaffCount(ctx context.Context, airportID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM staff WHERE airport_id=$1`, airportID).Scan(&count)
	return count, err
}

func (r *PGAirportRepository) HistoricalFlightCount(ctx context.Context, airportID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM flights WHERE from_airport_id=$1 OR to_airport_id=$1`, airportID).Scan(&count)
	return count, err
}

func (r *PGAirportRepository) Departures(ctx context.Context, airportID int64) ([]domain.Flight, error) {
	return r.flightsWhere(ctx, `f.from_airport_id=$1 ORDER BY f.departure_time`, airportID)
}

func (r *PGAirportRepository) Arrivals(ctx context.Context, airportID int64) ([]domain.Flight, error) {
	return r.flightsWhere(ctx, `f.to_airport_id=$1 ORDER BY f.arrival_time`, airportID)
}

func (r *PGAirportRepository) flightsWhere(ctx context.Context, tail string, airportID int64) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+flightJoins+` WHERE `+tail, airportID)
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

func (r *PGAirportRepository) Staff(ctx context.Context, airportID int64) ([]domain.Staff, error) {
	rows, err := r.db.Query(ctx, `SELECT `+staffColumns+staffJoins+` WHERE s.airport_id=$1 ORDER BY al.name, s.last_name`, airportID)
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

var _ AirportRepository = (*PGAirportRepository)(nil)
