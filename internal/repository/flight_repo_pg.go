package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/flightops/internal/domain"
)

type FlightRepository interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetByNo(ctx context.Context, flightNo string) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	FlightNoExists(ctx context.Context, flightNo string, excludeID int64) (bool, error)
	ActiveBookingCount(ctx context.Context, flightID int64) (int, error)
	Bookings(ctx context.Context, flightID int64) ([]domain.Booking, error)
	Cancel(ctx context.Context, flightNo string) (int, error)
	CompletePastFlights(ctx context.Context, deadline time.Time) (int64, error)
}

const flightColumns = `
	f.id, f.flight_no, f.departure_time, f.arrival_time, f.status, f.capacity,
	al.id, al.name,
	a1.id, a1.name, a1.city, a1.country,
	a2.id, a2.name, a2.city, a2.country,
	f.capacity - COALESCE((SELECT COUNT(*) FROM bookings b WHERE b.flight_id = f.id AND b.status = 'Booked'), 0)`

const flightJoins = `
	FROM flights f
	JOIN airlines al ON f.airline_id = al.id
	JOIN airports a1 ON f.from_airport_id = a1.id
	JOIN airports a2 ON f.to_airport_id = a2.id`

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func scanFlight(row pgx.Row, f *domain.Flight) error {
	return row.Scan(
		&f.ID, &f.FlightNo, &f.DepartureTime, &f.ArrivalTime, &f.Status, &f.Capacity,
		&f.AirlineID, &f.Airline,
		&f.FromAirportID, &f.FromAirport, &f.FromCity, &f.FromCountry,
		&f.ToAirportID, &f.ToAirport, &f.ToCity, &f.ToCountry,
		&f.AvailableSeats,
	)
}

func (r *PGFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + flightJoins + ` WHERE 1=1`
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND f.status = $` + strconv.Itoa(len(args))
	}
	if filter.FromCity != "" {
		args = append(args, filter.FromCity)
		query += ` AND a1.city = $` + strconv.Itoa(len(args))
	}
	if filter.ToCity != "" {
		args = append(args, filter.ToCity)
		query += ` AND a2.city = $` + strconv.Itoa(len(args))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		query += ` AND f.departure_time::date = $` + strconv.Itoa(len(args)) + `::date`
	}
	query += ` ORDER BY f.departure_time`

	rows, err := r.db.Query(ctx, query, args...)
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

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+flightJoins+` WHERE f.id=$1`, id)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) GetByNo(ctx context.Context, flightNo string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+flightJoins+` WHERE f.flight_no=$1`, flightNo)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (flight_no, departure_time, arrival_time, status, airline_id, from_airport_id, to_airport_id, capacity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		flight.FlightNo, flight.DepartureTime, flight.ArrivalTime, flight.Status,
		flight.AirlineID, flight.FromAirportID, flight.ToAirportID, flight.Capacity).
		Scan(&flight.ID)
}

var flightUpdateColumns = map[string]string{
	"flight_no":      "flight_no",
	"departure_time": "departure_time",
	"arrival_time":   "arrival_time",
	"status":         "status",
	"capacity":       "capacity",
}

var flightUpdateOrder = []string{"flight_no", "departure_time", "arrival_time", "status", "capacity"}

func (r *PGFlightRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	clause, args := setClause(fields, flightUpdateColumns, flightUpdateOrder)
	if clause == "" {
		return fmt.Errorf("%w: no fields to update", domain.ErrInvalid)
	}
	args = append(args, id)
	res, err := r.db.Exec(ctx, `UPDATE flights SET `+clause+` WHERE id=$`+strconv.Itoa(len(args)), args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGFlightRepository) FlightNoExists(ctx context.Context, flightNo string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM flights WHERE flight_no=$1 AND id<>$2)`, flightNo, excludeID).Scan(&exists)
	return exists, err
}

func (r *PGFlightRepository) ActiveBookingCount(ctx context.Context, flightID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE flight_id=$1 AND status='Booked'`, flightID).Scan(&count)
	return count, err
}

func (r *PGFlightRepository) Bookings(ctx context.Context, flightID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT b.id, b.date, b.seat_no, b.status, b.booking_time,
			p.id, p.first_name, p.last_name, p.email
		FROM bookings b
		JOIN passengers p ON b.passenger_id = p.id
		WHERE b.flight_id=$1
		ORDER BY b.seat_no`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b := domain.Booking{FlightID: flightID}
		if err := rows.Scan(&b.ID, &b.Date, &b.SeatNo, &b.Status, &b.BookingTime,
			&b.PassengerID, &b.FirstName, &b.LastName, &b.Email); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// Cancel marks the flight Cancelled and cancels all of its Booked bookings
// in one transaction, writing one audit row per cancelled booking. It
// returns the number of bookings cancelled.
func (r *PGFlightRepository) Cancel(ctx context.Context, flightNo string) (int, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var flightID int64
	if err := tx.QueryRow(ctx, `UPDATE flights SET status='Cancelled' WHERE flight_no=$1 RETURNING id`, flightNo).Scan(&flightID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}

	rows, err := tx.Query(ctx, `UPDATE bookings SET status='Cancelled' WHERE flight_id=$1 AND status='Booked' RETURNING id`, flightID)
	if err != nil {
		return 0, err
	}
	var cancelled []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, err
		}
		cancelled = append(cancelled, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, bookingID := range cancelled {
		if _, err := tx.Exec(ctx, `INSERT INTO booking_audit (booking_id, operation, details) VALUES ($1, 'UPDATE', $2)`,
			bookingID, fmt.Sprintf("Booking cancelled with flight %s", flightNo)); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(cancelled), nil
}

func (r *PGFlightRepository) CompletePastFlights(ctx context.Context, deadline time.Time) (int64, error) {
	res, err := r.db.Exec(ctx, `UPDATE flights SET status='Completed' WHERE status IN ('Scheduled','Delayed') AND arrival_time <= $1`, deadline)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
