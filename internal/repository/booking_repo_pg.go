package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/flightops/internal/domain"
)

type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Create(ctx context.Context, passengerID, flightID int64, seatNo string) (int64, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	Audit(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

const bookingColumns = `
	b.id, b.date, b.seat_no, b.status, b.booking_time,
	p.id, p.first_name, p.last_name, p.email,
	f.id, f.flight_no, f.departure_time, f.arrival_time,
	al.name, a1.city, a2.city`

const bookingJoins = `
	FROM bookings b
	JOIN passengers p ON b.passenger_id = p.id
	JOIN flights f ON b.flight_id = f.id
	JOIN airlines al ON f.airline_id = al.id
	JOIN airports a1 ON f.from_airport_id = a1.id
	JOIN airports a2 ON f.to_airport_id = a2.id`

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func scanBooking(row pgx.Row, b *domain.Booking) error {
	return row.Scan(
		&b.ID, &b.Date, &b.SeatNo, &b.Status, &b.BookingTime,
		&b.PassengerID, &b.FirstName, &b.LastName, &b.Email,
		&b.FlightID, &b.FlightNo, &b.DepartureTime, &b.ArrivalTime,
		&b.Airline, &b.FromCity, &b.ToCity,
	)
}

func (r *PGBookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingJoins + ` WHERE 1=1`
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND b.status = $` + strconv.Itoa(len(args))
	}
	if filter.PassengerID != 0 {
		args = append(args, filter.PassengerID)
		query += ` AND b.passenger_id = $` + strconv.Itoa(len(args))
	}
	if filter.FlightID != 0 {
		args = append(args, filter.FlightID)
		query += ` AND b.flight_id = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY b.date DESC, b.booking_time DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+bookingJoins+` WHERE b.id=$1`, id)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Create inserts the booking and its audit row in one transaction. The
// per-flight seat uniqueness constraint (ux_booking_flight_seat) is left to
// Postgres; callers translate the violation into the user-facing message.
func (r *PGBookingRepository) Create(ctx context.Context, passengerID, flightID int64, seatNo string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var id int64
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (date, seat_no, passenger_id, flight_id, status)
		VALUES (CURRENT_DATE, $1, $2, $3, 'Booked') RETURNING id`,
		seatNo, passengerID, flightID).Scan(&id); err != nil {
		return 0, err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO booking_audit (booking_id, operation, details) VALUES ($1, 'INSERT', $2)`,
		id, fmt.Sprintf("Manual booking created - seat %s for passenger %d on flight %d", seatNo, passengerID, flightID)); err != nil {
		return 0, err
	}

	return id, tx.Commit(ctx)
}

var bookingUpdateColumns = map[string]string{
	"seat_no": "seat_no",
	"status":  "status",
}

var bookingUpdateOrder = []string{"seat_no", "status"}

func (r *PGBookingRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	clause, args := setClause(fields, bookingUpdateColumns, bookingUpdateOrder)
	if clause == "" {
		return fmt.Errorf("%w: no fields to update", domain.ErrInvalid)
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	args = append(args, id)
	res, err := tx.Exec(ctx, `UPDATE bookings SET `+clause+` WHERE id=$`+strconv.Itoa(len(args)), args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	var changed []string
	for _, key := range bookingUpdateOrder {
		if val, ok := fields[key]; ok {
			changed = append(changed, fmt.Sprintf("%s: %v", key, val))
		}
	}
	if _, err := tx.Exec(ctx, `INSERT INTO booking_audit (booking_id, operation, details) VALUES ($1, 'UPDATE', $2)`,
		id, fmt.Sprintf("Updated booking %d: %s", id, strings.Join(changed, ", "))); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var (
		passengerID int64
		flightID    int64
		seatNo      string
	)
	if err := tx.QueryRow(ctx, `SELECT passenger_id, flight_id, seat_no FROM bookings WHERE id=$1`, id).
		Scan(&passengerID, &flightID, &seatNo); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO booking_audit (booking_id, operation, details) VALUES ($1, 'DELETE', $2)`,
		id, fmt.Sprintf("Deleted booking - passenger: %d, flight: %d, seat: %s", passengerID, flightID, seatNo)); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) Audit(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, `SELECT id, booking_id, operation, op_time, details
		FROM booking_audit ORDER BY op_time DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.AuditEntry, 0)
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.AuditID, &e.BookingID, &e.Operation, &e.OpTime, &e.Details); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
