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

type PassengerRepository interface {
	List(ctx context.Context) ([]domain.Passenger, error)
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	Create(ctx context.Context, p *domain.Passenger) error
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	PhoneExists(ctx context.Context, phone string, excludeID int64) (bool, error)
	Bookings(ctx context.Context, passengerID int64) ([]domain.PassengerBooking, error)
	BookingCount(ctx context.Context, passengerID int64) (int, error)
	Search(ctx context.Context, search domain.PassengerSearch) ([]domain.Passenger, error)
	CreateWithBooking(ctx context.Context, p *domain.Passenger, flightID int64, seatNo string) (int64, error)
}

type PGPassengerRepository struct {
	db *pgxpool.Pool
}

func NewPassengerRepository(db *pgxpool.Pool) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

func (r *PGPassengerRepository) List(ctx context.Context) ([]domain.Passenger, error) {
	rows, err := r.db.Query(ctx, `SELECT p.id, p.first_name, p.last_name, p.email, p.phone,
			COALESCE((SELECT COUNT(*) FROM bookings b WHERE b.passenger_id = p.id AND b.status='Booked'), 0)
		FROM passengers p
		ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0)
	for rows.Next() {
		var p domain.Passenger
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.BookingCount); err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	return passengers, rows.Err()
}

func (r *PGPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	row := r.db.QueryRow(ctx, `SELECT p.id, p.first_name, p.last_name, p.email, p.phone,
			COALESCE((SELECT COUNT(*) FROM bookings b WHERE b.passenger_id = p.id AND b.status='Booked'), 0)
		FROM passengers p WHERE p.id=$1`, id)
	var p domain.Passenger
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.BookingCount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGPassengerRepository) Create(ctx context.Context, p *domain.Passenger) error {
	return r.db.QueryRow(ctx, `INSERT INTO passengers (first_name, last_name, email, phone)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		p.FirstName, p.LastName, p.Email, p.Phone).Scan(&p.ID)
}

var passengerUpdateColumns = map[string]string{
	"first_name": "first_name",
	"last_name":  "last_name",
	"email":      "email",
	"phone":      "phone",
}

var passengerUpdateOrder = []string{"first_name", "last_name", "email", "phone"}

func (r *PGPassengerRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	clause, args := setClause(fields, passengerUpdateColumns, passengerUpdateOrder)
	if clause == "" {
		return fmt.Errorf("%w: no fields to update", domain.ErrInvalid)
	}
	args = append(args, id)
	res, err := r.db.Exec(ctx, `UPDATE passengers SET `+clause+` WHERE id=$`+strconv.Itoa(len(args)), args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGPassengerRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM passengers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGPassengerRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM passengers WHERE lower(email)=lower($1) AND id<>$2)`, email, excludeID).Scan(&exists)
	return exists, err
}

func (r *PGPassengerRepository) PhoneExists(ctx context.Context, phone string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM passengers WHERE phone=$1 AND id<>$2)`, phone, excludeID).Scan(&exists)
	return exists, err
}

func (r *PGPassengerRepository) Bookings(ctx context.Context, passengerID int64) ([]domain.PassengerBooking, error) {
	rows, err := r.db.Query(ctx, `SELECT b.id, b.date, b.seat_no, b.status,
			f.flight_no, f.departure_time, f.arrival_time,
			al.name, a1.name, a1.city, a2.name, a2.city
		FROM bookings b
		JOIN flights f ON b.flight_id = f.id
		JOIN airlines al ON f.airline_id = al.id
		JOIN airports a1 ON f.from_airport_id = a1.id
		JOIN airports a2 ON f.to_airport_id = a2.id
		WHERE b.passenger_id=$1
		ORDER BY b.date DESC`, passengerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.PassengerBooking, 0)
	for rows.Next() {
		var b domain.PassengerBooking
		if err := rows.Scan(&b.BookingID, &b.Date, &b.SeatNo, &b.Status,
			&b.FlightNo, &b.DepartureTime, &b.ArrivalTime,
			&b.Airline, &b.FromAirport, &b.FromCity, &b.ToAirport, &b.ToCity); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGPassengerRepository) BookingCount(ctx context.Context, passengerID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE passenger_id=$1 AND status='Booked'`, passengerID).Scan(&count)
	return count, err
}

func (r *PGPassengerRepository) Search(ctx context.Context, search domain.PassengerSearch) ([]domain.Passenger, error) {
	query := `SELECT p.id, p.first_name, p.last_name, p.email, p.phone,
			COUNT(b.id) FILTER (WHERE b.status='Booked')
		FROM passengers p
		LEFT JOIN bookings b ON b.passenger_id = p.id
		WHERE 1=1`
	var args []any
	if search.Name != "" {
		args = append(args, "%"+search.Name+"%")
		query += ` AND (p.first_name || ' ' || p.last_name) ILIKE $` + strconv.Itoa(len(args))
	}
	if search.Email != "" {
		args = append(args, "%"+search.Email+"%")
		query += ` AND p.email ILIKE $` + strconv.Itoa(len(args))
	}
	query += ` GROUP BY p.id, p.first_name, p.last_name, p.email, p.phone`
	if search.MinBookings > 0 {
		args = append(args, search.MinBookings)
		query += ` HAVING COUNT(b.id) FILTER (WHERE b.status='Booked') >= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY COUNT(b.id) FILTER (WHERE b.status='Booked') DESC, p.last_name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0)
	for rows.Next() {
		var p domain.Passenger
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.BookingCount); err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	return passengers, rows.Err()
}

// CreateWithBooking inserts the passenger and their first booking
// atomically, with the booking audit row, and returns the booking id.
func (r *PGPassengerRepository) CreateWithBooking(ctx context.Context, p *domain.Passenger, flightID int64, seatNo string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO passengers (first_name, last_name, email, phone)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		p.FirstName, p.LastName, p.Email, p.Phone).Scan(&p.ID); err != nil {
		return 0, err
	}

	var bookingID int64
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (date, seat_no, passenger_id, flight_id, status)
		VALUES (CURRENT_DATE, $1, $2, $3, 'Booked') RETURNING id`,
		seatNo, p.ID, flightID).Scan(&bookingID); err != nil {
		return 0, err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO booking_audit (booking_id, operation, details) VALUES ($1, 'INSERT', $2)`,
		bookingID, fmt.Sprintf("Passenger %d created with booking - seat %s on flight %d", p.ID, seatNo, flightID)); err != nil {
		return 0, err
	}

	return bookingID, tx.Commit(ctx)
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
