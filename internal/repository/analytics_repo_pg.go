package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/flightops/internal/domain"
)

type AnalyticsRepository interface {
	AboveAverageFlights(ctx context.Context) ([]domain.AboveAverageFlight, error)
	PassengerBookingDetails(ctx context.Context) ([]domain.PassengerBookingDetail, error)
	UniquePassengersPerAirline(ctx context.Context) ([]domain.AirlinePassengers, error)
	BusiestAirports(ctx context.Context, limit int) ([]domain.BusyAirport, error)
}

type PGAnalyticsRepository struct {
	db *pgxpool.Pool
}

func NewAnalyticsRepository(db *pgxpool.Pool) AnalyticsRepository {
	return &PGAnalyticsRepository{db: db}
}

func (r *PGAnalyticsRepository) AboveAverageFlights(ctx context.Context) ([]domain.AboveAverageFlight, error) {
	rows, err := r.db.Query(ctx, `
		SELECT f.flight_no, al.name, COUNT(b.id)
		FROM flights f
		JOIN airlines al ON f.airline_id = al.id
		JOIN bookings b ON b.flight_id = f.id
		GROUP BY f.id, f.flight_no, al.name
		HAVING COUNT(b.id) > (
			SELECT AVG(cnt) FROM (
				SELECT COUNT(*) AS cnt FROM bookings GROUP BY flight_id
			) per_flight
		)
		ORDER BY COUNT(b.id) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.AboveAverageFlight, 0)
	for rows.Next() {
		var f domain.AboveAverageFlight
		if err := rows.Scan(&f.FlightNo, &f.Airline, &f.TotalBookings); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGAnalyticsRepository) PassengerBookingDetails(ctx context.Context) ([]domain.PassengerBookingDetail, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.first_name, p.last_name, f.flight_no, al.name, b.seat_no, b.status,
			f.departure_time, f.arrival_time
		FROM bookings b
		JOIN passengers p ON b.passenger_id = p.id
		JOIN flights f ON b.flight_id = f.id
		JOIN airlines al ON f.airline_id = al.id
		ORDER BY p.last_name, p.first_name, f.departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]domain.PassengerBookingDetail, 0)
	for rows.Next() {
		var d domain.PassengerBookingDetail
		if err := rows.Scan(&d.PassengerID, &d.FirstName, &d.LastName, &d.FlightNo, &d.Airline,
			&d.SeatNo, &d.BookingStatus, &d.DepartureTime, &d.ArrivalTime); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *PGAnalyticsRepository) UniquePassengersPerAirline(ctx context.Context) ([]domain.AirlinePassengers, error) {
	rows, err := r.db.Query(ctx, `
		SELECT al.name, COUNT(DISTINCT b.passenger_id)
		FROM airlines al
		LEFT JOIN flights f ON f.airline_id = al.id
		LEFT JOIN bookings b ON b.flight_id = f.id
		GROUP BY al.id, al.name
		ORDER BY COUNT(DISTINCT b.passenger_id) DESC, al.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airlines := make([]domain.AirlinePassengers, 0)
	for rows.Next() {
		var a domain.AirlinePassengers
		if err := rows.Scan(&a.Airline, &a.UniquePassengers); err != nil {
			return nil, err
		}
		airlines = append(airlines, a)
	}
	return airlines, rows.Err()
}

func (r *PGAnalyticsRepository) BusiestAirports(ctx context.Context, limit int) ([]domain.BusyAirport, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.db.Query(ctx, `
		SELECT a.name, a.city,
			COALESCE((SELECT COUNT(*) FROM flights f WHERE f.from_airport_id = a.id), 0) AS departures,
			COALESCE((SELECT COUNT(*) FROM flights f WHERE f.to_airport_id = a.id), 0) AS arrivals,
			COALESCE((SELECT COUNT(*) FROM flights f WHERE f.from_airport_id = a.id), 0)
				+ COALESCE((SELECT COUNT(*) FROM flights f WHERE f.to_airport_id = a.id), 0) AS total
		FROM airports a
		ORDER BY total DESC, a.name
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.BusyAirport, 0)
	for rows.Next() {
		var a domain.BusyAirport
		if err := rows.Scan(&a.Airport, &a.City, &a.Departures, &a.Arrivals, &a.TotalTraffic); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

var _ AnalyticsRepository = (*PGAnalyticsRepository)(nil)
