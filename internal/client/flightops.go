package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/zvrva/flightops/internal/domain"
)

// API bundles one typed resource per backend collection plus the
// non-collection endpoints.
type API struct {
	Flights    *Resource[domain.Flight]
	Passengers *Resource[domain.Passenger]
	Bookings   *Resource[domain.Booking]
	Airlines   *Resource[domain.Airline]
	Airports   *Resource[domain.Airport]
	Staff      *Resource[domain.Staff]

	client *Client
}

func NewAPI(baseURL string, opts ...Option) *API {
	c := NewClient(baseURL, opts...)
	return &API{
		Flights:    NewResource[domain.Flight](c, "flights"),
		Passengers: NewResource[domain.Passenger](c, "passengers"),
		Bookings:   NewResource[domain.Booking](c, "bookings"),
		Airlines:   NewResource[domain.Airline](c, "airlines"),
		Airports:   NewResource[domain.Airport](c, "airports"),
		Staff:      NewResource[domain.Staff](c, "staff"),
		client:     c,
	}
}

func (a *API) CancelFlight(ctx context.Context, flightNo string) (string, error) {
	env, err := a.client.post(ctx, "/flights/cancel", map[string]any{"flight_no": flightNo})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (a *API) FlightBookings(ctx context.Context, flightID int64) ([]domain.Booking, error) {
	env, err := a.client.get(ctx, fmt.Sprintf("/flights/%d/bookings", flightID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Booking](env.Data), nil
}

func (a *API) FlightAvailableSeats(ctx context.Context, flightID int64) (int, error) {
	env, err := a.client.get(ctx, fmt.Sprintf("/flights/%d/available-seats", flightID), nil)
	if err != nil {
		return 0, err
	}
	var payload struct {
		AvailableSeats int `json:"available_seats"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	return payload.AvailableSeats, nil
}

func (a *API) PassengerBookings(ctx context.Context, passengerID int64) ([]domain.PassengerBooking, error) {
	env, err := a.client.get(ctx, fmt.Sprintf("/passengers/%d/bookings", passengerID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.PassengerBooking](env.Data), nil
}

func (a *API) PassengerBookingCount(ctx context.Context, passengerID int64) (int, error) {
	env, err := a.client.get(ctx, fmt.Sprintf("/passengers/%d/booking-count", passengerID), nil)
	if err != nil {
		return 0, err
	}
	var payload struct {
		BookingCount int `json:"booking_count"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	return payload.BookingCount, nil
}

func (a *API) SearchPassengers(ctx context.Context, name, email string, minBookings int) ([]domain.Passenger, error) {
	query := url.Values{}
	if name != "" {
		query.Set("name", name)
	}
	if email != "" {
		query.Set("email", email)
	}
	if minBookings > 0 {
		query.Set("min_bookings", strconv.Itoa(minBookings))
	}
	env, err := a.client.get(ctx, "/passengers/search", query)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Passenger](env.Data), nil
}

func (a *API) CreatePassengerWithBooking(ctx context.Context, payload map[string]any) (string, error) {
	env, err := a.client.post(ctx, "/passengers/create-with-booking", payload)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (a *API) BookingAudit(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}
	env, err := a.client.get(ctx, "/bookings/audit", query)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.AuditEntry](env.Data), nil
}

func (a *API) AirlineFlights(ctx context.Context, airlineID int64) ([]domain.Flight, error) {
	env, err := a.client.get(ctx, fmt.Sprintf("/airlines/%d/flights", airlineID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Flight](env.Data), nil
}

func (a *API) AirlineStaff(ctx context.Context, airlineID int64) ([]domain.Staff, error) {
	env, err := a.client.get(ctx, fmt.Sprintf("/airlines/%d/staff", airlineID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Staff](env.Data), nil
}

func (a *API) AirportDepartures(ctx context.Context, airportID int64) ([]domain.Flight, error) {
	env, err := a.client.get(ctx, fmt.Sprintf("/airports/%d/departures", airportID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Flight](env.Data), nil
}

func (a *API) AirportArrivals(ctx context.Context, airportID int64) ([]domain.Flight, error) {
	env, err := a.client.get(ctx, fmt.Sprintf("/airports/%d/arrivals", airportID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Flight](env.Data), nil
}

func (a *API) AirportStaff(ctx context.Context, airportID int64) ([]domain.Staff, error) {
	env, err := a.client.get(ctx, fmt.Sprintf("/airports/%d/staff", airportID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Staff](env.Data), nil
}

func (a *API) TransferStaff(ctx context.Context, staffID, newAirportID int64, notes string) (string, error) {
	env, err := a.client.post(ctx, "/staff/transfer", map[string]any{
		"staff_id":       staffID,
		"new_airport_id": newAirportID,
		"notes":          notes,
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (a *API) StaffHistory(ctx context.Context, staffID int64) ([]domain.TransferRecord, error) {
	env, err := a.client.get(ctx, fmt.Sprintf("/staff/%d/history", staffID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.TransferRecord](env.Data), nil
}

func (a *API) AboveAverageBookings(ctx context.Context) ([]domain.AboveAverageFlight, error) {
	env, err := a.client.get(ctx, "/analytics/above-average-bookings", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.AboveAverageFlight](env.Data), nil
}

func (a *API) PassengerBookingsDetail(ctx context.Context) ([]domain.PassengerBookingDetail, error) {
	env, err := a.client.get(ctx, "/analytics/passenger-bookings-detail", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.PassengerBookingDetail](env.Data), nil
}

func (a *API) UniquePassengersPerAirline(ctx context.Context) ([]domain.AirlinePassengers, error) {
	env, err := a.client.get(ctx, "/analytics/unique-passengers-per-airline", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.AirlinePassengers](env.Data), nil
}

func (a *API) BusiestAirports(ctx context.Context, limit int) ([]domain.BusyAirport, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}
	env, err := a.client.get(ctx, "/analytics/busiest-airports", query)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.BusyAirport](env.Data), nil
}
