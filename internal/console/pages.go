package console

import (
	"context"
	"strconv"
	"time"

	"github.com/zvrva/flightops/internal/client"
	"github.com/zvrva/flightops/internal/domain"
)

// Console holds one page per backend resource, all sharing one API client.
type Console struct {
	Flights    *FlightsPage
	Passengers *PassengersPage
	Bookings   *BookingsPage
	Airlines   *AirlinesPage
	Airports   *AirportsPage
	Staff      *StaffPage
	Analytics  *AnalyticsPage
}

func New(api *client.API, successTTL time.Duration) *Console {
	opts := []PageOption{WithSuccessTTL(successTTL)}
	return &Console{
		Flights:    newFlightsPage(api, opts...),
		Passengers: newPassengersPage(api, opts...),
		Bookings:   newBookingsPage(api, opts...),
		Airlines:   newAirlinesPage(api, opts...),
		Airports:   newAirportsPage(api, opts...),
		Staff:      newStaffPage(api, opts...),
		Analytics:  newAnalyticsPage(api, opts...),
	}
}

type FlightsPage struct {
	*Page
	api     *client.API
	Flights []domain.Flight
}

func newFlightsPage(api *client.API, opts ...PageOption) *FlightsPage {
	p := &FlightsPage{api: api}
	p.Page = NewPage("flights", []Fetcher{
		func(ctx context.Context) error {
			flights, err := api.Flights.List(ctx, nil)
			if err != nil {
				return err
			}
			p.Flights = flights
			return nil
		},
	}, opts...)
	return p
}

func (p *FlightsPage) Rows(search string) []domain.Flight {
	return Filter(p.Flights, search, func(f domain.Flight) []string {
		return []string{f.FlightNo, f.Airline, f.FromCity, f.ToCity, string(f.Status)}
	})
}

func (p *FlightsPage) Create(ctx context.Context, payload map[string]any) error {
	return p.RunMutation(ctx, "create", func(ctx context.Context) (string, error) {
		return p.api.Flights.Create(ctx, payload)
	})
}

func (p *FlightsPage) Update(ctx context.Context, id int64, partial map[string]any) error {
	partial = trimUnchanged(p.Flights, id, func(f domain.Flight) int64 { return f.ID }, partial)
	return p.RunMutation(ctx, "edit", func(ctx context.Context) (string, error) {
		return p.api.Flights.Update(ctx, id, partial)
	})
}

func (p *FlightsPage) Delete(ctx context.Context, id int64) error {
	return p.RunMutation(ctx, "delete", func(ctx context.Context) (string, error) {
		return p.api.Flights.Remove(ctx, id)
	})
}

func (p *FlightsPage) Cancel(ctx context.Context, flightNo string) error {
	return p.RunMutation(ctx, "cancel", func(ctx context.Context) (string, error) {
		return p.api.CancelFlight(ctx, flightNo)
	})
}

type PassengersPage struct {
	*Page
	api        *client.API
	Passengers []domain.Passenger
}

func newPassengersPage(api *client.API, opts ...PageOption) *PassengersPage {
	p := &PassengersPage{api: api}
	p.Page = NewPage("passengers", []Fetcher{
		func(ctx context.Context) error {
			passengers, err := api.Passengers.List(ctx, nil)
			if err != nil {
				return err
			}
			p.Passengers = passengers
			return nil
		},
	}, opts...)
	return p
}

func (p *PassengersPage) Rows(search string) []domain.Passenger {
	return Filter(p.Passengers, search, func(x domain.Passenger) []string {
		return []string{x.FirstName, x.LastName, x.Email, x.Phone}
	})
}

func (p *PassengersPage) Create(ctx context.Context, payload map[string]any) error {
	return p.RunMutation(ctx, "create", func(ctx context.Context) (string, error) {
		return p.api.Passengers.Create(ctx, payload)
	})
}

func (p *PassengersPage) CreateWithBooking(ctx context.Context, payload map[string]any) error {
	return p.RunMutation(ctx, "create-with-booking", func(ctx context.Context) (string, error) {
		return p.api.CreatePassengerWithBooking(ctx, payload)
	})
}

func (p *PassengersPage) Update(ctx context.Context, id int64, partial map[string]any) error {
	partial = trimUnchanged(p.Passengers, id, func(x domain.Passenger) int64 { return x.ID }, partial)
	return p.RunMutation(ctx, "edit", func(ctx context.Context) (string, error) {
		return p.api.Passengers.Update(ctx, id, partial)
	})
}

func (p *PassengersPage) Delete(ctx context.Context, id int64) error {
	return p.RunMutation(ctx, "delete", func(ctx context.Context) (string, error) {
		return p.api.Passengers.Remove(ctx, id)
	})
}

type BookingsPage struct {
	*Page
	api        *client.API
	Bookings   []domain.Booking
	Flights    []domain.Flight
	Passengers []domain.Passenger
}

func newBookingsPage(api *client.API, opts ...PageOption) *BookingsPage {
	p := &BookingsPage{api: api}
	p.Page = NewPage("bookings", []Fetcher{
		func(ctx context.Context) error {
			bookings, err := api.Bookings.List(ctx, nil)
			if err != nil {
				return err
			}
			p.Bookings = bookings
			return nil
		},
		func(ctx context.Context) error {
			flights, err := api.Flights.List(ctx, nil)
			if err != nil {
				return err
			}
			p.Flights = flights
			return nil
		},
		func(ctx context.Context) error {
			passengers, err := api.Passengers.List(ctx, nil)
			if err != nil {
				return err
			}
			p.Passengers = passengers
			return nil
		},
	}, opts...)
	return p
}

func (p *BookingsPage) Rows(search string) []domain.Booking {
	return Filter(p.Bookings, search, func(b domain.Booking) []string {
		return []string{b.FlightNo, b.FirstName, b.LastName, b.SeatNo, string(b.Status)}
	})
}

func (p *BookingsPage) Create(ctx context.Context, payload map[string]any) error {
	return p.RunMutation(ctx, "create", func(ctx context.Context) (string, error) {
		return p.api.Bookings.Create(ctx, payload)
	})
}

func (p *BookingsPage) Update(ctx context.Context, id int64, partial map[string]any) error {
	partial = trimUnchanged(p.Bookings, id, func(b domain.Booking) int64 { return b.ID }, partial)
	return p.RunMutation(ctx, "edit", func(ctx context.Context) (string, error) {
		return p.api.Bookings.Update(ctx, id, partial)
	})
}

func (p *BookingsPage) Delete(ctx context.Context, id int64) error {
	return p.RunMutation(ctx, "delete", func(ctx context.Context) (string, error) {
		return p.api.Bookings.Remove(ctx, id)
	})
}

func (p *BookingsPage) Audit(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	return p.api.BookingAudit(ctx, limit)
}

type AirlinesPage struct {
	*Page
	api      *client.API
	Airlines []domain.Airline
}

func newAirlinesPage(api *client.API, opts ...PageOption) *AirlinesPage {
	p := &AirlinesPage{api: api}
	p.Page = NewPage("airlines", []Fetcher{
		func(ctx context.Context) error {
			airlines, err := api.Airlines.List(ctx, nil)
			if err != nil {
				return err
			}
			p.Airlines = airlines
			return nil
		},
	}, opts...)
	return p
}

func (p *AirlinesPage) Rows(search string) []domain.Airline {
	return Filter(p.Airlines, search, func(a domain.Airline) []string {
		return []string{a.Name, a.ContactInfo}
	})
}

func (p *AirlinesPage) Create(ctx context.Context, payload map[string]any) error {
	return p.RunMutation(ctx, "create", func(ctx context.Context) (string, error) {
		return p.api.Airlines.Create(ctx, payload)
	})
}

func (p *AirlinesPage) Update(ctx context.Context, id int64, partial map[string]any) error {
	partial = trimUnchanged(p.Airlines, id, func(a domain.Airline) int64 { return a.ID }, partial)
	return p.RunMutation(ctx, "edit", func(ctx context.Context) (string, error) {
		return p.api.Airlines.Update(ctx, id, partial)
	})
}

func (p *AirlinesPage) Delete(ctx context.Context, id int64) error {
	return p.RunMutation(ctx, "delete", func(ctx context.Context) (string, error) {
		return p.api.Airlines.Remove(ctx, id)
	})
}

func (p *AirlinesPage) Flights(ctx context.Context, airlineID int64) ([]domain.Flight, error) {
	return p.api.AirlineFlights(ctx, airlineID)
}

type AirportsPage struct {
	*Page
	api      *client.API
	Airports []domain.Airport
}

func newAirportsPage(api *client.API, opts ...PageOption) *AirportsPage {
	p := &AirportsPage{api: api}
	p.Page = NewPage("airports", []Fetcher{
		func(ctx context.Context) error {
			airports, err := api.Airports.List(ctx, nil)
			if err != nil {
				return err
			}
			p.Airports = airports
			return nil
		},
	}, opts...)
	return p
}

func (p *AirportsPage) Rows(search string) []domain.Airport {
	return Filter(p.Airports, search, func(a domain.Airport) []string {
		return []string{a.Name, a.City, a.Country}
	})
}

func (p *AirportsPage) Create(ctx context.Context, payload map[string]any) error {
	return p.RunMutation(ctx, "create", func(ctx context.Context) (string, error) {
		return p.api.Airports.Create(ctx, payload)
	})
}

func (p *AirportsPage) Update(ctx context.Context, id int64, partial map[string]any) error {
	partial = trimUnchanged(p.Airports, id, func(a domain.Airport) int64 { return a.ID }, partial)
	return p.RunMutation(ctx, "edit", func(ctx context.Context) (string, error) {
		return p.api.Airports.Update(ctx, id, partial)
	})
}

func (p *AirportsPage) Delete(ctx context.Context, id int64) error {
	return p.RunMutation(ctx, "delete", func(ctx context.Context) (string, error) {
		return p.api.Airports.Remove(ctx, id)
	})
}

type StaffPage struct {
	*Page
	api      *client.API
	Staff    []domain.Staff
	Airlines []domain.Airline
	Airports []domain.Airport
}

func newStaffPage(api *client.API, opts ...PageOption) *StaffPage {
	p := &StaffPage{api: api}
	p.Page = NewPage("staff", []Fetcher{
		func(ctx context.Context) error {
			staff, err := api.Staff.List(ctx, nil)
			if err != nil {
				return err
			}
			p.Staff = staff
			return nil
		},
		func(ctx context.Context) error {
			airlines, err := api.Airlines.List(ctx, nil)
			if err != nil {
				return err
			}
			p.Airlines = airlines
			return nil
		},
		func(ctx context.Context) error {
			airports, err := api.Airports.List(ctx, nil)
			if err != nil {
				return err
			}
			p.Airports = airports
			return nil
		},
	}, opts...)
	return p
}

func (p *StaffPage) Rows(search string) []domain.Staff {
	return Filter(p.Staff, search, func(s domain.Staff) []string {
		return []string{s.FirstName, s.LastName, s.Role, s.Airline, s.Airport, s.AirportCity}
	})
}

func (p *StaffPage) Create(ctx context.Context, payload map[string]any) error {
	return p.RunMutation(ctx, "create", func(ctx context.Context) (string, error) {
		return p.api.Staff.Create(ctx, payload)
	})
}

func (p *StaffPage) Update(ctx context.Context, id int64, partial map[string]any) error {
	partial = trimUnchanged(p.Staff, id, func(s domain.Staff) int64 { return s.ID }, partial)
	return p.RunMutation(ctx, "edit", func(ctx context.Context) (string, error) {
		return p.api.Staff.Update(ctx, id, partial)
	})
}

func (p *StaffPage) Delete(ctx context.Context, id int64) error {
	return p.RunMutation(ctx, "delete", func(ctx context.Context) (string, error) {
		return p.api.Staff.Remove(ctx, id)
	})
}

func (p *StaffPage) Transfer(ctx context.Context, staffID, newAirportID int64, notes string) error {
	return p.RunMutation(ctx, "transfer", func(ctx context.Context) (string, error) {
		return p.api.TransferStaff(ctx, staffID, newAirportID, notes)
	})
}

func (p *StaffPage) History(ctx context.Context, staffID int64) ([]domain.TransferRecord, error) {
	return p.api.StaffHistory(ctx, staffID)
}

// AnalyticsPage is lenient: a failed sub-fetch renders as an empty section
// instead of failing the whole page.
type AnalyticsPage struct {
	*Page
	api            *client.API
	AboveAverage   []domain.AboveAverageFlight
	BookingDetails []domain.PassengerBookingDetail
	PerAirline     []domain.AirlinePassengers
	BusyAirports   []domain.BusyAirport
}

func newAnalyticsPage(api *client.API, opts ...PageOption) *AnalyticsPage {
	p := &AnalyticsPage{api: api}
	opts = append(opts, Lenient())
	p.Page = NewPage("analytics", []Fetcher{
		func(ctx context.Context) error {
			flights, err := api.AboveAverageBookings(ctx)
			if err != nil {
				return err
			}
			p.AboveAverage = flights
			return nil
		},
		func(ctx context.Context) error {
			details, err := api.PassengerBookingsDetail(ctx)
			if err != nil {
				return err
			}
			p.BookingDetails = details
			return nil
		},
		func(ctx context.Context) error {
			airlines, err := api.UniquePassengersPerAirline(ctx)
			if err != nil {
				return err
			}
			p.PerAirline = airlines
			return nil
		},
		func(ctx context.Context) error {
			airports, err := api.BusiestAirports(ctx, 5)
			if err != nil {
				return err
			}
			p.BusyAirports = airports
			return nil
		},
	}, opts...)
	return p
}

// ParseFieldValue converts a key=value argument into the JSON-typed value
// the backend expects for that key.
func ParseFieldValue(key, value string) any {
	switch key {
	case "airline_id", "from_airport_id", "to_airport_id", "passenger_id", "flight_id", "airport_id", "new_airport_id", "staff_id", "capacity", "min_bookings":
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return value
}
