package domain

import "time"

type Passenger struct {
	ID           int64  `json:"Passenger_ID"`
	FirstName    string `json:"First_Name"`
	LastName     string `json:"Last_Name"`
	Email        string `json:"Email"`
	Phone        string `json:"Phone"`
	BookingCount int    `json:"booking_count"`
}

// PassengerBooking is a booking row joined with flight details, returned by
// GET /passengers/{id}/bookings.
type PassengerBooking struct {
	BookingID     int64     `json:"Booking_ID"`
	Date          time.Time `json:"Date"`
	SeatNo        string    `json:"Seat_No"`
	Status        string    `json:"Status"`
	FlightNo      string    `json:"Flight_No"`
	DepartureTime time.Time `json:"Departure_Time"`
	ArrivalTime   time.Time `json:"Arrival_Time"`
	Airline       string    `json:"Airline"`
	FromAirport   string    `json:"From_Airport"`
	FromCity      string    `json:"From_City"`
	ToAirport     string    `json:"To_Airport"`
	ToCity        string    `json:"To_City"`
}

type PassengerSearch struct {
	Name        string
	Email       string
	MinBookings int
}
