package domain

import "time"

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "Booked"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// Booking is the joined row returned by the bookings list and detail
// endpoints.
type Booking struct {
	ID            int64         `json:"Booking_ID"`
	Date          time.Time     `json:"Date"`
	SeatNo        string        `json:"Seat_No"`
	Status        BookingStatus `json:"Status"`
	BookingTime   time.Time     `json:"Booking_Time"`
	PassengerID   int64         `json:"Passenger_ID"`
	FirstName     string        `json:"First_Name"`
	LastName      string        `json:"Last_Name"`
	Email         string        `json:"Email"`
	FlightID      int64         `json:"Flight_ID"`
	FlightNo      string        `json:"Flight_No"`
	DepartureTime time.Time     `json:"Departure_Time"`
	ArrivalTime   time.Time     `json:"Arrival_Time"`
	Airline       string        `json:"Airline"`
	FromCity      string        `json:"From_City"`
	ToCity        string        `json:"To_City"`
}

type BookingFilter struct {
	Status      string
	PassengerID int64
	FlightID    int64
}

// AuditEntry is one row of the booking audit log. Every INSERT, UPDATE and
// DELETE against bookings produces one.
type AuditEntry struct {
	AuditID   int64     `json:"Audit_ID"`
	BookingID int64     `json:"Booking_ID"`
	Operation string    `json:"Operation"`
	OpTime    time.Time `json:"Op_Time"`
	Details   string    `json:"Details"`
}
