package domain

import "time"

type AboveAverageFlight struct {
	FlightNo      string `json:"Flight_No"`
	Airline       string `json:"Airline"`
	TotalBookings int    `json:"Total_Bookings"`
}

type PassengerBookingDetail struct {
	PassengerID   int64     `json:"Passenger_ID"`
	FirstName     string    `json:"First_Name"`
	LastName      string    `json:"Last_Name"`
	FlightNo      string    `json:"Flight_No"`
	Airline       string    `json:"Airline"`
	SeatNo        string    `json:"Seat_No"`
	BookingStatus string    `json:"Booking_Status"`
	DepartureTime time.Time `json:"Departure_Time"`
	ArrivalTime   time.Time `json:"Arrival_Time"`
}

type AirlinePassengers struct {
	Airline          string `json:"Airline"`
	UniquePassengers int    `json:"Unique_Passengers"`
}

type BusyAirport struct {
	Airport      string `json:"Airport"`
	City         string `json:"City"`
	Departures   int    `json:"Departures"`
	Arrivals     int    `json:"Arrivals"`
	TotalTraffic int    `json:"Total_Traffic"`
}
