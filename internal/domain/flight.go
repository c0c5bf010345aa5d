package domain

import "time"

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "Scheduled"
	FlightStatusDelayed   FlightStatus = "Delayed"
	FlightStatusCancelled FlightStatus = "Cancelled"
	FlightStatusCompleted FlightStatus = "Completed"
)

// Flight is the joined row the list and detail endpoints return. JSON tags
// mirror the column aliases of the relational schema so the wire shape stays
// compatible with existing consumers; available_seats is always computed
// server-side from capacity minus active bookings.
type Flight struct {
	ID             int64        `json:"Flight_ID"`
	FlightNo       string       `json:"Flight_No"`
	DepartureTime  time.Time    `json:"Departure_Time"`
	ArrivalTime    time.Time    `json:"Arrival_Time"`
	Status         FlightStatus `json:"Status"`
	Capacity       int          `json:"Capacity"`
	Airline        string       `json:"Airline"`
	AirlineID      int64        `json:"Airline_ID,omitempty"`
	FromAirportID  int64        `json:"From_Airport_ID,omitempty"`
	FromAirport    string       `json:"From_Airport"`
	FromCity       string       `json:"From_City"`
	FromCountry    string       `json:"From_Country"`
	ToAirportID    int64        `json:"To_Airport_ID,omitempty"`
	ToAirport      string       `json:"To_Airport"`
	ToCity         string       `json:"To_City"`
	ToCountry      string       `json:"To_Country"`
	AvailableSeats int          `json:"available_seats"`
}

// FlightFilter holds the optional list query parameters; zero values are
// not applied.
type FlightFilter struct {
	Status   string
	FromCity string
	ToCity   string
	Date     string
}
