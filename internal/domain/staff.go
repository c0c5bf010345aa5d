package domain

import "time"

type Staff struct {
	ID          int64  `json:"Staff_ID"`
	FirstName   string `json:"First_Name"`
	LastName    string `json:"Last_Name"`
	Role        string `json:"Role"`
	AirlineID   int64  `json:"Airline_ID,omitempty"`
	Airline     string `json:"Airline"`
	AirportID   int64  `json:"Airport_ID,omitempty"`
	Airport     string `json:"Airport"`
	AirportCity string `json:"Airport_City"`
}

// TransferRecord is one row of a staff member's transfer history, written
// in the same transaction as the airport change.
type TransferRecord struct {
	HistoryID  int64     `json:"History_ID"`
	OldAirport string    `json:"Old_Airport"`
	OldCity    string    `json:"Old_City"`
	NewAirport string    `json:"New_Airport"`
	NewCity    string    `json:"New_City"`
	ChangedAt  time.Time `json:"Changed_At"`
	Notes      string    `json:"Notes"`
}
