package domain

type Airline struct {
	ID          int64  `json:"Airline_ID"`
	Name        string `json:"Name"`
	ContactInfo string `json:"Contact_Info"`
}
