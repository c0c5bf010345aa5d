package domain

// Airport carries server-computed traffic statistics: departures and
// arrivals count only Scheduled and Delayed flights.
type Airport struct {
	ID         int64  `json:"Airport_ID"`
	Name       string `json:"Name"`
	City       string `json:"City"`
	Country    string `json:"Country"`
	Departures int    `json:"departures"`
	Arrivals   int    `json:"arrivals"`
	TotalStaff int    `json:"total_staff"`
}
