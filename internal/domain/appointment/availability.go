package appointment

import "time"

type AvailabilityInput struct {
	BarberID string
	Service  string
	Date     time.Time
}

type Availability struct {
	Date     string   `json:"date"`
	BarberID string   `json:"barberId"`
	Service  string   `json:"service"`
	Duration int      `json:"duration"`
	Working  bool     `json:"working"`
	Source   string   `json:"source"`
	Slots    []string `json:"slots"`
}
