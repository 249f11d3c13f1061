package entity

import "time"

// CarStatus is the listing lifecycle value. All transitions are permitted;
// any status may be written over any other at any time.
type CarStatus string

const (
	CarStatusAvailable   CarStatus = "AVAILABLE"
	CarStatusUnavailable CarStatus = "UNAVAILABLE"
	CarStatusSold        CarStatus = "SOLD"
)

// Valid reports whether s is a known status value.
func (s CarStatus) Valid() bool {
	switch s {
	case CarStatusAvailable, CarStatusUnavailable, CarStatusSold:
		return true
	}
	return false
}

// Car is one vehicle listing. Images holds public URLs in upload order and
// is append-only at creation; a persisted car always has at least one image.
type Car struct {
	ID           string
	Make         string
	Model        string
	Year         int
	Price        float64
	Mileage      int
	Color        string
	FuelType     string
	Transmission string
	BodyType     string
	Seats        *int
	Description  string
	Status       CarStatus
	Featured     bool
	Images       []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
