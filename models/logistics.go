package models

import (
	"time"

	"github.com/google/uuid"
)

// AccommodationBooking is a block of rooms held at a hotel.
type AccommodationBooking struct {
	Base
	WeddingID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"weddingId"`
	HotelName    string     `gorm:"not null" json:"hotelName"`
	Address      string     `json:"address"`
	CheckIn      *time.Time `json:"checkIn"`
	CheckOut     *time.Time `json:"checkOut"`
	RoomsBlocked int        `json:"roomsBlocked"`
	RoomsBooked  int        `json:"roomsBooked"`
	RatePerNight float64    `gorm:"type:decimal(12,2);default:0" json:"ratePerNight"`
	ContactPhone string     `json:"contactPhone"`
	Notes        string     `json:"notes"`
	SoftDelete
}

func (a *AccommodationBooking) Validate() error {
	if err := firstErr(required("hotelName", a.HotelName), nonNegative("ratePerNight", a.RatePerNight)); err != nil {
		return err
	}
	if a.RoomsBooked > a.RoomsBlocked && a.RoomsBlocked > 0 {
		return &ValidationError{Field: "roomsBooked", Message: "must not exceed roomsBlocked"}
	}
	if a.CheckIn != nil && a.CheckOut != nil && a.CheckOut.Before(*a.CheckIn) {
		return &ValidationError{Field: "checkOut", Message: "must not be before checkIn"}
	}
	return nil
}

type TransportationArrangement struct {
	Base
	WeddingID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"weddingId"`
	EventID        *uuid.UUID `gorm:"type:uuid;index" json:"eventId"`
	VehicleType    string     `gorm:"not null" json:"vehicleType"`
	Provider       string     `json:"provider"`
	Capacity       int        `json:"capacity"`
	VehicleCount   int        `gorm:"default:1" json:"vehicleCount"`
	PickupLocation string     `json:"pickupLocation"`
	DropLocation   string     `json:"dropLocation"`
	PickupAt       *time.Time `json:"pickupAt"`
	Cost           float64    `gorm:"type:decimal(12,2);default:0" json:"cost"`
	Notes          string     `json:"notes"`
	SoftDelete
}

func (t *TransportationArrangement) ApplyDefaults() {
	if t.VehicleCount == 0 {
		t.VehicleCount = 1
	}
}

func (t *TransportationArrangement) Validate() error {
	return firstErr(required("vehicleType", t.VehicleType), nonNegative("cost", t.Cost))
}
