package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RSVPPending   = "pending"
	RSVPConfirmed = "confirmed"
	RSVPDeclined  = "declined"
	RSVPMaybe     = "maybe"
)

var RSVPStatuses = []string{RSVPPending, RSVPConfirmed, RSVPDeclined, RSVPMaybe}

type GuestGroup struct {
	Base
	WeddingID   uuid.UUID `gorm:"type:uuid;index;not null" json:"weddingId"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	SoftDelete
}

func (g *GuestGroup) Validate() error { return required("name", g.Name) }

type Guest struct {
	Base
	WeddingID          uuid.UUID                   `gorm:"type:uuid;index;not null" json:"weddingId"`
	GroupID            *uuid.UUID                  `gorm:"type:uuid;index" json:"groupId"`
	FirstName          string                      `gorm:"not null" json:"firstName"`
	LastName           string                      `json:"lastName"`
	Email              string                      `json:"email"`
	Phone              string                      `json:"phone"`
	Side               string                      `json:"side"` // bride, groom, both
	RSVPStatus         string                      `gorm:"type:varchar(20);default:'pending'" json:"rsvpStatus"`
	PlusOne            bool                        `gorm:"default:false" json:"plusOne"`
	PlusOneName        string                      `json:"plusOneName"`
	DietaryPreferences datatypes.JSONSlice[string] `json:"dietaryPreferences"`
	Notes              string                      `json:"notes"`
	SoftDelete
}

func (g *Guest) ApplyDefaults() {
	if g.RSVPStatus == "" {
		g.RSVPStatus = RSVPPending
	}
	if g.DietaryPreferences == nil {
		g.DietaryPreferences = datatypes.JSONSlice[string]{}
	}
}

func (g *Guest) Validate() error {
	return firstErr(
		required("firstName", g.FirstName),
		oneOf("rsvpStatus", g.RSVPStatus, RSVPStatuses...),
	)
}

// FullName joins first and last name, skipping an empty last name.
func (g *Guest) FullName() string {
	if g.LastName == "" {
		return g.FirstName
	}
	return g.FirstName + " " + g.LastName
}

const (
	TripOneWay    = "one_way"
	TripRoundTrip = "round_trip"
)

// GuestTravelDetail is a guest's arrival (and, for round trips, departure).
// WeddingID is copied from the guest so the row can be scoped directly.
type GuestTravelDetail struct {
	Base
	WeddingID       uuid.UUID  `gorm:"type:uuid;index;not null" json:"weddingId"`
	GuestID         uuid.UUID  `gorm:"type:uuid;index;not null" json:"guestId"`
	TripType        string     `gorm:"type:varchar(20);default:'one_way'" json:"tripType"`
	Mode            string     `json:"mode"` // flight, train, road
	ArrivalAt       *time.Time `json:"arrivalAt"`
	ArrivalCarrier  string     `json:"arrivalCarrier"`
	ArrivalNumber   string     `json:"arrivalNumber"`
	ArrivalFrom     string     `json:"arrivalFrom"`
	DepartureAt     *time.Time `json:"departureAt"`
	DepartureNumber string     `json:"departureNumber"`
	PickupRequired  bool       `json:"pickupRequired"`
	Notes           string     `json:"notes"`
	SoftDelete
}

func (t *GuestTravelDetail) ApplyDefaults() {
	if t.TripType == "" {
		t.TripType = TripOneWay
	}
}

func (t *GuestTravelDetail) Validate() error {
	if t.GuestID == uuid.Nil {
		return &ValidationError{Field: "guestId", Message: "is required"}
	}
	if err := oneOf("tripType", t.TripType, TripOneWay, TripRoundTrip); err != nil {
		return err
	}
	if t.TripType == TripRoundTrip && t.DepartureAt == nil {
		return &ValidationError{Field: "departureAt", Message: "is required for round trips"}
	}
	return nil
}
